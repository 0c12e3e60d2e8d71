// Package ai answers travel questions with Gemini, falling back to OpenAI.
package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/metrics"
	"github.com/kapu/tastejourney-go/internal/prompt"
	"github.com/kapu/tastejourney-go/internal/util"
	"github.com/kapu/tastejourney-go/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type reply struct {
	result ProviderResult
	meta   GenerateMetadata
}

type Assistant struct {
	primary  Provider
	fallback Provider
	prompts  *prompt.PromptBuilder
	preset   ModelPreset
	breaker  *gobreaker.CircuitBreaker[reply]
	logger   *zap.Logger
}

// NewAssistant wires providers directly. A nil primary leaves the assistant disabled.
func NewAssistant(primary, fallback Provider, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		primary:  primary,
		fallback: fallback,
		prompts:  prompt.DefaultPromptBuilder(),
		preset:   PresetBalanced,
		breaker:  util.NewCircuitBreaker[reply]("assistant", logger),
		logger:   logger,
	}
}

// NewFromConfig builds the Gemini provider and, when a key and the flag allow it, the OpenAI fallback.
func NewFromConfig(ctx context.Context, gc config.GeminiConfig, oc config.OpenAIConfig, logger *zap.Logger) (*Assistant, error) {
	if gc.APIKey == "" {
		logger.Info("Assistant disabled (no Gemini API key)")
		return NewAssistant(nil, nil, logger), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  gc.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	defaultGemini := gc.Model
	if defaultGemini == "" {
		defaultGemini = "gemini-2.5-flash"
	}
	primary := NewGeminiProvider(client, defaultGemini, logger)

	var fallback Provider
	if oc.EnableFallback && oc.APIKey != "" {
		fallback = NewOpenAIProvider(oc.APIKey, oc.Model, logger)
		logger.Info("OpenAI fallback enabled", zap.String("model", oc.Model))
	} else {
		logger.Info("OpenAI fallback disabled")
	}

	return NewAssistant(primary, fallback, logger), nil
}

func (a *Assistant) Enabled() bool {
	return a != nil && a.primary != nil
}

// Chat answers one user message in the context the client supplied.
func (a *Assistant) Chat(ctx context.Context, message string, cc domain.ChatContext) (domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatReply{}, errors.NewValidationError("message is required", "message", message)
	}
	if !a.Enabled() {
		return domain.ChatReply{}, errors.NewUnavailableError("assistant is not configured", "assistant")
	}

	conv := Conversation{
		System:  a.prompts.TravelAssistant(prompt.NewTravelAssistantData(cc)),
		History: recentTurns(cc.History, constants.AIInputLimits.MaxHistoryTurns),
		Message: util.TruncateRunes(message, constants.AIInputLimits.MaxMessageLength),
	}

	out, err := a.breaker.Execute(func() (reply, error) {
		return a.generate(ctx, conv)
	})
	if err != nil {
		if util.IsBreakerRejection(err) {
			a.logger.Error("Assistant unavailable (circuit open)", zap.Error(err))
			return domain.ChatReply{}, errors.NewUnavailableError("assistant is temporarily unavailable", "assistant")
		}
		return domain.ChatReply{}, errors.NewServiceError("assistant failed to reply", "assistant", "chat", err)
	}

	metrics.AssistantReplies.WithLabelValues(out.meta.Provider, strconv.FormatBool(out.meta.UsedFallback)).Inc()

	return domain.ChatReply{
		Reply:        out.result.Text,
		Provider:     out.meta.Provider,
		Model:        out.meta.Model,
		UsedFallback: out.meta.UsedFallback,
	}, nil
}

func (a *Assistant) generate(ctx context.Context, conv Conversation) (reply, error) {
	res, primaryErr := a.primary.Generate(ctx, conv, a.preset, nil)
	if primaryErr == nil {
		return reply{
			result: res,
			meta:   GenerateMetadata{Provider: a.primary.Name(), Model: res.Model},
		}, nil
	}

	a.logger.Warn("Primary provider failed",
		zap.String("provider", a.primary.Name()),
		zap.String("kind", failureKind(primaryErr)),
		zap.Error(primaryErr),
	)

	if a.fallback == nil || ctx.Err() != nil {
		return reply{}, primaryErr
	}

	res, fallbackErr := a.fallback.Generate(ctx, conv, a.preset, nil)
	if fallbackErr != nil {
		a.logger.Error("Fallback provider failed",
			zap.String("provider", a.fallback.Name()),
			zap.String("kind", failureKind(fallbackErr)),
			zap.Error(fallbackErr),
		)
		return reply{}, fmt.Errorf("all providers failed: %w", fallbackErr)
	}

	return reply{
		result: res,
		meta:   GenerateMetadata{Provider: a.fallback.Name(), Model: res.Model, UsedFallback: true},
	}, nil
}

// recentTurns keeps the last limit turns and drops empty ones.
func recentTurns(history []domain.ChatTurn, limit int) []domain.ChatTurn {
	turns := make([]domain.ChatTurn, 0, len(history))
	for _, t := range history {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		turns = append(turns, t)
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}

var (
	rateLimitPattern   = regexp.MustCompile(`(?i)(429|rate limit|quota|resource.?exhausted)`)
	serviceFailPattern = regexp.MustCompile(`(?i)(500|502|503|504|unavailable|deadline exceeded|timeout|connection refused)`)
)

func failureKind(err error) string {
	msg := err.Error()
	switch {
	case rateLimitPattern.MatchString(msg):
		return "rate_limit"
	case serviceFailPattern.MatchString(msg):
		return "service"
	default:
		return "other"
	}
}
