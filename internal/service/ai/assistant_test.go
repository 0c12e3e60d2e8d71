package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	apperrors "github.com/kapu/tastejourney-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	mu    sync.Mutex
	calls []Conversation
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, conv Conversation, _ ModelPreset, _ *GenerateOptions) (ProviderResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, conv)
	f.mu.Unlock()
	if f.err != nil {
		return ProviderResult{}, f.err
	}
	return ProviderResult{Text: f.text, Model: f.name + "-model"}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestChat_PrimaryReply(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", text: "Go to Bali in May."}
	a := NewAssistant(primary, nil, zap.NewNop())

	got, err := a.Chat(context.Background(), "  When should I visit?  ", domain.ChatContext{
		Website: &domain.SignalSet{Themes: []string{"travel"}, ContentType: "Travel"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Go to Bali in May.", got.Reply)
	assert.Equal(t, "Gemini", got.Provider)
	assert.Equal(t, "Gemini-model", got.Model)
	assert.False(t, got.UsedFallback)

	require.Equal(t, 1, primary.callCount())
	conv := primary.calls[0]
	assert.Equal(t, "When should I visit?", conv.Message)
	assert.Contains(t, conv.System, "Website themes: travel")
}

func TestChat_FallsBackToSecondary(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: errors.New("503 unavailable")}
	fallback := &fakeProvider{name: "OpenAI", text: "Try Kyoto."}
	a := NewAssistant(primary, fallback, zap.NewNop())

	got, err := a.Chat(context.Background(), "ideas?", domain.ChatContext{})

	require.NoError(t, err)
	assert.Equal(t, "Try Kyoto.", got.Reply)
	assert.Equal(t, "OpenAI", got.Provider)
	assert.True(t, got.UsedFallback)
}

func TestChat_AllProvidersFail(t *testing.T) {
	a := NewAssistant(
		&fakeProvider{name: "Gemini", err: errors.New("boom")},
		&fakeProvider{name: "OpenAI", err: errors.New("also boom")},
		zap.NewNop(),
	)

	_, err := a.Chat(context.Background(), "hello", domain.ChatContext{})

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeService, appErr.Code)
}

func TestChat_Disabled(t *testing.T) {
	a := NewAssistant(nil, nil, zap.NewNop())
	assert.False(t, a.Enabled())

	_, err := a.Chat(context.Background(), "hello", domain.ChatContext{})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.StatusCode)
}

func TestChat_EmptyMessage(t *testing.T) {
	a := NewAssistant(&fakeProvider{name: "Gemini", text: "hi"}, nil, zap.NewNop())

	_, err := a.Chat(context.Background(), "   ", domain.ChatContext{})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestChat_TruncatesInput(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", text: "ok"}
	a := NewAssistant(primary, nil, zap.NewNop())

	history := make([]domain.ChatTurn, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, domain.ChatTurn{Role: domain.ChatRoleUser, Content: "turn"})
	}
	long := strings.Repeat("a", constants.AIInputLimits.MaxMessageLength+50)

	_, err := a.Chat(context.Background(), long, domain.ChatContext{History: history})

	require.NoError(t, err)
	conv := primary.calls[0]
	assert.Len(t, []rune(conv.Message), constants.AIInputLimits.MaxMessageLength)
	assert.Len(t, conv.History, constants.AIInputLimits.MaxHistoryTurns)
}

func TestChat_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	primary := &fakeProvider{name: "Gemini", err: errors.New("503")}
	a := NewAssistant(primary, nil, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = a.Chat(context.Background(), "hello", domain.ChatContext{})
	}

	assert.Equal(t, int(constants.CircuitBreakerConfig.FailureThreshold), primary.callCount())

	_, err := a.Chat(context.Background(), "hello", domain.ChatContext{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.StatusCode)
}

func TestRecentTurns(t *testing.T) {
	history := []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Content: "a"},
		{Role: domain.ChatRoleAssistant, Content: " "},
		{Role: domain.ChatRoleAssistant, Content: "b"},
		{Role: domain.ChatRoleUser, Content: "c"},
	}

	got := recentTurns(history, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Content)
	assert.Equal(t, "c", got[1].Content)
	assert.Len(t, recentTurns(history, 0), 3)
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  string
		want string
	}{
		{"googleapi: Error 429: RESOURCE_EXHAUSTED", "rate_limit"},
		{"rate limit reached", "rate_limit"},
		{"503 Service Unavailable", "service"},
		{"context deadline exceeded", "service"},
		{"invalid argument", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.want, failureKind(errors.New(tt.err)))
		})
	}
}
