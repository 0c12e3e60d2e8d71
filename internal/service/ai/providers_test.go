package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestOpenAIProvider_Generate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-5-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": " Pack light. "}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-5-mini", zap.NewNop(),
		option.WithBaseURL(srv.URL+"/"),
		option.WithMaxRetries(0),
	)
	res, err := p.Generate(context.Background(), Conversation{
		System:  "system prompt",
		History: []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: "hi"}, {Role: domain.ChatRoleAssistant, Content: "hello"}},
		Message: "what to pack?",
	}, PresetBalanced, nil)

	require.NoError(t, err)
	assert.Equal(t, "Pack light.", res.Text)
	assert.Equal(t, "gpt-5-mini", res.Model)

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 4)
	_, hasTemperature := body["temperature"]
	assert.False(t, hasTemperature)
}

func TestNewOpenAIProvider_NoKey(t *testing.T) {
	assert.Nil(t, NewOpenAIProvider("", "gpt-5-mini", zap.NewNop()))
}

func TestGeminiContents_MapsRoles(t *testing.T) {
	contents := geminiContents(Conversation{
		History: []domain.ChatTurn{
			{Role: domain.ChatRoleUser, Content: "hi"},
			{Role: domain.ChatRoleAssistant, Content: "hello"},
		},
		Message: "next",
	})

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "next", contents[2].Parts[0].Text)
}

func TestExtractTextFromGeminiResponse(t *testing.T) {
	assert.Empty(t, extractTextFromGeminiResponse(nil))
	assert.Empty(t, extractTextFromGeminiResponse(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello "}, {Text: "world "}}},
		}},
	}
	assert.Equal(t, "Hello world", extractTextFromGeminiResponse(resp))
}

func TestPresetOverrides(t *testing.T) {
	cfg := GetPresetConfig(PresetPrecise).merge(&ModelConfig{Temperature: 0.9})

	assert.Equal(t, float32(0.9), cfg.Temperature)
	assert.Equal(t, 20, cfg.TopK)
	assert.Equal(t, GetPresetConfig(PresetBalanced), GetPresetConfig("unknown"))
}
