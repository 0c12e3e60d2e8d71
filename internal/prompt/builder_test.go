package prompt

import (
	"testing"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() domain.ChatContext {
	return domain.ChatContext{
		ChatState: "recommendations",
		Website: &domain.SignalSet{
			Themes:      []string{"travel", "food"},
			ContentType: "Travel",
		},
		UserAnswers: map[string]string{"style": "adventure", "budget": "1000-2500"},
		Recommendations: []domain.Recommendation{
			{
				Destination: "Bali, Indonesia",
				MatchScore:  49,
				Budget:      domain.BudgetInfo{Range: "$1200 - $1800"},
				Highlights:  []string{"Rice terraces"},
			},
		},
	}
}

func TestRender_TravelAssistant(t *testing.T) {
	out, err := NewPromptBuilder().Render(TemplateTravelAssistant, NewTravelAssistantData(sampleContext()))

	require.NoError(t, err)
	assert.Contains(t, out, "expert AI travel companion")
	assert.Contains(t, out, "- Website themes: travel, food")
	assert.Contains(t, out, "- Content type: Travel")
	assert.Contains(t, out, "- User preferences: budget=1000-2500; style=adventure")
	assert.Contains(t, out, "- Bali, Indonesia (49% match, $1200 - $1800): Rice terraces")
	assert.Contains(t, out, "Conversation stage: recommendations")
}

func TestRender_WithoutWebsite(t *testing.T) {
	out, err := NewPromptBuilder().Render(TemplateTravelAssistant, TravelAssistantData{})

	require.NoError(t, err)
	assert.NotContains(t, out, "User Context")
	assert.NotContains(t, out, "Current recommendations")
}

func TestRender_EmptyWebsiteFields(t *testing.T) {
	out, err := NewPromptBuilder().Render(TemplateTravelAssistant, TravelAssistantData{HasWebsite: true})

	require.NoError(t, err)
	assert.Contains(t, out, "- Website themes: Not specified")
	assert.Contains(t, out, "- Content type: Not specified")
	assert.Contains(t, out, "- User preferences: none")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := NewPromptBuilder().Render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestFallbackMatchesTemplateContext(t *testing.T) {
	out := FallbackTravelAssistantPrompt(NewTravelAssistantData(sampleContext()))

	assert.Contains(t, out, "- Website themes: travel, food")
	assert.Contains(t, out, "- User preferences: budget=1000-2500; style=adventure")
	assert.Contains(t, out, "- Bali, Indonesia (49% match)")
}

func TestNewTravelAssistantData_UsesNameWhenDestinationMissing(t *testing.T) {
	data := NewTravelAssistantData(domain.ChatContext{
		Recommendations: []domain.Recommendation{{DestinationName: "Kyoto"}},
	})

	require.Len(t, data.Recommendations, 1)
	assert.Equal(t, "Kyoto", data.Recommendations[0].Destination)
	assert.False(t, data.HasWebsite)
}
