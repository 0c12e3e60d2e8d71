package prompt

import (
	"fmt"
	"sort"
	"strings"
)

const assistantPersona = `You are an expert AI travel companion specializing in content creator travel recommendations. You provide personalized, actionable advice for travel content creators looking to monetize their journeys.`

// FallbackTravelAssistantPrompt builds the assistant prompt without the template engine.
func FallbackTravelAssistantPrompt(data TravelAssistantData) string {
	var b strings.Builder
	b.WriteString(assistantPersona)

	if data.HasWebsite {
		themes := "Not specified"
		if len(data.Themes) > 0 {
			themes = strings.Join(data.Themes, ", ")
		}
		contentType := data.ContentType
		if contentType == "" {
			contentType = "Not specified"
		}
		fmt.Fprintf(&b, "\n\nUser Context:\n- Website themes: %s\n- Content type: %s\n- User preferences: %s",
			themes, contentType, formatAnswers(data.UserAnswers))
	}

	for i, rec := range data.Recommendations {
		if i == 0 {
			b.WriteString("\n\nCurrent recommendations:")
		}
		fmt.Fprintf(&b, "\n- %s (%d%% match)", rec.Destination, rec.MatchScore)
	}

	return b.String()
}

func formatAnswers(answers map[string]string) string {
	if len(answers) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+answers[k])
	}
	return strings.Join(parts, "; ")
}
