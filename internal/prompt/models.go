package prompt

import (
	"github.com/kapu/tastejourney-go/internal/domain"
)

// RecommendationLine is one destination as the assistant sees it.
type RecommendationLine struct {
	Destination string
	MatchScore  int
	Budget      string
	Highlights  []string
}

type TravelAssistantData struct {
	HasWebsite      bool
	Themes          []string
	ContentType     string
	UserAnswers     map[string]string
	ChatState       string
	Recommendations []RecommendationLine
}

// NewTravelAssistantData flattens a chat context into template data.
func NewTravelAssistantData(cc domain.ChatContext) TravelAssistantData {
	data := TravelAssistantData{
		UserAnswers: cc.UserAnswers,
		ChatState:   cc.ChatState,
	}
	if cc.Website != nil {
		data.HasWebsite = true
		data.Themes = cc.Website.Themes
		data.ContentType = cc.Website.ContentType
	}
	for _, rec := range cc.Recommendations {
		name := rec.Destination
		if name == "" {
			name = rec.DestinationName
		}
		data.Recommendations = append(data.Recommendations, RecommendationLine{
			Destination: name,
			MatchScore:  rec.MatchScore,
			Budget:      rec.Budget.Range,
			Highlights:  rec.Highlights,
		})
	}
	return data
}
