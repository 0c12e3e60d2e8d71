package taste

import (
	"testing"
	"time"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.8, Confidence([]string{"travel", "food"}, []string{"blogger", "foodie"}), eps)
	assert.InDelta(t, 0.95, Confidence(
		[]string{"a", "b", "c", "d"},
		[]string{"photographer", "blogger", "foodie", "traveler"},
	), eps)
	assert.InDelta(t, 0.5, Confidence(nil, nil), eps)
}

func TestConfidenceLevel(t *testing.T) {
	assert.Equal(t, "High", ConfidenceLevel(0.9))
	assert.Equal(t, "Medium", ConfidenceLevel(0.7))
	assert.Equal(t, "Low", ConfidenceLevel(0.5))
}

func TestCulturalAffinities_CappedAtSix(t *testing.T) {
	vec := Base()
	vec.Adventure = 0.7
	vec.Culture = 0.7
	vec.Luxury = 0.7

	assert.Equal(t, []string{
		"Adventure Sports", "Outdoor Activities",
		"Museums", "Historical Sites", "Local Traditions",
		"Fine Dining",
	}, CulturalAffinities(vec))
}

func TestPersonalityTraits_IncludesCombinations(t *testing.T) {
	vec := Base()
	vec.Adventure = 0.8
	vec.Nature = 0.6

	assert.Equal(t, []string{"Thrill Seeker", "Outdoor Adventurer"}, PersonalityTraits(vec))
}

func TestSmartRecommendations(t *testing.T) {
	t.Run("theme ideas", func(t *testing.T) {
		got := SmartRecommendations(Base(), []string{"photography", "business", "health"})
		assert.Equal(t, []string{
			"Morocco", "India", "Myanmar", "Ethiopia",
			"Singapore", "Switzerland", "Japan", "Germany",
		}, got)
	})

	t.Run("vector ideas are deduped and capped", func(t *testing.T) {
		vec := Base()
		vec.Culture = 0.7
		vec.Luxury = 0.7
		got := SmartRecommendations(vec, []string{"visual"})
		assert.Len(t, got, maxIdeas)
		assert.Equal(t, "Kyoto", got[0])
		assert.Equal(t, "Monaco", got[7])
	})
}

func TestProfiler_Profile(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfiler(zap.NewNop())
	p.now = func() time.Time { return fixed }

	profile := p.Profile([]string{"food"}, []string{"foodie"}, "Food & Culinary")

	assert.InDelta(t, 0.75, profile.TasteVector.Food, eps)
	assert.Equal(t, []string{"Street Food", "Cooking Classes", "Food Markets"}, profile.CulturalAffinities)
	assert.Equal(t, []string{"Foodie"}, profile.PersonalityTraits)
	assert.InDelta(t, 0.65, profile.Confidence, eps)
	assert.Equal(t, "Medium", profile.ConfidenceLevel)
	assert.Zero(t, profile.ProcessingTimeMs)
	assert.IsType(t, domain.TasteProfile{}, profile)
}
