// Package scoring computes the five sub-scores and the weighted composite for every catalog destination.
package scoring

import (
	"math"
	"strings"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
)

// Scorer is stateless apart from the read-only catalog.
type Scorer struct {
	catalog *domain.Catalog
}

func NewScorer(catalog *domain.Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score returns one entry per catalog destination in catalog order. Nothing is filtered here.
func (s *Scorer) Score(vec domain.TasteVector, prefs domain.UserPreferences, regionBias []string) []domain.ScoredDestination {
	destinations := s.catalog.All()
	scored := make([]domain.ScoredDestination, 0, len(destinations))
	for _, d := range destinations {
		scored = append(scored, ScoreDestination(d, vec, prefs, regionBias))
	}
	return scored
}

func ScoreDestination(d domain.Destination, vec domain.TasteVector, prefs domain.UserPreferences, regionBias []string) domain.ScoredDestination {
	sub := domain.SubScores{
		QlooAffinity:   QlooAffinity(d, vec),
		CreatorDensity: CreatorDensity(d),
		BrandFit:       BrandFit(d, prefs.ContentFocus),
		BudgetFit:      BudgetFit(d, prefs.Budget),
		GeoFit:         GeoFit(d, regionBias),
	}
	return domain.ScoredDestination{
		Destination: d,
		SubScores:   sub,
		TotalScore:  Composite(sub),
	}
}

// QlooAffinity averages mapped tag weights over all tags, so unmapped tags dilute the score.
func QlooAffinity(d domain.Destination, vec domain.TasteVector) float64 {
	var sum float64
	for _, tag := range d.Tags {
		if dim, ok := tagDimensions[util.Normalize(tag)]; ok {
			sum += vec.Get(dim)
		}
	}
	return math.Min(util.Ratio(sum, float64(len(d.Tags))), 1)
}

func CreatorDensity(d domain.Destination) float64 {
	return util.Clamp01(float64(d.ActiveCreators) / creatorCeiling)
}

// BrandFit is the share of brands whose category mentions a keyword for the content focus.
func BrandFit(d domain.Destination, contentFocus string) float64 {
	keywords := focusKeywords[util.Normalize(contentFocus)]
	if len(keywords) == 0 || len(d.Brands) == 0 {
		return 0
	}
	matched := 0
	for _, b := range d.Brands {
		category := strings.ToLower(b.Category)
		for _, kw := range keywords {
			if strings.Contains(category, kw) {
				matched++
				break
			}
		}
	}
	return math.Min(util.Ratio(float64(matched), float64(len(d.Brands))), 1)
}

func BudgetFit(d domain.Destination, budget string) float64 {
	window, ok := budgetWindows[strings.TrimSpace(budget)]
	if !ok {
		window = defaultBudgetWindow
	}
	cost := float64(d.AvgCost)
	switch {
	case cost >= window.min && cost <= window.max:
		return 1
	case cost < window.min:
		return underBudgetFit
	default:
		return math.Max(0, 1-util.Ratio(cost-window.max, window.max))
	}
}

// GeoFit is neutral without a region bias, otherwise a match against region or country.
// Blank bias entries are ignored, so an all-blank bias counts as none.
func GeoFit(d domain.Destination, regionBias []string) float64 {
	biases := make([]string, 0, len(regionBias))
	for _, bias := range regionBias {
		if b := util.Normalize(bias); b != "" {
			biases = append(biases, b)
		}
	}
	if len(biases) == 0 {
		return neutralGeoFit
	}
	region := strings.ToLower(d.Region)
	country := strings.ToLower(d.Country)
	for _, b := range biases {
		if strings.Contains(region, b) || strings.Contains(country, b) {
			return matchedGeoFit
		}
	}
	return unmatchedGeoFit
}
