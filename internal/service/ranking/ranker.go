// Package ranking orders scored destinations and shapes the top entries for display.
package ranking

import (
	"fmt"
	"sort"

	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
)

const budgetBreakdown = "7 days including flights, accommodation & activities"

// Rank sorts by total score descending and keeps the first k. Ties keep catalog order.
// The input slice is not modified.
func Rank(scored []domain.ScoredDestination, k int) []domain.ScoredDestination {
	ranked := make([]domain.ScoredDestination, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Present converts a scored destination into the display record. Enrichment is left nil.
func Present(sd domain.ScoredDestination) domain.Recommendation {
	d := sd.Destination.Clone()
	total := util.Percent(sd.TotalScore)

	return domain.Recommendation{
		ID:              d.ID,
		DestinationName: d.Name,
		Country:         d.Country,
		Destination:     d.DisplayName(),
		Image:           d.Image,
		MatchScore:      total,
		ScoreBreakdown: domain.ScoreBreakdown{
			QlooAffinity:   util.Percent(sd.SubScores.QlooAffinity),
			CreatorDensity: util.Percent(sd.SubScores.CreatorDensity),
			BrandFit:       util.Percent(sd.SubScores.BrandFit),
			BudgetFit:      util.Percent(sd.SubScores.BudgetFit),
			GeoFit:         util.Percent(sd.SubScores.GeoFit),
			Total:          total,
		},
		Budget:         BudgetFor(d.AvgCost),
		Highlights:     d.Highlights,
		BestMonths:     d.BestMonths,
		Tags:           d.Tags,
		Collaborations: d.Brands,
		Creators:       d.ActiveCreators,
		TravelTime:     d.TravelTime,
		VisaRequired:   d.VisaRequired,
		SafetyRating:   d.SafetyRating,
		Engagement:     d.Engagement,
		CityCode:       d.CityCode,
		Region:         d.Region,
	}
}

func BudgetFor(avgCost int) domain.BudgetInfo {
	spread := constants.RecommendConfig.BudgetSpread
	return domain.BudgetInfo{
		Range:     fmt.Sprintf("$%d - $%d", avgCost-spread, avgCost+spread),
		Breakdown: budgetBreakdown,
		Currency:  constants.RecommendConfig.Currency,
	}
}

// Top ranks and presents in one step.
func Top(scored []domain.ScoredDestination, k int) []domain.Recommendation {
	ranked := Rank(scored, k)
	out := make([]domain.Recommendation, 0, len(ranked))
	for _, sd := range ranked {
		out = append(out, Present(sd))
	}
	return out
}
