package ranking

import (
	"testing"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id int, total float64) domain.ScoredDestination {
	return domain.ScoredDestination{
		Destination: domain.Destination{ID: id, Name: "D", Country: "C"},
		TotalScore:  total,
	}
}

func ids(list []domain.ScoredDestination) []int {
	out := make([]int, 0, len(list))
	for _, sd := range list {
		out = append(out, sd.Destination.ID)
	}
	return out
}

func TestRank_SortsDescendingAndTruncates(t *testing.T) {
	in := []domain.ScoredDestination{
		scored(1, 0.4), scored(2, 0.9), scored(3, 0.1), scored(4, 0.7), scored(5, 0.5),
	}

	got := Rank(in, 3)

	assert.Equal(t, []int{2, 4, 5}, ids(got))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(in), "input must not be reordered")
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	in := []domain.ScoredDestination{
		scored(1, 0.5), scored(2, 0.8), scored(3, 0.5), scored(4, 0.8), scored(5, 0.5),
	}

	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(Rank(in, 10)))
}

func TestRank_EdgeSizes(t *testing.T) {
	assert.Empty(t, Rank(nil, 3))
	assert.Empty(t, Rank([]domain.ScoredDestination{scored(1, 1)}, 0))
	assert.Len(t, Rank([]domain.ScoredDestination{scored(1, 1), scored(2, 0)}, 3), 2)
}

func TestPresent(t *testing.T) {
	sd := domain.ScoredDestination{
		Destination: domain.Destination{
			ID:             1,
			Name:           "Bali",
			Country:        "Indonesia",
			Region:         "southeast-asia",
			CityCode:       "DPS",
			Tags:           []string{"adventure", "food"},
			AvgCost:        1500,
			ActiveCreators: 142,
			Highlights:     []string{"h1"},
			BestMonths:     []string{"April-May"},
			Brands:         []domain.Brand{{Name: "B", Category: "Equipment"}},
		},
		SubScores: domain.SubScores{
			QlooAffinity:   0.24,
			CreatorDensity: 0.71,
			BrandFit:       1.0 / 3,
			BudgetFit:      1,
			GeoFit:         0.5,
		},
		TotalScore: 0.4605,
	}

	rec := Present(sd)

	assert.Equal(t, "Bali, Indonesia", rec.Destination)
	assert.Equal(t, "Bali", rec.DestinationName)
	assert.Equal(t, 46, rec.MatchScore)
	assert.Equal(t, domain.ScoreBreakdown{
		QlooAffinity:   24,
		CreatorDensity: 71,
		BrandFit:       33,
		BudgetFit:      100,
		GeoFit:         50,
		Total:          46,
	}, rec.ScoreBreakdown)
	assert.Equal(t, domain.BudgetInfo{
		Range:     "$1200 - $1800",
		Breakdown: "7 days including flights, accommodation & activities",
		Currency:  "USD",
	}, rec.Budget)
	assert.Equal(t, []string{"April-May"}, rec.BestMonths)
	assert.Equal(t, []string{"adventure", "food"}, rec.Tags)
	assert.Equal(t, 142, rec.Creators)
	assert.Equal(t, "DPS", rec.CityCode)
	assert.Nil(t, rec.Enrichment)

	rec.Tags[0] = "changed"
	assert.Equal(t, "adventure", sd.Destination.Tags[0])
}

func TestTop_PercentagesInRange(t *testing.T) {
	catalog, err := domain.LoadCatalog()
	require.NoError(t, err)

	var in []domain.ScoredDestination
	for i, d := range catalog.All() {
		in = append(in, domain.ScoredDestination{
			Destination: d,
			SubScores:   domain.SubScores{QlooAffinity: 1, CreatorDensity: 0, BrandFit: 0.5, BudgetFit: 0.8, GeoFit: 0.3},
			TotalScore:  float64(i) / 10,
		})
	}

	recs := Top(in, 3)

	require.Len(t, recs, 3)
	assert.Equal(t, "Dubai", recs[0].DestinationName)
	for _, r := range recs {
		for _, v := range []int{r.MatchScore, r.ScoreBreakdown.QlooAffinity, r.ScoreBreakdown.CreatorDensity, r.ScoreBreakdown.BrandFit, r.ScoreBreakdown.BudgetFit, r.ScoreBreakdown.GeoFit} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}
