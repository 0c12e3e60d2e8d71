package scoring

import (
	"fmt"
	"math"

	"github.com/kapu/tastejourney-go/internal/domain"
)

// Weights of the five sub-scores in the composite. They must sum to 1.
var Weights = struct {
	QlooAffinity   float64
	CreatorDensity float64
	BrandFit       float64
	BudgetFit      float64
	GeoFit         float64
}{
	QlooAffinity:   0.45,
	CreatorDensity: 0.25,
	BrandFit:       0.15,
	BudgetFit:      0.10,
	GeoFit:         0.05,
}

const weightTolerance = 1e-9

func init() {
	if err := checkWeights(); err != nil {
		panic(err)
	}
}

func weightSum() float64 {
	return Weights.QlooAffinity + Weights.CreatorDensity + Weights.BrandFit + Weights.BudgetFit + Weights.GeoFit
}

func checkWeights() error {
	if sum := weightSum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("scoring weights sum to %.6f, want 1", sum)
	}
	return nil
}

// Composite is the weighted sum of sub-scores.
func Composite(s domain.SubScores) float64 {
	return Weights.QlooAffinity*s.QlooAffinity +
		Weights.CreatorDensity*s.CreatorDensity +
		Weights.BrandFit*s.BrandFit +
		Weights.BudgetFit*s.BudgetFit +
		Weights.GeoFit*s.GeoFit
}

// tagDimensions maps catalog tags onto taste dimensions. Unlisted tags contribute nothing.
var tagDimensions = map[string]domain.Dimension{
	"adventure":   domain.DimAdventure,
	"culture":     domain.DimCulture,
	"luxury":      domain.DimLuxury,
	"food":        domain.DimFood,
	"nature":      domain.DimNature,
	"urban":       domain.DimUrban,
	"beach":       domain.DimNature,
	"traditional": domain.DimCulture,
	"photography": domain.DimCulture,
	"wellness":    domain.DimNature,
}

var focusKeywords = map[string][]string{
	domain.FocusPhotography: {"fashion", "luxury", "equipment"},
	domain.FocusFood:        {"food", "culinary", "restaurants"},
	domain.FocusLifestyle:   {"fashion", "wellness", "luxury"},
	domain.FocusAdventure:   {"equipment", "outdoor", "sports"},
}

type budgetWindow struct {
	min, max float64
}

var budgetWindows = map[string]budgetWindow{
	domain.Budget500To1000:   {500, 1000},
	domain.Budget1000To2500:  {1000, 2500},
	domain.Budget2500To5000:  {2500, 5000},
	domain.Budget5000AndOver: {5000, 10000},
}

var defaultBudgetWindow = budgetWindow{0, 10000}

const (
	creatorCeiling  = 200.0
	underBudgetFit  = 0.8
	neutralGeoFit   = 0.5
	matchedGeoFit   = 1.0
	unmatchedGeoFit = 0.3
)
