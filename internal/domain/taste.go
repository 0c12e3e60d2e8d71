package domain

// Dimension names one axis of a TasteVector.
type Dimension string

const (
	DimAdventure Dimension = "adventure"
	DimCulture   Dimension = "culture"
	DimLuxury    Dimension = "luxury"
	DimFood      Dimension = "food"
	DimNature    Dimension = "nature"
	DimUrban     Dimension = "urban"
	DimBudget    Dimension = "budget"
)

var AllDimensions = []Dimension{DimAdventure, DimCulture, DimLuxury, DimFood, DimNature, DimUrban, DimBudget}

// TasteVector holds seven preference weights, each in [0, 1].
type TasteVector struct {
	Adventure float64 `json:"adventure" validate:"gte=0,lte=1"`
	Culture   float64 `json:"culture" validate:"gte=0,lte=1"`
	Luxury    float64 `json:"luxury" validate:"gte=0,lte=1"`
	Food      float64 `json:"food" validate:"gte=0,lte=1"`
	Nature    float64 `json:"nature" validate:"gte=0,lte=1"`
	Urban     float64 `json:"urban" validate:"gte=0,lte=1"`
	Budget    float64 `json:"budget" validate:"gte=0,lte=1"`
}

func (v *TasteVector) ptr(d Dimension) *float64 {
	switch d {
	case DimAdventure:
		return &v.Adventure
	case DimCulture:
		return &v.Culture
	case DimLuxury:
		return &v.Luxury
	case DimFood:
		return &v.Food
	case DimNature:
		return &v.Nature
	case DimUrban:
		return &v.Urban
	case DimBudget:
		return &v.Budget
	}
	return nil
}

// Get returns the weight for d, or 0 for an unknown dimension.
func (v TasteVector) Get(d Dimension) float64 {
	if p := v.ptr(d); p != nil {
		return *p
	}
	return 0
}

// Set is a no-op for unknown dimensions.
func (v *TasteVector) Set(d Dimension, value float64) {
	if p := v.ptr(d); p != nil {
		*p = value
	}
}

// TasteProfile is the presentation-side view of a taste vector.
type TasteProfile struct {
	TasteVector          TasteVector `json:"tasteVector"`
	CulturalAffinities   []string    `json:"culturalAffinities"`
	PersonalityTraits    []string    `json:"personalityTraits"`
	SmartRecommendations []string    `json:"smartRecommendations"`
	Confidence           float64     `json:"confidence"`
	ConfidenceLevel      string      `json:"confidenceLevel"`
	ProcessingTimeMs     int64       `json:"processingTimeMs"`
}
