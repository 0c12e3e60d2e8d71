package domain

import "encoding/json"

// ScoreBreakdown carries the five sub-scores and the total as 0..100 integers.
type ScoreBreakdown struct {
	QlooAffinity   int `json:"qlooAffinity"`
	CreatorDensity int `json:"creatorDensity"`
	BrandFit       int `json:"brandFit"`
	BudgetFit      int `json:"budgetMatch"`
	GeoFit         int `json:"geoFit"`
	Total          int `json:"total"`
}

type BudgetInfo struct {
	Range     string `json:"range"`
	Breakdown string `json:"breakdown"`
	Currency  string `json:"currency"`
}

// Enrichment holds opaque third-party payloads. A nil field means the source failed or is not configured.
type Enrichment struct {
	Maps           json.RawMessage `json:"maps"`
	YouTube        json.RawMessage `json:"youtube"`
	KnowledgeGraph json.RawMessage `json:"knowledgeGraph"`
	CostOfLiving   json.RawMessage `json:"costOfLiving"`
	Flights        json.RawMessage `json:"flights"`
	Hotels         json.RawMessage `json:"hotels"`
	Creators       json.RawMessage `json:"creators"`
}

// Recommendation is a ranked destination shaped for display.
type Recommendation struct {
	ID              int            `json:"id"`
	DestinationName string         `json:"destinationName"`
	Country         string         `json:"country"`
	Destination     string         `json:"destination"`
	Image           string         `json:"image"`
	MatchScore      int            `json:"matchScore"`
	ScoreBreakdown  ScoreBreakdown `json:"scoreBreakdown"`
	Budget          BudgetInfo     `json:"budget"`
	Highlights      []string       `json:"highlights"`
	BestMonths      []string       `json:"bestMonths"`
	Tags            []string       `json:"tags"`
	Collaborations  []Brand        `json:"collaborations"`
	Creators        int            `json:"creators"`
	TravelTime      string         `json:"travelTime"`
	VisaRequired    bool           `json:"visaRequired"`
	SafetyRating    float64        `json:"safetyRating"`
	Engagement      Engagement     `json:"engagement"`
	CityCode        string         `json:"-"`
	Region          string         `json:"-"`
	Enrichment      *Enrichment    `json:"enrichment"`
}

// RecommendationResult is the payload returned by a recommendation run.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalFound      int              `json:"totalFound"`
	TasteVector     TasteVector      `json:"tasteVector"`
	ProcessingTime  int64            `json:"processingTimeMs"`
}
