package domain

type Brand struct {
	Name           string `json:"name"`
	Category       string `json:"type"`
	CommissionRate string `json:"commission"`
	ContactEmail   string `json:"contactEmail"`
}

type Engagement struct {
	AvgLikes    int    `json:"avgLikes"`
	AvgComments int    `json:"avgComments"`
	Potential   string `json:"potential"`
	Reason      string `json:"reason"`
}

// Destination is one entry of the static catalog.
type Destination struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Country        string     `json:"country"`
	Region         string     `json:"region"`
	CityCode       string     `json:"cityCode"`
	Tags           []string   `json:"tags"`
	AvgCost        int        `json:"avgCost"`
	ActiveCreators int        `json:"activeCreators"`
	Brands         []Brand    `json:"brands"`
	Image          string     `json:"image"`
	Highlights     []string   `json:"highlights"`
	BestMonths     []string   `json:"bestMonths"`
	VisaRequired   bool       `json:"visaRequired"`
	SafetyRating   float64    `json:"safetyRating"`
	TravelTime     string     `json:"travelTime"`
	Engagement     Engagement `json:"engagement"`
}

// Clone returns a deep copy so catalog entries never alias caller data.
func (d Destination) Clone() Destination {
	c := d
	c.Tags = append([]string(nil), d.Tags...)
	c.Brands = append([]Brand(nil), d.Brands...)
	c.Highlights = append([]string(nil), d.Highlights...)
	c.BestMonths = append([]string(nil), d.BestMonths...)
	return c
}

// DisplayName is "Name, Country".
func (d Destination) DisplayName() string {
	return d.Name + ", " + d.Country
}

type SubScores struct {
	QlooAffinity   float64 `json:"qlooAffinity"`
	CreatorDensity float64 `json:"creatorDensity"`
	BrandFit       float64 `json:"brandFit"`
	BudgetFit      float64 `json:"budgetFit"`
	GeoFit         float64 `json:"geoFit"`
}

type ScoredDestination struct {
	Destination Destination `json:"destination"`
	SubScores   SubScores   `json:"subScores"`
	TotalScore  float64     `json:"totalScore"`
}
