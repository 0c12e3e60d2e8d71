package domain

// Budget window labels accepted in UserPreferences.Budget.
const (
	Budget500To1000   = "500-1000"
	Budget1000To2500  = "1000-2500"
	Budget2500To5000  = "2500-5000"
	Budget5000AndOver = "5000+"
)

// Content focus labels with brand keyword tables.
const (
	FocusPhotography = "photography"
	FocusFood        = "food"
	FocusLifestyle   = "lifestyle"
	FocusAdventure   = "adventure"
)

// UserPreferences are the answers a creator gives before scoring.
type UserPreferences struct {
	Budget          string `json:"budget"`
	ContentFocus    string `json:"contentFocus"`
	Duration        string `json:"duration,omitempty"`
	Style           string `json:"style,omitempty"`
	ClimatePref     string `json:"climate,omitempty"`
	TravelCompanion string `json:"travelCompanion,omitempty"`
}
