package domain

import "time"

// ReportRequest describes one e-mailed travel report.
type ReportRequest struct {
	Email           string           `json:"email" validate:"required,email,max=254"`
	UserName        string           `json:"userName"`
	Recommendations []Recommendation `json:"recommendations"`
	Preferences     *UserPreferences `json:"userProfile,omitempty"`
	Taste           *TasteProfile    `json:"tasteProfile,omitempty"`
	Website         *SignalSet       `json:"websiteData,omitempty"`
}

type ReportReceipt struct {
	ReportID  string    `json:"reportId"`
	MessageID string    `json:"messageId"`
	Provider  string    `json:"provider"`
	SentAt    time.Time `json:"sentAt"`
}

// Bookmark is a saved destination, keyed by its display name.
type Bookmark struct {
	Destination string    `json:"destination" validate:"required,max=200"`
	CreatedAt   time.Time `json:"createdAt"`
}
