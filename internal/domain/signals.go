package domain

// SocialLink is a platform profile discovered on a creator's site.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type ImageInfo struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	Location string   `json:"location,omitempty"`
}

// SignalSet is everything the extractor derives from one page.
type SignalSet struct {
	URL            string       `json:"url"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Keywords       []string     `json:"keywords"`
	Themes         []string     `json:"themes"`
	Hints          []string     `json:"hints"`
	RegionBias     []string     `json:"regionBias"`
	ContentType    string       `json:"contentType"`
	SocialLinks    []SocialLink `json:"socialLinks"`
	Images         []ImageInfo  `json:"images"`
	Videos         []string     `json:"videoLinks"`
	Contact        ContactInfo  `json:"contactInfo"`
	BrandMentions  []string     `json:"brandMentions"`
	Collaborations []string     `json:"collaborations"`
	Language       string       `json:"language"`
	FallbackUsed   bool         `json:"fallbackUsed"`
	ScrapedAt      string       `json:"scrapedAt,omitempty"`
}

const GeneralContentType = "General Content"

var (
	DefaultThemes = []string{"general", "content"}
	DefaultHints  = []string{"content-creator"}
)

// ApplyDefaults fills empty themes, hints and content type with their generic values.
func (s *SignalSet) ApplyDefaults() {
	if len(s.Themes) == 0 {
		s.Themes = append([]string(nil), DefaultThemes...)
	}
	if len(s.Hints) == 0 {
		s.Hints = append([]string(nil), DefaultHints...)
	}
	if s.ContentType == "" {
		s.ContentType = GeneralContentType
	}
	if s.RegionBias == nil {
		s.RegionBias = []string{}
	}
	if s.SocialLinks == nil {
		s.SocialLinks = []SocialLink{}
	}
	if s.Keywords == nil {
		s.Keywords = []string{}
	}
	if s.Images == nil {
		s.Images = []ImageInfo{}
	}
	if s.Videos == nil {
		s.Videos = []string{}
	}
	if s.BrandMentions == nil {
		s.BrandMentions = []string{}
	}
	if s.Collaborations == nil {
		s.Collaborations = []string{}
	}
	if s.Contact.Emails == nil {
		s.Contact.Emails = []string{}
	}
	if s.Contact.Phones == nil {
		s.Contact.Phones = []string{}
	}
	if s.Language == "" {
		s.Language = "en"
	}
}
