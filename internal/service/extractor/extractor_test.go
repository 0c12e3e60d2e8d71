package extractor

import (
	"testing"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor() *Extractor {
	return New(zap.NewNop())
}

func TestExtract_MinimalTravelPage(t *testing.T) {
	html := `<html><head><title>Wander</title></head><body><h1>Travel</h1></body></html>`

	signals := newTestExtractor().Extract(html, "https://wander.example")

	assert.Equal(t, []string{"travel"}, signals.Themes)
	assert.Equal(t, []string{"traveler"}, signals.Hints)
	assert.Equal(t, "Travel", signals.ContentType)
	assert.Empty(t, signals.RegionBias)
	assert.Equal(t, "Wander", signals.Title)
	assert.False(t, signals.FallbackUsed)
}

func TestExtract_EmptyMarkupFallsBackToDefaults(t *testing.T) {
	signals := newTestExtractor().Extract("", "")

	assert.Equal(t, domain.DefaultThemes, signals.Themes)
	assert.Equal(t, domain.DefaultHints, signals.Hints)
	assert.Equal(t, domain.GeneralContentType, signals.ContentType)
	assert.Equal(t, "en", signals.Language)
	assert.NotNil(t, signals.RegionBias)
	assert.NotNil(t, signals.SocialLinks)
	assert.Equal(t, "Untitled Website", signals.Title)
}

func TestExtract_ThemesCappedInTableOrder(t *testing.T) {
	html := `<html><head><title>x</title></head><body>
		<h2>productivity business design education technology health finance travel</h2>
	</body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, []string{"productivity", "business", "art", "education"}, signals.Themes)
}

func TestExtract_SocialLinksDeduped(t *testing.T) {
	html := `<html><body>
		<a href="https://instagram.com/wander">IG</a>
		<a href="/about">About</a>
		<div class="social"><a href="https://instagram.com/wander">IG again</a></div>
		<a href="https://x.com/wander">X</a>
	</body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, []domain.SocialLink{
		{Platform: "instagram", URL: "https://instagram.com/wander"},
		{Platform: "twitter", URL: "https://x.com/wander"},
	}, signals.SocialLinks)
}

func TestExtract_RegionsFromGeoMetaAndText(t *testing.T) {
	html := `<html><head><meta name="geo.country" content="JP"></head><body>living in japan</body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, []string{"jp", "asia"}, signals.RegionBias)
	assert.Equal(t, "jp", signals.Contact.Location)
}

func TestExtract_LanguageFromHTMLAttribute(t *testing.T) {
	html := `<html lang="fr-FR"><body>bonjour</body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, "fr", signals.Language)
}

func TestExtract_ImagesSkipDataURIsAndMissingAlt(t *testing.T) {
	html := `<html><body>
		<img src="data:image/png;base64,AAAA" alt="inline">
		<img src="/no-alt.jpg">
		<img src="/beach.jpg" alt="beach">
	</body></html>`

	signals := newTestExtractor().Extract(html, "")

	require.Len(t, signals.Images, 1)
	assert.Equal(t, domain.ImageInfo{Src: "/beach.jpg", Alt: "beach"}, signals.Images[0])
}

func TestExtract_ContactsAndBrands(t *testing.T) {
	html := `<html><body><p>Write to hello@creator.com for sponsorship. Shot on GoPro.</p></body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, []string{"hello@creator.com"}, signals.Contact.Emails)
	assert.Equal(t, []string{"brand-partnerships", "gopro"}, signals.BrandMentions)
	assert.Equal(t, []string{"partnerships-available"}, signals.Collaborations)
}

func TestExtract_DescriptionFallsBackToFirstParagraph(t *testing.T) {
	html := `<html><body><p>  Slow   travel notes  </p><p>second</p></body></html>`

	signals := newTestExtractor().Extract(html, "")

	assert.Equal(t, "Slow travel notes", signals.Description)
}

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		name   string
		themes []string
		hints  []string
		url    string
		want   string
	}{
		{name: "productivity theme wins", themes: []string{"photography", "productivity"}, want: "Productivity"},
		{name: "photographer hint beats food theme", themes: []string{"food"}, hints: []string{"photographer"}, want: "Photography"},
		{name: "food before travel", themes: []string{"food"}, hints: []string{"traveler"}, want: "Food & Cuisine"},
		{name: "entrepreneur hint", hints: []string{"entrepreneur"}, want: "Technology & Business"},
		{name: "vlogger hint", hints: []string{"vlogger"}, want: "Video Content"},
		{name: "productivity host override", themes: []string{"food"}, url: "https://aliabdaal.com/blog", want: "Productivity"},
		{name: "nothing matches", themes: []string{"gaming"}, hints: []string{"reviewer"}, want: "General Content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveContentType(tt.themes, tt.hints, tt.url))
		})
	}
}
