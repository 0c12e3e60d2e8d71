package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
	"go.uber.org/zap"
)

// Extractor turns raw page markup into a SignalSet. It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract never fails: unreadable or empty markup yields the default signal set.
func (e *Extractor) Extract(html, pageURL string) *domain.SignalSet {
	signals := &domain.SignalSet{URL: pageURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("HTML parse failed, using default signals",
			zap.String("url", pageURL),
			zap.Error(err))
		signals.ApplyDefaults()
		return signals
	}

	page := newPageText(doc)

	signals.Keywords = metaKeywords(doc)
	signals.Themes = extractThemes(doc, page, signals.Keywords)
	signals.Hints = extractHintsFromBio(doc, extractHints(page))
	signals.RegionBias = extractRegions(doc, page)
	signals.SocialLinks = extractSocialLinks(doc)
	signals.Images = extractImages(doc)
	signals.Videos = extractVideos(doc)
	signals.Contact = extractContacts(page)
	signals.BrandMentions = extractBrands(page)
	if util.Contains(signals.BrandMentions, "brand-partnerships") {
		signals.Collaborations = []string{"partnerships-available"}
	}
	signals.Language = detectLanguage(doc, page)
	signals.ContentType = ResolveContentType(signals.Themes, signals.Hints, pageURL)
	signals.Title = extractTitle(doc)
	signals.Description = extractDescription(doc)
	if len(signals.RegionBias) > 0 {
		signals.Contact.Location = signals.RegionBias[0]
	}

	signals.ApplyDefaults()

	e.logger.Debug("Signals extracted",
		zap.String("url", pageURL),
		zap.Strings("themes", signals.Themes),
		zap.Strings("hints", signals.Hints),
		zap.String("content_type", signals.ContentType),
		zap.Int("social_links", len(signals.SocialLinks)))

	return signals
}

// pageText caches the lowercased views of a document that several extractors scan.
type pageText struct {
	html string
	body string
	raw  string
}

func newPageText(doc *goquery.Document) pageText {
	raw, err := doc.Html()
	if err != nil {
		raw = ""
	}
	return pageText{
		html: strings.ToLower(raw),
		body: strings.ToLower(doc.Find("body").Text()),
		raw:  raw,
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	value, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(value)
}

func metaKeywords(doc *goquery.Document) []string {
	raw := metaContent(doc, `meta[name="keywords"]`)
	keywords := make([]string, 0)
	for _, k := range strings.Split(raw, ",") {
		if k = util.Normalize(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func selectionTexts(sel *goquery.Selection) []string {
	return sel.Map(func(_ int, s *goquery.Selection) string {
		return strings.ToLower(s.Text())
	})
}

func extractThemes(doc *goquery.Document, page pageText, keywords []string) []string {
	parts := make([]string, 0, 64)
	parts = append(parts, keywords...)
	parts = append(parts, selectionTexts(doc.Find("h1, h2, h3, h4"))...)
	parts = append(parts, selectionTexts(doc.Find("title"))...)
	parts = append(parts, selectionTexts(doc.Find("article, .content, .post, .blog"))...)
	parts = append(parts, selectionTexts(doc.Find("nav a, .menu a"))...)
	parts = append(parts, doc.Find(themedClassSelector).Map(func(_ int, s *goquery.Selection) string {
		class, _ := s.Attr("class")
		return strings.ToLower(class)
	})...)
	parts = append(parts, doc.Find("img[alt]").Map(func(_ int, s *goquery.Selection) string {
		alt, _ := s.Attr("alt")
		return strings.ToLower(alt)
	})...)
	corpus := strings.Join(parts, " ")

	headline := strings.ToLower(strings.Join([]string{
		doc.Find("title").Text(),
		metaContent(doc, `meta[name="description"]`),
		metaContent(doc, `meta[property="og:description"]`),
	}, " "))

	themes := make([]string, 0, constants.ScraperConfig.MaxThemes)
	for _, source := range []string{corpus, headline} {
		for _, tp := range themePatterns {
			if tp.pattern.MatchString(source) {
				themes = util.AppendUnique(themes, tp.label)
			}
		}
	}

	if len(themes) > constants.ScraperConfig.MaxThemes {
		themes = themes[:constants.ScraperConfig.MaxThemes]
	}
	return themes
}

func extractHints(page pageText) []string {
	hints := make([]string, 0)
	for _, hp := range hintPatterns {
		if hp.pattern.MatchString(page.html) || hp.pattern.MatchString(page.body) {
			hints = util.AppendUnique(hints, hp.label)
		}
	}
	return hints
}

// extractHintsFromBio adds hints found in about/bio blocks.
func extractHintsFromBio(doc *goquery.Document, hints []string) []string {
	bio := strings.ToLower(doc.Find(bioSelector).Text())
	if bio == "" {
		return hints
	}
	for _, hp := range hintPatterns {
		if hp.pattern.MatchString(bio) {
			hints = util.AppendUnique(hints, hp.label)
		}
	}
	return hints
}

func extractRegions(doc *goquery.Document, page pageText) []string {
	regions := make([]string, 0)
	for _, name := range []string{"geo.region", "geo.country", "geo.placename"} {
		if value := metaContent(doc, fmt.Sprintf(`meta[name=%q]`, name)); value != "" {
			regions = util.AppendUnique(regions, strings.ToLower(value))
		}
	}

	location := strings.ToLower(doc.Find(locationSelector).Text())
	for _, rp := range regionPatterns {
		if rp.pattern.MatchString(page.html) || rp.pattern.MatchString(page.body) || rp.pattern.MatchString(location) {
			regions = util.AppendUnique(regions, rp.label)
		}
	}
	return regions
}

func extractSocialLinks(doc *goquery.Document) []domain.SocialLink {
	anchors := doc.Find("a[href]").AddSelection(doc.Find(socialContainerSelector).Find("a[href]"))

	seen := make(map[string]struct{})
	links := make([]domain.SocialLink, 0)
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		for _, sp := range socialPatterns {
			if sp.pattern.MatchString(href) {
				seen[href] = struct{}{}
				links = append(links, domain.SocialLink{Platform: sp.label, URL: href})
				return
			}
		}
	})
	return links
}

func extractImages(doc *goquery.Document) []domain.ImageInfo {
	images := make([]domain.ImageInfo, 0, constants.ScraperConfig.MaxImages)
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		if src != "" && alt != "" && !strings.HasPrefix(src, "data:") {
			images = append(images, domain.ImageInfo{Src: src, Alt: alt})
		}
		return len(images) < constants.ScraperConfig.MaxImages
	})
	return images
}

func extractVideos(doc *goquery.Document) []string {
	videos := make([]string, 0)
	doc.Find(videoSelector).Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			videos = util.AppendUnique(videos, src)
		}
	})
	return videos
}

func extractContacts(page pageText) domain.ContactInfo {
	contact := domain.ContactInfo{
		Emails: util.Dedupe(emailPattern.FindAllString(page.raw, -1)),
		Phones: util.Dedupe(phonePattern.FindAllString(page.raw, constants.ScraperConfig.MaxPhones)),
	}
	return contact
}

func extractBrands(page pageText) []string {
	brands := make([]string, 0)
	for _, pattern := range partnershipPatterns {
		if pattern.MatchString(page.body) {
			brands = util.AppendUnique(brands, "brand-partnerships")
			break
		}
	}
	for _, brand := range knownBrands {
		if strings.Contains(page.body, brand) {
			brands = util.AppendUnique(brands, brand)
		}
	}
	return brands
}

func detectLanguage(doc *goquery.Document, page pageText) string {
	if lang, ok := doc.Find("html").Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		return primarySubtag(lang)
	}
	if lang := metaContent(doc, `meta[http-equiv="content-language"]`); lang != "" {
		return primarySubtag(lang)
	}
	for _, probe := range languageProbes {
		if probe.pattern.MatchString(page.body) {
			return probe.lang
		}
	}
	return "en"
}

func primarySubtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if title := metaContent(doc, `meta[property="og:title"]`); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return "Untitled Website"
}

func extractDescription(doc *goquery.Document) string {
	if desc := metaContent(doc, `meta[name="description"]`); desc != "" {
		return desc
	}
	if desc := metaContent(doc, `meta[property="og:description"]`); desc != "" {
		return desc
	}
	for _, selector := range []string{".description, .intro, .about", "p"} {
		text := util.CollapseSpace(doc.Find(selector).First().Text())
		if text != "" {
			return util.TruncateRunes(text, 160)
		}
	}
	return ""
}

// ResolveContentType picks exactly one label using a fixed priority list.
func ResolveContentType(themes, hints []string, pageURL string) string {
	if isProductivityHost(pageURL) {
		return "Productivity"
	}
	for _, rule := range contentTypeRules {
		for _, t := range rule.themes {
			if util.Contains(themes, t) {
				return rule.label
			}
		}
		for _, h := range rule.hints {
			if util.Contains(hints, h) {
				return rule.label
			}
		}
	}
	return domain.GeneralContentType
}

func isProductivityHost(pageURL string) bool {
	if pageURL == "" {
		return false
	}
	candidate := strings.ToLower(pageURL)
	if parsed, err := url.Parse(pageURL); err == nil && parsed.Host != "" {
		candidate = strings.ToLower(parsed.Host + parsed.Path)
	}
	for _, host := range productivityHosts {
		if strings.Contains(candidate, host) {
			return true
		}
	}
	return false
}
