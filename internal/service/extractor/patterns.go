package extractor

import "regexp"

type labeledPattern struct {
	label   string
	pattern *regexp.Regexp
}

func p(label, expr string) labeledPattern {
	return labeledPattern{label: label, pattern: regexp.MustCompile(`(?i)` + expr)}
}

// Order matters: themes are capped after dedupe, so earlier labels win.
var themePatterns = []labeledPattern{
	p("productivity", `productiv|efficient|workflow|time management|focus|organize|planning|gtd|getting things done|optimize|habit|routine|system`),
	p("business", `business|entrepreneur|startup|company|corporate|marketing|sales|revenue|profit|strategy|management|leadership|invest`),
	p("art", `\bart\b|design|creative|illustration|drawing|painting|visual|aesthetic|artistic|gallery|portfolio|creative work`),
	p("education", `educat|learn|teach|course|tutorial|study|academic|university|school|knowledge|skill|training|development`),
	p("technology", `tech|software|programming|coding|digital|innovation|ai|artificial intelligence|machine learning|development|app|web`),
	p("health", `health|medical|wellness|fitness|nutrition|diet|exercise|mental health|therapy|wellbeing|mindfulness`),
	p("finance", `financ|money|invest|trading|crypto|stock|saving|budget|wealth|economic|banking|fintech`),
	p("travel", `travel|journey|destination|trip|vacation|explore|adventure|wanderlust|backpack|nomad|culture|country`),
	p("lifestyle", `lifestyle|life|personal|daily|routine|balance|happiness|mindset|self improvement|motivation|inspiration`),
	p("photography", `photo|camera|picture|image|visual|shoot|portrait|landscape|photography|instagram|content creation`),
	p("food", `food|cooking|recipe|cuisine|restaurant|chef|culinary|nutrition|eat|meal|kitchen`),
	p("fashion", `fashion|style|clothing|outfit|trend|design|brand|wear|model|beauty|aesthetic`),
	p("fitness", `fitness|workout|gym|exercise|training|muscle|strength|cardio|yoga|sports|athletic`),
	p("music", `music|song|artist|album|sound|audio|musician|instrument|band|concert|performance`),
	p("gaming", `gaming|game|video game|esports|streaming|twitch|youtube|content|player|tournament`),
	p("writing", `writing|author|book|blog|content|story|journalism|publication|writer|article|copywriting`),
	p("science", `science|research|study|experiment|discovery|innovation|analysis|data|scientific|academic`),
	p("real-estate", `real estate|property|housing|investment|mortgage|rent|buying|selling|market`),
	p("parenting", `parent|family|child|kid|baby|motherhood|fatherhood|family life|raising`),
	p("relationships", `relationship|dating|marriage|love|family|friendship|social|communication|connection`),
	p("spirituality", `spiritual|meditation|mindfulness|philosophy|religion|consciousness|self awareness|inner peace`),
	p("entertainment", `entertainment|movie|film|tv|show|comedy|drama|celebrity|media|culture`),
	p("politics", `politics|government|policy|election|democracy|society|social issues|activism|reform`),
	p("environment", `environment|climate|sustainability|green|eco|nature|conservation|renewable|planet`),
	p("sports", `sport|football|basketball|soccer|tennis|golf|baseball|athletic|competition|team|league`),
}

var hintPatterns = []labeledPattern{
	p("photographer", `photograph(er|y)|photo|camera|lens|shoot|portrait|landscape`),
	p("content-creator", `content\s*(creator|creation)|social\s*media|youtube|instagram`),
	p("blogger", `blog(ger)?|writing|article|post`),
	p("influencer", `influencer|sponsor|partnership|collab`),
	p("traveler", `travel(er)?|journey|adventure|explore|wander`),
	p("foodie", `food(ie)?|recipe|cooking|chef|restaurant|cuisine`),
	p("vlogger", `vlog|video|youtube|channel`),
	p("artist", `art(ist)?|creative|design|paint|draw`),
	p("musician", `music|song|band|album|perform`),
	p("fitness", `fitness|workout|gym|health|exercise`),
	p("lifestyle", `lifestyle|wellness|mindful|self-care`),
	p("entrepreneur", `business|startup|entrepreneur|founder`),
	p("educator", `teach(er)?|education|tutor|course|learn`),
	p("reviewer", `review|rating|recommend|test`),
}

var regionPatterns = []labeledPattern{
	p("north-america", `north america|usa|united states|canada|mexico`),
	p("europe", `europe|france|italy|spain|germany|uk|britain|england`),
	p("asia", `asia|japan|china|thailand|vietnam|singapore|korea`),
	p("southeast-asia", `southeast asia|thailand|vietnam|cambodia|laos|myanmar`),
	p("south-america", `south america|brazil|argentina|chile|peru|colombia`),
	p("oceania", `australia|new zealand|fiji|tahiti`),
	p("africa", `africa|morocco|egypt|south africa|kenya|tanzania`),
	p("middle-east", `middle east|dubai|israel|turkey|jordan`),
	p("caribbean", `caribbean|bahamas|jamaica|barbados|cuba`),
	p("scandinavia", `scandinavia|norway|sweden|denmark|finland`),
	p("mediterranean", `mediterranean|greece|cyprus|malta`),
	p("eastern-europe", `eastern europe|poland|czech|hungary|croatia`),
}

var socialPatterns = []labeledPattern{
	p("instagram", `instagram\.com`),
	p("twitter", `(twitter\.com|x\.com)`),
	p("youtube", `youtube\.com`),
	p("facebook", `facebook\.com`),
	p("tiktok", `tiktok\.com`),
	p("linkedin", `linkedin\.com`),
	p("pinterest", `pinterest\.com`),
	p("snapchat", `snapchat\.com`),
	p("discord", `discord\.(gg|com)`),
	p("twitch", `twitch\.tv`),
	p("reddit", `reddit\.com`),
	p("medium", `medium\.com`),
	p("behance", `behance\.net`),
	p("dribbble", `dribbble\.com`),
	p("spotify", `spotify\.com`),
}

var partnershipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sponsor(ed|ship)`),
	regexp.MustCompile(`(?i)partner(ship)?`),
	regexp.MustCompile(`(?i)collaborat(e|ion)`),
	regexp.MustCompile(`(?i)brand ambassador`),
	regexp.MustCompile(`(?i)affiliate`),
	regexp.MustCompile(`(?i)campaign`),
	regexp.MustCompile(`(?i)featured`),
}

var knownBrands = []string{
	"airbnb", "booking", "expedia", "tripadvisor", "gopro", "canon", "nikon",
	"nike", "adidas", "lululemon", "patagonia", "north face",
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`[\+]?[1-9]?[\s\-\(\)]?[0-9]{3}[\s\-\(\)]?[0-9]{3}[\s\-\(\)]?[0-9]{4}`)
)

// Stop-word probes for language detection, tried in order.
var languageProbes = []struct {
	lang    string
	pattern *regexp.Regexp
}{
	{"en", regexp.MustCompile(`\b(the|and|or|but|in|on|at|to|for|of|with|by)\b`)},
	{"fr", regexp.MustCompile(`\b(et|le|la|les|un|une|des|du|de|dans|sur|avec)\b`)},
	{"de", regexp.MustCompile(`\b(der|die|das|und|oder|aber|in|auf|an|zu|für|von|mit)\b`)},
	{"es", regexp.MustCompile(`\b(el|la|los|las|un|una|y|o|pero|en|sobre|con|por|para)\b`)},
}

// contentTypeRule resolves to label when any listed theme or hint is present.
type contentTypeRule struct {
	label  string
	themes []string
	hints  []string
}

var contentTypeRules = []contentTypeRule{
	{label: "Productivity", themes: []string{"productivity"}},
	{label: "Photography", themes: []string{"photography"}, hints: []string{"photographer"}},
	{label: "Food & Cuisine", themes: []string{"food"}, hints: []string{"foodie"}},
	{label: "Travel", themes: []string{"travel"}, hints: []string{"traveler"}},
	{label: "Lifestyle", themes: []string{"lifestyle"}, hints: []string{"lifestyle"}},
	{label: "Fitness & Wellness", themes: []string{"fitness"}, hints: []string{"fitness"}},
	{label: "Fashion", themes: []string{"fashion"}, hints: []string{"fashion"}},
	{label: "Business", themes: []string{"business"}, hints: []string{"business"}},
	{label: "Education", themes: []string{"education"}, hints: []string{"educator"}},
	{label: "Technology & Business", themes: []string{"technology"}, hints: []string{"entrepreneur"}},
	{label: "Art & Design", themes: []string{"art"}, hints: []string{"artist"}},
	{label: "Music", themes: []string{"music"}, hints: []string{"musician"}},
	{label: "Video Content", themes: []string{"video"}, hints: []string{"vlogger"}},
}

// Pages on these hosts are productivity creators regardless of extracted signals.
var productivityHosts = []string{"aliabdaal.com"}

const (
	socialContainerSelector = `.social, .social-media, .social-links, .social-icons, [class*="instagram"], [class*="twitter"], [class*="youtube"], [class*="facebook"], [class*="tiktok"], [class*="linkedin"]`
	themedClassSelector     = `[class*="travel"], [class*="photo"], [class*="food"], [class*="lifestyle"]`
	bioSelector             = `section, .bio, .about, #about, .profile, .intro`
	locationSelector        = `.contact, .about, .location, .address`
	videoSelector           = `iframe[src*="youtube.com"], iframe[src*="youtu.be"], iframe[src*="vimeo.com"], iframe[src*="tiktok.com"], video[src], source[src]`
)
