package taste

import "github.com/kapu/tastejourney-go/internal/domain"

type delta struct {
	dim    domain.Dimension
	amount float64
}

const (
	baseWeight      = 0.3
	baseBudget      = 0.5
	decrementFloor  = 0.1
	affinityCutoff  = 0.6
	traitCutoff     = 0.7
	comboCutoff     = 0.5
	maxAffinities   = 6
	maxTraits       = 5
	maxIdeas        = 8
	baseConfidence  = 0.5
	maxConfidence   = 0.95
	themeConfidence = 0.1
	hintConfidence  = 0.05
)

// themeDeltas is keyed by lowercased theme label.
var themeDeltas = func() map[string][]delta {
	groups := []struct {
		themes []string
		deltas []delta
	}{
		{[]string{"adventure", "hiking", "outdoor"}, []delta{{domain.DimAdventure, 0.2}, {domain.DimNature, 0.15}}},
		{[]string{"culture", "art", "history", "traditional"}, []delta{{domain.DimCulture, 0.25}}},
		{[]string{"luxury", "premium", "high-end"}, []delta{{domain.DimLuxury, 0.3}, {domain.DimBudget, -0.2}}},
		{[]string{"food", "culinary", "restaurant", "cooking"}, []delta{{domain.DimFood, 0.25}}},
		{[]string{"nature", "wildlife", "landscape", "beach"}, []delta{{domain.DimNature, 0.2}}},
		{[]string{"urban", "city", "metropolitan"}, []delta{{domain.DimUrban, 0.2}}},
		{[]string{"budget", "backpack", "cheap"}, []delta{{domain.DimBudget, 0.3}, {domain.DimLuxury, -0.2}}},
	}
	table := make(map[string][]delta)
	for _, g := range groups {
		for _, theme := range g.themes {
			table[theme] = g.deltas
		}
	}
	return table
}()

// overrideIdentities mark one recognised creator whose bundle replaces the content-type table.
var overrideIdentities = []string{"ali abdaal", "ali-abdaal", "aliabdal.com"}

var productivityBundle = []delta{
	{domain.DimCulture, 0.18},
	{domain.DimUrban, 0.18},
	{domain.DimLuxury, 0.12},
	{domain.DimBudget, 0.07},
}

// contentTypeDeltas is keyed by lowercased content type. Labels without an entry get no bonus.
var contentTypeDeltas = map[string][]delta{
	"photography":        {{domain.DimCulture, 0.1}, {domain.DimNature, 0.1}},
	"food & culinary":    {{domain.DimFood, 0.2}, {domain.DimCulture, 0.1}},
	"luxury lifestyle":   {{domain.DimLuxury, 0.2}, {domain.DimUrban, 0.1}},
	"travel & adventure": {{domain.DimAdventure, 0.2}, {domain.DimNature, 0.1}},
	"productivity":       productivityBundle,
	"educational":        productivityBundle,
	"lifestyle":          productivityBundle,
}

type labelRule struct {
	dim    domain.Dimension
	labels []string
}

var affinityRules = []labelRule{
	{domain.DimAdventure, []string{"Adventure Sports", "Outdoor Activities"}},
	{domain.DimCulture, []string{"Museums", "Historical Sites", "Local Traditions"}},
	{domain.DimLuxury, []string{"Fine Dining", "Luxury Hotels", "Premium Experiences"}},
	{domain.DimFood, []string{"Street Food", "Cooking Classes", "Food Markets"}},
	{domain.DimNature, []string{"National Parks", "Wildlife", "Scenic Landscapes"}},
	{domain.DimUrban, []string{"City Life", "Architecture", "Nightlife"}},
	{domain.DimBudget, []string{"Budget Travel", "Hostels", "Local Transportation"}},
}

var traitRules = []labelRule{
	{domain.DimAdventure, []string{"Thrill Seeker"}},
	{domain.DimCulture, []string{"Culture Enthusiast"}},
	{domain.DimLuxury, []string{"Luxury Lover"}},
	{domain.DimFood, []string{"Foodie"}},
	{domain.DimNature, []string{"Nature Lover"}},
	{domain.DimUrban, []string{"City Explorer"}},
	{domain.DimBudget, []string{"Budget Conscious"}},
}

var comboTraits = []struct {
	a, b  domain.Dimension
	label string
}{
	{domain.DimAdventure, domain.DimNature, "Outdoor Adventurer"},
	{domain.DimCulture, domain.DimFood, "Cultural Foodie"},
	{domain.DimLuxury, domain.DimUrban, "Urban Sophisticate"},
}

var ideaRules = []labelRule{
	{domain.DimAdventure, []string{"Costa Rica", "New Zealand", "Nepal", "Patagonia"}},
	{domain.DimCulture, []string{"Kyoto", "Rome", "Istanbul", "Marrakech", "Cusco"}},
	{domain.DimLuxury, []string{"Maldives", "Dubai", "Monaco", "Santorini", "Aspen"}},
	{domain.DimFood, []string{"Tokyo", "Paris", "Bangkok", "Lima", "Mumbai"}},
	{domain.DimNature, []string{"Iceland", "Norwegian Fjords", "Amazon Rainforest", "Yellowstone", "Banff"}},
	{domain.DimUrban, []string{"New York", "London", "Singapore", "Barcelona", "Berlin"}},
	{domain.DimBudget, []string{"Vietnam", "Portugal", "Czech Republic", "Guatemala", "India"}},
}

var themeIdeas = map[string][]string{
	"photography":  {"Morocco", "India", "Myanmar", "Ethiopia"},
	"visual":       {"Morocco", "India", "Myanmar", "Ethiopia"},
	"wellness":     {"Bali", "Rishikesh", "Tulum", "Costa Rica"},
	"health":       {"Bali", "Rishikesh", "Tulum", "Costa Rica"},
	"business":     {"Singapore", "Switzerland", "Japan", "Germany"},
	"professional": {"Singapore", "Switzerland", "Japan", "Germany"},
}

var specificHints = []string{"photographer", "food-blogger", "travel-blogger"}
