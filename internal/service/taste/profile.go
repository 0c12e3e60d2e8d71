package taste

import (
	"math"
	"strconv"
	"time"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/util"
	"go.uber.org/zap"
)

// Profiler builds taste profiles and logs the derived vector.
type Profiler struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewProfiler(logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{logger: logger, now: time.Now}
}

// Profile builds the vector and everything the UI shows alongside it.
func (p *Profiler) Profile(themes, hints []string, contentType string) domain.TasteProfile {
	started := p.now()
	vec := Build(themes, hints, contentType)
	confidence := Confidence(themes, hints)

	profile := domain.TasteProfile{
		TasteVector:          vec,
		CulturalAffinities:   CulturalAffinities(vec),
		PersonalityTraits:    PersonalityTraits(vec),
		SmartRecommendations: SmartRecommendations(vec, themes),
		Confidence:           confidence,
		ConfidenceLevel:      ConfidenceLevel(confidence),
		ProcessingTimeMs:     p.now().Sub(started).Milliseconds(),
	}

	p.logger.Info("Taste profile built",
		zap.Strings("themes", themes),
		zap.String("content_type", contentType),
		zap.String("vector", describe(vec)),
		zap.Float64("confidence", confidence),
	)
	return profile
}

func CulturalAffinities(vec domain.TasteVector) []string {
	affinities := make([]string, 0, maxAffinities)
	for _, rule := range affinityRules {
		if vec.Get(rule.dim) > affinityCutoff {
			affinities = append(affinities, rule.labels...)
		}
	}
	if len(affinities) > maxAffinities {
		affinities = affinities[:maxAffinities]
	}
	return affinities
}

func PersonalityTraits(vec domain.TasteVector) []string {
	traits := make([]string, 0, maxTraits)
	for _, rule := range traitRules {
		if vec.Get(rule.dim) > traitCutoff {
			traits = append(traits, rule.labels...)
		}
	}
	for _, combo := range comboTraits {
		if vec.Get(combo.a) > comboCutoff && vec.Get(combo.b) > comboCutoff {
			traits = append(traits, combo.label)
		}
	}
	if len(traits) > maxTraits {
		traits = traits[:maxTraits]
	}
	return traits
}

// SmartRecommendations lists destination ideas beyond the scored catalog.
func SmartRecommendations(vec domain.TasteVector, themes []string) []string {
	ideas := make([]string, 0, maxIdeas)
	for _, rule := range ideaRules {
		if vec.Get(rule.dim) > affinityCutoff {
			ideas = append(ideas, rule.labels...)
		}
	}
	for _, theme := range themes {
		ideas = append(ideas, themeIdeas[util.Normalize(theme)]...)
	}
	ideas = util.Dedupe(ideas)
	if len(ideas) > maxIdeas {
		ideas = ideas[:maxIdeas]
	}
	return ideas
}

// Confidence grows with the number of signals and is capped at maxConfidence.
func Confidence(themes, hints []string) float64 {
	confidence := baseConfidence
	confidence += math.Min(float64(len(themes))*themeConfidence, 0.3)
	confidence += math.Min(float64(len(hints))*hintConfidence, 0.2)
	for _, h := range hints {
		if util.Contains(specificHints, h) {
			confidence += 0.1
			break
		}
	}
	return math.Min(confidence, maxConfidence)
}

func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "High"
	case confidence > 0.6:
		return "Medium"
	default:
		return "Low"
	}
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
