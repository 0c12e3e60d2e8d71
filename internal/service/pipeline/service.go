// Package pipeline runs markup -> signals -> taste vector -> scores -> ranked recommendations.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/metrics"
	"github.com/kapu/tastejourney-go/internal/service/cache"
	"github.com/kapu/tastejourney-go/internal/service/extractor"
	"github.com/kapu/tastejourney-go/internal/service/ranking"
	"github.com/kapu/tastejourney-go/internal/service/scoring"
	"github.com/kapu/tastejourney-go/internal/service/scraper"
	"github.com/kapu/tastejourney-go/internal/service/taste"
	"github.com/kapu/tastejourney-go/internal/util"
	"go.uber.org/zap"
)

type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type AnalysisCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Enricher interface {
	Enrich(ctx context.Context, recs []domain.Recommendation) []domain.Recommendation
}

type Options struct {
	Fetcher  PageFetcher
	Catalog  *domain.Catalog
	Cache    AnalysisCache
	Enricher Enricher
	CacheTTL time.Duration
	TopK     int
	Logger   *zap.Logger
}

type Service struct {
	fetcher   PageFetcher
	extractor *extractor.Extractor
	profiler  *taste.Profiler
	scorer    *scoring.Scorer
	enricher  Enricher
	cache     AnalysisCache
	cacheTTL  time.Duration
	topK      int
	logger    *zap.Logger
	now       func() time.Time
}

func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = constants.CacheTTL.WebsiteAnalysis
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = constants.RecommendConfig.TopK
	}

	return &Service{
		fetcher:   opts.Fetcher,
		extractor: extractor.New(logger),
		profiler:  taste.NewProfiler(logger),
		scorer:    scoring.NewScorer(opts.Catalog),
		enricher:  opts.Enricher,
		cache:     opts.Cache,
		cacheTTL:  ttl,
		topK:      topK,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze fetches and extracts a page. Fetch failures degrade to fallback signals,
// so only an invalid URL returns an error.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*domain.SignalSet, error) {
	target, err := scraper.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	key := cache.HashKey(constants.CacheKeys.WebsiteAnalysis, target)
	if s.cache != nil {
		var cached domain.SignalSet
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("Analysis cache read failed", zap.String("url", target), zap.Error(err))
		} else if found {
			s.logger.Debug("Analysis cache hit", zap.String("url", target))
			return &cached, nil
		}
	}

	html, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		s.logger.Warn("Website analysis failed, using fallback signals",
			zap.String("url", target),
			zap.Error(err))
		return s.fallback(target), nil
	}

	signals := s.extractor.Extract(html, target)
	signals.ScrapedAt = s.now().UTC().Format(time.RFC3339)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, signals, s.cacheTTL); err != nil {
			s.logger.Warn("Analysis cache write failed", zap.String("url", target), zap.Error(err))
		}
	}

	s.logger.Info("Website analyzed",
		zap.String("url", target),
		zap.Int("themes", len(signals.Themes)),
		zap.Int("hints", len(signals.Hints)),
		zap.Int("social_links", len(signals.SocialLinks)),
	)
	return signals, nil
}

// Fallback is the signal set used when a page could not be fetched.
func Fallback(target string, now time.Time) *domain.SignalSet {
	host := target
	if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	signals := &domain.SignalSet{
		URL:          target,
		Title:        fmt.Sprintf(constants.ScraperConfig.FallbackTitleFmt, host),
		Description:  "Website content analysis",
		FallbackUsed: true,
		ScrapedAt:    now.UTC().Format(time.RFC3339),
	}
	signals.ApplyDefaults()
	return signals
}

func (s *Service) fallback(target string) *domain.SignalSet {
	return Fallback(target, s.now())
}

// Profile derives the taste profile for already-extracted signals. Empty signals use the defaults.
func (s *Service) Profile(themes, hints []string, contentType string) domain.TasteProfile {
	signals := domain.SignalSet{Themes: themes, Hints: hints, ContentType: contentType}
	signals.ApplyDefaults()
	return s.profiler.Profile(signals.Themes, signals.Hints, signals.ContentType)
}

// RecommendInput carries everything a recommendation run needs. A nil TasteVector is built from Website.
type RecommendInput struct {
	Website     *domain.SignalSet
	Preferences domain.UserPreferences
	TasteVector *domain.TasteVector
	SkipEnrich  bool
}

func (s *Service) Recommend(ctx context.Context, in RecommendInput) *domain.RecommendationResult {
	started := s.now()

	signals := domain.SignalSet{}
	if in.Website != nil {
		signals = *in.Website
	}
	signals.ApplyDefaults()

	var vec domain.TasteVector
	if in.TasteVector != nil {
		vec = clampVector(*in.TasteVector)
	} else {
		vec = taste.Build(signals.Themes, signals.Hints, signals.ContentType)
	}

	scored := s.scorer.Score(vec, in.Preferences, signals.RegionBias)
	recs := ranking.Top(scored, s.topK)

	if s.enricher != nil && !in.SkipEnrich {
		recs = s.enricher.Enrich(ctx, recs)
	}

	metrics.RecommendationsServed.Inc()
	s.logger.Info("Recommendations generated",
		zap.Int("scored", len(scored)),
		zap.Int("returned", len(recs)),
		zap.String("budget", in.Preferences.Budget),
		zap.String("content_focus", in.Preferences.ContentFocus),
	)

	return &domain.RecommendationResult{
		Recommendations: recs,
		TotalFound:      len(recs),
		TasteVector:     vec,
		ProcessingTime:  s.now().Sub(started).Milliseconds(),
	}
}

// Journey is the result of a full run from URL to recommendations.
type Journey struct {
	Website *domain.SignalSet            `json:"websiteData"`
	Profile domain.TasteProfile          `json:"tasteProfile"`
	Result  *domain.RecommendationResult `json:"result"`
}

func (s *Service) Run(ctx context.Context, rawURL string, prefs domain.UserPreferences) (*Journey, error) {
	signals, err := s.Analyze(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	profile := s.Profile(signals.Themes, signals.Hints, signals.ContentType)
	result := s.Recommend(ctx, RecommendInput{
		Website:     signals,
		Preferences: prefs,
		TasteVector: &profile.TasteVector,
	})
	return &Journey{Website: signals, Profile: profile, Result: result}, nil
}

func clampVector(v domain.TasteVector) domain.TasteVector {
	for _, dim := range domain.AllDimensions {
		v.Set(dim, util.Clamp01(v.Get(dim)))
	}
	return v
}
