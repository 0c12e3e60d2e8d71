// Package enrichment decorates ranked recommendations with live third-party data.
// Every call is independent: a failing source leaves its field null and never fails the batch.
package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/metrics"
	"github.com/kapu/tastejourney-go/internal/util"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type Enricher struct {
	sources     []Source
	timeout     time.Duration
	concurrency int
	logger      *zap.Logger
}

func New(sources []Source, timeout time.Duration, concurrency int, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = constants.EnrichmentConfig.Timeout
	}
	if concurrency <= 0 {
		concurrency = constants.EnrichmentConfig.Concurrency
	}
	return &Enricher{
		sources:     sources,
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

// NewFromConfig registers only the sources whose credentials are present.
func NewFromConfig(ctx context.Context, cfg config.EnrichmentConfig, yt config.YouTubeConfig, httpClient *http.Client, logger *zap.Logger) (*Enricher, error) {
	var sources []Source

	if cfg.SerpAPIKey != "" {
		sources = append(sources, NewSerpSources(constants.EnrichmentConfig.SerpAPIURL, cfg.SerpAPIKey, httpClient, logger)...)
	}
	if cfg.NumbeoAPIKey != "" {
		sources = append(sources, NewNumbeoSource(constants.EnrichmentConfig.NumbeoURL, cfg.NumbeoAPIKey, httpClient, logger))
	}
	if cfg.AmadeusKey != "" && cfg.AmadeusSecret != "" {
		sources = append(sources, NewAmadeusSources(AmadeusOptions{
			BaseURL:    cfg.AmadeusBaseURL,
			ClientID:   cfg.AmadeusKey,
			Secret:     cfg.AmadeusSecret,
			Origin:     cfg.Origin,
			LeadDays:   cfg.LeadDays,
			StayNights: cfg.StayNights,
			HTTPClient: httpClient,
		}, logger)...)
	}
	if yt.APIKey != "" {
		creators, err := NewCreatorSource(ctx, yt.APIKey, constants.EnrichmentConfig.CreatorResults, logger)
		if err != nil {
			return nil, err
		}
		sources = append(sources, creators)
	}

	e := New(sources, cfg.Timeout, cfg.Concurrency, logger)
	e.logger.Info("Enrichment sources registered", zap.Strings("sources", e.Fields()))
	return e, nil
}

func (e *Enricher) Fields() []string {
	out := make([]string, 0, len(e.sources))
	for _, s := range e.sources {
		out = append(out, string(s.Field()))
	}
	return out
}

func (e *Enricher) Enabled() bool {
	return len(e.sources) > 0
}

// Enrich returns copies of recs with Enrichment populated. Calls are detached from ctx cancellation
// and share one batch deadline of the per-call timeout, so calls still queued behind the pool limit
// are dropped rather than pushing the batch past that deadline.
func (e *Enricher) Enrich(ctx context.Context, recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, len(recs))
	copy(out, recs)
	if len(e.sources) == 0 || len(recs) == 0 {
		return out
	}

	batch, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()
	results := make([][]json.RawMessage, len(out))
	for i := range results {
		results[i] = make([]json.RawMessage, len(e.sources))
	}

	p := pool.New().WithMaxGoroutines(e.concurrency)
	for i := range out {
		for j, src := range e.sources {
			p.Go(func() {
				results[i][j] = e.fetch(batch, src, out[i])
			})
		}
	}
	p.Wait()

	for i := range out {
		enrichment := &domain.Enrichment{}
		for j, src := range e.sources {
			assign(enrichment, src.Field(), results[i][j])
		}
		out[i].Enrichment = enrichment
	}
	return out
}

func (e *Enricher) fetch(ctx context.Context, src Source, rec domain.Recommendation) (raw json.RawMessage) {
	field := string(src.Field())
	if ctx.Err() != nil {
		metrics.EnrichmentCalls.WithLabelValues(field, "expired").Inc()
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	defer func() {
		metrics.EnrichmentDuration.WithLabelValues(field).Observe(time.Since(started).Seconds())
		if r := recover(); r != nil {
			e.logger.Error("Enrichment source panicked",
				zap.String("source", field),
				zap.String("destination", rec.Destination),
				zap.String("panic", fmt.Sprint(r)),
			)
			metrics.EnrichmentCalls.WithLabelValues(field, "panic").Inc()
			raw = nil
		}
	}()

	raw, err := src.Fetch(ctx, rec)
	switch {
	case err != nil:
		outcome := "error"
		if util.IsBreakerRejection(err) {
			outcome = "rejected"
		}
		metrics.EnrichmentCalls.WithLabelValues(field, outcome).Inc()
		e.logger.Warn("Enrichment source failed",
			zap.String("source", field),
			zap.String("destination", rec.Destination),
			zap.Error(err),
		)
		return nil
	case raw == nil:
		metrics.EnrichmentCalls.WithLabelValues(field, "skipped").Inc()
	default:
		metrics.EnrichmentCalls.WithLabelValues(field, "ok").Inc()
	}
	return raw
}
