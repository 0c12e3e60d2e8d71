package scraper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/constants"
	"github.com/kapu/tastejourney-go/internal/metrics"
	"github.com/kapu/tastejourney-go/pkg/errors"
	"go.uber.org/zap"
)

// Strategy fetches the markup of a page one particular way.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, target string) (string, error)
}

// Fetcher tries its strategies in order and returns the first non-empty body.
// A positive budget caps the whole attempt, across all strategies.
type Fetcher struct {
	strategies []Strategy
	budget     time.Duration
	logger     *zap.Logger
}

func NewFetcher(strategies []Strategy, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{strategies: strategies, logger: logger}
}

func (f *Fetcher) WithBudget(d time.Duration) *Fetcher {
	f.budget = d
	return f
}

// NewFromConfig uses the ScraperAPI proxy first when a key is configured, then direct fetches.
func NewFromConfig(cfg config.ScraperConfig, logger *zap.Logger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.ScraperConfig.Timeout
	}
	client := &http.Client{Timeout: timeout}

	var strategies []Strategy
	if cfg.ScraperAPIKey != "" {
		strategies = append(strategies, NewScraperAPIStrategy(constants.ScraperConfig.ScraperAPIURL, cfg.ScraperAPIKey, client))
	}
	strategies = append(strategies,
		NewBrowserStrategy(client),
		NewPlainStrategy(client),
	)
	budget := cfg.TotalTimeout
	if budget <= 0 {
		budget = constants.ScraperConfig.TotalTimeout
	}
	return NewFetcher(strategies, logger).WithBudget(budget)
}

func (f *Fetcher) Strategies() []string {
	names := make([]string, 0, len(f.strategies))
	for _, s := range f.strategies {
		names = append(names, s.Name())
	}
	return names
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return "", err
	}

	if f.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.budget)
		defer cancel()
	}

	var errs []error
	for _, s := range f.strategies {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		started := time.Now()
		body, err := s.Fetch(ctx, target)
		if err == nil && strings.TrimSpace(body) == "" {
			err = fmt.Errorf("empty response body")
		}
		if err != nil {
			metrics.ScrapeAttempts.WithLabelValues(s.Name(), "error").Inc()
			f.logger.Warn("Scrape strategy failed",
				zap.String("strategy", s.Name()),
				zap.String("url", target),
				zap.Duration("elapsed", time.Since(started)),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}

		metrics.ScrapeAttempts.WithLabelValues(s.Name(), "ok").Inc()
		f.logger.Info("Website fetched",
			zap.String("strategy", s.Name()),
			zap.String("url", target),
			zap.Int("bytes", len(body)),
			zap.Duration("elapsed", time.Since(started)),
		)
		return body, nil
	}

	return "", errors.NewScrapeError(target, f.Strategies(), stderrors.Join(errs...))
}

// ValidateURL accepts absolute http(s) URLs and bare hosts, which are given an https scheme.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.NewValidationError("url is required", "url", raw)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.NewValidationError("invalid url", "url", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.NewValidationError("url must use http or https", "url", raw)
	}
	if u.Hostname() == "" {
		return "", errors.NewValidationError("url must include a host", "url", raw)
	}
	return u.String(), nil
}

type httpStrategy struct {
	name    string
	client  *http.Client
	build   func(target string) string
	headers map[string]string
}

func (s *httpStrategy) Name() string { return s.name }

func (s *httpStrategy) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.build(target), nil)
	if err != nil {
		return "", err
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.ScraperConfig.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func NewScraperAPIStrategy(endpoint, apiKey string, client *http.Client) Strategy {
	return &httpStrategy{
		name:   "scraperapi",
		client: client,
		build: func(target string) string {
			return endpoint + "?" + url.Values{"api_key": {apiKey}, "url": {target}}.Encode()
		},
	}
}

// NewBrowserStrategy fetches directly with headers a desktop browser would send.
func NewBrowserStrategy(client *http.Client) Strategy {
	return &httpStrategy{
		name:   "direct",
		client: client,
		build:  func(target string) string { return target },
		headers: map[string]string{
			"User-Agent":                constants.ScraperConfig.UserAgent,
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"DNT":                       "1",
			"Upgrade-Insecure-Requests": "1",
		},
	}
}

func NewPlainStrategy(client *http.Client) Strategy {
	return &httpStrategy{
		name:    "plain",
		client:  client,
		build:   func(target string) string { return target },
		headers: map[string]string{"User-Agent": "Mozilla/5.0 (compatible; TasteJourney/1.0)"},
	}
}
