package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/server"
	"github.com/kapu/tastejourney-go/internal/service/ai"
	"github.com/kapu/tastejourney-go/internal/service/bookmark"
	"github.com/kapu/tastejourney-go/internal/service/cache"
	"github.com/kapu/tastejourney-go/internal/service/enrichment"
	"github.com/kapu/tastejourney-go/internal/service/pipeline"
	"github.com/kapu/tastejourney-go/internal/service/report"
	"github.com/kapu/tastejourney-go/internal/service/scraper"
	"go.uber.org/zap"
)

// Container bundles the assembled services and the HTTP server built on them.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Server   *server.Server
	Pipeline *pipeline.Service

	closers []func()
}

// Close releases everything Build opened, in reverse order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all services. Redis is optional: when it is disabled or
// unreachable the analysis cache is skipped.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	catalog, err := domain.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load destination catalog: %w", err)
	}

	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled {
		cacheSvc, err = cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			cacheSvc, err = nil, nil
		} else {
			closers = append(closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	httpClient := &http.Client{Timeout: cfg.Enrichment.Timeout}
	enricher, err := enrichment.NewFromConfig(ctx, cfg.Enrichment, cfg.YouTube, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create enricher: %w", err)
	}

	fetcher := scraper.NewFromConfig(cfg.Scraper, logger)
	opts := pipeline.Options{
		Fetcher:  fetcher,
		Catalog:  catalog,
		Enricher: enricher,
		CacheTTL: cfg.Scraper.CacheTTL,
		TopK:     cfg.Recommend.TopK,
		Logger:   logger,
	}
	if cacheSvc != nil {
		opts.Cache = cacheSvc
	}
	pipelineSvc := pipeline.New(opts)

	assistant, err := ai.NewFromConfig(ctx, cfg.Gemini, cfg.OpenAI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}

	mailer, err := report.NewMailer(ctx, cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	from := cfg.Mail.From
	if from == "" {
		from = cfg.Mail.SMTPUser
	}
	reports := report.NewService(mailer, from, logger)

	deps := server.Deps{
		Pipeline:  pipelineSvc,
		Assistant: assistant,
		Reports:   reports,
		Bookmarks: bookmark.NewMemoryStore(),
	}
	if cacheSvc != nil {
		deps.Cache = cacheSvc
	}

	logger.Info("Services assembled",
		zap.Int("destinations", catalog.Len()),
		zap.Bool("cache", cacheSvc != nil),
		zap.Strings("scrape_strategies", fetcher.Strategies()),
		zap.Strings("enrichment_sources", enricher.Fields()),
		zap.Bool("assistant", assistant.Enabled()),
		zap.String("mail_provider", mailer.Name()),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Server:   server.New(cfg.Server, deps, logger),
		Pipeline: pipelineSvc,
		closers:  closers,
	}, nil
}
