// Package server exposes the recommendation pipeline over HTTP and WebSocket.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/kapu/tastejourney-go/internal/config"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/service/bookmark"
	"github.com/kapu/tastejourney-go/internal/service/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*domain.SignalSet, error)
	Profile(themes, hints []string, contentType string) domain.TasteProfile
	Recommend(ctx context.Context, in pipeline.RecommendInput) *domain.RecommendationResult
	Run(ctx context.Context, rawURL string, prefs domain.UserPreferences) (*pipeline.Journey, error)
}

type Assistant interface {
	Enabled() bool
	Chat(ctx context.Context, message string, cc domain.ChatContext) (domain.ChatReply, error)
}

type ReportSender interface {
	Send(ctx context.Context, req domain.ReportRequest) (*domain.ReportReceipt, error)
}

type HealthChecker interface {
	IsConnected(ctx context.Context) bool
}

// Deps are the services behind the routes. Cache may be nil.
type Deps struct {
	Pipeline  Analyzer
	Assistant Assistant
	Reports   ReportSender
	Bookmarks bookmark.Store
	Cache     HealthChecker
}

type Server struct {
	cfg        config.ServerConfig
	deps       Deps
	router     chi.Router
	httpServer *http.Server
	logger     *zap.Logger
}

func New(cfg config.ServerConfig, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws/chat", s.handleChatSocket)

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimit, s.cfg.RateWindow))
		}

		r.Post("/scrape", s.handleScrape)
		r.Post("/profile-taste", s.handleProfileTaste)
		r.Post("/recommend", s.handleRecommend)
		r.Post("/journey", s.handleJourney)
		r.Post("/chat", s.handleChat)
		r.Post("/send-report", s.handleSendReport)

		r.Get("/bookmarks", s.handleListBookmarks)
		r.Post("/bookmarks", s.handleAddBookmark)
		r.Delete("/bookmarks", s.handleRemoveBookmark)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, notFound(r.URL.Path))
	})

	return r
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
