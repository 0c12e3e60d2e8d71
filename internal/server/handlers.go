package server

import (
	"context"
	"net/http"
	"time"

	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/service/pipeline"
	"github.com/kapu/tastejourney-go/pkg/errors"
)

const fallbackWarning = "Used fallback data due to scraping limitations"

type envelope struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data"`
	Warning  string `json:"warning,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "disabled"
	if s.deps.Cache != nil {
		cacheStatus = "disconnected"
		if s.deps.Cache.IsConnected(r.Context()) {
			cacheStatus = "connected"
		}
	}
	s.respond(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"cache":     cacheStatus,
		"assistant": s.deps.Assistant != nil && s.deps.Assistant.Enabled(),
		"time":      time.Now().UTC().Format(time.RFC3339),
	})
}

type scrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	signals, err := s.deps.Pipeline.Analyze(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := envelope{Success: true, Data: signals}
	if signals.FallbackUsed {
		resp.Warning = fallbackWarning
	}
	s.respond(w, r, http.StatusOK, resp)
}

type profileRequest struct {
	Themes      []string `json:"themes" validate:"required"`
	Hints       []string `json:"hints" validate:"required"`
	ContentType string   `json:"contentType"`
}

func (s *Server) handleProfileTaste(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile := s.deps.Pipeline.Profile(req.Themes, req.Hints, req.ContentType)
	s.respond(w, r, http.StatusOK, envelope{
		Success: true,
		Data:    profile,
		Metadata: map[string]any{
			"inputThemes":     len(req.Themes),
			"inputHints":      len(req.Hints),
			"confidenceLevel": profile.ConfidenceLevel,
		},
	})
}

type recommendRequest struct {
	TasteVector     *domain.TasteVector    `json:"tasteVector"`
	UserPreferences domain.UserPreferences `json:"userPreferences"`
	WebsiteData     *domain.SignalSet      `json:"websiteData"`
	SkipEnrichment  bool                   `json:"skipEnrichment"`
}

type recommendResponse struct {
	*domain.RecommendationResult
	TotalCount int    `json:"totalCount"`
	Timestamp  string `json:"timestamp"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result := s.deps.Pipeline.Recommend(r.Context(), pipeline.RecommendInput{
		Website:     req.WebsiteData,
		Preferences: req.UserPreferences,
		TasteVector: req.TasteVector,
		SkipEnrich:  req.SkipEnrichment,
	})
	s.respond(w, r, http.StatusOK, recommendResponse{
		RecommendationResult: result,
		TotalCount:           len(result.Recommendations),
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	})
}

type journeyRequest struct {
	URL             string                 `json:"url" validate:"required"`
	UserPreferences domain.UserPreferences `json:"userPreferences"`
}

func (s *Server) handleJourney(w http.ResponseWriter, r *http.Request) {
	var req journeyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	journey, err := s.deps.Pipeline.Run(r.Context(), req.URL, req.UserPreferences)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := envelope{Success: true, Data: journey}
	if journey.Website != nil && journey.Website.FallbackUsed {
		resp.Warning = fallbackWarning
	}
	s.respond(w, r, http.StatusOK, resp)
}

type chatRequest struct {
	Message string             `json:"message" validate:"required"`
	Context domain.ChatContext `json:"context"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	reply, err := s.chat(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, reply)
}

func (s *Server) chat(ctx context.Context, req chatRequest) (domain.ChatReply, error) {
	if s.deps.Assistant == nil {
		return domain.ChatReply{}, errors.NewUnavailableError("assistant is not configured", "assistant")
	}
	return s.deps.Assistant.Chat(ctx, req.Message, req.Context)
}

type reportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*domain.ReportReceipt
}

func (s *Server) handleSendReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.deps.Reports == nil {
		s.writeError(w, r, errors.NewUnavailableError("report delivery is not configured", "report"))
		return
	}

	receipt, err := s.deps.Reports.Send(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, reportResponse{
		Success:       true,
		Message:       "Report sent successfully",
		ReportReceipt: receipt,
	})
}

type bookmarkRequest struct {
	Destination string `json:"destination" validate:"required,max=200"`
}

type bookmarksResponse struct {
	Bookmarks []string `json:"bookmarks"`
}

func bookmarkNames(list []domain.Bookmark) bookmarksResponse {
	names := make([]string, 0, len(list))
	for _, b := range list {
		names = append(names, b.Destination)
	}
	return bookmarksResponse{Bookmarks: names}
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Bookmarks.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, bookmarkNames(list))
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.deps.Bookmarks.Add(r.Context(), req.Destination)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, bookmarkNames(list))
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.deps.Bookmarks.Remove(r.Context(), req.Destination)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, bookmarkNames(list))
}
