// Package report renders the travel report e-mail and hands it to a Mailer.
package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/tastejourney-go/internal/domain"
	"github.com/kapu/tastejourney-go/internal/metrics"
	"github.com/kapu/tastejourney-go/internal/util"
	"github.com/kapu/tastejourney-go/pkg/errors"
	"go.uber.org/zap"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html").Funcs(template.FuncMap{
		"join":    strings.Join,
		"percent": util.Percent,
	}).ParseFS(templateFS, "templates/report.html"),
)

const (
	senderName      = "TasteJourney"
	maxEmailLength  = 254
	defaultUserName = "Travel Enthusiast"
)

type Service struct {
	mailer Mailer
	from   string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(mailer Mailer, from string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		mailer: mailer,
		from:   from,
		logger: logger,
		now:    time.Now,
	}
}

type reportView struct {
	ReportID        string
	DisplayName     string
	GeneratedOn     string
	Recommendations []domain.Recommendation
	Preferences     *domain.UserPreferences
	Taste           *domain.TasteProfile
	Website         domain.SignalSet
}

// Render builds the subject and HTML body for req.
func (s *Service) Render(req domain.ReportRequest, reportID string) (subject, body string, err error) {
	view := reportView{
		ReportID:        reportID,
		DisplayName:     displayName(req),
		GeneratedOn:     s.now().Format("Monday, January 2, 2006"),
		Recommendations: usableRecommendations(req.Recommendations),
		Preferences:     req.Preferences,
		Taste:           req.Taste,
		Website:         sanitizeWebsite(req.Website),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("render report: %w", err)
	}

	subject = fmt.Sprintf("Your Personalized TasteJourney Travel Report - %s", view.DisplayName)
	return subject, buf.String(), nil
}

// Send renders the report and delivers it.
func (s *Service) Send(ctx context.Context, req domain.ReportRequest) (*domain.ReportReceipt, error) {
	to := strings.TrimSpace(req.Email)
	if len(to) > maxEmailLength {
		return nil, errors.NewValidationError("email address too long", "email", len(to))
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return nil, errors.NewValidationError("valid email address is required", "email", to)
	}
	req.Email = to

	if s.mailer == nil {
		return nil, errors.NewUnavailableError("report delivery is not configured", "report")
	}

	reportID := uuid.NewString()
	subject, body, err := s.Render(req, reportID)
	if err != nil {
		return nil, errors.NewServiceError("failed to render report", "report", "render", err)
	}

	from := (&mail.Address{Name: senderName, Address: s.from}).String()
	messageID, err := s.mailer.Send(ctx, Message{From: from, To: to, Subject: subject, HTML: body})
	if err != nil {
		metrics.ReportsSent.WithLabelValues(s.mailer.Name(), "error").Inc()
		s.logger.Error("Report delivery failed",
			zap.String("report_id", reportID),
			zap.String("provider", s.mailer.Name()),
			zap.Error(err),
		)
		return nil, errors.NewServiceError("failed to send report", "report", "send", err)
	}

	metrics.ReportsSent.WithLabelValues(s.mailer.Name(), "ok").Inc()
	s.logger.Info("Report sent",
		zap.String("report_id", reportID),
		zap.String("provider", s.mailer.Name()),
		zap.Int("recommendations", len(req.Recommendations)),
	)

	return &domain.ReportReceipt{
		ReportID:  reportID,
		MessageID: messageID,
		Provider:  s.mailer.Name(),
		SentAt:    s.now().UTC(),
	}, nil
}

func displayName(req domain.ReportRequest) string {
	if name := strings.TrimSpace(req.UserName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(req.Email, "@"); ok && local != "" {
		return local
	}
	return defaultUserName
}

func usableRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec.Destination == "" {
			if rec.DestinationName == "" {
				continue
			}
			rec.Destination = rec.DestinationName
		}
		out = append(out, rec)
	}
	return out
}

func sanitizeWebsite(w *domain.SignalSet) domain.SignalSet {
	var out domain.SignalSet
	if w != nil {
		out = *w
	}
	if out.ContentType == "" {
		out.ContentType = "Mixed Content"
	}
	if out.Title == "" {
		out.Title = "Website Analysis"
	}
	if out.Description == "" {
		out.Description = "No description available"
	}
	return out
}
