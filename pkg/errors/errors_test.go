package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAppError_TypedWrappers(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")

	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("url is required", "url", ""), CodeValidation, http.StatusBadRequest},
		{"service", NewServiceError("assistant failed", "ai", "chat", cause), CodeService, http.StatusInternalServerError},
		{"cache", NewCacheError("get failed", "get", "k", cause), CodeCache, http.StatusInternalServerError},
		{"scrape", NewScrapeError("https://example.com", []string{"plain"}, cause), CodeScrape, http.StatusBadGateway},
		{"api", NewAPIError("upstream", http.StatusTooManyRequests, nil), CodeAPIError, http.StatusTooManyRequests},
		{"unavailable", NewUnavailableError("assistant disabled", "ai"), CodeUnavailable, http.StatusServiceUnavailable},
		{"not found", NewNotFoundError("no route", nil), CodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)

			appErr, ok := AsAppError(wrapped)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestAsAppError_PlainError(t *testing.T) {
	_, ok := AsAppError(stderrors.New("boom"))
	assert.False(t, ok)

	_, ok = AsAppError(nil)
	assert.False(t, ok)
}

func TestAppError_MessageAndUnwrap(t *testing.T) {
	cause := stderrors.New("timeout")
	err := NewServiceError("enrichment failed", "serpapi", "fetch", cause)

	assert.Equal(t, "enrichment failed: timeout", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "serpapi", err.Context["service"])
}

func TestIsScrapeError(t *testing.T) {
	err := fmt.Errorf("analyze: %w", NewScrapeError("https://example.com", nil, nil))

	assert.True(t, IsScrapeError(err))
	assert.False(t, IsScrapeError(NewValidationError("bad", "url", "x")))
}
