package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeAppError    = "APP_ERROR"
	CodeAPIError    = "API_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeService     = "SERVICE_ERROR"
	CodeScrape      = "SCRAPE_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

// AsAppError finds the first AppError in err's chain, including the typed wrappers below.
func AsAppError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var target interface{ appError() *AppError }
	if stderrors.As(err, &target) {
		return target.appError(), true
	}
	return nil, false
}

func (e *AppError) appError() *AppError { return e }

type APIError struct {
	*AppError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: http.StatusBadRequest,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// ScrapeError is returned when every fetch strategy for a page failed.
type ScrapeError struct {
	*AppError
	URL        string
	Strategies []string
}

func NewScrapeError(url string, strategies []string, cause error) *ScrapeError {
	return &ScrapeError{
		AppError: &AppError{
			Message:    "failed to fetch website content",
			Code:       CodeScrape,
			StatusCode: http.StatusBadGateway,
			Context: map[string]any{
				"url":        url,
				"strategies": strategies,
			},
			Cause: cause,
		},
		URL:        url,
		Strategies: strategies,
	}
}

func NewNotFoundError(message string, context map[string]any) *AppError {
	return NewAppError(message, CodeNotFound, http.StatusNotFound, context)
}

func NewUnavailableError(message, service string) *AppError {
	return NewAppError(message, CodeUnavailable, http.StatusServiceUnavailable, map[string]any{
		"service": service,
	})
}

func IsScrapeError(err error) bool {
	var target *ScrapeError
	return stderrors.As(err, &target)
}
