package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/kapu/tastejourney-go/pkg/errors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.logger.Error("Failed to write response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewAppError("internal server error", errors.CodeAppError, http.StatusInternalServerError, nil)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	} else {
		s.logger.Debug("Request rejected",
			zap.String("path", r.URL.Path),
			zap.String("code", appErr.Code),
			zap.String("error", appErr.Message),
		)
	}

	s.respond(w, r, appErr.StatusCode, errorBody{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Context,
	})
}

// decode reads a JSON body into dst and runs struct validation on it.
func decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return errors.NewValidationError("failed to read request body", "body", nil)
	}
	if len(body) > maxBodyBytes {
		return errors.NewValidationError("request body too large", "body", len(body))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewValidationError("invalid JSON format in request body", "body", nil)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(
			fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()),
			fe.Field(),
			fe.Value(),
		)
	}
	return errors.NewValidationError("invalid request", "body", nil)
}

func notFound(path string) error {
	return errors.NewNotFoundError("route not found", map[string]any{"path": path})
}
