// Package web adapts error-returning handlers to net/http and owns the JSON
// wire conventions: success bodies are written by the handler, failures are
// rendered here as {"error": "..."}.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// Func is an HTTP handler that reports failure by returning an error.
type Func func(w http.ResponseWriter, r *http.Request) error

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// DetailedError lets a handler replace the caller-facing message while
// keeping the cause in a details field.
type DetailedError struct {
	Msg string
	Err error
}

func (e *DetailedError) Error() string { return e.Msg + ": " + e.Err.Error() }
func (e *DetailedError) Unwrap() error { return e.Err }

// Handle turns f into an http.HandlerFunc. The returned error's code picks
// the status; 5xx failures are logged at error level, the rest at debug.
func Handle(log *zap.Logger, f Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		status := apperr.StatusCode(err)
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
		} else {
			log.Debug("Request rejected", fields...)
		}

		body := ErrorBody{Error: apperr.ErrorMessage(err)}
		var detailed *DetailedError
		if errors.As(err, &detailed) {
			body = ErrorBody{Error: detailed.Msg, Details: apperr.ErrorMessage(detailed.Err)}
		}
		WriteJSON(w, status, body)
	}
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads the request body into v. Malformed bodies and bodies over
// the size limit are invalid requests.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperr.Invalid("request body too large")
		case errors.Is(err, io.EOF):
			return apperr.Invalid("request body is empty")
		default:
			return apperr.Invalid("invalid request body")
		}
	}
	return nil
}

// Message is the {message, ...} envelope most success responses use.
type Message map[string]any
