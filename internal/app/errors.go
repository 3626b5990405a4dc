package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// StatusError pairs a handler error with the HTTP status it should map to.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Errorf builds a StatusError in fmt.Errorf style.
func Errorf(code int, format string, args ...any) error {
	return &StatusError{Code: code, Err: fmt.Errorf(format, args...)}
}

// WithError adapts an error-returning handler to http.HandlerFunc, logging
// the failure and writing the mapped status. Errors without a StatusError
// in their chain become 500s.
func WithError(h func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		code := http.StatusInternalServerError
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			code = statusErr.Code
		}

		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		http.Error(w, err.Error(), code)
	}
}
