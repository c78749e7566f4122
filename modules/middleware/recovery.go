package middleware

import (
	"log/slog"
	"net/http"
)

// PanicHandler is a function that handles panics and writes an appropriate response.
type PanicHandler func(w http.ResponseWriter, r *http.Request, recovered any)

// Recovery creates a middleware that recovers from panics and calls the provided handler.
func Recovery(handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.ErrorContext(r.Context(), "panic", slog.Any("error", rec),
						slog.String("method", r.Method), slog.String("path", r.URL.Path))
					handler(w, r, rec)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
