package rest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/middleware"
	"portfolio/modules/middleware/problem"
)

// writeError is the only place domain errors become status codes. Internal
// error text never reaches the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		opts := make([]problem.Option, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			opts = append(opts, problem.WithInvalidParam(f.Field, f.Reason))
		}
		problem.Write(w, problem.UnprocessableEntity("validation failed", opts...))
	case errors.Is(err, domain.ErrNotFound):
		slog.DebugContext(ctx, "not found", slog.Any("error", err))
		problem.Write(w, problem.NotFound("resource not found"))
	default:
		slog.ErrorContext(ctx, "request failed", slog.Any("error", err))
		problem.Write(w, problem.Internal("server error"))
	}
}

// RecoverHTTPMiddleware turns panics into a generic 500 problem.
func RecoverHTTPMiddleware() func(http.Handler) http.Handler {
	return middleware.Recovery(func(w http.ResponseWriter, r *http.Request, recovered any) {
		problem.Write(w, problem.Internal("server error"))
	})
}

// ValidationMiddleware checks requests against the embedded OpenAPI document
// before they reach a handler.
func ValidationMiddleware(specFS fs.FS, specPath string) func(http.Handler) http.Handler {
	return middleware.OpenAPIValidation(
		specFS,
		specPath,
		func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, statusCode int) {
			slog.DebugContext(ctx, "request rejected by schema", slog.Any("error", err))

			if statusCode == http.StatusNotFound {
				problem.Write(w, problem.NotFound("no such route"))
				return
			}

			p := problem.New(
				problem.WithTitle(http.StatusText(statusCode)),
				problem.WithStatus(statusCode),
				problem.WithDetail("validation failed"),
			)
			for _, ve := range middleware.ExtractValidationErrors(err) {
				problem.WithInvalidParam(ve.Field, ve.Reason)(p)
			}
			problem.Write(w, p)
		},
		func(w http.ResponseWriter, r *http.Request, err error) {
			slog.ErrorContext(r.Context(), "openapi document failed to load", slog.Any("error", err))
			problem.Write(w, problem.Internal("server error"))
		},
	)
}
