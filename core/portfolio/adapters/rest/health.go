package rest

import (
	"log/slog"
	"net/http"

	"portfolio/modules/api/serde"
	"portfolio/modules/middleware/problem"
)

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	serde.WriteJSON(w, http.StatusOK, WelcomeResponse{Message: "Welcome to the Portfolio API"})
}

// Health reports whether the persistence store answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.health.HealthCheck(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		problem.Write(w, problem.ServiceUnavailable("store unreachable"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
