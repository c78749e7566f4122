package rest

import (
	"net/http"
	"strconv"

	"portfolio/core/portfolio/domain"
	"portfolio/modules/api/serde"
	"portfolio/modules/middleware/problem"
)

func (h *Handler) ListWorks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter domain.WorkFilter
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			problem.Write(w, problem.BadRequest("validation failed",
				problem.WithInvalidParam("featured", "must be true or false")))
			return
		}
		filter.Featured = &featured
	}
	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}

	works, err := h.svc.GetAllWorks(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, WorkList{Works: mapWorks(works)})
}

func (h *Handler) GetWork(w http.ResponseWriter, r *http.Request) {
	work, err := h.svc.GetWorkByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapWork(*work))
}
