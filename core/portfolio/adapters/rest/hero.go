package rest

import (
	"net/http"

	"portfolio/modules/api/serde"
)

func (h *Handler) GetHeroIntroduction(w http.ResponseWriter, r *http.Request) {
	intro, err := h.svc.GetHeroIntroduction(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, HeroIntroduction(*intro))
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetTimelineItems(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, Timeline{Items: mapTimeline(items)})
}
