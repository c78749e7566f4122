package rest

import (
	"net/http"

	"portfolio/modules/api/serde"
)

func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.GetAboutInfo(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, mapAbout(info))
}
