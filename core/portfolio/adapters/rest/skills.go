package rest

import (
	"net/http"

	"portfolio/modules/api/serde"
)

func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	groups, err := h.svc.GetSkillCategories(r.Context(), category)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	serde.WriteJSON(w, http.StatusOK, SkillCategoryList{Categories: mapSkillCategories(groups)})
}

func (h *Handler) ListSkillCategories(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.GetSkillCategoryNames(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	serde.WriteJSON(w, http.StatusOK, CategoryNameList{Categories: names})
}
