package handlers

import "net/http"

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Svc.ListMembers(r.Context())
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"members": members,
		"count":   len(members),
	})
}

// MemberRollups handles GET /members/rollup: per-member counts by state
// over the live collection, plus any integrity warnings the run produced.
func (h *Handlers) MemberRollups(w http.ResponseWriter, r *http.Request) {
	rollups, warnings, err := h.Svc.MemberRollups(r.Context())
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"rollups":  rollups,
		"warnings": warnings,
	})
}
