package handlers

import (
	"net/http"
	"strconv"

	"SocialStream/utils"
)

// GetLogs returns the distribution feed newest first. ?limit=n trims it.
func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	entries := h.feed.Entries()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if limit < len(entries) {
			entries = entries[:limit]
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries":  entries,
		"count":    len(entries),
		"capacity": h.feed.Capacity(),
	})
}
