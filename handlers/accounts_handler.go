package handlers

import (
	"net/http"
	"strings"

	"SocialStream/models"
	"SocialStream/utils"

	"github.com/gorilla/mux"
)

func platformVar(r *http.Request) models.Platform {
	return models.Platform(strings.ToLower(mux.Vars(r)["platform"]))
}

// GetAccounts lists every platform with its link state.
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":       h.accounts.Accounts(),
		"channels_armed": h.accounts.AnyLinked(),
	})
}

// LinkAccount runs the simulated authorization handshake. It blocks for
// the handshake delay.
func (h *Handler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	platform := platformVar(r)

	account, err := h.accounts.RequestLink(r.Context(), platform)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, account)
}

func (h *Handler) UnlinkAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Unlink(platformVar(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	writeNoContent(w)
}
