package handlers

import (
	"net/http"

	"SocialStream/models"
	"SocialStream/services"
	"SocialStream/utils"
)

func (h *Handler) status() models.StatusResponse {
	hours := h.settings.Get().ScheduleHours
	return models.StatusResponse{
		RunnerSnapshot: h.runner.Snapshot(),
		ChannelsArmed:  h.accounts.AnyLinked(),
		Schedule:       services.NewHourSchedule(hours, h.loc).Spec(),
	}
}

// GetStatus reports the runner state, the countdown and whether any
// channel is linked.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.status())
}

func (h *Handler) StartAutomation(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.Start(h.ctx); err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.status())
}

// StopAutomation always succeeds; stopping an idle runner is a no-op.
func (h *Handler) StopAutomation(w http.ResponseWriter, r *http.Request) {
	h.runner.Stop()
	utils.RespondWithJSON(w, http.StatusOK, h.status())
}
