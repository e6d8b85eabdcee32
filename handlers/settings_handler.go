package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"SocialStream/models"
	"SocialStream/utils"

	"github.com/gorilla/mux"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.settings.Get())
}

// UpdateSettings replaces the settings wholesale. The change applies from
// the next computed run.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var next models.AutomationSettings
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&next); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			respondWithServiceError(w, err)
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.settings.Update(next); err != nil {
		respondWithServiceError(w, err)
		return
	}

	applied := h.settings.Get()
	utils.Infof("settings updated source=%s hours=%v", applied.SourceIdentity, applied.ScheduleHours)
	utils.RespondWithJSON(w, http.StatusOK, applied)
}

// ToggleHour adds or removes one hour of the schedule.
func (h *Handler) ToggleHour(w http.ResponseWriter, r *http.Request) {
	hour, err := strconv.Atoi(mux.Vars(r)["hour"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "hour must be an integer")
		return
	}

	settings, err := h.settings.ToggleHour(hour)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}

func (h *Handler) SetPlatform(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(strings.ToLower(mux.Vars(r)["platform"]))

	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := h.settings.SetPlatform(platform, *body.Enabled); err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.settings.Get())
}
