package handlers

import (
	"context"
	"errors"
	"net/http"

	"SocialStream/services"
	"SocialStream/utils"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnknownPlatform):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidSettings):
		return http.StatusUnprocessableEntity
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		utils.Errorf("request failed status=%d err=%v", code, err)
		utils.RespondWithError(w, code, http.StatusText(code))
		return
	}
	utils.RespondWithError(w, code, err.Error())
}
