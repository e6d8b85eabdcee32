package handlers

import (
	"context"
	"net/http"
	"time"

	"SocialStream/middleware"
	"SocialStream/services"

	"github.com/gorilla/mux"
)

type Handler struct {
	// ctx outlives requests; automation started over HTTP runs under it.
	ctx      context.Context
	runner   *services.CycleRunner
	settings *services.SettingsStore
	accounts *services.AccountLinkManager
	feed     *services.ContentFeed
	loc      *time.Location
}

func NewHandler(ctx context.Context, runner *services.CycleRunner, settings *services.SettingsStore, accounts *services.AccountLinkManager, feed *services.ContentFeed, loc *time.Location) *Handler {
	return &Handler{
		ctx:      ctx,
		runner:   runner,
		settings: settings,
		accounts: accounts,
		feed:     feed,
		loc:      loc,
	}
}

// RegisterRoutes mounts the control API on api, which is expected to be the
// /api subrouter. Account linking gets the stricter limiter when one is given.
func (h *Handler) RegisterRoutes(api *mux.Router, limiter *middleware.RateLimiter) {
	link := h.LinkAccount
	if limiter != nil {
		link = limiter.LimitHandler(link)
	}

	api.HandleFunc("/status", h.GetStatus).Methods("GET")
	api.HandleFunc("/automation/start", h.StartAutomation).Methods("POST")
	api.HandleFunc("/automation/stop", h.StopAutomation).Methods("POST")

	api.HandleFunc("/logs", h.GetLogs).Methods("GET")

	api.HandleFunc("/settings", h.GetSettings).Methods("GET")
	api.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")
	api.HandleFunc("/settings/hours/{hour:[0-9]+}", h.ToggleHour).Methods("PATCH")
	api.HandleFunc("/settings/platforms/{platform}", h.SetPlatform).Methods("PUT")

	api.HandleFunc("/accounts", h.GetAccounts).Methods("GET")
	api.HandleFunc("/accounts/{platform}/link", link).Methods("POST")
	api.HandleFunc("/accounts/{platform}", h.UnlinkAccount).Methods("DELETE")
}

// Endpoints lists the routes for the startup banner.
var Endpoints = []string{
	"GET    /health                          - Health check",
	"GET    /metrics                         - Prometheus metrics",
	"GET    /api/status                      - Runner status and countdown",
	"POST   /api/automation/start            - Start the automation loop",
	"POST   /api/automation/stop             - Stop the automation loop",
	"GET    /api/logs                        - Distribution feed, newest first",
	"GET    /api/settings                    - Current automation settings",
	"PUT    /api/settings                    - Replace automation settings",
	"PATCH  /api/settings/hours/{hour}       - Toggle one scheduled hour",
	"PUT    /api/settings/platforms/{platform} - Enable or disable a platform",
	"GET    /api/accounts                    - Linked accounts",
	"POST   /api/accounts/{platform}/link    - Link an account",
	"DELETE /api/accounts/{platform}         - Unlink an account",
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
