package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SocialStream/config"
	"SocialStream/handlers"
	"SocialStream/middleware"
	"SocialStream/models"
	"SocialStream/services"
	"SocialStream/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	loaded := config.LoadEnvFiles()
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)
	if len(loaded) > 0 {
		utils.Debugf("env files loaded files=%v", loaded)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initial := models.DefaultSettings()
	if cfg.SettingsFile != "" {
		s, err := config.LoadSettingsFile(cfg.SettingsFile)
		if err != nil {
			utils.Errorf("settings file load failed path=%s err=%v", cfg.SettingsFile, err)
			os.Exit(1)
		}
		initial = s
	}
	settings, err := services.NewSettingsStore(initial)
	if err != nil {
		utils.Errorf("invalid initial settings err=%v", err)
		os.Exit(1)
	}

	sealer, err := utils.NewTokenSealer(cfg.TokenEncryptionKey)
	if err != nil {
		utils.Errorf("token sealer init failed err=%v", err)
		os.Exit(1)
	}

	clock := services.SystemClock{}
	ids := services.UUIDGenerator{}
	loc := cfg.Location()
	metrics := services.NewMetrics()
	metrics.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tokens := services.NewLinkTokenIssuer(cfg.LinkSigningSecret, clock)
	oauthStates := services.NewOAuthStateService(clock)
	accounts := services.NewAccountLinkManager(clock,
		services.NewSimulatedAuthorizer(clock, cfg.LinkDelay, ids, tokens),
		oauthStates, sealer)
	publisher := services.NewPublisherService(accounts, clock, cfg.PostDelay, ids, tokens)
	feed := services.NewContentFeed(cfg.FeedCapacity)

	runner := services.NewCycleRunner(services.RunnerConfig{
		Clock:     clock,
		Location:  loc,
		Settings:  settings,
		Accounts:  accounts,
		Fetcher:   services.NewSimulatedFetcher(clock, cfg.FetchDelay, ids),
		Rewriter:  newRewriter(cfg),
		Publisher: publisher,
		Feed:      feed,
		IDs:       ids,
		Metrics:   metrics,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	maintenance := services.NewMaintenance()
	if err := maintenance.PurgeOAuthStates(oauthStates, 10*time.Minute); err != nil {
		utils.Errorf("maintenance setup failed err=%v", err)
		os.Exit(1)
	}
	if err := maintenance.Every(3*time.Minute, "rate_limiter_cleanup", func() {
		if n := limiter.Cleanup(); n > 0 {
			utils.Debugf("rate limiter visitors evicted count=%d", n)
		}
	}); err != nil {
		utils.Errorf("maintenance setup failed err=%v", err)
		os.Exit(1)
	}
	if err := maintenance.Every(time.Minute, "linked_accounts_gauge", func() {
		metrics.LinkedAccounts.Set(float64(len(accounts.LinkedSet())))
	}); err != nil {
		utils.Errorf("maintenance setup failed err=%v", err)
		os.Exit(1)
	}
	maintenance.Start()

	if cfg.SettingsFile != "" {
		go func() {
			err := config.WatchSettingsFile(ctx, cfg.SettingsFile, settings.Update)
			if err != nil && !errors.Is(err, context.Canceled) {
				utils.Warnf("settings watcher stopped path=%s err=%v", cfg.SettingsFile, err)
			}
		}()
	}

	handler := handlers.NewHandler(ctx, runner, settings, accounts, feed, loc)
	r := setupRoutes(cfg, handler, limiter, metrics)

	if cfg.AutoStart {
		if err := runner.Start(ctx); err != nil {
			utils.Errorf("automation auto start failed err=%v", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Infof("server starting port=%s schedule_tz=%s", cfg.Port, loc)
		printEndpoints()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Errorf("server failed err=%v", err)
			stop()
		}
	}()

	<-ctx.Done()
	utils.Infof("shutting down")

	runner.Stop()
	<-maintenance.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Errorf("server shutdown failed err=%v", err)
	}
}

func newRewriter(cfg *config.Config) services.CaptionRewriter {
	if cfg.GeminiAPIKey == "" {
		utils.Warnf("GEMINI_API_KEY not set, captions will be echoed")
		return services.EchoRewriter{}
	}
	return services.NewGeminiRewriter(services.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.RewriteTimeout,
	})
}

func setupRoutes(cfg *config.Config, h *handlers.Handler, limiter *middleware.RateLimiter, metrics *services.Metrics) *mux.Router {
	r := mux.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins

	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{
		Registry: metrics.Registry,
	})).Methods("GET")
	// preflight requests need a matching route for the CORS middleware to run
	r.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.Limit())
	h.RegisterRoutes(api, limiter)

	return r
}

func printEndpoints() {
	utils.Infof("Endpoints available:")
	for _, e := range handlers.Endpoints {
		utils.Infof("  %s", e)
	}
}
