package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/campusmatch/campusmatch/internal/api"
	"github.com/campusmatch/campusmatch/internal/config"
	"github.com/campusmatch/campusmatch/internal/database"
	"github.com/campusmatch/campusmatch/internal/logging"
	"github.com/campusmatch/campusmatch/internal/matching"
	"github.com/campusmatch/campusmatch/internal/metrics"
	"github.com/campusmatch/campusmatch/internal/scoring"
	"github.com/campusmatch/campusmatch/internal/server"
)

func main() {
	// Local development convenience; production supplies real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting campusmatch")

	dbConfig := database.DefaultConfig()
	dbConfig.URL = cfg.Database.URL

	logger.Info("connecting to database")
	db, err := database.Connect(context.Background(), dbConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	// Run pending migrations (non-fatal to allow app to start even if migrations fail)
	if err := database.RunMigrations(db, "./migrations", logger); err != nil {
		logger.Warn("failed to run migrations, continuing anyway", "error", err)
	}

	eventRepo := database.NewEventRepository(db)
	sponsorRepo := database.NewSponsorRepository(db)
	matchRepo := database.NewMatchRepository(db)

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	matchingMetrics, err := metrics.NewMatchingCollector(collector.Registry())
	if err != nil {
		logger.Error("failed to init matching metrics", "error", err)
		os.Exit(1)
	}

	scorer := scoring.NewOpenAIScorer(cfg.OpenAI, logger)
	engine := matching.NewEngine(eventRepo, sponsorRepo, matchRepo, scorer, cfg.Matching.Workers, logger, matchingMetrics)

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context(), db); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		info := map[string]interface{}{
			"service":  "campusmatch",
			"status":   "ready",
			"version":  "0.1.0",
			"database": database.Stats(db),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(info)
	})

	mux.Handle("/metrics", collector.Handler())

	logger.Info("setting up REST API")
	api.SetupRoutes(mux, engine, eventRepo, sponsorRepo, matchRepo, logger)

	srv := server.New(cfg.Server, logger, collector.InstrumentHandler(mux))

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("campusmatch started successfully")
	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
