// Package main is the entry point for the EasyEEA API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/larsenwood/easy-eea/internal/config"
	"github.com/larsenwood/easy-eea/internal/handler"
	"github.com/larsenwood/easy-eea/internal/middleware"
	"github.com/larsenwood/easy-eea/internal/pdf"
	"github.com/larsenwood/easy-eea/internal/refdata"
	"github.com/larsenwood/easy-eea/internal/repo"
	"github.com/larsenwood/easy-eea/internal/service"
	"github.com/larsenwood/easy-eea/internal/transit"
)

// maxBodySize caps incoming request bodies. Generation requests carry whole
// folder snapshots, so the limit is generous.
const maxBodySize = 4 << 20 // 4 MiB

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Reference data ---------------------------------------------------
	// Load the station and fare datasets once at boot so a broken data
	// directory fails fast; later lookups refresh them on the 5-minute TTL.
	store := refdata.NewStore(cfg.DataDir, refdata.DefaultTTL, logger)
	if err := store.Reload(); err != nil {
		slog.Error("failed to load reference data", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	slog.Info("reference data loaded", "dir", cfg.DataDir)

	// --- Services ---------------------------------------------------------
	baseURL := cfg.SNCFAPIBase
	if baseURL == "" {
		baseURL = transit.DefaultBaseURL
	}
	transitClient := transit.NewClient(baseURL, cfg.SNCFAPIKey)
	classifier := refdata.NewClassifier(cfg.EligibleModes)

	projectRepo := repo.NewProjectRepo(pool)
	projectSvc := service.NewProjectService(projectRepo, service.NewScheduleService(), service.NewFolderService())
	journeySvc := service.NewJourneyService(transitClient, store, classifier)
	attestationSvc := service.NewAttestationService(logger)
	renderer := pdf.NewRenderer(cfg.StaticDir, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	handler.NewServer(projectSvc, journeySvc, attestationSvc, renderer).Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion.
	// PDF generation is the slowest endpoint; 30s of write headroom covers it.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
