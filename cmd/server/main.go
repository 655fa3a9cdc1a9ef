package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadstack/qcatalog-backend/internal/config"
	"github.com/acadstack/qcatalog-backend/internal/handler"
	"github.com/acadstack/qcatalog-backend/internal/logger"
	"github.com/acadstack/qcatalog-backend/internal/router"
	"github.com/acadstack/qcatalog-backend/internal/service"
	"github.com/acadstack/qcatalog-backend/internal/storage"
	"github.com/acadstack/qcatalog-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("storage", cfg.StorageDriver).
		Msg("Starting QCatalog Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize Persistence Gateway ────────────────────────────────
	var gateway storage.Gateway
	switch cfg.StorageDriver {
	case "postgres":
		pg, err := storage.NewPostgresGateway(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pg.Close()
		gateway = pg
	case "redis":
		rd, err := storage.NewRedisGateway(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rd.Close()
		gateway = rd
	case "file":
		gateway = storage.NewFileGateway(cfg.DataFile, log)
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("Unknown storage driver")
	}

	// ─── Initialize Catalog Service ────────────────────────────────────
	// Loads the document once and bootstraps an empty catalog on first run.
	catalog, err := service.NewCatalogService(ctx, gateway, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog document")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Branch:   handler.NewBranchHandler(catalog),
		Semester: handler.NewSemesterHandler(catalog),
		Subject:  handler.NewSubjectHandler(catalog),
		Question: handler.NewQuestionHandler(catalog),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
