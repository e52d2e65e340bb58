package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/database"
	"github.com/srsedu/registrar-backend/internal/handler"
	"github.com/srsedu/registrar-backend/internal/logger"
	"github.com/srsedu/registrar-backend/internal/middleware"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
	"github.com/srsedu/registrar-backend/internal/router"
	"github.com/srsedu/registrar-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("env", cfg.AppEnv).
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("db_driver", cfg.DBDriver).
		Msg("Starting SRS registrar backend")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET not set, using the development default")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to the principal store ────────────────────────────────
	repo, closeRepo, err := repository.OpenPrincipalRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer closeRepo()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Services ──────────────────────────────────────────
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(repo, hasher, tokens, log)
	principalService := service.NewPrincipalService(repo, hasher, log)

	// ─── Login rate limiter ───────────────────────────────────────────
	var limiter middleware.Limiter
	switch {
	case cfg.LoginRateLimit <= 0:
		log.Info().Msg("Login rate limit disabled")
	case rdb != nil:
		limiter = middleware.NewRedisLimiter(rdb, cfg.LoginRateLimit, time.Minute)
	default:
		limiter = middleware.NewMemoryLimiter(ctx, cfg.LoginRateLimit, time.Minute)
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, log),
		Admins:   handler.NewPrincipalHandler(model.RoleAdmin, principalService, log),
		Teachers: handler.NewPrincipalHandler(model.RoleTeacher, principalService, log),
		Health:   handler.NewHealthHandler(repo, rdb),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Verifier:     authService,
		LoginLimiter: limiter,
		Log:          log,
	}, handlers, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// Stops the in-memory limiter's cleanup loop.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
