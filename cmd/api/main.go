// Command api runs the LMS backend consumed by the administrative
// front-end.
//
// @title        MKA LMS API
// @version      1.0
// @description  User provisioning and account management for the MKA LMS.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/mka-platform/lms-api/docs"
	"github.com/mka-platform/lms-api/internal/api"
	"github.com/mka-platform/lms-api/internal/infrastructure/config"
	"github.com/mka-platform/lms-api/internal/infrastructure/db/postgres"
	redisdb "github.com/mka-platform/lms-api/internal/infrastructure/db/redis"
	"github.com/mka-platform/lms-api/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "lms-api",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed ping is not fatal: the API starts in degraded mode and
	// serves user creation, listing and deletion from the fallback cache
	// until the database comes back.
	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if pool == nil {
		log.Fatal().Err(err).Msg("invalid postgres configuration")
	}
	if err != nil {
		log.Warn().Err(err).Msg("postgres unreachable at startup, continuing in degraded mode")
	}
	defer pool.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, pool, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
