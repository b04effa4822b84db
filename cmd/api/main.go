package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motorpool/vehicle-registry/internal/api"
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/service"
	mongodb "github.com/motorpool/vehicle-registry/internal/infrastructure/db/mongo"
	redisdb "github.com/motorpool/vehicle-registry/internal/infrastructure/db/redis"
	"github.com/motorpool/vehicle-registry/internal/infrastructure/directory"
	"github.com/motorpool/vehicle-registry/internal/infrastructure/queue"
	"github.com/motorpool/vehicle-registry/internal/pkg/config"
	"github.com/motorpool/vehicle-registry/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	vehicleRepo := mongodb.NewVehicleRepository(db)
	if err := vehicleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create vehicle indexes")
	}
	eventRepo := mongodb.NewEventRepository(db)

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Credential directory (immutable after this point) ---
	dir, err := directory.New([]directory.Seed{
		{Username: "admin", Password: cfg.Seed.AdminPassword, Role: domain.RoleAdmin},
		{Username: "usuario", Password: cfg.Seed.UserPassword, Role: domain.RoleUser},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build credential directory")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(dir, tokens, throttle, log)

	auditService := service.NewAuditService(eventRepo, log)
	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(ctx)

	vehicleService := service.NewVehicleService(vehicleRepo, dispatcher, log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		VehicleService: vehicleService,
		Tokens:         tokens,
		Events:         eventRepo,
		Mongo:          db,
		Redis:          rdb,
		Logger:         log,
		Version:        config.Version,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("vehicle registry listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
