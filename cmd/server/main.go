package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gestionale/gestionale/config"
	"github.com/gestionale/gestionale/internal/access"
	"github.com/gestionale/gestionale/internal/analytics"
	"github.com/gestionale/gestionale/internal/api"
	"github.com/gestionale/gestionale/internal/api/handlers"
	"github.com/gestionale/gestionale/internal/core/identity"
	"github.com/gestionale/gestionale/internal/core/record"
	"github.com/gestionale/gestionale/internal/core/registry"
	"github.com/gestionale/gestionale/internal/core/validation"
	"github.com/gestionale/gestionale/internal/logging"
	"github.com/gestionale/gestionale/internal/query"
	"github.com/gestionale/gestionale/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatalf("JWT_SECRET environment variable is required")
	}

	logger := logging.NewLogger(cfg.Log)

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.Info("connected to database")

	// Record types are fixed at startup: the registry, not the store, is
	// the source of truth for which fields exist per type.
	reg := registry.Builtin()

	identityRepo := identity.NewRepository(db)
	recordRepo := record.NewRepository(db)

	identityService := identity.NewService(identityRepo, &cfg.JWT)
	validator := validation.NewValidator()
	recordService := record.NewService(recordRepo, reg, validator)

	decider := access.NewRoleDecider()
	lister := query.NewLister(reg, recordRepo, decider, identityService)
	analyticsService := analytics.NewService(reg, recordRepo, decider)

	authHandler := handlers.NewAuthHandler(identityService)
	registryHandler := handlers.NewRegistryHandler(reg)
	recordHandler := handlers.NewRecordHandler(recordService, lister)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	router := api.NewRouter(
		identityService,
		authHandler,
		registryHandler,
		recordHandler,
		analyticsHandler,
		logger,
	)

	engine := router.Setup(cfg.Server.Mode)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")
		db.Close()
		os.Exit(0)
	}()

	logger.Info("starting server", "port", cfg.Server.Port)
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
