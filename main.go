package main

import (
	"context"
	"log"

	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/controllers"
	"github.com/kendall-kelly/shower-configurator-api/logging"
	"github.com/kendall-kelly/shower-configurator-api/routes"
	"github.com/kendall-kelly/shower-configurator-api/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.GoEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("Starting Shower Configurator API server...", zap.String("env", cfg.GoEnv))

	if err := setup(context.Background(), cfg); err != nil {
		logger.Fatal("Startup failed", zap.Error(err))
	}

	router := routes.NewRouter(cfg, logger)

	port := ":" + cfg.Port
	logger.Info("Server is running", zap.String("addr", "http://localhost"+port))
	if err := router.Run(port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// setup connects and migrates the database, initializes image storage and ensures the
// initial admin account when one is configured
func setup(ctx context.Context, cfg *config.Config) error {
	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}

	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		return err
	}
	zap.L().Info("Database migration completed successfully")

	if _, err := services.InitImageService(ctx, cfg); err != nil {
		return err
	}

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		created, err := services.NewAuthService(db, controllers.TokenConfig(cfg)).
			EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			zap.L().Info("Initial admin created", zap.String("username", cfg.AdminUsername))
		}
	}
	return nil
}
