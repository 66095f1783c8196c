package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/adapters/backendapi"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/handlers"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/platform/config"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/repositories/database/pgsql"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/repositories/memory"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/JuanseMastrangelo/asset-movements-console/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	connector, err := backendapi.NewConnector(backendapi.Config{
		BaseURL:           cfg.BackendBaseURL,
		Timeout:           cfg.BackendTimeout,
		RequestsPerSecond: cfg.BackendRPS,
		Burst:             cfg.BackendBurst,
	}, cfg.JWTExpiryDuration)
	if err != nil {
		return fmt.Errorf("failed to create backend connector: %w", err)
	}

	var repos portsrepo.RepositoryProvider
	if cfg.EnableAuditJournal {
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
		dbPool, err := database.NewPgxPool(ctx, database.PoolConfig{URL: cfg.DatabaseURL}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database pool: %w", err)
		}
		defer database.ClosePgxPool(dbPool, logger)
		repos = pgsql.NewRepositoryProvider(dbPool, connector)
	} else {
		logger.Info("Audit journal database disabled, keeping wizard events in memory")
		repos = memory.NewRepositoryProvider(cfg.WizardSessionTTL, connector)
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, analytics)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, analytics)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.BackendBaseURL))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}
