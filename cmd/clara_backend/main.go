package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campbellchri/clara-backend/internal/core/services"
	"github.com/campbellchri/clara-backend/internal/dto"
	"github.com/campbellchri/clara-backend/internal/handlers"
	"github.com/campbellchri/clara-backend/internal/middleware"
	"github.com/campbellchri/clara-backend/internal/platform/config"
	"github.com/campbellchri/clara-backend/internal/policy"
	"github.com/campbellchri/clara-backend/internal/repositories/cache"
	"github.com/campbellchri/clara-backend/internal/repositories/database/pgsql"
	"github.com/campbellchri/clara-backend/pkg/database"
	"github.com/campbellchri/clara-backend/pkg/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Clara Backend API
// @version 1.0
// @description Claim preparation service for therapy practices.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:           "clara_backend",
		Short:         "Therapy claim preparation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(migrateCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	var skipMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !skipMigrations {
				if err := runMigrations(logger, cfg, true); err != nil {
					return err
				}
			}
			return runServer(cmd.Context(), logger, cfg)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Start without applying pending migrations")
	return cmd
}

func migrateCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runMigrations(logger, cfg, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runMigrations(logger, cfg, false)
		},
	})
	return cmd
}

// runMigrations applies every pending migration when up is true, otherwise it rolls back one step.
func runMigrations(logger *slog.Logger, cfg *config.Config, up bool) error {
	logger.Info("Running database migrations...", slog.Bool("up", up))

	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if up {
		err = m.Up()
	} else {
		err = m.Steps(-1)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Check for dirty migrations after running.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connection established.")
	}

	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register request validators: %w", err)
	}

	policyEngine, err := policy.NewDefaultEngine(ctx)
	if err != nil {
		return fmt.Errorf("failed to load authorization policy: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	if len(cfg.ExtraPayers) > 0 {
		added, err := repos.PayerRepo.EnsurePayers(ctx, cfg.ExtraPayers)
		if err != nil {
			return err
		}
		logger.Info("Payer registry extended", slog.Int64("added", added))
	}
	serviceContainer := services.NewServiceContainer(cfg, repos, policyEngine)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}

	var idempotencyStore middleware.IdempotencyStore = cache.NewMemoryIdempotencyStore()
	if redisClient != nil {
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, tracing, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.Tracing(cfg.ServiceName),
		gin.Recovery(),
		middleware.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer,
		handlers.WithRateLimiter(rateLimiter),
		handlers.WithIdempotencyStore(idempotencyStore, cfg.IdempotencyTTL),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
