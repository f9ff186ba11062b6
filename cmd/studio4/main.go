package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/David2024patton/studio4-dance/cmd/docs"
	"github.com/David2024patton/studio4-dance/internal/adapters/events"
	"github.com/David2024patton/studio4-dance/internal/adapters/gemini"
	"github.com/David2024patton/studio4-dance/internal/adapters/session"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/David2024patton/studio4-dance/internal/core/services"
	"github.com/David2024patton/studio4-dance/internal/handlers"
	"github.com/David2024patton/studio4-dance/internal/middleware"
	"github.com/David2024patton/studio4-dance/internal/platform/config"
	"github.com/David2024patton/studio4-dance/internal/repositories/database/pgsql"
	"github.com/David2024patton/studio4-dance/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Studio4 Dance API
// @version 1.0
// @description Backend API for the Studio4 Dance Co studio management platform.

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

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionStore := buildSessionStore(cfg, logger)
	publisher := buildLedgerPublisher(cfg, logger)
	if closer, ok := publisher.(*events.KafkaPublisher); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				logger.Error("Error closing Kafka writer", slog.String("error", cerr.Error()))
			}
		}()
	}

	generator := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)

	repos := pgsql.NewRepositoryContainer(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, generator, sessionStore, publisher)

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server exited.")
}

// runMigrations applies pending schema migrations over a short-lived
// database/sql connection so the pgx pool stays untouched.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		m.Close()
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildSessionStore prefers Redis when configured so chat sessions survive
// restarts; otherwise falls back to the bounded in-memory store.
func buildSessionStore(cfg *config.Config, logger *slog.Logger) portssvc.ChatSessionStore {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-memory chat session store")
		return session.NewMemoryStore(cfg.ChatSessionTTL, cfg.ChatSessionMax)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory chat session store",
			slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		return session.NewMemoryStore(cfg.ChatSessionTTL, cfg.ChatSessionMax)
	}

	logger.Info("Using Redis chat session store", slog.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(client, cfg.ChatSessionTTL)
}

// buildLedgerPublisher wires the Kafka transaction stream when brokers are
// configured; the noop publisher keeps billing working without one.
func buildLedgerPublisher(cfg *config.Config, logger *slog.Logger) portssvc.LedgerEventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NoopPublisher{}
	}
	logger.Info("Publishing ledger events to Kafka",
		slog.String("topic", cfg.KafkaTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}
