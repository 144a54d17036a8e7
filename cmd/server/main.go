package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"braincards/internal/config"
	"braincards/internal/handler"
	"braincards/internal/middleware"
	"braincards/internal/repository"
	"braincards/internal/repository/file"
	"braincards/internal/repository/postgres"
	"braincards/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open category store", zap.Error(err))
	}
	defer closeStore()

	categoryService := service.NewCategoryService(repo, logger)
	h := handler.NewHandler(categoryService, middleware.NewMetrics(), logger)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if !cfg.IsTest() {
			printBanner(logger, cfg.Port)
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to stop server gracefully", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}

// openStore selects the category backend and makes sure it is ready for use
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.CategoryRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := connectDatabase(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Using postgres category store", zap.String("host", cfg.Database.Host))
		return postgres.NewCategoryRepo(db), func() { db.Close() }, nil

	default:
		repo := file.NewCategoryRepo(cfg.StorePath)
		created, err := repo.Ensure(ctx)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file category store",
			zap.String("path", repo.Path()),
			zap.Bool("created", created),
		)
		return repo, func() {}, nil
	}
}

// connectDatabase opens the PostgreSQL connection and checks it with a ping
func connectDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

func printBanner(logger *zap.Logger, port string) {
	logger.Info(fmt.Sprintf("Brain Cards server started. It is available at http://localhost:%s", port))
	logger.Info("Press CTRL+C to stop the server")
	logger.Info("Available methods:")
	logger.Info("GET  /api/category      - list categories")
	logger.Info("GET  /api/category/{id} - get the pairs of a category")
	logger.Info("POST /api/category      - add a category {title: string, pairs?: [[string, string]]}")
}
