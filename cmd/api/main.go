// Package main is the entry point for the Reading Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/reading-tracker/backend/config"
	"github.com/reading-tracker/backend/internal/application/usecase/goal"
	"github.com/reading-tracker/backend/internal/infra/db"
	"github.com/reading-tracker/backend/internal/infra/dependency"
	"github.com/reading-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Reading Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetTokenModel{},
		&model.BookModel{},
		&model.ReadingEntryModel{},
		&model.StatusTransitionModel{},
		&model.GoalModel{},
		&model.ProgressAuditModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Wire application dependencies
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	injector, err := dependency.NewInjector(rootCtx, cfg, database.DB())
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Periodically expire goals whose deadline has passed
	go runGoalExpiryLoop(rootCtx, injector.ExpireGoals, cfg.Goals.ExpiryCheckInterval)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	cancelRoot()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// runGoalExpiryLoop marks past-deadline unmet goals as expired on a fixed
// interval until ctx is cancelled. One pass runs immediately at startup so a
// restart does not leave stale goals active for a full interval.
func runGoalExpiryLoop(ctx context.Context, expireGoals *goal.ExpireGoalsUseCase, interval time.Duration) {
	runExpiryPass(ctx, expireGoals)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runExpiryPass(ctx, expireGoals)
		}
	}
}

func runExpiryPass(ctx context.Context, expireGoals *goal.ExpireGoalsUseCase) {
	output, err := expireGoals.Execute(ctx, goal.ExpireGoalsInput{})
	if err != nil {
		slog.Error("Goal expiry pass failed", "error", err)
		return
	}
	if len(output.ExpiredGoalIDs) > 0 {
		slog.Info("Expired goals past their deadline", "count", len(output.ExpiredGoalIDs))
	}
}
