// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reading-tracker/backend/config"
	"github.com/reading-tracker/backend/internal/application/adapter"
	"github.com/reading-tracker/backend/internal/application/usecase/auth"
	"github.com/reading-tracker/backend/internal/application/usecase/book"
	"github.com/reading-tracker/backend/internal/application/usecase/goal"
	"github.com/reading-tracker/backend/internal/application/usecase/progress"
	"github.com/reading-tracker/backend/internal/application/usecase/reading"
	"github.com/reading-tracker/backend/internal/application/usecase/stats"
	"github.com/reading-tracker/backend/internal/infra/server/router"
	"github.com/reading-tracker/backend/internal/integration/adapters"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/reading-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	ExpireGoals *goal.ExpireGoalsUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	bookRepo := persistence.NewBookRepository(db)
	entryRepo := persistence.NewReadingEntryRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	auditRepo := persistence.NewProgressAuditRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = adapters.NewResendEmailSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY not set, password reset emails will be logged instead of sent")
	}

	searchService, err := adapters.NewGoogleBooksService(ctx, cfg.Books.GoogleAPIKey)
	if err != nil {
		return nil, err
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailSender, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	// Create book use cases
	addBookUseCase := book.NewAddBookUseCase(bookRepo)
	getBookUseCase := book.NewGetBookUseCase(bookRepo)
	listBooksUseCase := book.NewListBooksUseCase(bookRepo)
	searchBooksUseCase := book.NewSearchBooksUseCase(searchService)

	// Create progress use cases
	recordCompletionUseCase := progress.NewRecordCompletionUseCase(goalRepo, auditRepo)
	reverseCompletionUseCase := progress.NewReverseCompletionUseCase(goalRepo, auditRepo)
	syncGoalUseCase := progress.NewSyncGoalProgressUseCase(goalRepo, entryRepo)
	overrideProgressUseCase := progress.NewOverrideProgressUseCase(goalRepo)

	// Create reading entry use cases
	addEntryUseCase := reading.NewAddEntryUseCase(entryRepo, bookRepo)
	changeStatusUseCase := reading.NewChangeStatusUseCase(entryRepo, bookRepo, recordCompletionUseCase, reverseCompletionUseCase)
	updatePageUseCase := reading.NewUpdatePageUseCase(entryRepo, bookRepo)
	reviewEntryUseCase := reading.NewReviewEntryUseCase(entryRepo)
	removeEntryUseCase := reading.NewRemoveEntryUseCase(entryRepo, reverseCompletionUseCase)
	listEntriesUseCase := reading.NewListEntriesUseCase(entryRepo)
	getHistoryUseCase := reading.NewGetHistoryUseCase(entryRepo)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, auditRepo)
	expireGoalsUseCase := goal.NewExpireGoalsUseCase(goalRepo)

	// Create stats use case
	readingStatsUseCase := stats.NewReadingStatsUseCase(entryRepo, bookRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	bookController := controller.NewBookController(
		addBookUseCase,
		getBookUseCase,
		listBooksUseCase,
		searchBooksUseCase,
	)

	entryController := controller.NewReadingEntryController(
		addEntryUseCase,
		changeStatusUseCase,
		updatePageUseCase,
		reviewEntryUseCase,
		removeEntryUseCase,
		listEntriesUseCase,
		getHistoryUseCase,
	)

	goalController := controller.NewGoalController(
		createGoalUseCase,
		getGoalUseCase,
		listGoalsUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		syncGoalUseCase,
		overrideProgressUseCase,
	)

	statsController := controller.NewStatsController(readingStatsUseCase)

	// Create middleware
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, "auth:login", 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient, "auth:login")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		bookController,
		entryController,
		goalController,
		statsController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		ExpireGoals: expireGoalsUseCase,
	}, nil
}
