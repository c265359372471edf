// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

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
	"github.com/reading-tracker/backend/internal/integration/persistence/model"
	"github.com/reading-tracker/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-secret"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string

	// IDs captured from responses, keyed by a scenario-chosen alias
	capturedIDs map[string]string

	// Infrastructure
	db            *mock.Db
	searchService *fakeSearchService
}

// fakeSearchService is a canned replacement for the external book catalog.
type fakeSearchService struct {
	results []adapter.BookSearchResult
	err     error
}

func (f *fakeSearchService) Search(_ context.Context, _ string, limit int) ([]adapter.BookSearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			capturedIDs:    make(map[string]string),
			searchService:  &fakeSearchService{},
		}

		tc.db = mock.NewDb([]any{
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
			&model.BookModel{},
			&model.ReadingEntryModel{},
			&model.StatusTransitionModel{},
			&model.GoalModel{},
			&model.ProgressAuditModel{},
		})
		if err := tc.db.Reset(); err != nil {
			return ctx, err
		}

		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		tc.engine = buildEngine(tc, redisClient)
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDomainSteps(ctx)
}

// buildEngine wires the full application against the scenario's mocked
// infrastructure.
func buildEngine(tc *TestContext, redisClient *redis.Client) *gin.Engine {
	db := tc.db.DbConn

	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	bookRepo := persistence.NewBookRepository(db)
	entryRepo := persistence.NewReadingEntryRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	auditRepo := persistence.NewProgressAuditRepository(db)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, nil, "http://localhost:5173")
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	addBookUseCase := book.NewAddBookUseCase(bookRepo)
	getBookUseCase := book.NewGetBookUseCase(bookRepo)
	listBooksUseCase := book.NewListBooksUseCase(bookRepo)
	searchBooksUseCase := book.NewSearchBooksUseCase(tc.searchService)

	recordCompletionUseCase := progress.NewRecordCompletionUseCase(goalRepo, auditRepo)
	reverseCompletionUseCase := progress.NewReverseCompletionUseCase(goalRepo, auditRepo)
	syncGoalUseCase := progress.NewSyncGoalProgressUseCase(goalRepo, entryRepo)
	overrideProgressUseCase := progress.NewOverrideProgressUseCase(goalRepo)

	addEntryUseCase := reading.NewAddEntryUseCase(entryRepo, bookRepo)
	changeStatusUseCase := reading.NewChangeStatusUseCase(entryRepo, bookRepo, recordCompletionUseCase, reverseCompletionUseCase)
	updatePageUseCase := reading.NewUpdatePageUseCase(entryRepo, bookRepo)
	reviewEntryUseCase := reading.NewReviewEntryUseCase(entryRepo)
	removeEntryUseCase := reading.NewRemoveEntryUseCase(entryRepo, reverseCompletionUseCase)
	listEntriesUseCase := reading.NewListEntriesUseCase(entryRepo)
	getHistoryUseCase := reading.NewGetHistoryUseCase(entryRepo)

	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, auditRepo)

	readingStatsUseCase := stats.NewReadingStatsUseCase(entryRepo, bookRepo)

	healthController := controller.NewHealthController(func() bool { return true })
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

	loginRateLimiter := middleware.NewRateLimiterWithConfig(redisClient, "test:auth:login", 1000, 1*time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

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

	return r.Setup("test")
}
