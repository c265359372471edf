// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/reading-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/reading-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	bookController   *controller.BookController
	entryController  *controller.ReadingEntryController
	goalController   *controller.GoalController
	statsController  *controller.StatsController
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	bookController *controller.BookController,
	entryController *controller.ReadingEntryController,
	goalController *controller.GoalController,
	statsController *controller.StatsController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		bookController:   bookController,
		entryController:  entryController,
		goalController:   goalController,
		statsController:  statsController,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.loginRateLimiter.Middleware(), r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// Book catalog routes (require authentication)
		if r.bookController != nil && r.authMiddleware != nil {
			books := v1.Group("/books")
			books.Use(r.authMiddleware.Authenticate())
			{
				books.GET("", r.bookController.List)
				books.POST("", r.bookController.Create)
				books.GET("/search", r.bookController.Search)
				books.GET("/:id", r.bookController.Get)
			}
		}

		// Reading entry routes (require authentication)
		if r.entryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/entries")
			entries.Use(r.authMiddleware.Authenticate())
			{
				entries.GET("", r.entryController.List)
				entries.POST("", r.entryController.Create)
				entries.PUT("/:id/status", r.entryController.ChangeStatus)
				entries.PUT("/:id/page", r.entryController.UpdatePage)
				entries.PUT("/:id/review", r.entryController.Review)
				entries.GET("/:id/history", r.entryController.History)
				entries.DELETE("/:id", r.entryController.Delete)
			}
		}

		// Goal routes (require authentication)
		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.POST("/:id/sync", r.goalController.Sync)
				goals.PUT("/:id/progress", r.goalController.Override)
			}
		}

		// Stats routes (require authentication)
		if r.statsController != nil && r.authMiddleware != nil {
			stats := v1.Group("/stats")
			stats.Use(r.authMiddleware.Authenticate())
			{
				stats.GET("", r.statsController.Get)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
