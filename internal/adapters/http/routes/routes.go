package routes

import (
	"creditdesk/internal/adapters/http/handlers"
	"creditdesk/internal/adapters/http/middleware"
	"creditdesk/internal/adapters/persistence/repositories"
	"creditdesk/internal/config"
	"creditdesk/internal/core/scoring"
	"creditdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	requestRepo := repositories.NewLoanRequestRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	loanService := services.NewLoanService(loanRepo, requestRepo, userRepo, scoring.NewDefaultScorer())
	requestService := services.NewLoanRequestService(requestRepo, loanRepo, userRepo)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	loanHandler := handlers.NewLoanHandler(loanService)
	requestHandler := handlers.NewLoanRequestHandler(requestService)
	userHandler := handlers.NewUserHandler(authService, loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Root & health
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/health/db", healthHandler.DatabaseCheck)

	// Swagger (dev only)
	if cfg.IsDev() {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	api := app.Group("/api/v1")

	// Auth (rate limited)
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// Authenticated routes
	authed := api.Group("", middleware.AuthMiddleware(cfg))

	// Users
	authed.Get("/users/me", userHandler.Me)
	authed.Get("/users/me/credit-history", userHandler.CreditHistory)

	// Loans
	authed.Post("/loans", loanHandler.Create)
	authed.Get("/loans/me", loanHandler.ListMine)
	authed.Post("/loans/:id/pay", loanHandler.Pay)
	authed.Get("/loans", middleware.AdminOnly(), loanHandler.List)
	authed.Post("/loans/check", middleware.AdminOnly(), loanHandler.Check)
	authed.Delete("/loans/:id", middleware.AdminOnly(), loanHandler.Delete)

	// Loan requests (review surface, admin only)
	requests := authed.Group("/loan-requests", middleware.AdminOnly())
	requests.Get("/", requestHandler.List)
	requests.Get("/unsolved", requestHandler.ListUnsolved)
	requests.Get("/:id/suggestion", requestHandler.Suggestion)
	requests.Post("/:id/solve", requestHandler.Solve)
	requests.Post("/:id/reject", requestHandler.Reject)
	requests.Delete("/:id", requestHandler.Delete)

	// Dashboard (admin only)
	authed.Get("/dashboard", middleware.AdminOnly(), dashboardHandler.Dashboard)
}
