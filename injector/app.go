package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reportdesk/reportdesk-core/internal/app/deliveries"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
)

// Application represents the main application container for reportdesk-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	ManagerHandler      *deliveries.ManagerHandler
	NotificationHandler *deliveries.NotificationHandler
	AdminHandler        *deliveries.AdminHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	// Auth endpoints with stricter rate limit
	authGroup := router.Group("/auth")
	authGroup.Use(app.RateLimitMiddleware.LimitByIP(middlewares.AuthLimit))

	// Authenticated endpoints with user-based rate limit
	for _, prefix := range []string{"/manager", "/notifications", "/admin"} {
		group := router.Group(prefix)
		group.Use(app.RateLimitMiddleware.LimitByUser(middlewares.AuthenticatedAPILimit))
	}

	// Register all handlers
	app.HealthHandler.RegisterRoutes(router)
	app.AuthHandler.RegisterRoutes(router)
	app.ManagerHandler.RegisterRoutes(router)
	app.NotificationHandler.RegisterRoutes(router)
	app.AdminHandler.RegisterRoutes(router)
}
