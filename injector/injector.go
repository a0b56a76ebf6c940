//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/reportdesk/reportdesk-core/internal/app/deliveries"
	"github.com/reportdesk/reportdesk-core/internal/app/middlewares"
	"github.com/reportdesk/reportdesk-core/internal/app/services"
	"github.com/reportdesk/reportdesk-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("reportdesk"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewIdentityService,
	services.NewUserService,
	services.NewReportService,
	services.NewAuditService,
	services.NewNotificationService,
	services.NewReviewService,
	services.NewDashboardService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewManagerHandler,
	deliveries.NewNotificationHandler,
	deliveries.NewAdminHandler,
	wire.Struct(new(Application), "*"), // This tells Wire to build the Application struct
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil // Wire will populate the Application struct based on handlerSet
}
