package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldops/atm-visit-service/internal/api/http/handlers"
	"github.com/fieldops/atm-visit-service/internal/auth"
	"github.com/fieldops/atm-visit-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Users       *handlers.UsersHandler
	Submissions *handlers.SubmissionsHandler
	Stats       *handlers.StatsHandler
	Admin       *handlers.AdminHandler
	AuthGate    *auth.Middleware
	RateLimiter *RateLimiter
}

// RegisterRoutes wires HTTP routes. Health probes register ahead of the rate
// limiter so orchestrator checks are never throttled.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Handle)
	}

	protected := api.Group("", cfg.AuthGate.Handle)
	protected.Get("/user/profile", cfg.Users.Profile)

	protected.Post("/submissions", auth.RequireRole(domain.RoleAgent), cfg.Submissions.Create)
	protected.Get("/submissions/my", cfg.Submissions.ListMine)
	protected.Get("/submissions", auth.RequireRole(domain.RoleManager), cfg.Submissions.ListAll)

	protected.Get("/stats", auth.RequireRole(domain.RoleManager), cfg.Stats.Overview)

	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Put("/users/role", cfg.Admin.UpdateRole)
}
