package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/http/handlers"
	"github.com/spec-kit/sla-engine/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	SLA            *handlers.SLAHandler
	Rules          *handlers.RulesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/tickets/:id/sla", cfg.SLA.GetTicketSummary)
	app.Get("/escalation/rules", cfg.Rules.List)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	protected.Post("/tickets/:id/evaluate", cfg.SLA.EvaluateTicket)
	protected.Post("/sweep", cfg.SLA.TriggerSweep)
}
