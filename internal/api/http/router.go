package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mini-crm/internal/api/http/handlers"
	"github.com/spec-kit/mini-crm/internal/auth"
	"github.com/spec-kit/mini-crm/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customers      *handlers.CustomersHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Route-level role guards cover coarse
// gating; ownership rules are enforced inside the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	customers := app.Group("/customers", cfg.AuthMiddleware.Handle)
	customers.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Customers.CreateCustomer)
	customers.Get("/", auth.RequireRole(domain.RoleAdmin, domain.RoleEmployee), cfg.Customers.ListCustomers)
	customers.Get("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleEmployee), cfg.Customers.GetCustomer)
	customers.Patch("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Customers.UpdateCustomer)
	customers.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Customers.DeleteCustomer)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Tasks.CreateTask)
	tasks.Get("/", auth.RequireRole(domain.RoleAdmin, domain.RoleEmployee), cfg.Tasks.ListTasks)
	tasks.Patch("/:id/status", auth.RequireRole(domain.RoleAdmin, domain.RoleEmployee), cfg.Tasks.UpdateTaskStatus)
}
