package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deckflow-admin/internal/api/http/handlers"
	"github.com/spec-kit/deckflow-admin/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Requests       *handlers.RequestsHandler
	Notifications  *handlers.NotificationsHandler
	Payments       *handlers.PaymentsHandler
	Packages       *handlers.PackagesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)
	app.Post("/auth/password/change", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Users.ChangePassword)

	requests := app.Group("/requests", cfg.AuthMiddleware.Handle)
	requests.Post("", auth.RequireCustomer(), cfg.Requests.CreateRequest)
	requests.Get("", auth.RequireAdmin(), cfg.Requests.ListRequests)
	requests.Get("/:requestId", auth.RequireRole(), cfg.Requests.GetRequest)
	requests.Put("/:requestId", auth.RequireAdmin(), cfg.Requests.ReviewRequest)

	decks := app.Group("/decks", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	decks.Get("/notifications", cfg.Notifications.DeckNotifications)

	payments := app.Group("/payments", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	payments.Get("/payouts/latest", cfg.Payments.PendingPayouts)
	payments.Get("/payouts/history", cfg.Payments.PayoutHistory)
	payments.Post("/payouts/reject", cfg.Payments.RejectPayout)
	payments.Get("/revenue/monthly", cfg.Payments.MonthlyRevenue)
	payments.Get("/revenue/quarterly", cfg.Payments.QuarterlyRevenue)
	payments.Get("/revenue/total", cfg.Payments.TotalRevenue)
	payments.Get("/dashboard-packages", cfg.Payments.PackageDistribution)

	packages := app.Group("/packages", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	packages.Get("", cfg.Packages.ListPackages)
	packages.Post("", cfg.Packages.CreatePackage)
	packages.Put("/:packageId", cfg.Packages.UpdatePackage)
	packages.Delete("/:packageId", cfg.Packages.DeletePackage)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	users.Get("/accounts", cfg.Users.ListAccounts)
	users.Get("/account-stats", cfg.Users.AccountStats)
}
