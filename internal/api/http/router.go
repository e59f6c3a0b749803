package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biletfinder/ticketing-service/internal/api/http/handlers"
	"github.com/biletfinder/ticketing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Trips          *handlers.TripsHandler
	Tickets        *handlers.TicketsHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)

	app.Get("/trips", cfg.Trips.SearchTrips)
	app.Get("/trips/:id", cfg.Trips.GetTrip)
	app.Get("/trips/:id/seats", cfg.Trips.ListSeats)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/cancel", cfg.Tickets.CancelTicket)
	tickets.Post("/:id/transfer", cfg.Tickets.TransferTicket)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("", cfg.Notifications.ListNotifications)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
}
