package router

import (
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	v1.Post("/checkout", validate.Checkout(), handler.Checkout)
	v1.Get("/payments/verify", handler.VerifyPayment)
	v1.Get("/purchases/:reference", handler.GetPurchase)
	v1.Get("/banks", handler.GetBanks)

	event := v1.Group("/events")
	event.Get("/", handler.GetEvents)
	event.Get("/:slug", handler.GetEventBySlug)
	event.Post("/", middleware.Protected(), middleware.RequireOrganizer(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), middleware.RequireOrganizer(), validate.GetById("eventId"), validate.EditEvent(), handler.EditEvent)
	event.Post("/:eventId/ticket-types", middleware.Protected(), middleware.RequireOrganizer(), validate.GetById("eventId"), validate.CreateTicketType(), handler.CreateTicketType)

	ticket := v1.Group("/tickets")
	ticket.Post("/:code/checkin", middleware.Protected(), middleware.RequireOrganizer(), handler.CheckInTicket)

	// Server-to-server push from the gateway; authenticated by body
	// signature, not by session.
	app.Post("/paystack/webhook", handler.PaystackWebhook)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
