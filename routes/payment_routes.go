package routes

import (
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler) {
	api := app.Group("/api/v1")

	payment := api.Group("/payment", middleware.Protected())
	payment.Post("/create-order", h.CreateOrder)
	payment.Post("/verify", h.VerifyPayment)
}
