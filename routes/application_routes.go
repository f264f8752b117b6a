package routes

import (
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func ApplicationRoutes(app *fiber.App, h *handlers.ApplicationHandler) {
	api := app.Group("/api/v1")

	application := api.Group("/application", middleware.Protected())
	application.Get("/apply/:jobId", h.Apply)
	application.Get("/mine", handlers.GetAppliedJobs)

	recruiterApplication := api.Group("/application", middleware.Protected(), middleware.RecruiterRequired())
	recruiterApplication.Get("/:jobId/applicants", handlers.GetApplicants)
	recruiterApplication.Post("/status/:applicationId/update", handlers.UpdateApplicationStatus)
}
