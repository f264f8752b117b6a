package routes

import (
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func JobRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	job := api.Group("/job", middleware.Protected())
	job.Get("", handlers.GetAllJobs)
	job.Get("/:jobId", handlers.GetJobByID)

	recruiterJob := api.Group("/job", middleware.Protected(), middleware.RecruiterRequired())
	recruiterJob.Post("/post", handlers.PostJob)
	recruiterJob.Get("/recruiter/mine", handlers.GetRecruiterJobs)
}
