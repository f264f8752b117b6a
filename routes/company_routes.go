package routes

import (
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func CompanyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	company := api.Group("/company", middleware.Protected())
	company.Get("/:companyId", handlers.GetCompanyByID)

	recruiterCompany := api.Group("/company", middleware.Protected(), middleware.RecruiterRequired())
	recruiterCompany.Post("/register", handlers.RegisterCompany)
	recruiterCompany.Get("", handlers.GetMyCompanies)
	recruiterCompany.Put("/:companyId", handlers.UpdateCompany)
}
