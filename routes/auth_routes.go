package routes

import (
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	user := api.Group("/user")
	user.Post("/register", handlers.RegisterUser)
	user.Post("/login", handlers.LoginUser)
	user.Get("/verify/:token", handlers.VerifyEmail)
	user.Post("/forgot-password", handlers.ForgotPassword)
	user.Post("/reset-password", handlers.ResetPassword)

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Patch("", handlers.UpdateProfile)
}
