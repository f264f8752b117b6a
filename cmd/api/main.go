package main

import (
	"log"
	"time"

	config "github.com/anjiri1684/job_portal/configs"
	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/handlers"
	"github.com/anjiri1684/job_portal/jobs"
	"github.com/anjiri1684/job_portal/notifications"
	"github.com/anjiri1684/job_portal/payments"
	"github.com/anjiri1684/job_portal/routes"
	"github.com/anjiri1684/job_portal/services"
	"github.com/anjiri1684/job_portal/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	currency := config.Config("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}

	store := database.NewStore(database.DB)
	razorpay := payments.NewRazorpayClient(config.Config("RAZORPAY_KEY_ID"), config.Config("RAZORPAY_KEY_SECRET"))
	mailer := notifications.AsyncMailer{}

	paymentService := services.NewPaymentService(store, razorpay, config.Config("RAZORPAY_KEY_SECRET"), currency, mailer, services.PDFReceiptService{})
	applicationService := services.NewApplicationService(store, mailer, websocket.Hub{})

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.ExpireStalePayments)
	go c.Start()
	log.Println("✅ Cron job for stale payment cleanup scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Job Portal",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Job Portal API",
		})
	})

	routes.AuthRoutes(app)
	routes.CompanyRoutes(app)
	routes.JobRoutes(app)
	routes.ApplicationRoutes(app, handlers.NewApplicationHandler(applicationService))
	routes.PaymentRoutes(app, handlers.NewPaymentHandler(paymentService))
	routes.UploadRoutes(app)
	routes.NotificationRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
