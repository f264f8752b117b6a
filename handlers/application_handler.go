package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/models"
	"github.com/anjiri1684/job_portal/notifications"
	"github.com/anjiri1684/job_portal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	service *services.ApplicationService
}

func NewApplicationHandler(service *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply admits the caller's application for a job. Jobs with an application
// fee answer 402 until the ledger holds a successful payment, so the client
// knows to start the payment flow instead of treating it as a dead end.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	applicantID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user token", "success": false})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid job ID format", "success": false})
	}

	application, err := h.service.Apply(c.Context(), jobID, applicantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found", "success": false})
		case errors.Is(err, services.ErrPaymentRequired):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "Application fee payment required", "success": false})
		case errors.Is(err, services.ErrAlreadyApplied):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "You have already applied for this job", "success": false})
		}
		log.Printf("🔥 Failed to admit application for job %s: %v", jobID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to apply for job", "success": false})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Job applied successfully.",
		"application": application,
		"success":     true,
	})
}

func GetAppliedJobs(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	applicantID := claims["user_id"].(string)

	var applications []models.Application
	err := database.DB.
		Preload("Job").
		Preload("Job.Company").
		Where("applicant_id = ?", applicantID).
		Order("created_at desc").
		Find(&applications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(fiber.Map{"applications": applications, "success": true})
}

func GetApplicants(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID := claims["user_id"].(string)

	jobID := c.Params("jobId")

	var job models.Job
	if err := database.DB.First(&job, "id = ? AND created_by_id = ?", jobID, recruiterID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found.", "success": false})
	}

	var applications []models.Application
	err := database.DB.
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&applications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applicants"})
	}

	return c.JSON(fiber.Map{"applications": applications, "success": true})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func UpdateApplicationStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID := claims["user_id"].(string)

	applicationID := c.Params("applicationId")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.Application
	err := database.DB.
		Preload("Job").
		Preload("Applicant").
		First(&application, "id = ?", applicationID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Application not found.", "success": false})
	}

	if application.Job.CreatedByID.String() != recruiterID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: not your job posting"})
	}

	application.Status = req.Status
	if err := database.DB.Save(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}

	go notifications.SendEmail(
		application.Applicant.FullName,
		application.Applicant.Email,
		"Application Status Updated",
		"<h1>Application Update</h1><p>Your application for <strong>"+application.Job.Title+"</strong> has been <strong>"+req.Status+"</strong>.</p>",
	)

	return c.JSON(fiber.Map{"message": "Status updated successfully.", "success": true})
}
