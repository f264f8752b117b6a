package handlers

import (
	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const defaultApplicationFee = 10

type PostJobRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Requirements    string   `json:"requirements" validate:"required"`
	Salary          float64  `json:"salary" validate:"required,gt=0"`
	Location        string   `json:"location" validate:"required"`
	JobType         string   `json:"job_type" validate:"required"`
	ExperienceLevel int      `json:"experience_level" validate:"required,gte=0"`
	Position        int      `json:"position" validate:"required,gt=0"`
	CompanyID       string   `json:"company_id" validate:"required,uuid"`
	ApplicationFee  *float64 `json:"application_fee,omitempty" validate:"omitempty,gte=0"`
}

func PostJob(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID, _ := uuid.Parse(claims["user_id"].(string))

	var req PostJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	companyID, _ := uuid.Parse(req.CompanyID)
	var company models.Company
	if err := database.DB.First(&company, "id = ? AND created_by_id = ?", companyID, recruiterID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	fee := float64(defaultApplicationFee)
	if req.ApplicationFee != nil {
		fee = *req.ApplicationFee
	}

	job := models.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Salary:          req.Salary,
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Position:        req.Position,
		ApplicationFee:  fee,
		CompanyID:       companyID,
		CreatedByID:     recruiterID,
	}
	if err := database.DB.Create(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job"})
	}

	database.DB.Preload("Company").First(&job, "id = ?", job.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New job created successfully.",
		"job":     job,
		"success": true,
	})
}

func GetAllJobs(c *fiber.Ctx) error {
	keyword := c.Query("keyword", "")

	var jobs []models.Job
	query := database.DB.Preload("Company").Order("created_at desc")
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if err := query.Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch jobs"})
	}

	return c.JSON(fiber.Map{"jobs": jobs, "success": true})
}

func GetJobByID(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job ID format"})
	}

	var job models.Job
	if err := database.DB.Preload("Company").Preload("Applications").First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found.", "success": false})
	}

	return c.JSON(fiber.Map{"job": job, "success": true})
}

func GetRecruiterJobs(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID := claims["user_id"].(string)

	var jobs []models.Job
	if err := database.DB.Preload("Company").Where("created_by_id = ?", recruiterID).Order("created_at desc").Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch jobs"})
	}

	return c.JSON(fiber.Map{"jobs": jobs, "success": true})
}
