package handlers

import (
	"errors"

	"github.com/anjiri1684/job_portal/database"
	"github.com/anjiri1684/job_portal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterCompanyRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Location    *string `json:"location,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

func RegisterCompany(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID, _ := uuid.Parse(claims["user_id"].(string))

	var req RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	company := models.Company{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		LogoURL:     req.LogoURL,
		CreatedByID: recruiterID,
	}
	if err := database.DB.Create(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A company with this name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register company"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Company registered successfully.",
		"company": company,
		"success": true,
	})
}

func GetMyCompanies(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID := claims["user_id"].(string)

	var companies []models.Company
	if err := database.DB.Where("created_by_id = ?", recruiterID).Find(&companies).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch companies"})
	}

	return c.JSON(fiber.Map{"companies": companies, "success": true})
}

func GetCompanyByID(c *fiber.Ctx) error {
	companyID := c.Params("companyId")
	if _, err := uuid.Parse(companyID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid company ID format"})
	}

	var company models.Company
	if err := database.DB.First(&company, "id = ?", companyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	return c.JSON(fiber.Map{"company": company, "success": true})
}

func UpdateCompany(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	recruiterID := claims["user_id"].(string)

	companyID := c.Params("companyId")

	var company models.Company
	if err := database.DB.First(&company, "id = ? AND created_by_id = ?", companyID, recruiterID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Company not found"})
	}

	var req RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.Description != nil {
		company.Description = req.Description
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.Location != nil {
		company.Location = req.Location
	}
	if req.LogoURL != nil {
		company.LogoURL = req.LogoURL
	}

	if err := database.DB.Save(&company).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update company"})
	}

	return c.JSON(fiber.Map{"message": "Company information updated.", "company": company, "success": true})
}
