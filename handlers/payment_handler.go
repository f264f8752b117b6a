package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/job_portal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uuid.Parse(claims["user_id"].(string))
}

type CreateOrderRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	applicantID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user token", "success": false})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON", "success": false})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "success": false})
	}
	jobID, _ := uuid.Parse(req.JobID)

	order, payment, err := h.service.CreateOrder(c.Context(), jobID, applicantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Job not found", "success": false})
		case errors.Is(err, services.ErrNoFeeRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "This job has no application fee", "success": false})
		case errors.Is(err, services.ErrAlreadyPaid):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Payment already completed", "success": false})
		}
		var providerErr *services.ErrProvider
		if errors.As(err, &providerErr) {
			log.Printf("🔥 Payment order creation failed upstream: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Payment order creation failed", "success": false})
		}
		log.Printf("🔥 Payment order creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Payment order creation failed", "success": false})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
		"payment": payment,
	})
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	JobID             string `json:"job_id" validate:"required,uuid"`
}

func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	applicantID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user token", "success": false})
	}

	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON", "success": false})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error(), "success": false})
	}
	jobID, _ := uuid.Parse(req.JobID)

	err = h.service.VerifyPayment(c.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, jobID, applicantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Payment record not found", "success": false})
		case errors.Is(err, services.ErrVerificationFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment verification failed", "success": false})
		}
		log.Printf("🔥 Payment verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Payment verification error", "success": false})
	}

	return c.JSON(fiber.Map{"message": "Payment verified successfully", "success": true})
}
