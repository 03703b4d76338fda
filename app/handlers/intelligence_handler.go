package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	businessflow "github.com/rapportlabs/kizuna/business_flow"
	"github.com/rapportlabs/kizuna/utils"
)

// IntelligenceHandlerInterface defines the contract for news feed handlers
type IntelligenceHandlerInterface interface {
	AccountNews(c fiber.Ctx) error
	IngestAlert(c fiber.Ctx) error
	GlobalFeed(c fiber.Ctx) error
}

// IntelligenceHandler handles news feed HTTP requests
type IntelligenceHandler struct {
	flow      businessflow.IntelligenceFlow
	validator *validator.Validate
}

// NewIntelligenceHandler creates a new intelligence handler
func NewIntelligenceHandler(flow businessflow.IntelligenceFlow) *IntelligenceHandler {
	return &IntelligenceHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *IntelligenceHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *IntelligenceHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *IntelligenceHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}

// AccountNews returns all alerts for one account, most recent first
func (h *IntelligenceHandler) AccountNews(c fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid account ID", "INVALID_ACCOUNT_ID", nil)
	}

	result, err := h.flow.AccountNews(h.createRequestContext(c, "/api/v1/intelligence/news/:account_id"), accountID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load account news", "ACCOUNT_NEWS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// IngestAlert stores one news alert for an account
func (h *IntelligenceHandler) IngestAlert(c fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid account ID", "INVALID_ACCOUNT_ID", nil)
	}

	var req dto.CreateNewsAlertRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.IngestAlert(h.createRequestContext(c, "/api/v1/intelligence/news/:account_id"), accountID, &req, metadata)
	if err != nil {
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "News alert validation failed", "INVALID_ALERT", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to ingest news alert", "INGEST_ALERT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "News alert ingested successfully", result)
}

// GlobalFeed returns the most recent alerts across all accounts
func (h *IntelligenceHandler) GlobalFeed(c fiber.Ctx) error {
	result, err := h.flow.GlobalFeed(h.createRequestContext(c, "/api/v1/intelligence/feed"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load global feed", "GLOBAL_FEED_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
