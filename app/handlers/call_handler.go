package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rapportlabs/kizuna/app/dto"
	businessflow "github.com/rapportlabs/kizuna/business_flow"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
)

// CallHandlerInterface defines the contract for call log handlers
type CallHandlerInterface interface {
	List(c fiber.Ctx) error
	Create(c fiber.Ctx) error
}

// CallHandler handles call log HTTP requests
type CallHandler struct {
	flow      businessflow.CallFlow
	validator *validator.Validate
}

// NewCallHandler creates a new call handler
func NewCallHandler(flow businessflow.CallFlow) *CallHandler {
	return &CallHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CallHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CallHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *CallHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}

// List returns the most recent calls, optionally filtered by contact, user,
// type, or status query parameters
func (h *CallHandler) List(c fiber.Ctx) error {
	var filter models.CallFilter
	if v := c.Query("contact_id"); v != "" {
		contactID, err := utils.ParseUUID(v)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
		}
		filter.ContactID = &contactID
	}
	if v := c.Query("user_id"); v != "" {
		userID, err := utils.ParseUUID(v)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", "INVALID_USER_ID", nil)
		}
		filter.UserID = &userID
	}
	if v := c.Query("type"); v != "" {
		filter.Type = utils.ToPtr(v)
	}
	if v := c.Query("status"); v != "" {
		filter.Status = utils.ToPtr(v)
	}

	result, err := h.flow.ListCalls(h.createRequestContext(c, "/api/v1/calls"), filter)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list calls", "LIST_CALLS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Create logs a new call
func (h *CallHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCallRequest
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
	result, err := h.flow.CreateCall(h.createRequestContext(c, "/api/v1/calls"), &req, metadata)
	if err != nil {
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Call validation failed", "INVALID_CALL", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log call", "CREATE_CALL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Call logged successfully", result)
}
