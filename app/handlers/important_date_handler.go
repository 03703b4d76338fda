// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	businessflow "github.com/rapportlabs/kizuna/business_flow"
	"github.com/rapportlabs/kizuna/utils"
)

// ImportantDateHandlerInterface defines the contract for important date handlers
type ImportantDateHandlerInterface interface {
	List(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Upcoming(c fiber.Ctx) error
}

// ImportantDateHandler handles important date HTTP requests
type ImportantDateHandler struct {
	flow      businessflow.ImportantDateFlow
	validator *validator.Validate
}

// NewImportantDateHandler creates a new important date handler
func NewImportantDateHandler(flow businessflow.ImportantDateFlow) *ImportantDateHandler {
	return &ImportantDateHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *ImportantDateHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ImportantDateHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ImportantDateHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}

func contactIDFromPath(c fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("contact_id"))
}

// List returns all important dates for a contact
func (h *ImportantDateHandler) List(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	result, err := h.flow.ListDates(h.createRequestContext(c, "/api/v1/contacts/:contact_id/dates"), contactID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list important dates", "LIST_DATES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Create stores a new important date for a contact
func (h *ImportantDateHandler) Create(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	var req dto.CreateImportantDateRequest
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
	result, err := h.flow.CreateDate(h.createRequestContext(c, "/api/v1/contacts/:contact_id/dates"), contactID, &req, metadata)
	if err != nil {
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Important date validation failed", "INVALID_DATE", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create important date", "CREATE_DATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Important date created successfully", result)
}

// Update applies a partial update to an important date
func (h *ImportantDateHandler) Update(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}
	dateID, err := uuid.Parse(c.Params("date_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date ID", "INVALID_DATE_ID", nil)
	}

	var req dto.UpdateImportantDateRequest
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
	result, err := h.flow.UpdateDate(h.createRequestContext(c, "/api/v1/contacts/:contact_id/dates/:date_id"), contactID, dateID, &req, metadata)
	if err != nil {
		if businessflow.IsDateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Important date not found", "DATE_NOT_FOUND", nil)
		}
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Important date validation failed", "INVALID_DATE", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update important date", "UPDATE_DATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Important date updated successfully", result)
}

// Delete removes an important date
func (h *ImportantDateHandler) Delete(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}
	dateID, err := uuid.Parse(c.Params("date_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date ID", "INVALID_DATE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.DeleteDate(h.createRequestContext(c, "/api/v1/contacts/:contact_id/dates/:date_id"), contactID, dateID, metadata)
	if err != nil {
		if businessflow.IsDateNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Important date not found", "DATE_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete important date", "DELETE_DATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Upcoming returns the contact's dates due within the lookahead window.
// The window defaults to 24 hours and is overridable with ?days=N
func (h *ImportantDateHandler) Upcoming(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	lookahead := utils.DefaultLookaheadWindow
	if v := c.Query("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			lookahead = time.Duration(days) * 24 * time.Hour
		}
	}

	result, err := h.flow.UpcomingDates(h.createRequestContext(c, "/api/v1/contacts/:contact_id/dates/upcoming"), contactID, lookahead)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list upcoming dates", "UPCOMING_DATES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
