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

// SocialHandlerInterface defines the contract for social profile and feed handlers
type SocialHandlerInterface interface {
	ListProfiles(c fiber.Ctx) error
	LinkProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
	UnlinkProfile(c fiber.Ctx) error
	Feed(c fiber.Ctx) error
	IngestEvents(c fiber.Ctx) error
	MarkEventRead(c fiber.Ctx) error
}

// SocialHandler handles social profile and activity feed HTTP requests
type SocialHandler struct {
	flow      businessflow.SocialFlow
	validator *validator.Validate
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(flow businessflow.SocialFlow) *SocialHandler {
	return &SocialHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *SocialHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SocialHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *SocialHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx
}

// ListProfiles returns all social profiles linked to a contact
func (h *SocialHandler) ListProfiles(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	result, err := h.flow.ListProfiles(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social"), contactID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list social profiles", "LIST_PROFILES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// LinkProfile attaches an external social account to a contact
func (h *SocialHandler) LinkProfile(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	var req dto.CreateSocialProfileRequest
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
	result, err := h.flow.LinkProfile(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social"), contactID, &req, metadata)
	if err != nil {
		if businessflow.IsProfileAlreadyLinked(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Social profile already linked", "PROFILE_ALREADY_LINKED", nil)
		}
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Social profile validation failed", "INVALID_PROFILE", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to link social profile", "LINK_PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Social profile linked successfully", result)
}

// UpdateProfile applies a partial update to a linked profile
func (h *SocialHandler) UpdateProfile(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}
	profileID, err := uuid.Parse(c.Params("profile_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid profile ID", "INVALID_PROFILE_ID", nil)
	}

	var req dto.UpdateSocialProfileRequest
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
	result, err := h.flow.UpdateProfile(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social/:profile_id"), contactID, profileID, &req, metadata)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Social profile not found", "PROFILE_NOT_FOUND", nil)
		}
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Social profile validation failed", "INVALID_PROFILE", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update social profile", "UPDATE_PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Social profile updated successfully", result)
}

// UnlinkProfile removes a linked social profile
func (h *SocialHandler) UnlinkProfile(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}
	profileID, err := uuid.Parse(c.Params("profile_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid profile ID", "INVALID_PROFILE_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UnlinkProfile(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social/:profile_id"), contactID, profileID, metadata)
	if err != nil {
		if businessflow.IsProfileNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Social profile not found", "PROFILE_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to unlink social profile", "UNLINK_PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Feed returns a contact's social activity feed, newest event first
func (h *SocialHandler) Feed(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	result, err := h.flow.ActivityFeed(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social/events"), contactID)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load activity feed", "SOCIAL_FEED_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// IngestEvents stores a batch of external activity events for a contact
func (h *SocialHandler) IngestEvents(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}

	var req dto.IngestSocialEventsRequest
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
	result, err := h.flow.IngestEvents(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social/events/ingest"), contactID, &req, metadata)
	if err != nil {
		if businessflow.IsValidation(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Social event validation failed", "INVALID_EVENT", err.Error())
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to ingest social events", "INGEST_EVENTS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// MarkEventRead flags a feed event as read
func (h *SocialHandler) MarkEventRead(c fiber.Ctx) error {
	contactID, err := contactIDFromPath(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", "INVALID_CONTACT_ID", nil)
	}
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event ID", "INVALID_EVENT_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.MarkEventRead(h.createRequestContext(c, "/api/v1/contacts/:contact_id/social/events/:event_id/read"), contactID, eventID, metadata)
	if err != nil {
		if businessflow.IsEventNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Social event not found", "EVENT_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to mark social event read", "MARK_READ_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
