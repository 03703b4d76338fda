package businessflow

import (
	"context"
	"time"

	"github.com/rapportlabs/kizuna/app/dto"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/repository"
	"github.com/rapportlabs/kizuna/utils"
)

// CallFlow defines operations for the call log
type CallFlow interface {
	ListCalls(ctx context.Context, filter models.CallFilter) (*dto.ListCallsResponse, error)
	CreateCall(ctx context.Context, req *dto.CreateCallRequest, metadata *ClientMetadata) (*dto.CallDTO, error)
}

type CallFlowImpl struct {
	callRepo repository.CallRepository
}

func NewCallFlow(callRepo repository.CallRepository) CallFlow {
	return &CallFlowImpl{callRepo: callRepo}
}

// ListCalls returns the most recent calls matching the filter
func (f *CallFlowImpl) ListCalls(ctx context.Context, filter models.CallFilter) (*dto.ListCallsResponse, error) {
	rows, err := f.callRepo.ListRecent(ctx, filter, utils.CallListLimit)
	if err != nil {
		return nil, NewBusinessError("LIST_CALLS_FAILED", "Failed to list calls", ErrStoreUnavailable)
	}

	items := make([]dto.CallDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToCallDTO(*r))
	}

	return &dto.ListCallsResponse{
		Message: "Calls retrieved successfully",
		Items:   items,
	}, nil
}

func parseOptionalInstant(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return utils.ToPtr(parsed.UTC()), nil
}

// CreateCall validates and logs a new call
func (f *CallFlowImpl) CreateCall(ctx context.Context, req *dto.CreateCallRequest, metadata *ClientMetadata) (*dto.CallDTO, error) {
	if req.Type != models.CallTypeInbound && req.Type != models.CallTypeOutbound {
		return nil, NewBusinessError("INVALID_CALL", "Call validation failed", ErrInvalidCallType)
	}
	if req.Duration != nil && *req.Duration < 0 {
		return nil, NewBusinessError("INVALID_CALL", "Call validation failed", ErrNegativeDuration)
	}

	userID, err := utils.ParseUUID(req.UserID)
	if err != nil {
		return nil, NewBusinessError("INVALID_CALL", "Call validation failed", err)
	}

	row := models.Call{
		UserID:         userID,
		Type:           req.Type,
		Status:         req.Status,
		Duration:       req.Duration,
		RecordingURL:   req.RecordingURL,
		TranscriptText: req.TranscriptText,
	}
	if req.ContactID != nil {
		contactID, err := utils.ParseUUID(*req.ContactID)
		if err != nil {
			return nil, NewBusinessError("INVALID_CALL", "Call validation failed", err)
		}
		row.ContactID = &contactID
	}
	if row.ScheduledAt, err = parseOptionalInstant(req.ScheduledAt); err != nil {
		return nil, NewBusinessError("INVALID_CALL", "Call validation failed", err)
	}
	if row.StartedAt, err = parseOptionalInstant(req.StartedAt); err != nil {
		return nil, NewBusinessError("INVALID_CALL", "Call validation failed", err)
	}

	if err := f.callRepo.Save(ctx, &row); err != nil {
		return nil, NewBusinessError("CREATE_CALL_FAILED", "Failed to log call", ErrStoreUnavailable)
	}

	out := ToCallDTO(row)
	return &out, nil
}
