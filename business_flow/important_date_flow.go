// Package businessflow contains use cases for per-contact important dates
package businessflow

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/repository"
	"github.com/rapportlabs/kizuna/utils"
)

// DueDate pairs an important date record with its next occurrence instant
type DueDate struct {
	Record   *models.ImportantDate
	OccursAt time.Time
}

// DueDates filters the given records down to those whose next occurrence
// falls within (ref, ref+lookahead], ordered by occurrence instant ascending
// with ties broken by record id. Inactive and opted-out records never appear.
// Records whose send time or timezone cannot be resolved are skipped; they
// were validated at write time, so a failure here means damaged data rather
// than caller error.
func DueDates(records []*models.ImportantDate, ref time.Time, lookahead time.Duration) []DueDate {
	horizon := ref.Add(lookahead)
	due := make([]DueDate, 0, len(records))

	for _, rec := range records {
		if !utils.IsTrue(rec.IsActive) || utils.IsTrue(rec.OptOut) {
			continue
		}
		sendTime, err := ParseTimeOfDay(rec.SendTime)
		if err != nil {
			continue
		}
		occursAt, ok, err := NextOccurrence(rec.DateDay, rec.DateMonth, rec.Year, utils.IsTrue(rec.RepeatAnnually), sendTime, rec.Timezone, ref)
		if err != nil || !ok {
			continue
		}
		if occursAt.After(horizon) {
			continue
		}
		due = append(due, DueDate{Record: rec, OccursAt: occursAt})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].OccursAt.Equal(due[j].OccursAt) {
			return due[i].Record.ID < due[j].Record.ID
		}
		return due[i].OccursAt.Before(due[j].OccursAt)
	})

	return due
}

// ImportantDateFlow defines user-facing operations for important dates
type ImportantDateFlow interface {
	ListDates(ctx context.Context, contactID uuid.UUID) (*dto.ListImportantDatesResponse, error)
	CreateDate(ctx context.Context, contactID uuid.UUID, req *dto.CreateImportantDateRequest, metadata *ClientMetadata) (*dto.ImportantDateDTO, error)
	UpdateDate(ctx context.Context, contactID, dateID uuid.UUID, req *dto.UpdateImportantDateRequest, metadata *ClientMetadata) (*dto.ImportantDateDTO, error)
	DeleteDate(ctx context.Context, contactID, dateID uuid.UUID, metadata *ClientMetadata) (*dto.DeleteImportantDateResponse, error)
	UpcomingDates(ctx context.Context, contactID uuid.UUID, lookahead time.Duration) (*dto.UpcomingDatesResponse, error)
}

type ImportantDateFlowImpl struct {
	dateRepo repository.ImportantDateRepository
}

func NewImportantDateFlow(dateRepo repository.ImportantDateRepository) ImportantDateFlow {
	return &ImportantDateFlowImpl{dateRepo: dateRepo}
}

// ListDates returns all important dates for a contact
func (f *ImportantDateFlowImpl) ListDates(ctx context.Context, contactID uuid.UUID) (*dto.ListImportantDatesResponse, error) {
	rows, err := f.dateRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, NewBusinessError("LIST_DATES_FAILED", "Failed to list important dates", ErrStoreUnavailable)
	}

	items := make([]dto.ImportantDateDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToImportantDateDTO(*r))
	}

	return &dto.ListImportantDatesResponse{
		Message: "Important dates retrieved successfully",
		Items:   items,
	}, nil
}

// validateCalendarFields checks day/month bounds and that the send time and
// timezone resolve. Bounds errors mirror the storage constraints; the
// calendar validity of (day, month) in a specific year is deliberately NOT
// checked, since resolution clamps invalid combinations
func validateCalendarFields(day, month int, sendTime, timezone string) error {
	if day < 1 || day > 31 {
		return ErrDayOutOfRange
	}
	if month < 1 || month > 12 {
		return ErrMonthOutOfRange
	}
	if _, err := ParseTimeOfDay(sendTime); err != nil {
		return err
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return ErrUnknownTimezone
	}
	return nil
}

// CreateDate validates and stores a new important date for a contact
func (f *ImportantDateFlowImpl) CreateDate(ctx context.Context, contactID uuid.UUID, req *dto.CreateImportantDateRequest, metadata *ClientMetadata) (*dto.ImportantDateDTO, error) {
	sendTime := req.SendTime
	if sendTime == "" {
		sendTime = utils.DefaultSendTime
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	if err := validateCalendarFields(req.DateDay, req.DateMonth, sendTime, timezone); err != nil {
		return nil, NewBusinessError("INVALID_DATE", "Important date validation failed", err)
	}

	row := models.ImportantDate{
		ContactID:      contactID,
		Type:           req.Type,
		Label:          req.Label,
		DateDay:        req.DateDay,
		DateMonth:      req.DateMonth,
		Year:           req.Year,
		SendTime:       sendTime,
		Timezone:       timezone,
		RepeatAnnually: utils.ToPtr(req.RepeatAnnually == nil || *req.RepeatAnnually),
		OptOut:         utils.ToPtr(utils.IsTrue(req.OptOut)),
		IsActive:       utils.ToPtr(req.IsActive == nil || *req.IsActive),
	}
	if req.EmailTemplateID != nil {
		parsed, err := utils.ParseUUID(*req.EmailTemplateID)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "Important date validation failed", err)
		}
		row.EmailTemplateID = &parsed
	}

	if err := f.dateRepo.Save(ctx, &row); err != nil {
		return nil, NewBusinessError("CREATE_DATE_FAILED", "Failed to create important date", ErrStoreUnavailable)
	}

	out := ToImportantDateDTO(row)
	return &out, nil
}

// UpdateDate applies a partial update to an important date owned by the contact.
// Only supplied fields change; recurrence is always recomputed from the stored
// source fields, so no occurrence cache needs invalidation here
func (f *ImportantDateFlowImpl) UpdateDate(ctx context.Context, contactID, dateID uuid.UUID, req *dto.UpdateImportantDateRequest, metadata *ClientMetadata) (*dto.ImportantDateDTO, error) {
	if req.IsEmpty() {
		return nil, NewBusinessError("EMPTY_UPDATE", "Empty update payload", ErrEmptyUpdate)
	}

	row, err := f.dateRepo.ByUUIDAndContact(ctx, dateID, contactID)
	if err != nil {
		return nil, NewBusinessError("UPDATE_DATE_FAILED", "Failed to load important date", ErrStoreUnavailable)
	}
	if row == nil {
		return nil, NewBusinessError("DATE_NOT_FOUND", "Important date not found", ErrDateNotFound)
	}

	if req.Type != nil {
		row.Type = *req.Type
	}
	if req.Label != nil {
		row.Label = req.Label
	}
	if req.DateDay != nil {
		row.DateDay = *req.DateDay
	}
	if req.DateMonth != nil {
		row.DateMonth = *req.DateMonth
	}
	if req.Year != nil {
		row.Year = req.Year
	}
	if req.SendTime != nil {
		row.SendTime = *req.SendTime
	}
	if req.Timezone != nil {
		row.Timezone = *req.Timezone
	}
	if req.EmailTemplateID != nil {
		parsed, err := utils.ParseUUID(*req.EmailTemplateID)
		if err != nil {
			return nil, NewBusinessError("INVALID_DATE", "Important date validation failed", err)
		}
		row.EmailTemplateID = &parsed
	}
	if req.RepeatAnnually != nil {
		row.RepeatAnnually = req.RepeatAnnually
	}
	if req.OptOut != nil {
		row.OptOut = req.OptOut
	}
	if req.IsActive != nil {
		row.IsActive = req.IsActive
	}

	if err := validateCalendarFields(row.DateDay, row.DateMonth, row.SendTime, row.Timezone); err != nil {
		return nil, NewBusinessError("INVALID_DATE", "Important date validation failed", err)
	}

	if err := f.dateRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("UPDATE_DATE_FAILED", "Failed to update important date", ErrStoreUnavailable)
	}

	out := ToImportantDateDTO(*row)
	return &out, nil
}

// DeleteDate removes an important date owned by the contact
func (f *ImportantDateFlowImpl) DeleteDate(ctx context.Context, contactID, dateID uuid.UUID, metadata *ClientMetadata) (*dto.DeleteImportantDateResponse, error) {
	deleted, err := f.dateRepo.DeleteByUUIDAndContact(ctx, dateID, contactID)
	if err != nil {
		return nil, NewBusinessError("DELETE_DATE_FAILED", "Failed to delete important date", ErrStoreUnavailable)
	}
	if !deleted {
		return nil, NewBusinessError("DATE_NOT_FOUND", "Important date not found", ErrDateNotFound)
	}

	return &dto.DeleteImportantDateResponse{Message: "Important date deleted successfully"}, nil
}

// UpcomingDates returns the contact's due-list within the lookahead window
func (f *ImportantDateFlowImpl) UpcomingDates(ctx context.Context, contactID uuid.UUID, lookahead time.Duration) (*dto.UpcomingDatesResponse, error) {
	if lookahead <= 0 {
		lookahead = utils.DefaultLookaheadWindow
	}

	rows, err := f.dateRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, NewBusinessError("UPCOMING_DATES_FAILED", "Failed to list important dates", ErrStoreUnavailable)
	}

	due := DueDates(rows, utils.UTCNow(), lookahead)
	items := make([]dto.UpcomingDateItem, 0, len(due))
	for _, d := range due {
		items = append(items, dto.UpcomingDateItem{
			Date:     ToImportantDateDTO(*d.Record),
			OccursAt: d.OccursAt.Format(time.RFC3339),
		})
	}

	return &dto.UpcomingDatesResponse{
		Message: "Upcoming dates retrieved successfully",
		Items:   items,
	}, nil
}
