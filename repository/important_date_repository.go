package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// ImportantDateRepositoryImpl implements ImportantDateRepository interface
type ImportantDateRepositoryImpl struct {
	*BaseRepository[models.ImportantDate, models.ImportantDateFilter]
}

// NewImportantDateRepository creates a new important date repository
func NewImportantDateRepository(db *gorm.DB) ImportantDateRepository {
	return &ImportantDateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ImportantDate, models.ImportantDateFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *ImportantDateRepositoryImpl) applyFilter(query *gorm.DB, filter models.ImportantDateFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OptOut != nil {
		query = query.Where("opt_out = ?", *filter.OptOut)
	}
	return query
}

// ByFilter retrieves important dates based on filter criteria
func (r *ImportantDateRepositoryImpl) ByFilter(ctx context.Context, filter models.ImportantDateFilter, orderBy string, limit, offset int) ([]*models.ImportantDate, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ImportantDate{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ImportantDate
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of important dates matching the filter
func (r *ImportantDateRepositoryImpl) Count(ctx context.Context, filter models.ImportantDateFilter) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := r.applyFilter(db.Model(&models.ImportantDate{}), filter).Count(&count).Error
	return count, err
}

// Exists checks if any important date matching the filter exists
func (r *ImportantDateRepositoryImpl) Exists(ctx context.Context, filter models.ImportantDateFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ByUUIDAndContact retrieves a single date owned by the given contact
func (r *ImportantDateRepositoryImpl) ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.ImportantDate, error) {
	rows, err := r.ByFilter(ctx, models.ImportantDateFilter{UUID: &id, ContactID: &contactID}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByContact lists all dates for a contact, newest first
func (r *ImportantDateRepositoryImpl) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.ImportantDate, error) {
	return r.ByFilter(ctx, models.ImportantDateFilter{ContactID: &contactID}, "created_at DESC", 0, 0)
}

// ListSchedulable lists active, non-opted-out dates across all contacts for the scheduler
func (r *ImportantDateRepositoryImpl) ListSchedulable(ctx context.Context, limit, offset int) ([]*models.ImportantDate, error) {
	isActive := true
	optOut := false
	return r.ByFilter(ctx, models.ImportantDateFilter{IsActive: &isActive, OptOut: &optOut}, "id ASC", limit, offset)
}

// Update persists all mutable fields of an important date
func (r *ImportantDateRepositoryImpl) Update(ctx context.Context, date *models.ImportantDate) error {
	if date == nil {
		return errors.New("important date payload is nil")
	}
	if date.ID == 0 {
		return errors.New("important date ID is required for update")
	}

	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	date.UpdatedAt = utils.UTCNow()

	err = db.Save(date).Error
	if err != nil {
		return err
	}

	return nil
}

// DeleteByUUIDAndContact removes a date owned by the given contact; returns whether a row was deleted
func (r *ImportantDateRepositoryImpl) DeleteByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (bool, error) {
	db := r.getDB(ctx)
	res := db.Where("uuid = ? AND contact_id = ?", id, contactID).Delete(&models.ImportantDate{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
