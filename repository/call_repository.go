package repository

import (
	"context"

	"github.com/rapportlabs/kizuna/models"
	"gorm.io/gorm"
)

// CallRepositoryImpl implements CallRepository interface
type CallRepositoryImpl struct {
	*BaseRepository[models.Call, models.CallFilter]
}

// NewCallRepository creates a new call repository
func NewCallRepository(db *gorm.DB) CallRepository {
	return &CallRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Call, models.CallFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *CallRepositoryImpl) applyFilter(query *gorm.DB, filter models.CallFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// ByFilter retrieves calls based on filter criteria
func (r *CallRepositoryImpl) ByFilter(ctx context.Context, filter models.CallFilter, orderBy string, limit, offset int) ([]*models.Call, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Call{}), filter)

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

	var rows []*models.Call
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of calls matching the filter
func (r *CallRepositoryImpl) Count(ctx context.Context, filter models.CallFilter) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := r.applyFilter(db.Model(&models.Call{}), filter).Count(&count).Error
	return count, err
}

// Exists checks if any call matching the filter exists
func (r *CallRepositoryImpl) Exists(ctx context.Context, filter models.CallFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRecent lists the most recently logged calls matching the filter
func (r *CallRepositoryImpl) ListRecent(ctx context.Context, filter models.CallFilter, limit int) ([]*models.Call, error) {
	return r.ByFilter(ctx, filter, "created_at DESC", limit, 0)
}
