package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"gorm.io/gorm"
)

// NewsAlertRepositoryImpl implements NewsAlertRepository interface
type NewsAlertRepositoryImpl struct {
	*BaseRepository[models.NewsAlert, models.NewsAlertFilter]
}

// NewNewsAlertRepository creates a new news alert repository
func NewNewsAlertRepository(db *gorm.DB) NewsAlertRepository {
	return &NewsAlertRepositoryImpl{
		BaseRepository: NewBaseRepository[models.NewsAlert, models.NewsAlertFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *NewsAlertRepositoryImpl) applyFilter(query *gorm.DB, filter models.NewsAlertFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	return query
}

// ByFilter retrieves news alerts based on filter criteria
func (r *NewsAlertRepositoryImpl) ByFilter(ctx context.Context, filter models.NewsAlertFilter, orderBy string, limit, offset int) ([]*models.NewsAlert, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.NewsAlert{}), filter)

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

	var rows []*models.NewsAlert
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of news alerts matching the filter
func (r *NewsAlertRepositoryImpl) Count(ctx context.Context, filter models.NewsAlertFilter) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := r.applyFilter(db.Model(&models.NewsAlert{}), filter).Count(&count).Error
	return count, err
}

// Exists checks if any news alert matching the filter exists
func (r *NewsAlertRepositoryImpl) Exists(ctx context.Context, filter models.NewsAlertFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByAccount lists alerts for an account, newest first
func (r *NewsAlertRepositoryImpl) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.NewsAlert, error) {
	return r.ByFilter(ctx, models.NewsAlertFilter{AccountID: &accountID}, "created_at DESC", 0, 0)
}

// ListRecent lists the most recently created alerts across all accounts
func (r *NewsAlertRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.NewsAlert, error) {
	return r.ByFilter(ctx, models.NewsAlertFilter{}, "created_at DESC", limit, 0)
}
