package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"gorm.io/gorm"
)

// SocialEventRepositoryImpl implements SocialEventRepository interface
type SocialEventRepositoryImpl struct {
	*BaseRepository[models.SocialEvent, models.SocialEventFilter]
}

// NewSocialEventRepository creates a new social event repository
func NewSocialEventRepository(db *gorm.DB) SocialEventRepository {
	return &SocialEventRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SocialEvent, models.SocialEventFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *SocialEventRepositoryImpl) applyFilter(query *gorm.DB, filter models.SocialEventFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.SocialAccountID != nil {
		query = query.Where("social_account_id = ?", *filter.SocialAccountID)
	}
	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.EventType != nil {
		query = query.Where("event_type = ?", *filter.EventType)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	return query
}

// ByFilter retrieves social events based on filter criteria
func (r *SocialEventRepositoryImpl) ByFilter(ctx context.Context, filter models.SocialEventFilter, orderBy string, limit, offset int) ([]*models.SocialEvent, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SocialEvent{}), filter)

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

	var rows []*models.SocialEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of social events matching the filter
func (r *SocialEventRepositoryImpl) Count(ctx context.Context, filter models.SocialEventFilter) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := r.applyFilter(db.Model(&models.SocialEvent{}), filter).Count(&count).Error
	return count, err
}

// Exists checks if any social event matching the filter exists
func (r *SocialEventRepositoryImpl) Exists(ctx context.Context, filter models.SocialEventFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ByUUIDAndContact retrieves a single event owned by the given contact
func (r *SocialEventRepositoryImpl) ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.SocialEvent, error) {
	rows, err := r.ByFilter(ctx, models.SocialEventFilter{UUID: &id, ContactID: &contactID}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FeedByContact returns the contact's activity feed, newest event first
func (r *SocialEventRepositoryImpl) FeedByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.SocialEvent, error) {
	return r.ByFilter(ctx, models.SocialEventFilter{ContactID: &contactID}, "event_time DESC", limit, 0)
}

// MarkRead flags an event as read
func (r *SocialEventRepositoryImpl) MarkRead(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.SocialEvent{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
