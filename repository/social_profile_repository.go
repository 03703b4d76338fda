package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// SocialProfileRepositoryImpl implements SocialProfileRepository interface
type SocialProfileRepositoryImpl struct {
	*BaseRepository[models.SocialProfile, models.SocialProfileFilter]
}

// NewSocialProfileRepository creates a new social profile repository
func NewSocialProfileRepository(db *gorm.DB) SocialProfileRepository {
	return &SocialProfileRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SocialProfile, models.SocialProfileFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *SocialProfileRepositoryImpl) applyFilter(query *gorm.DB, filter models.SocialProfileFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.ProfileID != nil {
		query = query.Where("profile_id = ?", *filter.ProfileID)
	}
	return query
}

// ByFilter retrieves social profiles based on filter criteria
func (r *SocialProfileRepositoryImpl) ByFilter(ctx context.Context, filter models.SocialProfileFilter, orderBy string, limit, offset int) ([]*models.SocialProfile, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SocialProfile{}), filter)

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

	var rows []*models.SocialProfile
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of social profiles matching the filter
func (r *SocialProfileRepositoryImpl) Count(ctx context.Context, filter models.SocialProfileFilter) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := r.applyFilter(db.Model(&models.SocialProfile{}), filter).Count(&count).Error
	return count, err
}

// Exists checks if any social profile matching the filter exists
func (r *SocialProfileRepositoryImpl) Exists(ctx context.Context, filter models.SocialProfileFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ByUUIDAndContact retrieves a single profile owned by the given contact
func (r *SocialProfileRepositoryImpl) ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.SocialProfile, error) {
	rows, err := r.ByFilter(ctx, models.SocialProfileFilter{UUID: &id, ContactID: &contactID}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByContact lists all linked profiles for a contact, newest first
func (r *SocialProfileRepositoryImpl) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.SocialProfile, error) {
	return r.ByFilter(ctx, models.SocialProfileFilter{ContactID: &contactID}, "created_at DESC", 0, 0)
}

// Update persists all mutable fields of a social profile
func (r *SocialProfileRepositoryImpl) Update(ctx context.Context, profile *models.SocialProfile) error {
	if profile == nil {
		return errors.New("social profile payload is nil")
	}
	if profile.ID == 0 {
		return errors.New("social profile ID is required for update")
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

	profile.UpdatedAt = utils.UTCNow()

	err = db.Save(profile).Error
	if err != nil {
		return err
	}

	return nil
}

// DeleteByUUIDAndContact removes a profile owned by the given contact; returns whether a row was deleted
func (r *SocialProfileRepositoryImpl) DeleteByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (bool, error) {
	db := r.getDB(ctx)
	res := db.Where("uuid = ? AND contact_id = ?", id, contactID).Delete(&models.SocialProfile{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
