// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ImportantDateRepository defines operations for important dates
type ImportantDateRepository interface {
	Repository[models.ImportantDate, models.ImportantDateFilter]
	ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.ImportantDate, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.ImportantDate, error)
	ListSchedulable(ctx context.Context, limit, offset int) ([]*models.ImportantDate, error)
	Update(ctx context.Context, date *models.ImportantDate) error
	DeleteByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (bool, error)
}

// SocialProfileRepository defines operations for social profiles
type SocialProfileRepository interface {
	Repository[models.SocialProfile, models.SocialProfileFilter]
	ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.SocialProfile, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.SocialProfile, error)
	Update(ctx context.Context, profile *models.SocialProfile) error
	DeleteByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (bool, error)
}

// SocialEventRepository defines operations for social events
type SocialEventRepository interface {
	Repository[models.SocialEvent, models.SocialEventFilter]
	ByUUIDAndContact(ctx context.Context, id, contactID uuid.UUID) (*models.SocialEvent, error)
	FeedByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.SocialEvent, error)
	MarkRead(ctx context.Context, id uint) error
}

// NewsAlertRepository defines operations for news alerts
type NewsAlertRepository interface {
	Repository[models.NewsAlert, models.NewsAlertFilter]
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.NewsAlert, error)
	ListRecent(ctx context.Context, limit int) ([]*models.NewsAlert, error)
}

// CallRepository defines operations for calls
type CallRepository interface {
	Repository[models.Call, models.CallFilter]
	ListRecent(ctx context.Context, filter models.CallFilter, limit int) ([]*models.Call, error)
}
