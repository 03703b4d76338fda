package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// Social event type tags
const (
	EventTypeNewPost   = "new_post"
	EventTypeMention   = "mention"
	EventTypeJobChange = "job_change"
)

// SocialEvent represents one piece of external social activity for a contact
// Table: social_events
// Duplicate ingestion is keyed on (contact_id, platform, event_url) when an
// event URL is known, otherwise on (contact_id, platform, event_type,
// event_time). Both keys are enforced at the storage level: the URL key by a
// unique index, the fallback key by a partial unique index over rows with a
// NULL event_url. An empty-string URL is normalized to NULL before storage so
// it always lands in the fallback key space
type SocialEvent struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	ContactID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_social_events_url_key;uniqueIndex:ux_social_events_fallback_key" json:"contact_id"`
	SocialAccountID uuid.UUID `gorm:"type:uuid;not null" json:"social_account_id"`
	Platform        string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_social_events_url_key;uniqueIndex:ux_social_events_fallback_key" json:"platform"`
	EventType       string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_social_events_fallback_key" json:"event_type"`
	Title           string    `gorm:"type:varchar(512);not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	EventURL        *string   `gorm:"type:varchar(512);uniqueIndex:ux_social_events_url_key" json:"event_url,omitempty"`
	EventTime       time.Time `gorm:"not null;index;uniqueIndex:ux_social_events_fallback_key,where:event_url IS NULL" json:"event_time"`
	IsRead          *bool     `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SocialEvent) TableName() string { return "social_events" }

// BeforeCreate ensures UUID, UTC event time, and created timestamp are set,
// and folds an empty event URL into the NULL key space
func (e *SocialEvent) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == uuid.Nil {
		e.UUID = uuid.New()
	}
	if e.EventURL != nil && *e.EventURL == "" {
		e.EventURL = nil
	}
	e.EventTime = e.EventTime.UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = utils.UTCNow()
	}
	return nil
}

// SocialEventFilter represents filter criteria for social event queries
type SocialEventFilter struct {
	ID              *uint      `json:"id,omitempty"`
	UUID            *uuid.UUID `json:"uuid,omitempty"`
	ContactID       *uuid.UUID `json:"contact_id,omitempty"`
	SocialAccountID *uuid.UUID `json:"social_account_id,omitempty"`
	Platform        *string    `json:"platform,omitempty"`
	EventType       *string    `json:"event_type,omitempty"`
	IsRead          *bool      `json:"is_read,omitempty"`
}
