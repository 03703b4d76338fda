package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// Call direction tags
const (
	CallTypeInbound  = "inbound"
	CallTypeOutbound = "outbound"
)

// Call represents a logged phone call
// Table: calls
// ContactID may be null for calls not tied to a known contact
// Duration is in seconds and never negative
type Call struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID           uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	ContactID      *uuid.UUID `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type           string     `gorm:"type:varchar(16);not null" json:"type"`
	Status         string     `gorm:"type:varchar(32);not null" json:"status"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	Duration       *int       `json:"duration,omitempty"`
	RecordingURL   *string    `gorm:"type:varchar(512)" json:"recording_url,omitempty"`
	TranscriptText *string    `gorm:"type:text" json:"transcript_text,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (Call) TableName() string { return "calls" }

// BeforeCreate ensures UUID and created timestamp are set
func (c *Call) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// CallFilter represents filter criteria for call queries
type CallFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Status    *string    `json:"status,omitempty"`
}
