package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// Important date type tags (free-form category; these are the common ones)
const (
	DateTypeBirthday        = "birthday"
	DateTypeAnniversary     = "anniversary"
	DateTypeWorkAnniversary = "work_anniversary"
)

// ImportantDate represents a recurring personal date tracked for a contact
// Table: important_dates
// Indices: uuid, contact_id
// DateDay/DateMonth are stored unvalidated against a specific year; Feb 29 is
// allowed and clamped at resolution time in non-leap years
// SendTime stored as "HH:MM" or "HH:MM:SS" local time-of-day
// Timezone is an IANA zone identifier resolved at occurrence computation
type ImportantDate struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID            uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	ContactID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"contact_id"`
	Type            string     `gorm:"type:varchar(64);not null" json:"type"`
	Label           *string    `gorm:"type:varchar(255)" json:"label,omitempty"`
	DateDay         int        `gorm:"not null" json:"date_day"`
	DateMonth       int        `gorm:"not null" json:"date_month"`
	Year            *int       `json:"year,omitempty"`
	SendTime        string     `gorm:"type:varchar(8);not null;default:'09:00'" json:"send_time"`
	Timezone        string     `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	EmailTemplateID *uuid.UUID `gorm:"type:uuid" json:"email_template_id,omitempty"`
	RepeatAnnually  *bool      `gorm:"default:true" json:"repeat_annually"`
	OptOut          *bool      `gorm:"default:false" json:"opt_out"`
	IsActive        *bool      `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ImportantDate) TableName() string { return "important_dates" }

// BeforeCreate ensures UUID and timestamps are set
func (d *ImportantDate) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == uuid.Nil {
		d.UUID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = utils.UTCNow()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// ImportantDateFilter represents filter criteria for important date queries
type ImportantDateFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	Type      *string    `json:"type,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
	OptOut    *bool      `json:"opt_out,omitempty"`
}
