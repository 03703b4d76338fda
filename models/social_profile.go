package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// Social platform tags
const (
	PlatformLinkedIn = "linkedin"
	PlatformTwitter  = "twitter"
)

// SocialProfile represents a social account linked to a contact
// Table: social_profiles
// The (contact_id, platform, profile_id) unique index is the authoritative
// guard against linking the same external account to a contact twice; the
// flow layer checks first so the common case surfaces a conflict error
// without relying on the driver error text
type SocialProfile struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	ContactID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:ux_social_profiles_linkage" json:"contact_id"`
	Platform     string     `gorm:"type:varchar(32);not null;uniqueIndex:ux_social_profiles_linkage" json:"platform"`
	ProfileID    string     `gorm:"type:varchar(255);not null;uniqueIndex:ux_social_profiles_linkage" json:"profile_id"`
	ProfileURL   string     `gorm:"type:varchar(512);not null" json:"profile_url"`
	DisplayName  string     `gorm:"type:varchar(255);not null" json:"display_name"`
	Handle       *string    `gorm:"type:varchar(255)" json:"handle,omitempty"`
	AvatarURL    *string    `gorm:"type:varchar(512)" json:"avatar_url,omitempty"`
	Bio          *string    `gorm:"type:text" json:"bio,omitempty"`
	Followers    int        `gorm:"not null;default:0" json:"followers"`
	IsVerified   *bool      `gorm:"default:false" json:"is_verified"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SocialProfile) TableName() string { return "social_profiles" }

// BeforeCreate ensures UUID and timestamps are set
func (p *SocialProfile) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// SocialProfileFilter represents filter criteria for social profile queries
type SocialProfileFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	ContactID *uuid.UUID `json:"contact_id,omitempty"`
	Platform  *string    `json:"platform,omitempty"`
	ProfileID *string    `json:"profile_id,omitempty"`
}
