package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// NewsAlert represents one account-scoped news item in the intelligence feed
// Table: news_alerts
// Append-only: rows are only ever inserted and read
// SentimentScore, when present, lies in [-1.0, 1.0]
type NewsAlert struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID           uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	AccountID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	Title          string     `gorm:"type:varchar(512);not null" json:"title"`
	Summary        *string    `gorm:"type:text" json:"summary,omitempty"`
	SourceURL      string     `gorm:"type:varchar(512);not null" json:"source_url"`
	SourceName     *string    `gorm:"type:varchar(255)" json:"source_name,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	SentimentScore *float64   `json:"sentiment_score,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (NewsAlert) TableName() string { return "news_alerts" }

// BeforeCreate ensures UUID and created timestamp are set
func (n *NewsAlert) BeforeCreate(tx *gorm.DB) error {
	if n.UUID == uuid.Nil {
		n.UUID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = utils.UTCNow()
	}
	return nil
}

// NewsAlertFilter represents filter criteria for news alert queries
type NewsAlertFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	AccountID *uuid.UUID `json:"account_id,omitempty"`
}
