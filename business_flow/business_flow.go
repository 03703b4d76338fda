// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/rapportlabs/kizuna/app/dto"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for request tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToImportantDateDTO converts an important date model to its API representation
func ToImportantDateDTO(d models.ImportantDate) dto.ImportantDateDTO {
	out := dto.ImportantDateDTO{
		ID:             d.UUID.String(),
		ContactID:      d.ContactID.String(),
		Type:           d.Type,
		Label:          d.Label,
		DateDay:        d.DateDay,
		DateMonth:      d.DateMonth,
		Year:           d.Year,
		SendTime:       d.SendTime,
		Timezone:       d.Timezone,
		RepeatAnnually: utils.IsTrue(d.RepeatAnnually),
		OptOut:         utils.IsTrue(d.OptOut),
		IsActive:       utils.IsTrue(d.IsActive),
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
	if d.EmailTemplateID != nil {
		out.EmailTemplateID = utils.ToPtr(d.EmailTemplateID.String())
	}
	return out
}

// ToSocialProfileDTO converts a social profile model to its API representation
func ToSocialProfileDTO(p models.SocialProfile) dto.SocialProfileDTO {
	return dto.SocialProfileDTO{
		ID:           p.UUID.String(),
		ContactID:    p.ContactID.String(),
		Platform:     p.Platform,
		ProfileURL:   p.ProfileURL,
		ProfileID:    p.ProfileID,
		DisplayName:  p.DisplayName,
		Handle:       p.Handle,
		AvatarURL:    p.AvatarURL,
		Bio:          p.Bio,
		Followers:    p.Followers,
		IsVerified:   utils.IsTrue(p.IsVerified),
		LastSyncedAt: utils.FormatRFC3339Ptr(p.LastSyncedAt),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

// ToSocialEventDTO converts a social event model to its API representation
func ToSocialEventDTO(e models.SocialEvent) dto.SocialEventDTO {
	return dto.SocialEventDTO{
		ID:              e.UUID.String(),
		ContactID:       e.ContactID.String(),
		SocialAccountID: e.SocialAccountID.String(),
		Platform:        e.Platform,
		EventType:       e.EventType,
		Title:           e.Title,
		Content:         e.Content,
		EventURL:        e.EventURL,
		EventTime:       e.EventTime.UTC().Format(time.RFC3339),
		IsRead:          utils.IsTrue(e.IsRead),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}

// ToNewsAlertDTO converts a news alert model to its API representation
func ToNewsAlertDTO(n models.NewsAlert) dto.NewsAlertDTO {
	return dto.NewsAlertDTO{
		ID:             n.UUID.String(),
		AccountID:      n.AccountID.String(),
		Title:          n.Title,
		Summary:        n.Summary,
		SourceURL:      n.SourceURL,
		SourceName:     n.SourceName,
		PublishedAt:    utils.FormatRFC3339Ptr(n.PublishedAt),
		SentimentScore: n.SentimentScore,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
	}
}

// ToCallDTO converts a call model to its API representation
func ToCallDTO(c models.Call) dto.CallDTO {
	out := dto.CallDTO{
		ID:             c.UUID.String(),
		UserID:         c.UserID.String(),
		Type:           c.Type,
		Status:         c.Status,
		ScheduledAt:    utils.FormatRFC3339Ptr(c.ScheduledAt),
		StartedAt:      utils.FormatRFC3339Ptr(c.StartedAt),
		Duration:       c.Duration,
		RecordingURL:   c.RecordingURL,
		TranscriptText: c.TranscriptText,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
	if c.ContactID != nil {
		out.ContactID = utils.ToPtr(c.ContactID.String())
	}
	return out
}
