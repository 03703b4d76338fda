package dto

// SocialProfileDTO is the API representation of a linked social profile
type SocialProfileDTO struct {
	ID           string  `json:"id"`
	ContactID    string  `json:"contact_id"`
	Platform     string  `json:"platform"`
	ProfileURL   string  `json:"profile_url"`
	ProfileID    string  `json:"profile_id"`
	DisplayName  string  `json:"display_name"`
	Handle       *string `json:"handle,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Followers    int     `json:"followers"`
	IsVerified   bool    `json:"is_verified"`
	LastSyncedAt *string `json:"last_synced_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// CreateSocialProfileRequest carries data to link a social profile to a contact
type CreateSocialProfileRequest struct {
	Platform    string  `json:"platform" validate:"required,max=32"`
	ProfileURL  string  `json:"profile_url" validate:"required,url,max=512"`
	ProfileID   string  `json:"profile_id" validate:"required,max=255"`
	DisplayName string  `json:"display_name" validate:"required,max=255"`
	Handle      *string `json:"handle,omitempty" validate:"omitempty,max=255"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=512"`
	Bio         *string `json:"bio,omitempty"`
	Followers   *int    `json:"followers,omitempty" validate:"omitempty,min=0"`
}

// UpdateSocialProfileRequest carries a partial update for a social profile.
// Field presence signals intent to change
type UpdateSocialProfileRequest struct {
	ProfileURL  *string `json:"profile_url,omitempty" validate:"omitempty,url,max=512"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Handle      *string `json:"handle,omitempty" validate:"omitempty,max=255"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=512"`
	Bio         *string `json:"bio,omitempty"`
	Followers   *int    `json:"followers,omitempty" validate:"omitempty,min=0"`
	IsVerified  *bool   `json:"is_verified,omitempty"`
}

// IsEmpty reports whether no field was supplied at all
func (r *UpdateSocialProfileRequest) IsEmpty() bool {
	return r.ProfileURL == nil && r.DisplayName == nil && r.Handle == nil &&
		r.AvatarURL == nil && r.Bio == nil && r.Followers == nil && r.IsVerified == nil
}

// ListSocialProfilesResponse returns all linked profiles for a contact
type ListSocialProfilesResponse struct {
	Message string             `json:"message"`
	Items   []SocialProfileDTO `json:"items"`
}

// DeleteSocialProfileResponse acknowledges a profile unlink
type DeleteSocialProfileResponse struct {
	Message string `json:"message"`
}

// SocialEventDTO is the API representation of one social activity event
type SocialEventDTO struct {
	ID              string  `json:"id"`
	ContactID       string  `json:"contact_id"`
	SocialAccountID string  `json:"social_account_id"`
	Platform        string  `json:"platform"`
	EventType       string  `json:"event_type"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	EventURL        *string `json:"event_url,omitempty"`
	EventTime       string  `json:"event_time"`
	IsRead          bool    `json:"is_read"`
	CreatedAt       string  `json:"created_at"`
}

// SocialFeedResponse returns a contact's activity feed, newest event first
type SocialFeedResponse struct {
	Message string           `json:"message"`
	Items   []SocialEventDTO `json:"items"`
}

// IngestSocialEventItem is one incoming activity event from an external sync
type IngestSocialEventItem struct {
	SocialAccountID string  `json:"social_account_id" validate:"required,uuid4_rfc4122|uuid_rfc4122"`
	Platform        string  `json:"platform" validate:"required,max=32"`
	EventType       string  `json:"event_type" validate:"required,max=64"`
	Title           string  `json:"title" validate:"max=512"`
	Content         string  `json:"content"`
	EventURL        *string `json:"event_url,omitempty" validate:"omitempty,url,max=512"`
	EventTime       string  `json:"event_time" validate:"required"`
}

// IngestSocialEventsRequest carries a batch of incoming activity events
type IngestSocialEventsRequest struct {
	Events []IngestSocialEventItem `json:"events" validate:"required,min=1,dive"`
}

// IngestSocialEventsResponse reports how the batch partitioned
type IngestSocialEventsResponse struct {
	Message    string `json:"message"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
}

// MarkEventReadResponse acknowledges a read flag update
type MarkEventReadResponse struct {
	Message string `json:"message"`
}
