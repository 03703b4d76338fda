package dto

// CallDTO is the API representation of one logged call
type CallDTO struct {
	ID             string  `json:"id"`
	ContactID      *string `json:"contact_id,omitempty"`
	UserID         string  `json:"user_id"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	ScheduledAt    *string `json:"scheduled_at,omitempty"`
	StartedAt      *string `json:"started_at,omitempty"`
	Duration       *int    `json:"duration,omitempty"`
	RecordingURL   *string `json:"recording_url,omitempty"`
	TranscriptText *string `json:"transcript_text,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// CreateCallRequest carries data to log a new call
type CreateCallRequest struct {
	ContactID      *string `json:"contact_id,omitempty" validate:"omitempty,uuid4_rfc4122|uuid_rfc4122"`
	UserID         string  `json:"user_id" validate:"required,uuid4_rfc4122|uuid_rfc4122"`
	Type           string  `json:"type" validate:"required"`
	Status         string  `json:"status" validate:"required,max=32"`
	ScheduledAt    *string `json:"scheduled_at,omitempty"`
	StartedAt      *string `json:"started_at,omitempty"`
	Duration       *int    `json:"duration,omitempty"`
	RecordingURL   *string `json:"recording_url,omitempty" validate:"omitempty,url,max=512"`
	TranscriptText *string `json:"transcript_text,omitempty"`
}

// ListCallsResponse returns the most recent calls matching the filters
type ListCallsResponse struct {
	Message string    `json:"message"`
	Items   []CallDTO `json:"items"`
}
