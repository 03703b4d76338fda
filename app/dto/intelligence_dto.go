package dto

// NewsAlertDTO is the API representation of one news alert
type NewsAlertDTO struct {
	ID             string   `json:"id"`
	AccountID      string   `json:"account_id"`
	Title          string   `json:"title"`
	Summary        *string  `json:"summary,omitempty"`
	SourceURL      string   `json:"source_url"`
	SourceName     *string  `json:"source_name,omitempty"`
	PublishedAt    *string  `json:"published_at,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// CreateNewsAlertRequest carries data to ingest one news alert for an account
type CreateNewsAlertRequest struct {
	Title          string   `json:"title" validate:"required,max=512"`
	Summary        *string  `json:"summary,omitempty"`
	SourceURL      string   `json:"source_url" validate:"required,url,max=512"`
	SourceName     *string  `json:"source_name,omitempty" validate:"omitempty,max=255"`
	PublishedAt    *string  `json:"published_at,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// NewsFeedResponse returns alerts ordered most recent first
type NewsFeedResponse struct {
	Message string         `json:"message"`
	Items   []NewsAlertDTO `json:"items"`
}
