package dto

// ImportantDateDTO is the API representation of an important date
// Timestamps are RFC3339 UTC; SendTime is "HH:MM" or "HH:MM:SS"
type ImportantDateDTO struct {
	ID              string  `json:"id"`
	ContactID       string  `json:"contact_id"`
	Type            string  `json:"type"`
	Label           *string `json:"label,omitempty"`
	DateDay         int     `json:"date_day"`
	DateMonth       int     `json:"date_month"`
	Year            *int    `json:"year,omitempty"`
	SendTime        string  `json:"send_time"`
	Timezone        string  `json:"timezone"`
	EmailTemplateID *string `json:"email_template_id,omitempty"`
	RepeatAnnually  bool    `json:"repeat_annually"`
	OptOut          bool    `json:"opt_out"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// CreateImportantDateRequest carries data to create a new important date
// Day/month bounds are re-checked by the flow against the calendar rules
type CreateImportantDateRequest struct {
	Type            string  `json:"type" validate:"required,max=64"`
	Label           *string `json:"label,omitempty" validate:"omitempty,max=255"`
	DateDay         int     `json:"date_day" validate:"required,min=1,max=31"`
	DateMonth       int     `json:"date_month" validate:"required,min=1,max=12"`
	Year            *int    `json:"year,omitempty"`
	SendTime        string  `json:"send_time,omitempty"`
	Timezone        string  `json:"timezone,omitempty"`
	EmailTemplateID *string `json:"email_template_id,omitempty" validate:"omitempty,uuid4_rfc4122|uuid_rfc4122"`
	RepeatAnnually  *bool   `json:"repeat_annually,omitempty"`
	OptOut          *bool   `json:"opt_out,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// UpdateImportantDateRequest carries a partial update for an important date.
// Field presence, not value, signals intent to change; an all-nil body is
// rejected as an empty update
type UpdateImportantDateRequest struct {
	Type            *string `json:"type,omitempty" validate:"omitempty,max=64"`
	Label           *string `json:"label,omitempty" validate:"omitempty,max=255"`
	DateDay         *int    `json:"date_day,omitempty"`
	DateMonth       *int    `json:"date_month,omitempty"`
	Year            *int    `json:"year,omitempty"`
	SendTime        *string `json:"send_time,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
	EmailTemplateID *string `json:"email_template_id,omitempty" validate:"omitempty,uuid4_rfc4122|uuid_rfc4122"`
	RepeatAnnually  *bool   `json:"repeat_annually,omitempty"`
	OptOut          *bool   `json:"opt_out,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// IsEmpty reports whether no field was supplied at all
func (r *UpdateImportantDateRequest) IsEmpty() bool {
	return r.Type == nil && r.Label == nil && r.DateDay == nil && r.DateMonth == nil &&
		r.Year == nil && r.SendTime == nil && r.Timezone == nil && r.EmailTemplateID == nil &&
		r.RepeatAnnually == nil && r.OptOut == nil && r.IsActive == nil
}

// ListImportantDatesResponse returns all dates for a contact
type ListImportantDatesResponse struct {
	Message string             `json:"message"`
	Items   []ImportantDateDTO `json:"items"`
}

// UpcomingDateItem pairs a date record with its next occurrence instant
type UpcomingDateItem struct {
	Date     ImportantDateDTO `json:"date"`
	OccursAt string           `json:"occurs_at"`
}

// UpcomingDatesResponse returns the due-list for a contact within a lookahead window
type UpcomingDatesResponse struct {
	Message string             `json:"message"`
	Items   []UpcomingDateItem `json:"items"`
}

// DeleteImportantDateResponse acknowledges a deletion
type DeleteImportantDateResponse struct {
	Message string `json:"message"`
}
