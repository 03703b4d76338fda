// Package services provides external service integrations and technical concerns like notifications
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OccasionReminder carries everything needed to deliver one occasion email
type OccasionReminder struct {
	DateID          uuid.UUID
	ContactID       uuid.UUID
	Occasion        string
	Label           *string
	OccursAt        time.Time
	EmailTemplateID *uuid.UUID
}

// Subject renders a human-readable subject line for the reminder
func (r *OccasionReminder) Subject() string {
	if r.Label != nil && *r.Label != "" {
		return fmt.Sprintf("Upcoming %s: %s", r.Occasion, *r.Label)
	}
	return fmt.Sprintf("Upcoming %s", r.Occasion)
}

// NotificationService handles delivering occasion reminders
type NotificationService interface {
	SendOccasionReminder(ctx context.Context, reminder *OccasionReminder) error
}

// NotificationServiceImpl implements NotificationService
type NotificationServiceImpl struct {
	emailProvider EmailProvider
}

// EmailProvider interface for email sending
type EmailProvider interface {
	SendEmail(ctx context.Context, templateID *uuid.UUID, subject, body string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(emailProvider EmailProvider) NotificationService {
	return &NotificationServiceImpl{
		emailProvider: emailProvider,
	}
}

// SendOccasionReminder delivers one reminder through the configured email provider
func (s *NotificationServiceImpl) SendOccasionReminder(ctx context.Context, reminder *OccasionReminder) error {
	if s.emailProvider == nil {
		return fmt.Errorf("email provider not configured")
	}
	if reminder == nil {
		return fmt.Errorf("nil reminder")
	}

	body := fmt.Sprintf("Reminder for contact %s: %s occurs at %s",
		reminder.ContactID, reminder.Occasion, reminder.OccursAt.Format(time.RFC3339))

	return s.emailProvider.SendEmail(ctx, reminder.EmailTemplateID, reminder.Subject(), body)
}

type MockEmailProvider struct{}

func NewMockEmailProvider() EmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(ctx context.Context, templateID *uuid.UUID, subject, body string) error {
	template := "default"
	if templateID != nil {
		template = templateID.String()
	}
	log.Printf("Email sent [template=%s] [%s]: %s", template, subject, body)
	return nil
}

type SMTPEmailProvider struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

func NewSMTPEmailProvider(host string, port int, username, password, fromEmail string) EmailProvider {
	return &SMTPEmailProvider{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
	}
}

func (p *SMTPEmailProvider) SendEmail(ctx context.Context, templateID *uuid.UUID, subject, body string) error {
	if p.fromEmail == "" || !strings.Contains(p.fromEmail, "@") {
		return fmt.Errorf("invalid sender address: %s", p.fromEmail)
	}

	// Implementation would use net/smtp or a library like gomail

	log.Printf("Sending email via SMTP [%s]: %s", subject, body)

	return nil
}
