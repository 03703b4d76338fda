// Package testing provides test utilities and database setup for testing the relationship engine
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestImportantDate creates an active annual date for the given contact
func (tf *TestFixtures) CreateTestImportantDate(contactID uuid.UUID, day, month int) (*models.ImportantDate, error) {
	label := fmt.Sprintf("Test occasion %d", rand.Intn(10000))

	date := &models.ImportantDate{
		ContactID:      contactID,
		Type:           models.DateTypeBirthday,
		Label:          &label,
		DateDay:        day,
		DateMonth:      month,
		SendTime:       utils.DefaultSendTime,
		Timezone:       "UTC",
		RepeatAnnually: utils.ToPtr(true),
		OptOut:         utils.ToPtr(false),
		IsActive:       utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(date).Error; err != nil {
		return nil, fmt.Errorf("failed to create test important date: %w", err)
	}

	return date, nil
}

// CreateTestSocialProfile creates a linked profile for the given contact
func (tf *TestFixtures) CreateTestSocialProfile(contactID uuid.UUID, platform string) (*models.SocialProfile, error) {
	profileID := fmt.Sprintf("ext-%d", rand.Intn(100000000))
	handle := fmt.Sprintf("testuser%d", rand.Intn(10000))

	profile := &models.SocialProfile{
		ContactID:   contactID,
		Platform:    platform,
		ProfileID:   profileID,
		ProfileURL:  fmt.Sprintf("https://%s.example.com/%s", platform, handle),
		DisplayName: "Test User",
		Handle:      &handle,
		Followers:   rand.Intn(5000),
		IsVerified:  utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create test social profile: %w", err)
	}

	return profile, nil
}

// CreateTestSocialEvent creates an unread event for the given contact and account
func (tf *TestFixtures) CreateTestSocialEvent(contactID, socialAccountID uuid.UUID, eventTime time.Time) (*models.SocialEvent, error) {
	eventURL := fmt.Sprintf("https://social.example.com/posts/%d", rand.Intn(100000000))

	event := &models.SocialEvent{
		ContactID:       contactID,
		SocialAccountID: socialAccountID,
		Platform:        models.PlatformLinkedIn,
		EventType:       models.EventTypeNewPost,
		Title:           "Test post",
		Content:         "Test post content",
		EventURL:        &eventURL,
		EventTime:       eventTime,
		IsRead:          utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create test social event: %w", err)
	}

	return event, nil
}

// CreateTestNewsAlert creates a news alert for the given account
func (tf *TestFixtures) CreateTestNewsAlert(accountID uuid.UUID, publishedAt time.Time) (*models.NewsAlert, error) {
	summary := "Test news summary"
	source := "Test Wire"
	sentiment := 0.5

	alert := &models.NewsAlert{
		AccountID:      accountID,
		Title:          fmt.Sprintf("Test headline %d", rand.Intn(10000)),
		Summary:        &summary,
		SourceURL:      fmt.Sprintf("https://news.example.com/articles/%d", rand.Intn(100000000)),
		SourceName:     &source,
		PublishedAt:    &publishedAt,
		SentimentScore: &sentiment,
	}

	if err := tf.DB.DB.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create test news alert: %w", err)
	}

	return alert, nil
}

// CreateTestCall creates a completed outbound call for the given user and contact
func (tf *TestFixtures) CreateTestCall(userID uuid.UUID, contactID *uuid.UUID) (*models.Call, error) {
	startedAt := time.Now().UTC().Add(-1 * time.Hour)
	duration := 420

	call := &models.Call{
		ContactID: contactID,
		UserID:    userID,
		Type:      models.CallTypeOutbound,
		Status:    "completed",
		StartedAt: &startedAt,
		Duration:  &duration,
	}

	if err := tf.DB.DB.Create(call).Error; err != nil {
		return nil, fmt.Errorf("failed to create test call: %w", err)
	}

	return call, nil
}
