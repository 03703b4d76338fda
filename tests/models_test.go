// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	testingutil "github.com/rapportlabs/kizuna/testing"
	"github.com/rapportlabs/kizuna/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestImportantDate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("DateTypeConstants", func(t *testing.T) {
			assert.Equal(t, "birthday", models.DateTypeBirthday)
			assert.Equal(t, "anniversary", models.DateTypeAnniversary)
			assert.Equal(t, "work_anniversary", models.DateTypeWorkAnniversary)
		})

		t.Run("TableName", func(t *testing.T) {
			assert.Equal(t, "important_dates", (&models.ImportantDate{}).TableName())
		})

		t.Run("CreateWithDefaults", func(t *testing.T) {
			date, err := fixtures.CreateTestImportantDate(uuid.New(), 14, 2)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, date.UUID)
			assert.NotZero(t, date.ID)
			assert.Equal(t, 14, date.DateDay)
			assert.Equal(t, 2, date.DateMonth)
			assert.Equal(t, utils.DefaultSendTime, date.SendTime)
			assert.Equal(t, "UTC", date.Timezone)
			assert.True(t, utils.IsTrue(date.RepeatAnnually))
			assert.True(t, utils.IsTrue(date.IsActive))
			assert.False(t, utils.IsTrue(date.OptOut))
			assert.False(t, date.CreatedAt.IsZero())
		})

		t.Run("BeforeCreateAssignsUUID", func(t *testing.T) {
			date := &models.ImportantDate{
				ContactID: uuid.New(),
				Type:      models.DateTypeAnniversary,
				DateDay:   29,
				DateMonth: 2,
				SendTime:  "10:30",
				Timezone:  "Asia/Tokyo",
			}
			require.NoError(t, testDB.DB.Create(date).Error)
			assert.NotEqual(t, uuid.Nil, date.UUID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSocialProfile(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("PlatformConstants", func(t *testing.T) {
			assert.Equal(t, "linkedin", models.PlatformLinkedIn)
			assert.Equal(t, "twitter", models.PlatformTwitter)
		})

		t.Run("TableName", func(t *testing.T) {
			assert.Equal(t, "social_profiles", (&models.SocialProfile{}).TableName())
		})

		t.Run("CreateProfile", func(t *testing.T) {
			profile, err := fixtures.CreateTestSocialProfile(uuid.New(), models.PlatformLinkedIn)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, profile.UUID)
			assert.Equal(t, models.PlatformLinkedIn, profile.Platform)
			assert.False(t, utils.IsTrue(profile.IsVerified))
		})

		t.Run("DuplicateLinkageRejected", func(t *testing.T) {
			contactID := uuid.New()
			profile, err := fixtures.CreateTestSocialProfile(contactID, models.PlatformTwitter)
			require.NoError(t, err)

			dup := &models.SocialProfile{
				ContactID:   contactID,
				Platform:    profile.Platform,
				ProfileID:   profile.ProfileID,
				ProfileURL:  profile.ProfileURL,
				DisplayName: "Someone Else",
			}
			err = testDB.DB.Create(dup).Error
			assert.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSocialEvent(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("EventTypeConstants", func(t *testing.T) {
			assert.Equal(t, "new_post", models.EventTypeNewPost)
			assert.Equal(t, "mention", models.EventTypeMention)
			assert.Equal(t, "job_change", models.EventTypeJobChange)
		})

		t.Run("TableName", func(t *testing.T) {
			assert.Equal(t, "social_events", (&models.SocialEvent{}).TableName())
		})

		t.Run("EmptyURLNormalizedToNil", func(t *testing.T) {
			event := &models.SocialEvent{
				ContactID:       uuid.New(),
				SocialAccountID: uuid.New(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeNewPost,
				Title:           "no url",
				Content:         "no url content",
				EventURL:        utils.ToPtr(""),
				EventTime:       time.Now().UTC(),
			}
			require.NoError(t, testDB.DB.Create(event).Error)
			assert.Nil(t, event.EventURL)
		})

		t.Run("FallbackKeyUniqueWhenNoURL", func(t *testing.T) {
			contactID := uuid.New()
			eventTime := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
			first := &models.SocialEvent{
				ContactID:       contactID,
				SocialAccountID: uuid.New(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeMention,
				Title:           "first",
				Content:         "first content",
				EventTime:       eventTime,
			}
			require.NoError(t, testDB.DB.Create(first).Error)

			dup := &models.SocialEvent{
				ContactID:       contactID,
				SocialAccountID: uuid.New(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeMention,
				Title:           "same key",
				Content:         "same key content",
				EventTime:       eventTime,
			}
			err := testDB.DB.Create(dup).Error
			require.Error(t, err)
			assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

			// A different event type is a different fallback key
			other := &models.SocialEvent{
				ContactID:       contactID,
				SocialAccountID: uuid.New(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeJobChange,
				Title:           "other",
				Content:         "other content",
				EventTime:       eventTime,
			}
			assert.NoError(t, testDB.DB.Create(other).Error)
		})

		t.Run("EventTimeNormalizedToUTC", func(t *testing.T) {
			loc, err := time.LoadLocation("Asia/Tokyo")
			require.NoError(t, err)
			local := time.Date(2025, 6, 1, 9, 0, 0, 0, loc)

			event, err := fixtures.CreateTestSocialEvent(uuid.New(), uuid.New(), local)
			require.NoError(t, err)
			assert.Equal(t, time.UTC, event.EventTime.Location())
			assert.True(t, event.EventTime.Equal(local))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestNewsAlert(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("TableName", func(t *testing.T) {
			assert.Equal(t, "news_alerts", (&models.NewsAlert{}).TableName())
		})

		t.Run("CreateAlert", func(t *testing.T) {
			alert, err := fixtures.CreateTestNewsAlert(uuid.New(), time.Now().UTC())
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, alert.UUID)
			assert.NotNil(t, alert.SentimentScore)
			assert.False(t, alert.CreatedAt.IsZero())
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCall(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		t.Run("CallTypeConstants", func(t *testing.T) {
			assert.Equal(t, "inbound", models.CallTypeInbound)
			assert.Equal(t, "outbound", models.CallTypeOutbound)
		})

		t.Run("TableName", func(t *testing.T) {
			assert.Equal(t, "calls", (&models.Call{}).TableName())
		})

		t.Run("CreateWithoutContact", func(t *testing.T) {
			call, err := fixtures.CreateTestCall(uuid.New(), nil)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, call.UUID)
			assert.Nil(t, call.ContactID)
			assert.Equal(t, models.CallTypeOutbound, call.Type)
		})

		return nil
	})
	require.NoError(t, err)
}
