// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	businessflow "github.com/rapportlabs/kizuna/business_flow"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/repository"
	testingutil "github.com/rapportlabs/kizuna/testing"
	"github.com/rapportlabs/kizuna/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
}

func TestImportantDateFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewImportantDateRepository(testDB.DB)
		flow := businessflow.NewImportantDateFlow(repo)
		ctx := testingutil.CreateTestContext()

		contactID := uuid.New()

		t.Run("CreateAppliesDefaults", func(t *testing.T) {
			created, err := flow.CreateDate(ctx, contactID, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeBirthday,
				DateDay:   14,
				DateMonth: 2,
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, utils.DefaultSendTime, created.SendTime)
			assert.Equal(t, "UTC", created.Timezone)
			assert.True(t, created.RepeatAnnually)
			assert.True(t, created.IsActive)
			assert.False(t, created.OptOut)
		})

		t.Run("CreateRejectsBadTimezone", func(t *testing.T) {
			_, err := flow.CreateDate(ctx, contactID, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeBirthday,
				DateDay:   1,
				DateMonth: 1,
				Timezone:  "Mars/Olympus_Mons",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsUnknownTimezone(err))
		})

		t.Run("UpdatePartialMerge", func(t *testing.T) {
			created, err := flow.CreateDate(ctx, contactID, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeAnniversary,
				DateDay:   3,
				DateMonth: 6,
			}, testMetadata())
			require.NoError(t, err)

			dateID := uuid.MustParse(created.ID)
			updated, err := flow.UpdateDate(ctx, contactID, dateID, &dto.UpdateImportantDateRequest{
				SendTime: utils.ToPtr("17:30"),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "17:30", updated.SendTime)
			assert.Equal(t, 3, updated.DateDay)
			assert.Equal(t, 6, updated.DateMonth)
		})

		t.Run("UpdateEmptyPayloadRejected", func(t *testing.T) {
			created, err := flow.CreateDate(ctx, contactID, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeBirthday,
				DateDay:   4,
				DateMonth: 4,
			}, testMetadata())
			require.NoError(t, err)

			_, err = flow.UpdateDate(ctx, contactID, uuid.MustParse(created.ID), &dto.UpdateImportantDateRequest{}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsEmptyUpdate(err))
		})

		t.Run("UpdateUnknownDate", func(t *testing.T) {
			_, err := flow.UpdateDate(ctx, contactID, uuid.New(), &dto.UpdateImportantDateRequest{
				SendTime: utils.ToPtr("08:00"),
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsDateNotFound(err))
		})

		t.Run("DeleteThenNotFound", func(t *testing.T) {
			created, err := flow.CreateDate(ctx, contactID, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeBirthday,
				DateDay:   5,
				DateMonth: 5,
			}, testMetadata())
			require.NoError(t, err)

			dateID := uuid.MustParse(created.ID)
			_, err = flow.DeleteDate(ctx, contactID, dateID, testMetadata())
			require.NoError(t, err)

			_, err = flow.DeleteDate(ctx, contactID, dateID, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsDateNotFound(err))
		})

		t.Run("UpcomingWithinWindow", func(t *testing.T) {
			upcomingContact := uuid.New()
			now := utils.UTCNow()
			soon := now.Add(48 * time.Hour)
			far := now.Add(90 * 24 * time.Hour)

			_, err := flow.CreateDate(ctx, upcomingContact, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeBirthday,
				DateDay:   soon.Day(),
				DateMonth: int(soon.Month()),
			}, testMetadata())
			require.NoError(t, err)
			_, err = flow.CreateDate(ctx, upcomingContact, &dto.CreateImportantDateRequest{
				Type:      models.DateTypeAnniversary,
				DateDay:   far.Day(),
				DateMonth: int(far.Month()),
			}, testMetadata())
			require.NoError(t, err)

			resp, err := flow.UpcomingDates(ctx, upcomingContact, 7*24*time.Hour)
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, models.DateTypeBirthday, resp.Items[0].Date.Type)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSocialFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		profileRepo := repository.NewSocialProfileRepository(testDB.DB)
		eventRepo := repository.NewSocialEventRepository(testDB.DB)
		flow := businessflow.NewSocialFlow(profileRepo, eventRepo, testDB.DB)
		ctx := testingutil.CreateTestContext()

		contactID := uuid.New()
		accountID := uuid.New()

		t.Run("LinkProfileThenConflict", func(t *testing.T) {
			req := &dto.CreateSocialProfileRequest{
				Platform:    models.PlatformLinkedIn,
				ProfileURL:  "https://linkedin.example.com/in/ada",
				ProfileID:   "ada-1",
				DisplayName: "Ada",
			}
			_, err := flow.LinkProfile(ctx, contactID, req, testMetadata())
			require.NoError(t, err)

			_, err = flow.LinkProfile(ctx, contactID, req, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsProfileAlreadyLinked(err))
		})

		t.Run("IngestPartitionsDuplicates", func(t *testing.T) {
			url := "https://social.example.com/posts/ingest-1"
			item := dto.IngestSocialEventItem{
				SocialAccountID: accountID.String(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeNewPost,
				Title:           "hello",
				Content:         "hello content",
				EventURL:        &url,
				EventTime:       time.Now().UTC().Format(time.RFC3339),
			}

			resp, err := flow.IngestEvents(ctx, contactID, &dto.IngestSocialEventsRequest{
				Events: []dto.IngestSocialEventItem{item, item},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 1, resp.Inserted)
			assert.Equal(t, 1, resp.Duplicates)

			// A second batch with the same URL is fully deduplicated against storage
			resp, err = flow.IngestEvents(ctx, contactID, &dto.IngestSocialEventsRequest{
				Events: []dto.IngestSocialEventItem{item},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 0, resp.Inserted)
			assert.Equal(t, 1, resp.Duplicates)
		})

		t.Run("IngestWithoutURLKeysOnType", func(t *testing.T) {
			noURLContact := uuid.New()
			eventTime := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
			post := dto.IngestSocialEventItem{
				SocialAccountID: accountID.String(),
				Platform:        models.PlatformLinkedIn,
				EventType:       models.EventTypeNewPost,
				Title:           "scraped post",
				Content:         "scraped post content",
				EventURL:        utils.ToPtr(""),
				EventTime:       eventTime,
			}
			mention := post
			mention.EventType = models.EventTypeMention
			mention.Title = "scraped mention"

			// Same timestamp, no URL: distinct event types are distinct events
			resp, err := flow.IngestEvents(ctx, noURLContact, &dto.IngestSocialEventsRequest{
				Events: []dto.IngestSocialEventItem{post, mention},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 2, resp.Inserted)
			assert.Equal(t, 0, resp.Duplicates)

			rows, err := eventRepo.FeedByContact(ctx, noURLContact, 10)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			for _, row := range rows {
				assert.Nil(t, row.EventURL)
			}

			// Replaying the batch dedupes on the timestamp key
			resp, err = flow.IngestEvents(ctx, noURLContact, &dto.IngestSocialEventsRequest{
				Events: []dto.IngestSocialEventItem{post, mention},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, 0, resp.Inserted)
			assert.Equal(t, 2, resp.Duplicates)
		})

		t.Run("FeedAndMarkRead", func(t *testing.T) {
			feed, err := flow.ActivityFeed(ctx, contactID)
			require.NoError(t, err)
			require.NotEmpty(t, feed.Items)
			assert.False(t, feed.Items[0].IsRead)

			eventID := uuid.MustParse(feed.Items[0].ID)
			_, err = flow.MarkEventRead(ctx, contactID, eventID, testMetadata())
			require.NoError(t, err)

			// Marking twice is a no-op
			_, err = flow.MarkEventRead(ctx, contactID, eventID, testMetadata())
			require.NoError(t, err)

			feed, err = flow.ActivityFeed(ctx, contactID)
			require.NoError(t, err)
			assert.True(t, feed.Items[0].IsRead)
		})

		t.Run("MarkReadUnknownEvent", func(t *testing.T) {
			_, err := flow.MarkEventRead(ctx, contactID, uuid.New(), testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsEventNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestIntelligenceFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		alertRepo := repository.NewNewsAlertRepository(testDB.DB)
		flow := businessflow.NewIntelligenceFlow(alertRepo, nil)
		ctx := testingutil.CreateTestContext()

		accountID := uuid.New()

		t.Run("IngestThenAccountNews", func(t *testing.T) {
			_, err := flow.IngestAlert(ctx, accountID, &dto.CreateNewsAlertRequest{
				Title:     "Funding round closed",
				SourceURL: "https://news.example.com/articles/1",
			}, testMetadata())
			require.NoError(t, err)

			resp, err := flow.AccountNews(ctx, accountID)
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "Funding round closed", resp.Items[0].Title)
		})

		t.Run("IngestRejectsBadSentiment", func(t *testing.T) {
			score := 1.5
			_, err := flow.IngestAlert(ctx, accountID, &dto.CreateNewsAlertRequest{
				Title:          "Out of range",
				SourceURL:      "https://news.example.com/articles/2",
				SentimentScore: &score,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsSentimentOutOfRange(err))
		})

		t.Run("GlobalFeedWithoutCache", func(t *testing.T) {
			resp, err := flow.GlobalFeed(ctx)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Items)
		})

		t.Run("GlobalFeedBoundedToNewest", func(t *testing.T) {
			base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 25; i++ {
				alert := &models.NewsAlert{
					AccountID: uuid.New(),
					Title:     "Bulk alert",
					SourceURL: "https://news.example.com/bulk",
					CreatedAt: base.Add(time.Duration(i) * time.Minute),
				}
				require.NoError(t, testDB.DB.Create(alert).Error)
			}

			resp, err := flow.GlobalFeed(ctx)
			require.NoError(t, err)
			require.Len(t, resp.Items, utils.GlobalFeedLimit)

			prev := time.Time{}
			for i, item := range resp.Items {
				created, err := time.Parse(time.RFC3339, item.CreatedAt)
				require.NoError(t, err)
				if i > 0 {
					assert.False(t, created.After(prev))
				}
				prev = created
			}
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCallFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		callRepo := repository.NewCallRepository(testDB.DB)
		flow := businessflow.NewCallFlow(callRepo)
		ctx := testingutil.CreateTestContext()

		userID := uuid.New()

		t.Run("CreateAndList", func(t *testing.T) {
			duration := 300
			_, err := flow.CreateCall(ctx, &dto.CreateCallRequest{
				UserID:   userID.String(),
				Type:     models.CallTypeInbound,
				Status:   "completed",
				Duration: &duration,
			}, testMetadata())
			require.NoError(t, err)

			resp, err := flow.ListCalls(ctx, models.CallFilter{UserID: &userID})
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, models.CallTypeInbound, resp.Items[0].Type)
		})

		t.Run("CreateRejectsBadType", func(t *testing.T) {
			_, err := flow.CreateCall(ctx, &dto.CreateCallRequest{
				UserID: userID.String(),
				Type:   "carrier_pigeon",
				Status: "completed",
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCallType(err))
		})

		t.Run("CreateRejectsNegativeDuration", func(t *testing.T) {
			duration := -5
			_, err := flow.CreateCall(ctx, &dto.CreateCallRequest{
				UserID:   userID.String(),
				Type:     models.CallTypeOutbound,
				Status:   "completed",
				Duration: &duration,
			}, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsNegativeDuration(err))
		})

		return nil
	})
	require.NoError(t, err)
}
