package businessflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func socialEvent(contactID uuid.UUID, eventType string, eventURL *string, eventTime time.Time) *models.SocialEvent {
	return &models.SocialEvent{
		ContactID:       contactID,
		SocialAccountID: uuid.New(),
		Platform:        models.PlatformLinkedIn,
		EventType:       eventType,
		Title:           "Shared an update",
		Content:         "Some content",
		EventURL:        eventURL,
		EventTime:       eventTime,
	}
}

func TestPartitionEvents(t *testing.T) {
	contactID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("URLDuplicateAgainstStored", func(t *testing.T) {
		url := utils.ToPtr("https://linkedin.com/posts/abc123")
		existing := []*models.SocialEvent{socialEvent(contactID, models.EventTypeNewPost, url, now)}
		incoming := []*models.SocialEvent{
			socialEvent(contactID, models.EventTypeNewPost, url, now.Add(time.Hour)),
			socialEvent(contactID, models.EventTypeNewPost, utils.ToPtr("https://linkedin.com/posts/def456"), now),
		}

		fresh, dups := PartitionEvents(existing, incoming)
		require.Len(t, fresh, 1)
		assert.Equal(t, 1, dups)
		assert.Equal(t, "https://linkedin.com/posts/def456", *fresh[0].EventURL)
	})

	t.Run("FallbackKeyWhenNoURL", func(t *testing.T) {
		existing := []*models.SocialEvent{socialEvent(contactID, models.EventTypeJobChange, nil, now)}
		incoming := []*models.SocialEvent{
			socialEvent(contactID, models.EventTypeJobChange, nil, now),
			socialEvent(contactID, models.EventTypeJobChange, nil, now.Add(time.Minute)),
			socialEvent(contactID, models.EventTypeMention, nil, now),
		}

		fresh, dups := PartitionEvents(existing, incoming)
		assert.Len(t, fresh, 2)
		assert.Equal(t, 1, dups)
	})

	t.Run("DifferentContactsNeverCollide", func(t *testing.T) {
		url := utils.ToPtr("https://linkedin.com/posts/abc123")
		existing := []*models.SocialEvent{socialEvent(contactID, models.EventTypeNewPost, url, now)}
		incoming := []*models.SocialEvent{socialEvent(uuid.New(), models.EventTypeNewPost, url, now)}

		fresh, dups := PartitionEvents(existing, incoming)
		assert.Len(t, fresh, 1)
		assert.Zero(t, dups)
	})

	t.Run("DifferentPlatformsNeverCollide", func(t *testing.T) {
		url := utils.ToPtr("https://example.com/posts/abc123")
		stored := socialEvent(contactID, models.EventTypeNewPost, url, now)
		other := socialEvent(contactID, models.EventTypeNewPost, url, now)
		other.Platform = models.PlatformTwitter

		fresh, dups := PartitionEvents([]*models.SocialEvent{stored}, []*models.SocialEvent{other})
		assert.Len(t, fresh, 1)
		assert.Zero(t, dups)
	})

	t.Run("DuplicatesWithinBatchCollapse", func(t *testing.T) {
		url := utils.ToPtr("https://linkedin.com/posts/abc123")
		incoming := []*models.SocialEvent{
			socialEvent(contactID, models.EventTypeNewPost, url, now),
			socialEvent(contactID, models.EventTypeNewPost, url, now),
			socialEvent(contactID, models.EventTypeNewPost, url, now),
		}

		fresh, dups := PartitionEvents(nil, incoming)
		assert.Len(t, fresh, 1)
		assert.Equal(t, 2, dups)
	})

	t.Run("EmptyURLUsesFallbackKey", func(t *testing.T) {
		// An empty string URL is treated like a missing one
		existing := []*models.SocialEvent{socialEvent(contactID, models.EventTypeNewPost, nil, now)}
		incoming := []*models.SocialEvent{socialEvent(contactID, models.EventTypeNewPost, utils.ToPtr(""), now)}

		fresh, dups := PartitionEvents(existing, incoming)
		assert.Empty(t, fresh)
		assert.Equal(t, 1, dups)
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		fresh, dups := PartitionEvents(nil, nil)
		assert.Empty(t, fresh)
		assert.Zero(t, dups)
	})
}
