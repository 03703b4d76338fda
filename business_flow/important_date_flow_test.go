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

func dateRecord(id uint, day, month int) *models.ImportantDate {
	return &models.ImportantDate{
		ID:             id,
		UUID:           uuid.New(),
		ContactID:      uuid.New(),
		Type:           models.DateTypeBirthday,
		DateDay:        day,
		DateMonth:      month,
		SendTime:       "09:00",
		Timezone:       "UTC",
		RepeatAnnually: utils.ToPtr(true),
		OptOut:         utils.ToPtr(false),
		IsActive:       utils.ToPtr(true),
	}
}

func TestDueDates(t *testing.T) {
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	t.Run("WindowFiltering", func(t *testing.T) {
		inside := dateRecord(1, 12, 3)
		boundary := dateRecord(2, 17, 3) // occurs 2025-03-17 09:00, inside the 7-day window
		outside := dateRecord(3, 25, 3)

		due := DueDates([]*models.ImportantDate{outside, inside, boundary}, ref, week)
		require.Len(t, due, 2)
		assert.Equal(t, uint(1), due[0].Record.ID)
		assert.Equal(t, uint(2), due[1].Record.ID)
	})

	t.Run("ExcludesOptOutAndInactive", func(t *testing.T) {
		active := dateRecord(1, 12, 3)
		optedOut := dateRecord(2, 12, 3)
		optedOut.OptOut = utils.ToPtr(true)
		inactive := dateRecord(3, 12, 3)
		inactive.IsActive = utils.ToPtr(false)

		due := DueDates([]*models.ImportantDate{active, optedOut, inactive}, ref, week)
		require.Len(t, due, 1)
		assert.Equal(t, uint(1), due[0].Record.ID)
	})

	t.Run("OrderedByInstantThenID", func(t *testing.T) {
		later := dateRecord(1, 14, 3)
		earlier := dateRecord(2, 12, 3)
		tiedHigh := dateRecord(9, 13, 3)
		tiedLow := dateRecord(4, 13, 3)

		due := DueDates([]*models.ImportantDate{later, tiedHigh, earlier, tiedLow}, ref, week)
		require.Len(t, due, 4)
		assert.Equal(t, uint(2), due[0].Record.ID)
		assert.Equal(t, uint(4), due[1].Record.ID)
		assert.Equal(t, uint(9), due[2].Record.ID)
		assert.Equal(t, uint(1), due[3].Record.ID)
	})

	t.Run("SkipsUnresolvableRecords", func(t *testing.T) {
		good := dateRecord(1, 12, 3)
		badSendTime := dateRecord(2, 12, 3)
		badSendTime.SendTime = "not-a-time"
		badZone := dateRecord(3, 12, 3)
		badZone.Timezone = "Atlantis/Sunken_City"

		due := DueDates([]*models.ImportantDate{good, badSendTime, badZone}, ref, week)
		require.Len(t, due, 1)
		assert.Equal(t, uint(1), due[0].Record.ID)
	})

	t.Run("PassedOneShotNeverDue", func(t *testing.T) {
		oneShot := dateRecord(1, 12, 3)
		oneShot.Year = utils.ToPtr(2020)
		oneShot.RepeatAnnually = utils.ToPtr(false)

		due := DueDates([]*models.ImportantDate{oneShot}, ref, week)
		assert.Empty(t, due)
	})

	t.Run("OccurrenceInstantExposed", func(t *testing.T) {
		rec := dateRecord(1, 12, 3)
		due := DueDates([]*models.ImportantDate{rec}, ref, week)
		require.Len(t, due, 1)
		assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), due[0].OccursAt)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, DueDates(nil, ref, week))
	})
}
