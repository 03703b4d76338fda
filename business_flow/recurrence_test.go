package businessflow

import (
	"testing"
	"time"

	"github.com/rapportlabs/kizuna/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    TimeOfDay
		expectError bool
	}{
		{
			name:     "hour and minute",
			input:    "09:00",
			expected: TimeOfDay{Hour: 9, Minute: 0},
		},
		{
			name:     "with seconds",
			input:    "23:59:59",
			expected: TimeOfDay{Hour: 23, Minute: 59, Second: 59},
		},
		{
			name:     "midnight",
			input:    "00:00",
			expected: TimeOfDay{},
		},
		{
			name:        "hour out of range",
			input:       "24:00",
			expectError: true,
		},
		{
			name:        "minute out of range",
			input:       "09:60",
			expectError: true,
		},
		{
			name:        "missing minutes",
			input:       "09",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
		{
			name:        "garbage",
			input:       "ab:cd",
			expectError: true,
		},
		{
			name:        "single digit hour",
			input:       "9:30",
			expectError: true,
		},
		{
			name:        "overlong minute component",
			input:       "1:234",
			expectError: true,
		},
		{
			name:        "trailing component",
			input:       "09:00:00:00",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimeOfDay(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidSendTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	nineAM := TimeOfDay{Hour: 9}

	t.Run("StrictlyAfterReference", func(t *testing.T) {
		// Reference is exactly the occurrence instant, so the result
		// must advance a full year rather than return the same moment
		ref := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(15, 3, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), occurrence)
		assert.True(t, occurrence.After(ref))
	})

	t.Run("SameYearWhenStillAhead", func(t *testing.T) {
		ref := time.Date(2025, 3, 15, 8, 59, 59, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(15, 3, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("ClampsDayToMonthEnd", func(t *testing.T) {
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(31, 4, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 4, 30, 9, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("LeapDayClampsInCommonYear", func(t *testing.T) {
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(29, 2, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("LeapDayStaysInLeapYear", func(t *testing.T) {
		ref := time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(29, 2, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2028, 2, 29, 9, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("TimezoneShiftsInstant", func(t *testing.T) {
		// 09:00 in Tokyo is 00:00 UTC the same day
		ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(10, 6, nil, true, nineAM, "Asia/Tokyo", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("TimezoneBehindUTC", func(t *testing.T) {
		// 09:00 in New York during June is 13:00 UTC
		ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(10, 6, nil, true, nineAM, "America/New_York", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("YearRollsForwardAcrossZoneBoundary", func(t *testing.T) {
		// At this reference the candidate in the zone's current year has
		// already passed, so next year is chosen
		ref := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(1, 1, nil, true, nineAM, "Asia/Tokyo", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2026, occurrence.Year())
		assert.True(t, occurrence.After(ref))
	})

	t.Run("SingleOccurrenceUpcoming", func(t *testing.T) {
		year := 2030
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(15, 3, &year, false, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC), occurrence)
	})

	t.Run("SingleOccurrencePassed", func(t *testing.T) {
		year := 2020
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		_, ok, err := NextOccurrence(15, 3, &year, false, nineAM, "UTC", ref)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("YearWithAnnualRepeatStillRecurs", func(t *testing.T) {
		// A recorded year with annual repeat behaves like any anniversary
		year := 1990
		ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		occurrence, ok, err := NextOccurrence(15, 3, &year, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2026, occurrence.Year())
	})

	t.Run("ResultIsUTC", func(t *testing.T) {
		ref := utils.UTCNow()
		occurrence, ok, err := NextOccurrence(1, 1, nil, true, nineAM, "Australia/Sydney", ref)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.UTC, occurrence.Location())
	})

	t.Run("IdempotentOverOneYear", func(t *testing.T) {
		// Feeding an occurrence back in as the reference lands exactly one
		// recurrence later
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		first, ok, err := NextOccurrence(15, 3, nil, true, nineAM, "UTC", ref)
		require.NoError(t, err)
		require.True(t, ok)
		second, ok, err := NextOccurrence(15, 3, nil, true, nineAM, "UTC", first)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first.AddDate(1, 0, 0), second)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		_, _, err := NextOccurrence(0, 3, nil, true, nineAM, "UTC", ref)
		assert.ErrorIs(t, err, ErrDayOutOfRange)

		_, _, err = NextOccurrence(32, 3, nil, true, nineAM, "UTC", ref)
		assert.ErrorIs(t, err, ErrDayOutOfRange)

		_, _, err = NextOccurrence(15, 0, nil, true, nineAM, "UTC", ref)
		assert.ErrorIs(t, err, ErrMonthOutOfRange)

		_, _, err = NextOccurrence(15, 13, nil, true, nineAM, "UTC", ref)
		assert.ErrorIs(t, err, ErrMonthOutOfRange)

		_, _, err = NextOccurrence(15, 3, nil, true, nineAM, "Mars/Olympus_Mons", ref)
		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})
}
