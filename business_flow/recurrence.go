// Package businessflow contains the core business logic for the relationship-intelligence engine
package businessflow

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock send time without a date component
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Each component must be
// exactly two digits
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, ErrInvalidSendTime
	}

	vals := make([]int, len(parts))
	for i, part := range parts {
		if len(part) != 2 || part[0] < '0' || part[0] > '9' || part[1] < '0' || part[1] > '9' {
			return TimeOfDay{}, ErrInvalidSendTime
		}
		vals[i] = int(part[0]-'0')*10 + int(part[1]-'0')
	}

	t := TimeOfDay{Hour: vals[0], Minute: vals[1]}
	if len(vals) == 3 {
		t.Second = vals[2]
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, ErrInvalidSendTime
	}
	return t, nil
}

// String renders the time-of-day as "HH:MM" or "HH:MM:SS" when seconds are set
func (t TimeOfDay) String() string {
	if t.Second > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// daysInMonth returns the number of days in the given month and year.
// Day zero of the following month is the last day of this one.
func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// occurrenceInYear builds the UTC instant for (day, month, sendTime) in the
// given year and zone. Days past the end of the month clamp to the last valid
// day, so Feb 29 lands on Feb 28 in non-leap years and day 31 lands on the
// 30th in 30-day months. The zone's offset for the candidate local date is
// used, so DST transitions are honored.
func occurrenceInYear(day, month, year int, sendTime TimeOfDay, loc *time.Location) time.Time {
	if last := daysInMonth(month, year); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, sendTime.Hour, sendTime.Minute, sendTime.Second, 0, loc).UTC()
}

// NextOccurrence computes the next occurrence instant in UTC for a recurring
// date, relative to ref (a UTC instant).
//
// The candidate year is ref's year in the target timezone; if the candidate
// instant is at or before ref, it advances to the same (day, month) in the
// following year. When year is present and repeatAnnually is false the date
// is a one-shot: the exact occurrence in that year is returned, or ok=false
// if it is already past.
func NextOccurrence(day, month int, year *int, repeatAnnually bool, sendTime TimeOfDay, timezone string, ref time.Time) (occurrence time.Time, ok bool, err error) {
	if day < 1 || day > 31 {
		return time.Time{}, false, ErrDayOutOfRange
	}
	if month < 1 || month > 12 {
		return time.Time{}, false, ErrMonthOutOfRange
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, false, ErrUnknownTimezone
	}

	if year != nil && !repeatAnnually {
		once := occurrenceInYear(day, month, *year, sendTime, loc)
		if !once.After(ref) {
			return time.Time{}, false, nil
		}
		return once, true, nil
	}

	candidateYear := ref.In(loc).Year()
	candidate := occurrenceInYear(day, month, candidateYear, sendTime, loc)
	if !candidate.After(ref) {
		candidate = occurrenceInYear(day, month, candidateYear+1, sendTime, loc)
	}
	return candidate, true, nil
}
