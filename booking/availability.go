package booking

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate reads a calendar date and pins it to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// StartOfToday returns UTC midnight of the current day.
func StartOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateRange enforces the booking date policy: the range must not start
// before today and must not be inverted. Same-day ranges are allowed.
func ValidateRange(start, end, today time.Time) error {
	if start.Before(today) {
		return ErrPastStartDate
	}
	if start.After(end) {
		return ErrStartAfterEnd
	}
	return nil
}

// Overlaps reports whether two inclusive date ranges intersect. This covers
// partial overlap, containment, and exact match in both directions.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Nights returns the whole-day difference between end and start, floored
// at one: a same-day stay still costs one night.
func Nights(start, end time.Time) int {
	n := int(end.Sub(start).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
