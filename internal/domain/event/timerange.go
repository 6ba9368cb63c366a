package event

import (
	"errors"
	"time"
)

// TimeRange scopes event queries and summary sums to a calendar window.
type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// ParseTimeRange returns the range for a query-string value. An empty
// value defaults to today, anything else is rejected.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeToday, RangeWeek, RangeMonth:
		return TimeRange(s), nil
	case "":
		return RangeToday, nil
	}
	return "", ErrInvalidTimeRange
}

func (r TimeRange) IsValid() bool {
	switch r {
	case RangeToday, RangeWeek, RangeMonth:
		return true
	}
	return false
}

// Start returns the inclusive lower bound of the window ending at now.
func (r TimeRange) Start(now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return StartOfWeek(now)
	case RangeMonth:
		return StartOfMonth(now)
	default:
		return StartOfDay(now)
	}
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns local midnight of the most recent Sunday. Weeks
// start on Sunday, matching the dashboard's summary buckets.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns local midnight of the 1st of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// IsSameDay reports whether a and b fall on the same local calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
