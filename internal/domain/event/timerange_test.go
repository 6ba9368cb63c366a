package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeRange
		wantErr  bool
	}{
		{name: "today", input: "today", expected: RangeToday},
		{name: "week", input: "week", expected: RangeWeek},
		{name: "month", input: "month", expected: RangeMonth},
		{name: "empty defaults to today", input: "", expected: RangeToday},
		{name: "unknown value rejected", input: "year", wantErr: true},
		{name: "case sensitive", input: "Today", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ParseTimeRange(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, rng)
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Wednesday rewinds to Sunday",
			now:      time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday is its own week start",
			now:      time.Date(2025, 1, 12, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Saturday rewinds six days",
			now:      time.Date(2025, 1, 18, 1, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "week start can cross a month boundary",
			now:      time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartOfWeek(tt.now))
		})
	}
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2025, 3, 19, 16, 45, 12, 0, time.UTC) // a Wednesday

	assert.Equal(t, time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC), RangeToday.Start(now))
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), RangeWeek.Start(now))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), RangeMonth.Start(now))
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 5, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 5, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(b, c))
}
