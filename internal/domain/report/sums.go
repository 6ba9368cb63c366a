package report

import (
	"encoding/json"
	"time"

	"github.com/pulseboard-app/pulseboard/internal/domain/event"
)

// FieldSum holds the windowed sums of one numeric event field. Total covers
// the whole fetched page; the windowed buckets are relative to now. Only
// the bucket matching the active tab is displayed, Total is kept for
// completeness.
type FieldSum struct {
	Total     float64 `json:"total"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
	Today     float64 `json:"today"`
}

// ForRange returns the bucket displayed for the given time range tab.
func (s FieldSum) ForRange(rng event.TimeRange) float64 {
	switch rng {
	case event.RangeWeek:
		return s.ThisWeek
	case event.RangeMonth:
		return s.ThisMonth
	default:
		return s.Today
	}
}

// ComputeFieldSums reduces exactly the given page of events into per-field
// numeric sums. Sums are page-scoped: events outside the fetched page never
// contribute, which is a deliberate property of the dashboard summaries.
func ComputeFieldSums(events []event.Event, now time.Time) map[string]FieldSum {
	sums := make(map[string]FieldSum)
	weekStart := event.StartOfWeek(now)
	monthStart := event.StartOfMonth(now)

	for _, e := range events {
		for name, value := range e.Fields {
			v, ok := numericValue(value)
			if !ok {
				continue
			}

			sum := sums[name]
			sum.Total += v
			if !e.CreatedAt.Before(weekStart) {
				sum.ThisWeek += v
			}
			if !e.CreatedAt.Before(monthStart) {
				sum.ThisMonth += v
			}
			if event.IsSameDay(e.CreatedAt, now) {
				sum.Today += v
			}
			sums[name] = sum
		}
	}

	return sums
}

// numericValue unwraps the scalar variants a JSONB field can hold. Strings
// and booleans are not summed, matching the dashboard cards.
func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
