package report

import (
	"testing"
	"time"

	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/stretchr/testify/assert"
)

func eventAt(created time.Time, fields map[string]interface{}) event.Event {
	return event.Event{
		Fields:         fields,
		DeliveryStatus: event.StatusDelivered,
		CreatedAt:      created,
	}
}

func TestComputeFieldSums(t *testing.T) {
	// Wednesday; the week started Sunday the 13th, the month on the 1st.
	// The second event lands inside the month but before the week start.
	now := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

	events := []event.Event{
		eventAt(now.Add(-2*time.Hour), map[string]interface{}{"amount": float64(10)}),
		eventAt(time.Date(2025, 4, 7, 9, 0, 0, 0, time.UTC), map[string]interface{}{"amount": float64(5)}),
		eventAt(time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC), map[string]interface{}{"other": "x"}),
	}

	sums := ComputeFieldSums(events, now)

	amount, ok := sums["amount"]
	assert.True(t, ok)
	assert.Equal(t, float64(15), amount.Total)
	assert.Equal(t, float64(15), amount.ThisMonth)
	assert.Equal(t, float64(10), amount.ThisWeek)
	assert.Equal(t, float64(10), amount.Today)

	// String-valued fields never produce a sum.
	_, ok = sums["other"]
	assert.False(t, ok)
}

func TestComputeFieldSumsBucketsAreNested(t *testing.T) {
	now := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

	events := []event.Event{
		eventAt(now, map[string]interface{}{"amount": float64(1)}),
		eventAt(time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), map[string]interface{}{"amount": float64(2)}),
		eventAt(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), map[string]interface{}{"amount": float64(4)}),
		eventAt(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), map[string]interface{}{"amount": float64(8)}),
	}

	sum := ComputeFieldSums(events, now)["amount"]

	// With non-negative values the buckets nest: total >= month >= week >= today.
	assert.GreaterOrEqual(t, sum.Total, sum.ThisMonth)
	assert.GreaterOrEqual(t, sum.ThisMonth, sum.ThisWeek)
	assert.GreaterOrEqual(t, sum.ThisWeek, sum.Today)
	assert.Equal(t, float64(15), sum.Total)
	assert.Equal(t, float64(7), sum.ThisMonth)
	assert.Equal(t, float64(3), sum.ThisWeek)
	assert.Equal(t, float64(1), sum.Today)
}

func TestComputeFieldSumsNegativeValues(t *testing.T) {
	now := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

	events := []event.Event{
		eventAt(now, map[string]interface{}{"delta": float64(-3)}),
		eventAt(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), map[string]interface{}{"delta": float64(10)}),
	}

	sum := ComputeFieldSums(events, now)["delta"]

	// Negative values break the nesting property; the buckets are still
	// plain sums over their windows.
	assert.Equal(t, float64(7), sum.Total)
	assert.Equal(t, float64(7), sum.ThisMonth)
	assert.Equal(t, float64(-3), sum.ThisWeek)
	assert.Equal(t, float64(-3), sum.Today)
	assert.Less(t, sum.ThisWeek, sum.Today+0.001)
}

func TestComputeFieldSumsMixedValueTypes(t *testing.T) {
	now := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

	events := []event.Event{
		eventAt(now, map[string]interface{}{
			"count":   int64(3),
			"ratio":   float32(0.5),
			"flag":    true,
			"comment": "ignored",
		}),
	}

	sums := ComputeFieldSums(events, now)

	assert.Equal(t, float64(3), sums["count"].Total)
	assert.InDelta(t, 0.5, sums["ratio"].Total, 0.0001)
	assert.NotContains(t, sums, "flag")
	assert.NotContains(t, sums, "comment")
}

func TestDeriveColumns(t *testing.T) {
	now := time.Now()
	events := []event.Event{
		eventAt(now, map[string]interface{}{"plan": "pro"}),
		eventAt(now, map[string]interface{}{"amount": float64(10), "plan": "free"}),
	}

	t.Run("page union", func(t *testing.T) {
		columns := DeriveColumns(events, ScopePageUnion)

		keys := make([]string, len(columns))
		for i, col := range columns {
			keys[i] = col.Key
		}
		assert.Equal(t, []string{"category", "createdAt", "amount", "plan", "deliveryStatus"}, keys)

		assert.False(t, columns[0].Sortable)
		assert.True(t, columns[1].Sortable, "createdAt column is sortable")
		assert.Equal(t, ColumnStatus, columns[len(columns)-1].Kind)
	})

	t.Run("first event only", func(t *testing.T) {
		columns := DeriveColumns(events, ScopeFirstEvent)

		keys := make([]string, len(columns))
		for i, col := range columns {
			keys[i] = col.Key
		}
		// The amount field only appears on the second event and is dropped.
		assert.Equal(t, []string{"category", "createdAt", "plan", "deliveryStatus"}, keys)
	})

	t.Run("no events keeps fixed columns", func(t *testing.T) {
		columns := DeriveColumns(nil, ScopePageUnion)
		assert.Len(t, columns, 3)
	})
}

func TestBadgeVariant(t *testing.T) {
	assert.Equal(t, "green", BadgeVariant(event.StatusDelivered))
	assert.Equal(t, "red", BadgeVariant(event.StatusFailed))
	assert.Equal(t, "yellow", BadgeVariant(event.StatusPending))
	assert.Equal(t, "", BadgeVariant(event.DeliveryStatus("UNKNOWN")))
}

func TestPaginationFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		expected Pagination
	}{
		{name: "defaults", page: "", limit: "", expected: Pagination{PageIndex: 0, PageSize: 20}},
		{name: "explicit values", page: "3", limit: "50", expected: Pagination{PageIndex: 2, PageSize: 50}},
		{name: "zero page clamped", page: "0", limit: "10", expected: Pagination{PageIndex: 0, PageSize: 10}},
		{name: "negative page clamped", page: "-2", limit: "10", expected: Pagination{PageIndex: 0, PageSize: 10}},
		{name: "zero limit clamped to default", page: "1", limit: "0", expected: Pagination{PageIndex: 0, PageSize: 20}},
		{name: "negative limit clamped to default", page: "1", limit: "-5", expected: Pagination{PageIndex: 0, PageSize: 20}},
		{name: "malformed values clamped", page: "abc", limit: "xyz", expected: Pagination{PageIndex: 0, PageSize: 20}},
		{name: "oversized limit capped", page: "1", limit: "5000", expected: Pagination{PageIndex: 0, PageSize: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PaginationFromQuery(tt.page, tt.limit, 100))
		})
	}
}

func TestPageCount(t *testing.T) {
	p := Pagination{PageSize: 20}

	assert.Equal(t, 0, p.PageCount(0))
	assert.Equal(t, 1, p.PageCount(1))
	assert.Equal(t, 1, p.PageCount(20))
	assert.Equal(t, 2, p.PageCount(21))
	assert.Equal(t, 5, p.PageCount(100))
}

func TestClampIndex(t *testing.T) {
	p := Pagination{PageIndex: 9, PageSize: 20}

	// 45 events fit on 3 pages; the index snaps to the last one.
	assert.Equal(t, 2, p.ClampIndex(45).PageIndex)
	// No events at all still leaves a valid first page.
	assert.Equal(t, 0, p.ClampIndex(0).PageIndex)
}
