package report

import (
	"sort"

	"github.com/pulseboard-app/pulseboard/internal/domain/event"
)

// ColumnKind distinguishes the fixed table columns from the ones derived
// out of event field names.
type ColumnKind string

const (
	ColumnCategory ColumnKind = "category"
	ColumnCreated  ColumnKind = "createdAt"
	ColumnField    ColumnKind = "field"
	ColumnStatus   ColumnKind = "deliveryStatus"
)

// ColumnScope controls which events contribute field columns.
type ColumnScope int

const (
	// ScopePageUnion derives field columns from every event on the page.
	ScopePageUnion ColumnScope = iota
	// ScopeFirstEvent derives field columns from the first event only,
	// silently dropping fields that appear later in the page.
	ScopeFirstEvent
)

// Column is one table column of the event overview.
type Column struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Kind     ColumnKind `json:"kind"`
	Sortable bool       `json:"sortable,omitempty"`
}

// BadgeVariant maps a delivery status to its badge styling. Unknown
// statuses render unstyled.
func BadgeVariant(status event.DeliveryStatus) string {
	switch status {
	case event.StatusDelivered:
		return "green"
	case event.StatusFailed:
		return "red"
	case event.StatusPending:
		return "yellow"
	}
	return ""
}

// DeriveColumns builds the column set for a page of events: the fixed
// category column, a sortable creation-time column, one column per observed
// field name, and the delivery status column last. Field columns are sorted
// by name so the layout is stable across fetches.
func DeriveColumns(events []event.Event, scope ColumnScope) []Column {
	columns := []Column{
		{Key: "category", Title: "Category", Kind: ColumnCategory},
		{Key: "createdAt", Title: "Date", Kind: ColumnCreated, Sortable: true},
	}

	for _, name := range fieldNames(events, scope) {
		columns = append(columns, Column{Key: name, Title: name, Kind: ColumnField})
	}

	columns = append(columns, Column{Key: "deliveryStatus", Title: "Delivery Status", Kind: ColumnStatus})
	return columns
}

func fieldNames(events []event.Event, scope ColumnScope) []string {
	if len(events) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	if scope == ScopeFirstEvent {
		for name := range events[0].Fields {
			seen[name] = struct{}{}
		}
	} else {
		for _, e := range events {
			for name := range e.Fields {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
