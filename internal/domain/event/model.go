package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DeliveryStatus describes the ingestion/processing outcome of an event
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusFailed    DeliveryStatus = "FAILED"
	StatusPending   DeliveryStatus = "PENDING"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusPending:
		return true
	}
	return false
}

// Event is a timestamped record belonging to one category. Fields is an
// open mapping of field name to scalar value; events in the same category
// may carry entirely different field sets.
type Event struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CategoryID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_events_category_created,priority:1"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	Fields         datatypes.JSONMap `gorm:"type:jsonb;default:'{}'"`
	DeliveryStatus DeliveryStatus    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt      time.Time         `gorm:"not null;default:current_timestamp;index:idx_events_category_created,priority:2,sort:desc"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// BeforeCreate is called before creating a new event record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.DeliveryStatus == "" {
		e.DeliveryStatus = StatusPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

// CategoryActivity is published whenever an event is written, so open
// dashboards can drop their first-load "category has no events" snapshot.
type CategoryActivity struct {
	UserID       uuid.UUID `json:"user_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Timestamp    time.Time `json:"timestamp"`
}
