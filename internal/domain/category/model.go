package category

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category with this name already exists")
	ErrInvalidName       = errors.New("category name can only contain letters, numbers or hyphens")
	ErrInvalidColor      = errors.New("invalid color format")
	ErrInvalidEmoji      = errors.New("invalid emoji")
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// EventCategory is a user-owned named bucket grouping ingested events.
// (name, user_id) is unique per owner.
type EventCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_name_user,priority:2"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_categories_name_user,priority:1"`
	Color     int       `gorm:"not null;default:0"`
	Emoji     string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the EventCategory model
func (EventCategory) TableName() string {
	return "event_categories"
}

// BeforeCreate is called before creating a new category record
func (c *EventCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// WithStats is a category annotated with the derived monthly counters
// the dashboard list shows. Not persisted.
type WithStats struct {
	EventCategory
	UniqueFieldCount int        `json:"unique_field_count"`
	EventsCount      int64      `json:"events_count"`
	LastPing         *time.Time `json:"last_ping,omitempty"`
}

// CreateInput represents the input for creating a category
type CreateInput struct {
	Name   string
	Color  string
	Emoji  string
	UserID uuid.UUID
}

// ValidateName enforces the boundary contract for category names.
func ValidateName(name string) error {
	if name == "" || !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// ParseColor converts a "#RRGGBB" string to its integer value.
func ParseColor(color string) (int, error) {
	if !colorPattern.MatchString(color) {
		return 0, ErrInvalidColor
	}
	v, err := strconv.ParseInt(strings.TrimPrefix(color, "#"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return int(v), nil
}

// HexColor renders the stored color back to "#RRGGBB" form.
func (c *EventCategory) HexColor() string {
	return fmt.Sprintf("#%06X", c.Color)
}

// validateEmoji accepts an empty emoji or a short non-ASCII grapheme.
func validateEmoji(emoji string) error {
	if emoji == "" {
		return nil
	}
	if n := utf8.RuneCountInString(emoji); n < 1 || n > 4 {
		return ErrInvalidEmoji
	}
	for _, r := range emoji {
		if r < 0x80 {
			return ErrInvalidEmoji
		}
	}
	return nil
}
