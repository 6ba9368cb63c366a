package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan represents the subscription tier of an account
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPro:
		return true
	}
	return false
}

// User is a dashboard account. ExternalID is the identity issued by the
// auth provider; APIKey authenticates the event ingestion path.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ExternalID string    `gorm:"size:255;not null;uniqueIndex"`
	Email      string    `gorm:"size:255;not null"`
	APIKey     string    `gorm:"size:64;not null;uniqueIndex"`
	Plan       Plan      `gorm:"type:varchar(20);not null;default:'free'"`
	CreatedAt  time.Time `gorm:"not null;default:current_timestamp"`
	UpdatedAt  time.Time `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.APIKey == "" {
		u.APIKey = NewAPIKey()
	}
	if u.Plan == "" {
		u.Plan = PlanFree
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// NewAPIKey generates an ingestion API key.
func NewAPIKey() string {
	return "pb_" + strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}
