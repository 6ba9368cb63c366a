package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/pulseboard-app/pulseboard/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

// Repository defines the interface for category persistence operations
type Repository interface {
	Create(ctx context.Context, category *EventCategory) error
	// FindByOwner returns all categories owned by ownerID, most recently
	// updated first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]EventCategory, error)
	FindByName(ctx context.Context, name string, ownerID uuid.UUID) (*EventCategory, error)
	DeleteByName(ctx context.Context, name string, ownerID uuid.UUID) error
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *EventCategory) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (r *repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]EventCategory, error) {
	var categories []EventCategory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&categories).Error
	return categories, err
}

func (r *repository) FindByName(ctx context.Context, name string, ownerID uuid.UUID) (*EventCategory, error) {
	var c EventCategory
	result := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, ownerID).
		First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &c, nil
}

// DeleteByName removes a category and cascades to its events. Scoped to
// the owner so another user's category is indistinguishable from a missing
// one.
func (r *repository) DeleteByName(ctx context.Context, name string, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c EventCategory
		err := tx.Where("name = ? AND user_id = ?", name, ownerID).First(&c).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Where("category_id = ?", c.ID).Delete(&event.Event{}).Error; err != nil {
			return err
		}

		return tx.Delete(&c).Error
	})
}
