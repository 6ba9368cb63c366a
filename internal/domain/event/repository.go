package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

// Repository defines the interface for event persistence operations
type Repository interface {
	Create(ctx context.Context, event *Event) error
	// FindPage returns one page of a category's events created at or after
	// since, newest first, along with the total count for the window.
	FindPage(ctx context.Context, categoryID uuid.UUID, since time.Time, offset, limit int) ([]Event, int64, error)
	CountSince(ctx context.Context, categoryID uuid.UUID, since time.Time) (int64, error)
	// DistinctFieldMappings returns the distinct field mappings (deduplicated
	// by full mapping equality, not by field name) seen since the given time.
	DistinctFieldMappings(ctx context.Context, categoryID uuid.UUID, since time.Time) ([]datatypes.JSONMap, error)
	// LastCreated returns the creation time of the most recent event ever,
	// or nil when the category has no events.
	LastCreated(ctx context.Context, categoryID uuid.UUID) (*time.Time, error)
	HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindPage(ctx context.Context, categoryID uuid.UUID, since time.Time, offset, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.WithContext(ctx).Model(&Event{}).
		Where("category_id = ? AND created_at >= ?", categoryID, since)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *repository) CountSince(ctx context.Context, categoryID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).
		Where("category_id = ? AND created_at >= ?", categoryID, since).
		Count(&count).Error
	return count, err
}

func (r *repository) DistinctFieldMappings(ctx context.Context, categoryID uuid.UUID, since time.Time) ([]datatypes.JSONMap, error) {
	var rows []struct {
		Fields datatypes.JSONMap `gorm:"type:jsonb"`
	}

	err := r.db.WithContext(ctx).Model(&Event{}).
		Distinct("fields").
		Where("category_id = ? AND created_at >= ?", categoryID, since).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	mappings := make([]datatypes.JSONMap, len(rows))
	for i, row := range rows {
		mappings[i] = row.Fields
	}
	return mappings, nil
}

func (r *repository) LastCreated(ctx context.Context, categoryID uuid.UUID) (*time.Time, error) {
	var e Event
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Select("created_at").
		First(&e)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &e.CreatedAt, nil
}

func (r *repository) HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).
		Where("category_id = ?", categoryID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
