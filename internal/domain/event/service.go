package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNonScalarField = errors.New("event field values must be strings, numbers or booleans")
)

// ActivityPublisher broadcasts category activity to open dashboards.
type ActivityPublisher interface {
	PublishCategoryActivity(ctx context.Context, activity *CategoryActivity) error
}

// IngestInput carries a single event from the ingestion path.
type IngestInput struct {
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Fields       map[string]interface{}
	Status       DeliveryStatus
}

type Service interface {
	// GetPage fetches one page of a category's events for the given time
	// range. pageIndex is 0-based; the caller is responsible for resolving
	// and authorizing the category.
	GetPage(ctx context.Context, categoryID uuid.UUID, rng TimeRange, pageIndex, pageSize int) ([]Event, int64, error)
	Ingest(ctx context.Context, input IngestInput) (*Event, error)
	HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

type service struct {
	repo      Repository
	publisher ActivityPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, publisher ActivityPublisher, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) GetPage(ctx context.Context, categoryID uuid.UUID, rng TimeRange, pageIndex, pageSize int) ([]Event, int64, error) {
	if categoryID == uuid.Nil || pageIndex < 0 || pageSize <= 0 {
		return nil, 0, ErrInvalidInput
	}
	if !rng.IsValid() {
		return nil, 0, ErrInvalidTimeRange
	}

	since := rng.Start(s.now())
	return s.repo.FindPage(ctx, categoryID, since, pageIndex*pageSize, pageSize)
}

func (s *service) Ingest(ctx context.Context, input IngestInput) (*Event, error) {
	if input.UserID == uuid.Nil || input.CategoryID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if err := validateFields(input.Fields); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = StatusDelivered
	}
	if !status.IsValid() {
		return nil, ErrInvalidInput
	}

	fields := input.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}

	e := &Event{
		ID:             uuid.New(),
		CategoryID:     input.CategoryID,
		UserID:         input.UserID,
		Fields:         fields,
		DeliveryStatus: status,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	activity := &CategoryActivity{
		UserID:       input.UserID,
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		Timestamp:    e.CreatedAt.UTC(),
	}
	if err := s.publisher.PublishCategoryActivity(ctx, activity); err != nil {
		s.logger.Error("Failed to publish category activity", zap.Error(err))
	}

	return e, nil
}

func (s *service) HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	if categoryID == uuid.Nil {
		return false, ErrInvalidInput
	}
	return s.repo.HasEvents(ctx, categoryID)
}

// validateFields rejects nested structures; the field mapping is open-ended
// but values are restricted to scalars.
func validateFields(fields map[string]interface{}) error {
	for name, value := range fields {
		if name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidInput)
		}
		switch value.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return fmt.Errorf("%w: field %q", ErrNonScalarField, name)
		}
	}
	return nil
}
