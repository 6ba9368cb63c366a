package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type mockRepository struct {
	events       []Event
	created      []*Event
	findPageArgs struct {
		since  time.Time
		offset int
		limit  int
	}
	createErr error
}

func (m *mockRepository) Create(ctx context.Context, event *Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, event)
	return nil
}

func (m *mockRepository) FindPage(ctx context.Context, categoryID uuid.UUID, since time.Time, offset, limit int) ([]Event, int64, error) {
	m.findPageArgs.since = since
	m.findPageArgs.offset = offset
	m.findPageArgs.limit = limit
	return m.events, int64(len(m.events)), nil
}

func (m *mockRepository) CountSince(ctx context.Context, categoryID uuid.UUID, since time.Time) (int64, error) {
	return int64(len(m.events)), nil
}

func (m *mockRepository) DistinctFieldMappings(ctx context.Context, categoryID uuid.UUID, since time.Time) ([]datatypes.JSONMap, error) {
	return nil, nil
}

func (m *mockRepository) LastCreated(ctx context.Context, categoryID uuid.UUID) (*time.Time, error) {
	return nil, nil
}

func (m *mockRepository) HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	return len(m.events) > 0, nil
}

type mockPublisher struct {
	published []*CategoryActivity
	err       error
}

func (m *mockPublisher) PublishCategoryActivity(ctx context.Context, activity *CategoryActivity) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, activity)
	return nil
}

func newTestService(repo Repository, pub ActivityPublisher, now time.Time) *service {
	s := NewService(repo, pub, zap.NewNop()).(*service)
	s.now = func() time.Time { return now }
	return s
}

func TestIngestValidation(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	tests := []struct {
		name    string
		input   IngestInput
		wantErr error
	}{
		{
			name:    "missing user",
			input:   IngestInput{CategoryID: categoryID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing category",
			input:   IngestInput{UserID: userID},
			wantErr: ErrInvalidInput,
		},
		{
			name: "nested field value rejected",
			input: IngestInput{
				UserID:     userID,
				CategoryID: categoryID,
				Fields:     map[string]interface{}{"meta": map[string]interface{}{"a": 1}},
			},
			wantErr: ErrNonScalarField,
		},
		{
			name: "array field value rejected",
			input: IngestInput{
				UserID:     userID,
				CategoryID: categoryID,
				Fields:     map[string]interface{}{"tags": []string{"a"}},
			},
			wantErr: ErrNonScalarField,
		},
		{
			name: "empty field name rejected",
			input: IngestInput{
				UserID:     userID,
				CategoryID: categoryID,
				Fields:     map[string]interface{}{"": "x"},
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown status rejected",
			input: IngestInput{
				UserID:     userID,
				CategoryID: categoryID,
				Status:     DeliveryStatus("SHIPPED"),
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "scalar fields accepted",
			input: IngestInput{
				UserID:     userID,
				CategoryID: categoryID,
				Fields:     map[string]interface{}{"amount": 12.5, "plan": "pro", "ok": true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			pub := &mockPublisher{}
			s := newTestService(repo, pub, time.Now())

			created, err := s.Ingest(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.created)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, repo.created, 1)
			assert.Equal(t, StatusDelivered, created.DeliveryStatus)
		})
	}
}

func TestIngestPublishesActivity(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{}
	s := newTestService(repo, pub, time.Now())

	input := IngestInput{
		UserID:       uuid.New(),
		CategoryID:   uuid.New(),
		CategoryName: "sign-ups",
		Fields:       map[string]interface{}{"amount": 10},
	}

	_, err := s.Ingest(context.Background(), input)
	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)
	assert.Equal(t, "sign-ups", pub.published[0].CategoryName)
	assert.Equal(t, input.CategoryID, pub.published[0].CategoryID)
}

func TestIngestSurvivesPublishFailure(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{err: errors.New("redis down")}
	s := newTestService(repo, pub, time.Now())

	created, err := s.Ingest(context.Background(), IngestInput{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
	})

	// The event is durable even when the activity broadcast is not.
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Len(t, repo.created, 1)
}

func TestGetPageWindowAndOffset(t *testing.T) {
	now := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC) // a Wednesday
	repo := &mockRepository{}
	s := newTestService(repo, &mockPublisher{}, now)

	_, _, err := s.GetPage(context.Background(), uuid.New(), RangeWeek, 2, 20)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), repo.findPageArgs.since)
	assert.Equal(t, 40, repo.findPageArgs.offset)
	assert.Equal(t, 20, repo.findPageArgs.limit)
}

func TestGetPageRejectsBadInput(t *testing.T) {
	s := newTestService(&mockRepository{}, &mockPublisher{}, time.Now())

	_, _, err := s.GetPage(context.Background(), uuid.Nil, RangeToday, 0, 20)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.GetPage(context.Background(), uuid.New(), RangeToday, -1, 20)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.GetPage(context.Background(), uuid.New(), RangeToday, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.GetPage(context.Background(), uuid.New(), TimeRange("year"), 0, 20)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
