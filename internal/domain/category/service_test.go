package category

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type mockRepository struct {
	categories []EventCategory
	created    []*EventCategory
	deleted    []string
	createErr  error
	deleteErr  error
}

func (m *mockRepository) Create(ctx context.Context, category *EventCategory) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, category)
	return nil
}

func (m *mockRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]EventCategory, error) {
	return m.categories, nil
}

func (m *mockRepository) FindByName(ctx context.Context, name string, ownerID uuid.UUID) (*EventCategory, error) {
	for i := range m.categories {
		if m.categories[i].Name == name && m.categories[i].UserID == ownerID {
			return &m.categories[i], nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (m *mockRepository) DeleteByName(ctx context.Context, name string, ownerID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, name)
	return nil
}

// mockEventRepository answers the three stats reads per category and
// records which windows were requested.
type mockEventRepository struct {
	mu       sync.Mutex
	mappings map[uuid.UUID][]datatypes.JSONMap
	counts   map[uuid.UUID]int64
	lastPing map[uuid.UUID]*time.Time
	sinces   []time.Time
	statsErr error
}

func (m *mockEventRepository) Create(ctx context.Context, e *event.Event) error { return nil }

func (m *mockEventRepository) FindPage(ctx context.Context, categoryID uuid.UUID, since time.Time, offset, limit int) ([]event.Event, int64, error) {
	return nil, 0, nil
}

func (m *mockEventRepository) CountSince(ctx context.Context, categoryID uuid.UUID, since time.Time) (int64, error) {
	if m.statsErr != nil {
		return 0, m.statsErr
	}
	m.mu.Lock()
	m.sinces = append(m.sinces, since)
	m.mu.Unlock()
	return m.counts[categoryID], nil
}

func (m *mockEventRepository) DistinctFieldMappings(ctx context.Context, categoryID uuid.UUID, since time.Time) ([]datatypes.JSONMap, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.mappings[categoryID], nil
}

func (m *mockEventRepository) LastCreated(ctx context.Context, categoryID uuid.UUID) (*time.Time, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.lastPing[categoryID], nil
}

func (m *mockEventRepository) HasEvents(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	return m.counts[categoryID] > 0, nil
}

func newTestService(repo Repository, events event.Repository, now time.Time) *service {
	s := NewService(repo, events, 0, zap.NewNop()).(*service)
	s.now = func() time.Time { return now }
	return s
}

func TestListWithStats(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)
	monthStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	oldPing := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)

	catA := EventCategory{ID: uuid.New(), UserID: ownerID, Name: "sign-ups"}
	catB := EventCategory{ID: uuid.New(), UserID: ownerID, Name: "errors"}

	events := &mockEventRepository{
		mappings: map[uuid.UUID][]datatypes.JSONMap{
			// Two distinct mappings sharing the "plan" key: the unique
			// field count is the size of the key union, not the mapping
			// count.
			catA.ID: {
				{"plan": "pro", "amount": float64(10)},
				{"plan": "free"},
			},
		},
		counts: map[uuid.UUID]int64{catA.ID: 42},
		lastPing: map[uuid.UUID]*time.Time{
			// A category with zero events this month still reports its
			// historical last ping.
			catB.ID: &oldPing,
		},
	}

	s := newTestService(&mockRepository{categories: []EventCategory{catA, catB}}, events, now)

	annotated, err := s.ListWithStats(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, annotated, 2)

	assert.Equal(t, "sign-ups", annotated[0].Name)
	assert.Equal(t, 2, annotated[0].UniqueFieldCount)
	assert.Equal(t, int64(42), annotated[0].EventsCount)
	assert.Nil(t, annotated[0].LastPing)

	assert.Equal(t, "errors", annotated[1].Name)
	assert.Equal(t, 0, annotated[1].UniqueFieldCount)
	assert.Equal(t, int64(0), annotated[1].EventsCount)
	assert.Equal(t, &oldPing, annotated[1].LastPing)

	// Counts are windowed to the calendar month.
	for _, since := range events.sinces {
		assert.Equal(t, monthStart, since)
	}
}

func TestListWithStatsPropagatesReadErrors(t *testing.T) {
	ownerID := uuid.New()
	events := &mockEventRepository{statsErr: errors.New("connection reset")}
	repo := &mockRepository{categories: []EventCategory{
		{ID: uuid.New(), UserID: ownerID, Name: "sign-ups"},
	}}

	s := newTestService(repo, events, time.Now())

	_, err := s.ListWithStats(context.Background(), ownerID)
	assert.Error(t, err)
}

func TestCreateCategory(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		input   CreateInput
		wantErr error
	}{
		{
			name:  "valid input",
			input: CreateInput{Name: "Sign-Ups", Color: "#FF8800", Emoji: "🚀", UserID: ownerID},
		},
		{
			name:  "empty emoji allowed",
			input: CreateInput{Name: "errors", Color: "#000000", UserID: ownerID},
		},
		{
			name:    "name with spaces rejected",
			input:   CreateInput{Name: "sign ups", Color: "#FF8800", UserID: ownerID},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name with unicode rejected",
			input:   CreateInput{Name: "señales", Color: "#FF8800", UserID: ownerID},
			wantErr: ErrInvalidName,
		},
		{
			name:    "short color rejected",
			input:   CreateInput{Name: "signups", Color: "#F80", UserID: ownerID},
			wantErr: ErrInvalidColor,
		},
		{
			name:    "color without hash rejected",
			input:   CreateInput{Name: "signups", Color: "FF8800", UserID: ownerID},
			wantErr: ErrInvalidColor,
		},
		{
			name:    "ascii emoji rejected",
			input:   CreateInput{Name: "signups", Color: "#FF8800", Emoji: ":)", UserID: ownerID},
			wantErr: ErrInvalidEmoji,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			s := newTestService(repo, &mockEventRepository{}, time.Now())

			created, err := s.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.created)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, repo.created, 1)
			// Names are stored lowercased.
			assert.Equal(t, strings.ToLower(tt.input.Name), created.Name)
		})
	}
}

func TestCreateCategoryConflict(t *testing.T) {
	repo := &mockRepository{createErr: ErrDuplicateCategory}
	s := newTestService(repo, &mockEventRepository{}, time.Now())

	_, err := s.Create(context.Background(), CreateInput{
		Name:   "signups",
		Color:  "#FF8800",
		UserID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestDeleteRequiresOwner(t *testing.T) {
	repo := &mockRepository{}
	s := newTestService(repo, &mockEventRepository{}, time.Now())

	err := s.Delete(context.Background(), "signups", uuid.Nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Empty(t, repo.deleted)

	err = s.Delete(context.Background(), "signups", uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, []string{"signups"}, repo.deleted)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "orange", input: "#FF8800", expected: 0xFF8800},
		{name: "black", input: "#000000", expected: 0},
		{name: "lowercase digits", input: "#a1b2c3", expected: 0xA1B2C3},
		{name: "missing hash", input: "FF8800", wantErr: true},
		{name: "too short", input: "#F80", wantErr: true},
		{name: "non-hex", input: "#GGGGGG", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c := EventCategory{Color: 0xFF8800}
	assert.Equal(t, "#FF8800", c.HexColor())
}

func TestCreateCategoryConcurrencyCapDefault(t *testing.T) {
	s := NewService(&mockRepository{}, &mockEventRepository{}, 0, zap.NewNop()).(*service)
	assert.Equal(t, defaultStatsFanOut, s.fanOut)

	s = NewService(&mockRepository{}, &mockEventRepository{}, 3, zap.NewNop()).(*service)
	assert.Equal(t, 3, s.fanOut)
}
