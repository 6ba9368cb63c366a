package user

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockRepository struct {
	users   map[string]*User
	created []*User
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.created = append(m.created, u)
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	if u, ok := m.users[externalID]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) FindByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	for _, u := range m.users {
		if u.APIKey == apiKey {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) UpdatePlan(ctx context.Context, id uuid.UUID, plan Plan) error {
	for _, u := range m.users {
		if u.ID == id {
			u.Plan = plan
			return nil
		}
	}
	return ErrUserNotFound
}

func TestGetOrCreate(t *testing.T) {
	existing := &User{ID: uuid.New(), ExternalID: "auth0|123", Email: "a@example.com"}
	repo := &mockRepository{users: map[string]*User{"auth0|123": existing}}
	s := NewService(repo, zap.NewNop())

	t.Run("returns existing user", func(t *testing.T) {
		u, err := s.GetOrCreate(context.Background(), "auth0|123", "a@example.com")
		assert.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)
		assert.Empty(t, repo.created)
	})

	t.Run("creates missing user on the free plan", func(t *testing.T) {
		u, err := s.GetOrCreate(context.Background(), "auth0|456", "b@example.com")
		assert.NoError(t, err)
		assert.Equal(t, PlanFree, u.Plan)
		assert.Len(t, repo.created, 1)
	})

	t.Run("rejects empty identity", func(t *testing.T) {
		_, err := s.GetOrCreate(context.Background(), "", "b@example.com")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpgradePlan(t *testing.T) {
	u := &User{ID: uuid.New(), ExternalID: "auth0|123", Plan: PlanFree}
	repo := &mockRepository{users: map[string]*User{"auth0|123": u}}
	s := NewService(repo, zap.NewNop())

	assert.ErrorIs(t, s.UpgradePlan(context.Background(), u.ID, Plan("enterprise")), ErrInvalidInput)

	assert.NoError(t, s.UpgradePlan(context.Background(), u.ID, PlanPro))
	assert.Equal(t, PlanPro, u.Plan)
}

func TestNewAPIKey(t *testing.T) {
	a := NewAPIKey()
	b := NewAPIKey()

	assert.True(t, strings.HasPrefix(a, "pb_"))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}
