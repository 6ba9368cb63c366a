package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*User, error)
	GetOrCreate(ctx context.Context, externalID, email string) (*User, error)
	UpgradePlan(ctx context.Context, id uuid.UUID, plan Plan) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByExternalID(ctx context.Context, externalID string) (*User, error) {
	if externalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.FindByExternalID(ctx, externalID)
}

func (s *service) GetByAPIKey(ctx context.Context, apiKey string) (*User, error) {
	if apiKey == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.FindByAPIKey(ctx, apiKey)
}

func (s *service) GetOrCreate(ctx context.Context, externalID, email string) (*User, error) {
	if externalID == "" || email == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.FindByExternalID(ctx, externalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	u := &User{
		ExternalID: externalID,
		Email:      email,
		Plan:       PlanFree,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("Created user account",
		zap.String("user_id", u.ID.String()),
		zap.String("external_id", externalID))

	return u, nil
}

func (s *service) UpgradePlan(ctx context.Context, id uuid.UUID, plan Plan) error {
	if !plan.IsValid() {
		return ErrInvalidInput
	}
	return s.repo.UpdatePlan(ctx, id, plan)
}
