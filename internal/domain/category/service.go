package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/internal/domain/event"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// defaultStatsFanOut caps how many categories have their counters computed
// concurrently. The three reads within one category always run in parallel.
const defaultStatsFanOut = 8

type Service interface {
	// ListWithStats returns every category the owner has, annotated with
	// the monthly counters shown on the dashboard list.
	ListWithStats(ctx context.Context, ownerID uuid.UUID) ([]WithStats, error)
	Create(ctx context.Context, input CreateInput) (*EventCategory, error)
	Delete(ctx context.Context, name string, ownerID uuid.UUID) error
	// GetByName resolves and authorizes one category for the owner.
	GetByName(ctx context.Context, name string, ownerID uuid.UUID) (*EventCategory, error)
}

type service struct {
	repo   Repository
	events event.Repository
	logger *zap.Logger
	fanOut int
	now    func() time.Time
}

func NewService(repo Repository, events event.Repository, fanOut int, logger *zap.Logger) Service {
	if fanOut <= 0 {
		fanOut = defaultStatsFanOut
	}
	return &service{
		repo:   repo,
		events: events,
		logger: logger,
		fanOut: fanOut,
		now:    time.Now,
	}
}

func (s *service) ListWithStats(ctx context.Context, ownerID uuid.UUID) ([]WithStats, error) {
	if ownerID == uuid.Nil {
		return nil, ErrCategoryNotFound
	}

	categories, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	monthStart := event.StartOfMonth(s.now())
	annotated := make([]WithStats, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut)

	for i := range categories {
		i := i
		g.Go(func() error {
			stats, err := s.categoryStats(gctx, categories[i].ID, monthStart)
			if err != nil {
				return err
			}
			stats.EventCategory = categories[i]
			annotated[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return annotated, nil
}

// categoryStats runs the three independent reads for one category in
// parallel and joins the results.
func (s *service) categoryStats(ctx context.Context, categoryID uuid.UUID, monthStart time.Time) (WithStats, error) {
	var (
		uniqueFieldCount int
		eventsCount      int64
		lastPing         *time.Time
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		mappings, err := s.events.DistinctFieldMappings(gctx, categoryID, monthStart)
		if err != nil {
			return err
		}
		fieldNames := make(map[string]struct{})
		for _, mapping := range mappings {
			for name := range mapping {
				fieldNames[name] = struct{}{}
			}
		}
		uniqueFieldCount = len(fieldNames)
		return nil
	})

	g.Go(func() error {
		count, err := s.events.CountSince(gctx, categoryID, monthStart)
		if err != nil {
			return err
		}
		eventsCount = count
		return nil
	})

	g.Go(func() error {
		// Deliberately unwindowed: last ping reflects all history.
		last, err := s.events.LastCreated(gctx, categoryID)
		if err != nil {
			return err
		}
		lastPing = last
		return nil
	})

	if err := g.Wait(); err != nil {
		return WithStats{}, err
	}

	return WithStats{
		UniqueFieldCount: uniqueFieldCount,
		EventsCount:      eventsCount,
		LastPing:         lastPing,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*EventCategory, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}
	color, err := ParseColor(input.Color)
	if err != nil {
		return nil, err
	}
	if err := validateEmoji(input.Emoji); err != nil {
		return nil, err
	}
	if input.UserID == uuid.Nil {
		return nil, ErrCategoryNotFound
	}

	c := &EventCategory{
		ID:     uuid.New(),
		UserID: input.UserID,
		Name:   strings.ToLower(input.Name),
		Color:  color,
		Emoji:  input.Emoji,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Created event category",
		zap.String("category", c.Name),
		zap.String("user_id", input.UserID.String()))

	return c, nil
}

func (s *service) Delete(ctx context.Context, name string, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ErrCategoryNotFound
	}
	return s.repo.DeleteByName(ctx, name, ownerID)
}

func (s *service) GetByName(ctx context.Context, name string, ownerID uuid.UUID) (*EventCategory, error) {
	if ownerID == uuid.Nil {
		return nil, ErrCategoryNotFound
	}
	return s.repo.FindByName(ctx, name, ownerID)
}
