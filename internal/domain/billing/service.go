package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
)

// ErrCheckoutFailed wraps payment-provider failures. Billing errors are
// logged and re-raised, never swallowed.
var ErrCheckoutFailed = errors.New("billing: failed to create checkout session")

// CheckoutInput identifies the purchasing user.
type CheckoutInput struct {
	UserEmail string
	UserID    uuid.UUID
}

// sessionCreator is the seam to the payment provider, replaceable in tests.
type sessionCreator interface {
	Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeCreator struct{}

func (stripeCreator) Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

type Service interface {
	// CreateCheckoutSession starts a subscription checkout and returns the
	// redirect URL.
	CreateCheckoutSession(ctx context.Context, input CheckoutInput) (string, error)
}

type service struct {
	cfg     config.BillingConfig
	creator sessionCreator
	logger  *logrus.Logger
}

func NewService(cfg config.BillingConfig, logger *logrus.Logger) Service {
	stripe.Key = cfg.StripeSecretKey
	return &service{
		cfg:     cfg,
		creator: stripeCreator{},
		logger:  logger,
	}
}

func (s *service) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (string, error) {
	if input.UserEmail == "" || input.UserID == uuid.Nil {
		return "", fmt.Errorf("%w: missing user identity", ErrCheckoutFailed)
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.cfg.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:    stripe.String(s.cfg.SuccessURL),
		CancelURL:     stripe.String(s.cfg.CancelURL),
		CustomerEmail: stripe.String(input.UserEmail),
	}
	params.AddMetadata("userId", input.UserID.String())

	sess, err := s.creator.Create(params)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": input.UserID.String(),
		}).WithError(err).Error("checkout session creation failed")
		return "", fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	return sess.URL, nil
}
