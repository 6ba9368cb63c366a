package billing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/pulseboard-app/pulseboard/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v81"
)

type fakeCreator struct {
	params  *stripe.CheckoutSessionParams
	session *stripe.CheckoutSession
	err     error
}

func (f *fakeCreator) Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func newTestService(creator sessionCreator) *service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &service{
		cfg: config.BillingConfig{
			PriceID:    "price_1Qh0cy0364UkIS58xyqBt2nP",
			SuccessURL: "https://app.example.com/billing/success",
			CancelURL:  "https://app.example.com/billing/cancel",
		},
		creator: creator,
		logger:  logger,
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	creator := &fakeCreator{session: &stripe.CheckoutSession{URL: "https://checkout.stripe.com/c/pay/cs_test"}}
	s := newTestService(creator)

	userID := uuid.New()
	url, err := s.CreateCheckoutSession(context.Background(), CheckoutInput{
		UserEmail: "dev@example.com",
		UserID:    userID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test", url)

	params := creator.params
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), *params.Mode)
	assert.Equal(t, "price_1Qh0cy0364UkIS58xyqBt2nP", *params.LineItems[0].Price)
	assert.Equal(t, int64(1), *params.LineItems[0].Quantity)
	assert.Equal(t, "dev@example.com", *params.CustomerEmail)
	assert.Equal(t, "https://app.example.com/billing/success", *params.SuccessURL)
	assert.Equal(t, "https://app.example.com/billing/cancel", *params.CancelURL)
	assert.Equal(t, userID.String(), params.Metadata["userId"])
}

func TestCreateCheckoutSessionRequiresIdentity(t *testing.T) {
	s := newTestService(&fakeCreator{})

	_, err := s.CreateCheckoutSession(context.Background(), CheckoutInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrCheckoutFailed)

	_, err = s.CreateCheckoutSession(context.Background(), CheckoutInput{UserEmail: "dev@example.com"})
	assert.ErrorIs(t, err, ErrCheckoutFailed)
}

func TestCreateCheckoutSessionWrapsProviderError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("card network unreachable")}
	s := newTestService(creator)

	_, err := s.CreateCheckoutSession(context.Background(), CheckoutInput{
		UserEmail: "dev@example.com",
		UserID:    uuid.New(),
	})

	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.Contains(t, err.Error(), "card network unreachable")
}
