package payment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/paymentprovider"
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"
	"github.com/magabrotheeeer/finance-calculator/internal/storage"
)

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) KeyID() string { return m.Called().String(0) }

func (m *ProviderMock) CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Order), args.Error(1)
}

func (m *ProviderMock) FetchOrder(ctx context.Context, orderID string) (*paymentprovider.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Order), args.Error(1)
}

func (m *ProviderMock) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

type SubscriptionsMock struct{ mock.Mock }

func (m *SubscriptionsMock) Activate(ctx context.Context, clientID string, plan models.PlanID, months int) (models.UserSubscription, error) {
	args := m.Called(ctx, clientID, plan, months)
	return args.Get(0).(models.UserSubscription), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type CounterMock struct{ mock.Mock }

func (m *CounterMock) SubscriptionActivated(plan string) { m.Called(plan) }

const webhookSecret = "wh_secret"

type fixture struct {
	svc       *Service
	provider  *ProviderMock
	subs      *SubscriptionsMock
	publisher *PublisherMock
	counter   *CounterMock
}

func newFixture() *fixture {
	f := &fixture{
		provider:  new(ProviderMock),
		subs:      new(SubscriptionsMock),
		publisher: new(PublisherMock),
		counter:   new(CounterMock),
	}
	f.svc = New(f.provider, f.subs, storage.NewMemory(), f.publisher, f.counter, webhookSecret, sl.NewDiscardLogger())
	return f
}

func activeSub(plan models.PlanID, months int) models.UserSubscription {
	expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	return models.UserSubscription{Plan: plan, ExpiryDate: &expiry, IsActive: true}
}

func TestCheckout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.provider.On("KeyID").Return("rzp_test")
	f.provider.On("CreateOrder", mock.Anything, paymentprovider.CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Notes:    map[string]string{"client_id": "c1", "plan": "standard"},
	}).Return(&paymentprovider.Order{ID: "order_1", Amount: 49900, Currency: "INR"}, nil)

	co, err := f.svc.Checkout(ctx, "c1", models.PlanStandard)
	require.NoError(t, err)
	assert.Equal(t, "rzp_test", co.KeyID)
	assert.Equal(t, "order_1", co.OrderID)
	assert.Equal(t, int64(49900), co.Amount)
	assert.Equal(t, "Standard Plan - 3 Months", co.Description)
	f.provider.AssertExpectations(t)
}

func TestCheckout_Errors(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	_, err := f.svc.Checkout(ctx, "c1", models.PlanFree)
	assert.ErrorIs(t, err, subscription.ErrUnknownPlan)

	f.provider.On("KeyID").Return("").Once()
	_, err = f.svc.Checkout(ctx, "c1", models.PlanBasic)
	assert.ErrorIs(t, err, ErrNotConfigured)

	gatewayErr := errors.New("gateway down")
	f.provider.On("KeyID").Return("rzp_test")
	f.provider.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, gatewayErr)
	_, err = f.svc.Checkout(ctx, "c1", models.PlanBasic)
	assert.ErrorIs(t, err, gatewayErr)
}

func TestConfirm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := models.ConfirmRequest{Plan: models.PlanPremium, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	sub := activeSub(models.PlanPremium, 6)

	f.provider.On("VerifyPaymentSignature", "order_1", "pay_1", "sig").Return(true)
	f.provider.On("FetchOrder", mock.Anything, "order_1").
		Return(&paymentprovider.Order{ID: "order_1", Notes: map[string]string{"client_id": "c1", "plan": "premium"}}, nil)
	f.subs.On("Activate", mock.Anything, "c1", models.PlanPremium, 6).Return(sub, nil).Once()
	f.counter.On("SubscriptionActivated", "premium").Once()
	f.publisher.On("Publish", mock.Anything, models.EventSubscriptionActivated, mock.MatchedBy(func(e models.SubscriptionActivatedEvent) bool {
		return e.ClientID == "c1" && e.PaymentID == "pay_1"
	})).Return(nil).Once()

	got, err := f.svc.Confirm(ctx, "c1", req)
	require.NoError(t, err)
	assert.Equal(t, sub.Plan, got.Plan)

	again, err := f.svc.Confirm(ctx, "c1", req)
	require.NoError(t, err)
	assert.Equal(t, got.Plan, again.Plan)

	f.subs.AssertExpectations(t)
	f.counter.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestConfirm_InvalidSignature(t *testing.T) {
	f := newFixture()
	f.provider.On("VerifyPaymentSignature", "order_1", "pay_1", "forged").Return(false)

	_, err := f.svc.Confirm(context.Background(), "c1", models.ConfirmRequest{
		Plan: models.PlanBasic, OrderID: "order_1", PaymentID: "pay_1", Signature: "forged",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	f.subs.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_OrderMismatch(t *testing.T) {
	f := newFixture()
	f.provider.On("VerifyPaymentSignature", mock.Anything, mock.Anything, mock.Anything).Return(true)
	f.provider.On("FetchOrder", mock.Anything, "order_1").
		Return(&paymentprovider.Order{ID: "order_1", Notes: map[string]string{"client_id": "c1", "plan": "basic"}}, nil)

	_, err := f.svc.Confirm(context.Background(), "c1", models.ConfirmRequest{
		Plan: models.PlanUltimate, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	_, err = f.svc.Confirm(context.Background(), "c2", models.ConfirmRequest{
		Plan: models.PlanBasic, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig",
	})
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestHandleWebhook_PaymentCaptured(t *testing.T) {
	f := newFixture()
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_9","amount":19900,"currency":"INR","status":"captured","notes":{"client_id":"c9","plan":"basic"}}}}}`)

	f.subs.On("Activate", mock.Anything, "c9", models.PlanBasic, 1).Return(activeSub(models.PlanBasic, 1), nil).Once()
	f.counter.On("SubscriptionActivated", "basic")
	f.publisher.On("Publish", mock.Anything, models.EventSubscriptionActivated, mock.Anything).Return(errors.New("broker down"))

	err := f.svc.HandleWebhook(context.Background(), body, paymentprovider.Sign(webhookSecret, body))
	require.NoError(t, err)
	f.subs.AssertExpectations(t)
}

func TestHandleWebhook_OrderPaidFetchesNotes(t *testing.T) {
	f := newFixture()
	body := []byte(`{"event":"order.paid","payload":{"order":{"entity":{"id":"order_5","status":"paid"}},"payment":{"entity":{"id":"pay_5"}}}}`)

	f.provider.On("FetchOrder", mock.Anything, "order_5").
		Return(&paymentprovider.Order{ID: "order_5", Notes: map[string]string{"client_id": "c5", "plan": "ultimate"}}, nil)
	f.subs.On("Activate", mock.Anything, "c5", models.PlanUltimate, 12).Return(activeSub(models.PlanUltimate, 12), nil).Once()
	f.counter.On("SubscriptionActivated", "ultimate")
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.HandleWebhook(context.Background(), body, paymentprovider.Sign(webhookSecret, body)))
	f.subs.AssertExpectations(t)
}

func TestHandleWebhook_Rejected(t *testing.T) {
	f := newFixture()
	body := []byte(`{"event":"payment.captured"}`)

	err := f.svc.HandleWebhook(context.Background(), body, "bad")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	broken := []byte(`{not json`)
	err = f.svc.HandleWebhook(context.Background(), broken, paymentprovider.Sign(webhookSecret, broken))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_IgnoredEvent(t *testing.T) {
	f := newFixture()
	body := []byte(`{"event":"payment.failed","payload":{}}`)

	require.NoError(t, f.svc.HandleWebhook(context.Background(), body, paymentprovider.Sign(webhookSecret, body)))
	f.subs.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestActivate_ConfirmAndWebhookConcurrently(t *testing.T) {
	f := newFixture()
	req := models.ConfirmRequest{Plan: models.PlanPremium, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","amount":99900,"currency":"INR","status":"captured","notes":{"client_id":"c1","plan":"premium"}}}}}`)
	sig := paymentprovider.Sign(webhookSecret, body)

	f.provider.On("VerifyPaymentSignature", "order_1", "pay_1", "sig").Return(true)
	f.provider.On("FetchOrder", mock.Anything, "order_1").
		Return(&paymentprovider.Order{ID: "order_1", Notes: map[string]string{"client_id": "c1", "plan": "premium"}}, nil)
	f.subs.On("Activate", mock.Anything, "c1", models.PlanPremium, 6).
		After(20*time.Millisecond).
		Return(activeSub(models.PlanPremium, 6), nil)
	f.counter.On("SubscriptionActivated", "premium")
	f.publisher.On("Publish", mock.Anything, models.EventSubscriptionActivated, mock.Anything).Return(nil)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, err := f.svc.Confirm(context.Background(), "c1", req)
				errs <- err
				return
			}
			errs <- f.svc.HandleWebhook(context.Background(), body, sig)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	f.subs.AssertNumberOfCalls(t, "Activate", 1)
	f.counter.AssertNumberOfCalls(t, "SubscriptionActivated", 1)
	f.publisher.AssertNumberOfCalls(t, "Publish", 1)
}
