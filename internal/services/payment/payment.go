// Package payment оформляет платные тарифы через Razorpay и активирует подписку после оплаты.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/paymentprovider"
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"
	"github.com/magabrotheeeer/finance-calculator/internal/storage"
)

const (
	noteClientID = "client_id"
	notePlan     = "plan"

	processedPrefix = "processed_payment:"
	merchantName    = "Finance Calculator"
)

var (
	// ErrInvalidSignature подпись платежа или вебхука не сошлась.
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrOrderMismatch заказ создан для другого клиента или тарифа.
	ErrOrderMismatch = errors.New("order does not match client or plan")
	// ErrNotConfigured ключи шлюза не заданы.
	ErrNotConfigured = errors.New("payment provider is not configured")
)

// Provider платёжный шлюз.
type Provider interface {
	KeyID() string
	CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.Order, error)
	FetchOrder(ctx context.Context, orderID string) (*paymentprovider.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// Subscriptions активирует оплаченный тариф.
type Subscriptions interface {
	Activate(ctx context.Context, clientID string, plan models.PlanID, months int) (models.UserSubscription, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// ActivationCounter считает активации для метрик.
type ActivationCounter interface {
	SubscriptionActivated(plan string)
}

// Service реализует оформление и подтверждение оплаты.
type Service struct {
	provider      Provider
	subs          Subscriptions
	store         storage.Store
	publisher     Publisher
	counter       ActivationCounter
	webhookSecret string
	log           *slog.Logger

	// mu делает проверку и отметку обработанного платежа одной операцией:
	// виджет и вебхук обычно приходят почти одновременно.
	mu sync.Mutex
}

// New создаёт Service. publisher и counter могут быть nil.
func New(
	provider Provider,
	subs Subscriptions,
	store storage.Store,
	publisher Publisher,
	counter ActivationCounter,
	webhookSecret string,
	log *slog.Logger,
) *Service {
	return &Service{
		provider:      provider,
		subs:          subs,
		store:         store,
		publisher:     publisher,
		counter:       counter,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// Checkout создаёт заказ Razorpay на цену тарифа и возвращает параметры виджета.
func (s *Service) Checkout(ctx context.Context, clientID string, plan models.PlanID) (models.Checkout, error) {
	const op = "payment.Checkout"
	tier, ok := subscription.Plan(plan)
	if !ok {
		return models.Checkout{}, fmt.Errorf("%s: %w: %s", op, subscription.ErrUnknownPlan, plan)
	}
	if s.provider.KeyID() == "" {
		return models.Checkout{}, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	order, err := s.provider.CreateOrder(ctx, paymentprovider.CreateOrderRequest{
		Amount:   int64(tier.Price) * 100,
		Currency: paymentprovider.Currency,
		Notes: map[string]string{
			noteClientID: clientID,
			notePlan:     string(plan),
		},
	})
	if err != nil {
		return models.Checkout{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("client_id", clientID),
		slog.String("plan", string(plan)),
	)
	return models.Checkout{
		KeyID:       s.provider.KeyID(),
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        merchantName,
		Description: fmt.Sprintf("%s Plan - %s", tier.Name, tier.Duration),
		Plan:        plan,
	}, nil
}

// Confirm проверяет подпись, которую вернул виджет, сверяет заказ с клиентом
// и активирует тариф на его срок.
func (s *Service) Confirm(ctx context.Context, clientID string, req models.ConfirmRequest) (models.UserSubscription, error) {
	const op = "payment.Confirm"
	if !s.provider.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	order, err := s.provider.FetchOrder(ctx, req.OrderID)
	if err != nil {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, err)
	}
	if order.Notes[noteClientID] != clientID || order.Notes[notePlan] != string(req.Plan) {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, ErrOrderMismatch)
	}

	sub, err := s.activate(ctx, clientID, req.Plan, req.PaymentID)
	if err != nil {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// HandleWebhook проверяет подпись тела и активирует тариф по событиям
// payment.captured и order.paid. Остальные события игнорируются.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	const op = "payment.HandleWebhook"
	if !paymentprovider.VerifyWebhookSignature(s.webhookSecret, body, signature) {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	var event paymentprovider.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var paymentID, orderID string
	var notes map[string]string
	switch event.Event {
	case paymentprovider.EventPaymentCaptured:
		if event.Payload.Payment == nil {
			return fmt.Errorf("%s: payment entity is missing", op)
		}
		p := event.Payload.Payment.Entity
		paymentID, orderID, notes = p.ID, p.OrderID, p.Notes
	case paymentprovider.EventOrderPaid:
		if event.Payload.Order == nil {
			return fmt.Errorf("%s: order entity is missing", op)
		}
		o := event.Payload.Order.Entity
		orderID, notes = o.ID, o.Notes
		if event.Payload.Payment != nil {
			paymentID = event.Payload.Payment.Entity.ID
		}
	default:
		s.log.Info("ignored webhook event", slog.String("event", event.Event))
		return nil
	}

	if notes[noteClientID] == "" && orderID != "" {
		order, err := s.provider.FetchOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		notes = order.Notes
	}
	clientID, plan := notes[noteClientID], models.PlanID(notes[notePlan])
	if clientID == "" || plan == "" {
		s.log.Warn("webhook without client or plan", slog.String("order_id", orderID))
		return nil
	}
	if paymentID == "" {
		paymentID = orderID
	}

	if _, err := s.activate(ctx, clientID, plan, paymentID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// activate включает тариф один раз на платёж: повторное подтверждение того же
// платежа (виджет и вебхук) возвращает текущую подписку.
func (s *Service) activate(ctx context.Context, clientID string, plan models.PlanID, paymentID string) (models.UserSubscription, error) {
	tier, ok := subscription.Plan(plan)
	if !ok {
		return models.UserSubscription{}, fmt.Errorf("%w: %s", subscription.ErrUnknownPlan, plan)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var done models.UserSubscription
	found, err := s.store.Get(ctx, processedPrefix+paymentID, &done)
	if err != nil {
		return models.UserSubscription{}, err
	}
	if found {
		return done, nil
	}

	sub, err := s.subs.Activate(ctx, clientID, plan, tier.Months)
	if err != nil {
		return models.UserSubscription{}, err
	}
	if err := s.store.Set(ctx, processedPrefix+paymentID, sub); err != nil {
		s.log.Warn("failed to mark payment processed", slog.String("payment_id", paymentID), sl.Err(err))
	}

	if s.counter != nil {
		s.counter.SubscriptionActivated(string(plan))
	}
	if s.publisher != nil && sub.ExpiryDate != nil {
		event := models.SubscriptionActivatedEvent{
			ClientID:   clientID,
			Plan:       plan,
			PaymentID:  paymentID,
			ExpiryDate: *sub.ExpiryDate,
		}
		if err := s.publisher.Publish(ctx, models.EventSubscriptionActivated, event); err != nil {
			s.log.Warn("failed to publish activation event", slog.String("payment_id", paymentID), sl.Err(err))
		}
	}
	return sub, nil
}
