// Package subscription хранит подписку клиента и определяет доступ к премиум-функциям.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/storage"
)

// KeyPrefix префикс ключа документа подписки, за ним следует id клиента.
const KeyPrefix = "user_subscription:"

var (
	// ErrUnknownPlan тариф не найден в каталоге.
	ErrUnknownPlan = errors.New("unknown subscription plan")
	// ErrInvalidMonths срок активации должен быть положительным.
	ErrInvalidMonths = errors.New("months must be positive")
	// ErrEmptyClientID пустой идентификатор клиента.
	ErrEmptyClientID = errors.New("empty client id")
)

// Free подписка клиента, который ничего не оплачивал.
func Free() models.UserSubscription {
	return models.UserSubscription{Plan: models.PlanFree}
}

// Service реализует хранение подписок.
type Service struct {
	store storage.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService создаёт Service. now == nil означает time.Now.
func NewService(store storage.Store, log *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, log: log, now: now}
}

func key(clientID string) string {
	return KeyPrefix + clientID
}

// Get возвращает подписку клиента или бесплатную, если записи нет.
func (s *Service) Get(ctx context.Context, clientID string) (models.UserSubscription, error) {
	const op = "subscription.Get"
	if clientID == "" {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, ErrEmptyClientID)
	}
	var sub models.UserSubscription
	found, err := s.store.Get(ctx, key(clientID), &sub)
	if err != nil {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return Free(), nil
	}
	return sub, nil
}

// Activate записывает подписку plan со сроком now + months, заменяя предыдущую.
func (s *Service) Activate(ctx context.Context, clientID string, plan models.PlanID, months int) (models.UserSubscription, error) {
	const op = "subscription.Activate"
	if clientID == "" {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, ErrEmptyClientID)
	}
	if _, ok := Plan(plan); !ok {
		return models.UserSubscription{}, fmt.Errorf("%s: %w: %s", op, ErrUnknownPlan, plan)
	}
	if months <= 0 {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, ErrInvalidMonths)
	}

	expiry := s.now().UTC().AddDate(0, months, 0)
	sub := models.UserSubscription{
		Plan:       plan,
		ExpiryDate: &expiry,
		IsActive:   true,
	}
	if err := s.store.Set(ctx, key(clientID), sub); err != nil {
		return models.UserSubscription{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription activated",
		slog.String("client_id", clientID),
		slog.String("plan", string(plan)),
		slog.Time("expiry", expiry),
	)
	return sub, nil
}

// IsPremium сообщает, действует ли сейчас оплаченная подписка.
func (s *Service) IsPremium(ctx context.Context, clientID string) (bool, error) {
	sub, err := s.Get(ctx, clientID)
	if err != nil {
		return false, err
	}
	return Active(sub, s.now()), nil
}

// Status возвращает подписку вместе с признаком премиум-доступа.
func (s *Service) Status(ctx context.Context, clientID string) (models.SubscriptionStatus, error) {
	sub, err := s.Get(ctx, clientID)
	if err != nil {
		return models.SubscriptionStatus{}, err
	}
	return models.SubscriptionStatus{UserSubscription: sub, IsPremium: Active(sub, s.now())}, nil
}

// Clear удаляет подписку клиента.
func (s *Service) Clear(ctx context.Context, clientID string) error {
	const op = "subscription.Clear"
	if clientID == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyClientID)
	}
	if err := s.store.Delete(ctx, key(clientID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Active проверяет подписку на момент now: активна, срок задан и ещё не наступил.
func Active(sub models.UserSubscription, now time.Time) bool {
	if !sub.IsActive || sub.ExpiryDate == nil {
		return false
	}
	return now.Before(*sub.ExpiryDate)
}
