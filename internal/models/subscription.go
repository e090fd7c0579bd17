package models

import "time"

// PlanID идентификатор тарифа.
type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanBasic    PlanID = "basic"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
	PlanUltimate PlanID = "ultimate"
)

// UserSubscription подписка клиента. ExpiryDate == nil у бесплатного плана.
type UserSubscription struct {
	Plan       PlanID     `json:"plan"`
	ExpiryDate *time.Time `json:"expiryDate"`
	IsActive   bool       `json:"isActive"`
}

// SubscriptionTier платный тариф. Price в рупиях.
type SubscriptionTier struct {
	ID          PlanID   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Months      int      `json:"months"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended,omitempty"`
}

// SubscriptionStatus ответ на запрос статуса подписки клиента.
type SubscriptionStatus struct {
	UserSubscription
	IsPremium bool `json:"isPremium"`
}
