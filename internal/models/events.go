package models

import "time"

// Ключи маршрутизации событий.
const (
	EventAffiliateClick        = "affiliate.click"
	EventSubscriptionActivated = "subscription.activated"
)

// AffiliateClickEvent публикуется при переходе по партнёрской ссылке.
type AffiliateClickEvent struct {
	LinkID    string         `json:"link_id"`
	Partner   string         `json:"partner"`
	Page      CalculatorPage `json:"page"`
	Placement Placement      `json:"placement"`
	At        time.Time      `json:"at"`
}

// SubscriptionActivatedEvent публикуется после успешной оплаты.
type SubscriptionActivatedEvent struct {
	ClientID   string    `json:"client_id"`
	Plan       PlanID    `json:"plan"`
	PaymentID  string    `json:"payment_id"`
	ExpiryDate time.Time `json:"expiry_date"`
}
