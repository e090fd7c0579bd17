// Package models содержит доменные структуры сервиса: партнёрские ссылки,
// подписку клиента, тарифы и платёжные DTO. Имена JSON-полей совпадают с форматом
// документов, которые уже хранит фронтенд.
package models

// CalculatorPage страница калькулятора, на которой показывается партнёрская ссылка.
type CalculatorPage string

const (
	PageEMI     CalculatorPage = "emi"
	PageSIP     CalculatorPage = "sip"
	PageFD      CalculatorPage = "fd"
	PageRD      CalculatorPage = "rd"
	PageGeneral CalculatorPage = "general"
)

// Placement место ссылки в разметке страницы.
type Placement string

const (
	PlacementPrimaryButton   Placement = "primary-button"
	PlacementSecondaryButton Placement = "secondary-button"
	PlacementTertiaryCard    Placement = "tertiary-card"
	PlacementSecondaryCard   Placement = "secondary-card"
	PlacementContentLink     Placement = "content-link"
	PlacementBanner          Placement = "banner"
	PlacementSidebar         Placement = "sidebar"
	PlacementFooter          Placement = "footer"
)

// LinkStatus статус партнёрской ссылки.
type LinkStatus string

const (
	StatusActive   LinkStatus = "active"
	StatusInactive LinkStatus = "inactive"
)

// AffiliateLink партнёрская ссылка.
type AffiliateLink struct {
	ID             string         `json:"id"`
	CalculatorPage CalculatorPage `json:"calculatorPage"`
	PartnerName    string         `json:"partnerName"`
	CTAText        string         `json:"ctaText"`
	Placement      Placement      `json:"placement"`
	ReferralLink   string         `json:"referralLink"`
	Status         LinkStatus     `json:"status"`
	Priority       int            `json:"priority"`
}

// AffiliateLinkRequest тело запроса на создание или изменение ссылки.
// Нулевой Priority при создании означает «в конец списка».
type AffiliateLinkRequest struct {
	CalculatorPage CalculatorPage `json:"calculatorPage" validate:"required,oneof=emi sip fd rd general"`
	PartnerName    string         `json:"partnerName" validate:"required"`
	CTAText        string         `json:"ctaText" validate:"required"`
	Placement      Placement      `json:"placement" validate:"required,oneof=primary-button secondary-button tertiary-card secondary-card content-link banner sidebar footer"`
	ReferralLink   string         `json:"referralLink" validate:"required,url"`
	Status         LinkStatus     `json:"status" validate:"omitempty,oneof=active inactive"`
	Priority       int            `json:"priority" validate:"gte=0"`
}

// ClickStats статистика переходов для панели администратора.
type ClickStats struct {
	Total  int            `json:"total"`
	ByLink map[string]int `json:"by_link"`
	Links  int            `json:"links"`
	Active int            `json:"active"`
}
