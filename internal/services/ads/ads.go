// Package ads решает, какие рекламные места показывать клиенту.
package ads

import (
	"context"
	"fmt"
)

// Slot место под рекламный блок.
type Slot string

const (
	SlotHeader  Slot = "header"
	SlotSidebar Slot = "sidebar"
	SlotFooter  Slot = "footer"
	SlotInline  Slot = "inline"
)

// AdSlot рекламный блок на странице.
type AdSlot struct {
	Slot     Slot   `json:"slot"`
	ClientID string `json:"client_id"`
	Format   string `json:"format"`
}

// Placement набор блоков для страницы.
type Placement struct {
	Page   string   `json:"page"`
	AdFree bool     `json:"ad_free"`
	Slots  []AdSlot `json:"slots"`
}

// PremiumChecker сообщает, оплачен ли у клиента тариф без рекламы.
type PremiumChecker interface {
	IsPremium(ctx context.Context, clientID string) (bool, error)
}

var formats = map[Slot]string{
	SlotHeader:  "horizontal",
	SlotSidebar: "vertical",
	SlotFooter:  "horizontal",
	SlotInline:  "rectangle",
}

// Service выдаёт рекламные блоки.
type Service struct {
	clientID string
	premium  PremiumChecker
}

// NewService создаёт Service с идентификатором рекламного аккаунта.
func NewService(clientID string, premium PremiumChecker) *Service {
	return &Service{clientID: clientID, premium: premium}
}

// Slots возвращает блоки страницы. Подписчики и сервис без рекламного аккаунта получают пустой список.
func (s *Service) Slots(ctx context.Context, page, clientID string) (Placement, error) {
	const op = "ads.Slots"
	res := Placement{Page: page, Slots: []AdSlot{}}

	premium, err := s.premium.IsPremium(ctx, clientID)
	if err != nil {
		return Placement{}, fmt.Errorf("%s: %w", op, err)
	}
	if premium {
		res.AdFree = true
		return res, nil
	}
	if s.clientID == "" {
		return res, nil
	}
	for _, slot := range []Slot{SlotHeader, SlotSidebar, SlotInline, SlotFooter} {
		res.Slots = append(res.Slots, AdSlot{Slot: slot, ClientID: s.clientID, Format: formats[slot]})
	}
	return res, nil
}
