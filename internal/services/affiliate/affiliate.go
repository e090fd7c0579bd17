// Package affiliate управляет партнёрскими ссылками и счётчиками переходов.
// Ссылки и счётчики хранятся двумя JSON-документами в storage.Store.
package affiliate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/storage"
)

// Ключи документов в хранилище.
const (
	LinksKey  = "affiliate_links"
	ClicksKey = "affiliate_clicks"
)

// ErrLinkNotFound ссылки с таким id нет.
var ErrLinkNotFound = errors.New("affiliate link not found")

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// ClickCounter считает переходы для метрик.
type ClickCounter interface {
	AffiliateClick(page string)
}

// Service реализует операции над партнёрскими ссылками.
type Service struct {
	store     storage.Store
	publisher Publisher
	counter   ClickCounter
	log       *slog.Logger
	now       func() time.Time

	// mu сериализует чтение-изменение-запись документов внутри процесса.
	mu sync.Mutex
}

// NewService создаёт Service. publisher и counter могут быть nil.
func NewService(store storage.Store, publisher Publisher, counter ClickCounter, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		counter:   counter,
		log:       log,
		now:       time.Now,
	}
}

// load читает ссылки, при первом обращении записывая набор по умолчанию.
func (s *Service) load(ctx context.Context) ([]models.AffiliateLink, error) {
	const op = "affiliate.load"
	var links []models.AffiliateLink
	found, err := s.store.Get(ctx, LinksKey, &links)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if found {
		return links, nil
	}
	links = DefaultLinks()
	if err := s.store.Set(ctx, LinksKey, links); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("affiliate links initialised with defaults", slog.Int("count", len(links)))
	return links, nil
}

func (s *Service) save(ctx context.Context, links []models.AffiliateLink) error {
	const op = "affiliate.save"
	if err := s.store.Set(ctx, LinksKey, links); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает все ссылки в порядке хранения.
func (s *Service) List(ctx context.Context) ([]models.AffiliateLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListForPage возвращает активные ссылки страницы по возрастанию приоритета.
func (s *Service) ListForPage(ctx context.Context, page models.CalculatorPage) ([]models.AffiliateLink, error) {
	return s.filter(ctx, func(l models.AffiliateLink) bool { return l.CalculatorPage == page })
}

// ListByPlacement возвращает активные ссылки с заданным размещением по возрастанию приоритета.
func (s *Service) ListByPlacement(ctx context.Context, placement models.Placement) ([]models.AffiliateLink, error) {
	return s.filter(ctx, func(l models.AffiliateLink) bool { return l.Placement == placement })
}

func (s *Service) filter(ctx context.Context, match func(models.AffiliateLink) bool) ([]models.AffiliateLink, error) {
	links, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]models.AffiliateLink, 0, len(links))
	for _, l := range links {
		if l.Status == models.StatusActive && match(l) {
			res = append(res, l)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Priority < res[j].Priority })
	return res, nil
}

// Create добавляет ссылку. Id генерируется, нулевой приоритет ставит ссылку в конец.
func (s *Service) Create(ctx context.Context, req models.AffiliateLinkRequest) (models.AffiliateLink, error) {
	const op = "affiliate.Create"
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return models.AffiliateLink{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.AffiliateLink{}, fmt.Errorf("%s: %w", op, err)
	}
	link := fromRequest(id.String(), req)
	if link.Priority == 0 {
		link.Priority = len(links) + 1
	}
	links = append(links, link)
	if err := s.save(ctx, links); err != nil {
		return models.AffiliateLink{}, err
	}
	s.log.Info("affiliate link created", slog.String("id", link.ID), slog.String("partner", link.PartnerName))
	return link, nil
}

// Update заменяет поля ссылки id.
func (s *Service) Update(ctx context.Context, id string, req models.AffiliateLinkRequest) (models.AffiliateLink, error) {
	const op = "affiliate.Update"
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return models.AffiliateLink{}, err
	}
	i := indexOf(links, id)
	if i < 0 {
		return models.AffiliateLink{}, fmt.Errorf("%s: %w", op, ErrLinkNotFound)
	}
	link := fromRequest(id, req)
	if link.Priority == 0 {
		link.Priority = links[i].Priority
	}
	links[i] = link
	if err := s.save(ctx, links); err != nil {
		return models.AffiliateLink{}, err
	}
	return link, nil
}

// Delete удаляет ссылку id.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "affiliate.Delete"
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(links, id)
	if i < 0 {
		return fmt.Errorf("%s: %w", op, ErrLinkNotFound)
	}
	links = append(links[:i], links[i+1:]...)
	return s.save(ctx, links)
}

// ToggleStatus переключает статус active и inactive.
func (s *Service) ToggleStatus(ctx context.Context, id string) (models.AffiliateLink, error) {
	const op = "affiliate.ToggleStatus"
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return models.AffiliateLink{}, err
	}
	i := indexOf(links, id)
	if i < 0 {
		return models.AffiliateLink{}, fmt.Errorf("%s: %w", op, ErrLinkNotFound)
	}
	if links[i].Status == models.StatusActive {
		links[i].Status = models.StatusInactive
	} else {
		links[i].Status = models.StatusActive
	}
	if err := s.save(ctx, links); err != nil {
		return models.AffiliateLink{}, err
	}
	return links[i], nil
}

// TrackClick увеличивает счётчик переходов и возвращает ссылку для редиректа.
// Переход по неактивной ссылке не засчитывается.
func (s *Service) TrackClick(ctx context.Context, id string) (models.AffiliateLink, error) {
	const op = "affiliate.TrackClick"
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return models.AffiliateLink{}, err
	}
	i := indexOf(links, id)
	if i < 0 || links[i].Status != models.StatusActive {
		return models.AffiliateLink{}, fmt.Errorf("%s: %w", op, ErrLinkNotFound)
	}
	link := links[i]

	clicks, err := s.clicks(ctx)
	if err != nil {
		return models.AffiliateLink{}, err
	}
	clicks[id]++
	if err := s.store.Set(ctx, ClicksKey, clicks); err != nil {
		return models.AffiliateLink{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.counter != nil {
		s.counter.AffiliateClick(string(link.CalculatorPage))
	}
	if s.publisher != nil {
		event := models.AffiliateClickEvent{
			LinkID:    link.ID,
			Partner:   link.PartnerName,
			Page:      link.CalculatorPage,
			Placement: link.Placement,
			At:        s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, models.EventAffiliateClick, event); err != nil {
			s.log.Warn("failed to publish click event", slog.String("id", id), sl.Err(err))
		}
	}
	return link, nil
}

func (s *Service) clicks(ctx context.Context) (map[string]int, error) {
	const op = "affiliate.clicks"
	clicks := map[string]int{}
	if _, err := s.store.Get(ctx, ClicksKey, &clicks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if clicks == nil {
		clicks = map[string]int{}
	}
	return clicks, nil
}

// Clicks возвращает счётчики переходов по id ссылки.
func (s *Service) Clicks(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clicks(ctx)
}

// TotalClicks возвращает сумму всех переходов.
func (s *Service) TotalClicks(ctx context.Context) (int, error) {
	clicks, err := s.Clicks(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	for _, c := range clicks {
		total += c
	}
	return total, nil
}

// Stats собирает сводку для панели администратора.
func (s *Service) Stats(ctx context.Context) (models.ClickStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load(ctx)
	if err != nil {
		return models.ClickStats{}, err
	}
	clicks, err := s.clicks(ctx)
	if err != nil {
		return models.ClickStats{}, err
	}
	stats := models.ClickStats{ByLink: clicks, Links: len(links)}
	for _, c := range clicks {
		stats.Total += c
	}
	for _, l := range links {
		if l.Status == models.StatusActive {
			stats.Active++
		}
	}
	return stats, nil
}

func indexOf(links []models.AffiliateLink, id string) int {
	for i, l := range links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func fromRequest(id string, req models.AffiliateLinkRequest) models.AffiliateLink {
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	return models.AffiliateLink{
		ID:             id,
		CalculatorPage: req.CalculatorPage,
		PartnerName:    req.PartnerName,
		CTAText:        req.CTAText,
		Placement:      req.Placement,
		ReferralLink:   req.ReferralLink,
		Status:         status,
		Priority:       req.Priority,
	}
}
