// Package click засчитывает переход по партнёрской ссылке.
//
// GET отвечает редиректом 302 на сайт партнёра, POST возвращает ссылку в JSON,
// чтобы фронтенд открыл её сам.
package click

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
)

// Service описывает учёт переходов.
type Service interface {
	TrackClick(ctx context.Context, id string) (models.AffiliateLink, error)
}

// Handler обрабатывает переход по ссылке.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переход по партнёрской ссылке
// @Description Увеличивает счётчик переходов. GET делает редирект, POST возвращает ссылку.
// @Tags Affiliate
// @Produce json
// @Param id path string true "ID ссылки"
// @Success 200 {object} response.Response{data=models.AffiliateLink}
// @Success 302 "Редирект на сайт партнёра"
// @Failure 404 {object} response.ErrorResponse "Ссылка не найдена или выключена"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /affiliate-links/{id}/click [post]
// @Router /go/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.affiliate.click"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	link, err := h.service.TrackClick(r.Context(), id)
	if errors.Is(err, affiliate.ErrLinkNotFound) {
		log.Info("affiliate link not found", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("affiliate link not found"))
		return
	}
	if err != nil {
		log.Error("failed to track click", slog.String("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not track click"))
		return
	}

	log.Info("affiliate click", slog.String("id", id), slog.String("partner", link.PartnerName))
	if r.Method == http.MethodGet {
		http.Redirect(w, r, link.ReferralLink, http.StatusFound)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(link))
}
