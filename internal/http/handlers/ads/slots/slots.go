// Package slots отдаёт рекламные блоки страницы для текущего клиента.
package slots

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/services/ads"
)

// Service описывает выбор рекламных блоков.
type Service interface {
	Slots(ctx context.Context, page, clientID string) (ads.Placement, error)
}

// Handler обрабатывает запрос рекламных блоков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Рекламные блоки
// @Description Блоки для страницы. Подписчикам возвращается пустой список и ad_free=true.
// @Tags Ads
// @Produce json
// @Param page query string false "Страница" default(home)
// @Param X-Client-ID header string false "Идентификатор клиента"
// @Success 200 {object} response.Response{data=ads.Placement}
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /ads/slots [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ads.slots"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := r.URL.Query().Get("page")
	if page == "" {
		page = "home"
	}

	placement, err := h.service.Slots(r.Context(), page, middlewarectx.ClientID(r.Context()))
	if err != nil {
		log.Error("failed to get ad slots", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get ad slots"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(placement))
}
