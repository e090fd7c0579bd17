// Package stats отдаёт статистику переходов по партнёрским ссылкам.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
)

// Service описывает сбор статистики.
type Service interface {
	Stats(ctx context.Context) (models.ClickStats, error)
}

// Handler обрабатывает запрос статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статистика переходов
// @Description Всего переходов, переходы по ссылкам, число ссылок и активных ссылок
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response{data=models.ClickStats}
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/stats [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	st, err := h.service.Stats(r.Context())
	if err != nil {
		h.log.Error("failed to collect stats",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect stats"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(st))
}
