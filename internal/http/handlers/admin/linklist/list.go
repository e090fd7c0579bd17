// Package linklist отдаёт администратору все партнёрские ссылки, включая выключенные.
package linklist

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

// Service описывает чтение ссылок.
type Service interface {
	List(ctx context.Context) ([]models.AffiliateLink, error)
}

// Handler обрабатывает запрос списка ссылок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Все партнёрские ссылки
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response{data=[]models.AffiliateLink}
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/affiliate-links [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.linklist"

	links, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("failed to list affiliate links",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list affiliate links"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(links))
}
