// Package linktoggle включает и выключает партнёрскую ссылку.
package linktoggle

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

// Service описывает переключение статуса.
type Service interface {
	ToggleStatus(ctx context.Context, id string) (models.AffiliateLink, error)
}

// Handler обрабатывает переключение статуса ссылки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить статус ссылки
// @Tags Admin
// @Produce json
// @Param id path string true "ID ссылки"
// @Success 200 {object} response.Response{data=models.AffiliateLink}
// @Failure 404 {object} response.ErrorResponse "Ссылка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/affiliate-links/{id}/toggle [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.linktoggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	link, err := h.service.ToggleStatus(r.Context(), id)
	if errors.Is(err, affiliate.ErrLinkNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("affiliate link not found"))
		return
	}
	if err != nil {
		log.Error("failed to toggle affiliate link", slog.String("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle affiliate link"))
		return
	}

	log.Info("affiliate link toggled", slog.String("id", id), slog.String("status", string(link.Status)))
	render.JSON(w, r, response.StatusOKWithData(link))
}
