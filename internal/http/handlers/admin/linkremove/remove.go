// Package linkremove удаляет партнёрскую ссылку.
package linkremove

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
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
)

// Service описывает удаление ссылки.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает удаление ссылки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить партнёрскую ссылку
// @Tags Admin
// @Produce json
// @Param id path string true "ID ссылки"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Ссылка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/affiliate-links/{id} [delete]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.linkremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, affiliate.ErrLinkNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("affiliate link not found"))
		return
	}
	if err != nil {
		log.Error("failed to remove affiliate link", slog.String("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove affiliate link"))
		return
	}

	log.Info("affiliate link removed", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": id,
	}))
}
