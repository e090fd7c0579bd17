// Package linkupdate изменяет партнёрскую ссылку.
package linkupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
)

// Service описывает изменение ссылки.
type Service interface {
	Update(ctx context.Context, id string, req models.AffiliateLinkRequest) (models.AffiliateLink, error)
}

// Handler обрабатывает изменение ссылки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить партнёрскую ссылку
// @Description Заменяет все поля ссылки. Нулевой priority сохраняет текущий.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "ID ссылки"
// @Param request body models.AffiliateLinkRequest true "Ссылка"
// @Success 200 {object} response.Response{data=models.AffiliateLink}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Ссылка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/affiliate-links/{id} [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.linkupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.AffiliateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	link, err := h.service.Update(r.Context(), id, req)
	if errors.Is(err, affiliate.ErrLinkNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("affiliate link not found"))
		return
	}
	if err != nil {
		log.Error("failed to update affiliate link", slog.String("id", id), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update affiliate link"))
		return
	}

	log.Info("affiliate link updated", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(link))
}
