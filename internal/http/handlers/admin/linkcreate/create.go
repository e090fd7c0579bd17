// Package linkcreate добавляет партнёрскую ссылку.
package linkcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
)

// Service описывает создание ссылки.
type Service interface {
	Create(ctx context.Context, req models.AffiliateLinkRequest) (models.AffiliateLink, error)
}

// Handler обрабатывает создание ссылки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис партнёрских ссылок
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Создать партнёрскую ссылку
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.AffiliateLinkRequest true "Ссылка"
// @Success 201 {object} response.Response{data=models.AffiliateLink}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/affiliate-links [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.linkcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	link, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create affiliate link", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create affiliate link"))
		return
	}

	log.Info("affiliate link created", slog.String("id", link.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(link))
}
