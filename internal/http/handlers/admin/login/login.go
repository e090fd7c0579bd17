// Package login реализует вход администратора.
//
// Handler принимает пароль, сверяет его с bcrypt-хешем из конфига через сервис
// и возвращает JWT с ролью admin для запросов к /admin.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/services/admin"
)

// Service описывает вход администратора.
type Service interface {
	Login(ctx context.Context, password string) (string, time.Time, error)
}

// Handler обрабатывает вход администратора.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор структуры входящих данных
	now      func() time.Time
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Проверяет пароль и возвращает JWT токен администратора
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Пароль"
// @Success 200 {object} response.Response{data=models.LoginResponse}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 403 {object} response.ErrorResponse "Вход отключён"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Router /admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
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

	token, expires, err := h.service.Login(r.Context(), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, admin.ErrInvalidCredentials):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	case errors.Is(err, admin.ErrDisabled):
		log.Warn("admin login attempted while disabled")
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("admin login is disabled"))
		return
	default:
		log.Error("failed to login", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(expires.Sub(h.now()).Seconds()),
	}))
}
