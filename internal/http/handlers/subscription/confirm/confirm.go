// Package confirm подтверждает оплату, которую вернул виджет Razorpay, и включает тариф.
package confirm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
	"github.com/magabrotheeeer/finance-calculator/internal/services/payment"
)

// Service описывает подтверждение оплаты.
type Service interface {
	Confirm(ctx context.Context, clientID string, req models.ConfirmRequest) (models.UserSubscription, error)
}

// Handler обрабатывает подтверждение оплаты.
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
// @Summary Подтвердить оплату
// @Description Проверяет подпись платежа и активирует тариф на его срок
// @Tags Subscription
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Идентификатор клиента"
// @Param request body models.ConfirmRequest true "Ответ виджета оплаты"
// @Success 200 {object} response.Response{data=models.UserSubscription}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или подпись"
// @Failure 403 {object} response.ErrorResponse "Заказ создан для другого клиента"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.confirm"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ConfirmRequest
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

	clientID := middlewarectx.ClientID(r.Context())
	sub, err := h.service.Confirm(r.Context(), clientID, req)
	switch {
	case err == nil:
	case errors.Is(err, payment.ErrInvalidSignature):
		log.Warn("invalid payment signature", slog.String("order_id", req.OrderID))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payment signature"))
		return
	case errors.Is(err, payment.ErrOrderMismatch):
		log.Warn("order does not belong to client", slog.String("order_id", req.OrderID), slog.String("client_id", clientID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("order does not match"))
		return
	default:
		log.Error("failed to confirm payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not confirm payment"))
		return
	}

	log.Info("subscription activated", slog.String("client_id", clientID), slog.String("plan", string(sub.Plan)))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
