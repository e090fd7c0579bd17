// Package checkout создаёт заказ на оплату тарифа.
package checkout

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
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"
)

// Service описывает создание заказа.
type Service interface {
	Checkout(ctx context.Context, clientID string, plan models.PlanID) (models.Checkout, error)
}

// Handler обрабатывает запросы на оформление тарифа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Платёжный сервис
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
// @Summary Оформить тариф
// @Description Создает заказ Razorpay на цену тарифа и возвращает параметры виджета оплаты
// @Tags Subscription
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Идентификатор клиента"
// @Param request body models.CheckoutRequest true "Тариф"
// @Success 200 {object} response.Response{data=models.Checkout}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного шлюза"
// @Failure 503 {object} response.ErrorResponse "Оплата не настроена"
// @Router /subscription/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckoutRequest
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
	res, err := h.service.Checkout(r.Context(), clientID, req.Plan)
	switch {
	case err == nil:
	case errors.Is(err, subscription.ErrUnknownPlan):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown plan"))
		return
	case errors.Is(err, payment.ErrNotConfigured):
		log.Error("payments are not configured", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("payments are not available"))
		return
	default:
		log.Error("failed to create order", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment provider error"))
		return
	}

	log.Info("success to create order", slog.String("order_id", res.OrderID), slog.String("plan", string(res.Plan)))
	render.JSON(w, r, response.StatusOKWithData(res))
}
