// Package webhook принимает уведомления Razorpay об оплате.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/services/payment"
)

// SignatureHeader заголовок с подписью тела вебхука.
const SignatureHeader = "X-Razorpay-Signature"

const maxBodyBytes = 1 << 20

// Service описывает обработку вебхука.
type Service interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

// Handler обрабатывает вебхуки платёжного шлюза.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вебхук Razorpay
// @Description Активирует тариф по событиям payment.captured и order.paid. Подпись HMAC-SHA256 тела в X-Razorpay-Signature.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "Подпись тела"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Тело не прочитано"
// @Failure 401 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Ошибка обработки"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		log.Warn("missing webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	err = h.service.HandleWebhook(r.Context(), body, signature)
	if errors.Is(err, payment.ErrInvalidSignature) {
		log.Warn("invalid webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}
	if err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process webhook"))
		return
	}

	log.Info("webhook processed successfully")
	render.JSON(w, r, response.StatusOKWithData(nil))
}
