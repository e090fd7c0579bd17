// Package status отдаёт подписку текущего клиента.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
)

// Service описывает чтение подписки.
type Service interface {
	Status(ctx context.Context, clientID string) (models.SubscriptionStatus, error)
}

// Handler обрабатывает запрос статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписка клиента
// @Description Текущий тариф, срок действия и признак премиум-доступа. Без записи возвращается free.
// @Tags Subscription
// @Produce json
// @Param X-Client-ID header string false "Идентификатор клиента"
// @Success 200 {object} response.Response{data=models.SubscriptionStatus}
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID := middlewarectx.ClientID(r.Context())
	st, err := h.service.Status(r.Context(), clientID)
	if err != nil {
		log.Error("failed to read subscription", slog.String("client_id", clientID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(st))
}
