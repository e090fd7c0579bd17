// Package list отдаёт активные партнёрские ссылки для страницы калькулятора.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
)

// Service описывает выборку ссылок.
type Service interface {
	ListForPage(ctx context.Context, page models.CalculatorPage) ([]models.AffiliateLink, error)
	ListByPlacement(ctx context.Context, placement models.Placement) ([]models.AffiliateLink, error)
}

// Query параметры запроса. Нужен хотя бы один из них.
type Query struct {
	Page      models.CalculatorPage `validate:"omitempty,oneof=emi sip fd rd general"`
	Placement models.Placement      `validate:"omitempty,oneof=primary-button secondary-button tertiary-card secondary-card content-link banner sidebar footer"`
}

// Handler обрабатывает запрос ссылок.
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
// @Summary Партнёрские ссылки
// @Description Активные ссылки страницы и/или размещения по возрастанию приоритета
// @Tags Affiliate
// @Produce json
// @Param page query string false "Страница калькулятора" Enums(emi, sip, fd, rd, general)
// @Param placement query string false "Размещение"
// @Success 200 {object} response.Response{data=[]models.AffiliateLink}
// @Failure 400 {object} response.ErrorResponse "Не задан page или placement"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /affiliate-links [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.affiliate.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := Query{
		Page:      models.CalculatorPage(r.URL.Query().Get("page")),
		Placement: models.Placement(r.URL.Query().Get("placement")),
	}
	if q.Page == "" && q.Placement == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("page or placement is required"))
		return
	}
	if err := h.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	var (
		links []models.AffiliateLink
		err   error
	)
	if q.Page != "" {
		links, err = h.service.ListForPage(r.Context(), q.Page)
	} else {
		links, err = h.service.ListByPlacement(r.Context(), q.Placement)
	}
	if err != nil {
		log.Error("failed to list affiliate links", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list affiliate links"))
		return
	}

	if q.Page != "" && q.Placement != "" {
		filtered := links[:0]
		for _, l := range links {
			if l.Placement == q.Placement {
				filtered = append(filtered, l)
			}
		}
		links = filtered
	}

	render.JSON(w, r, response.StatusOKWithData(links))
}
