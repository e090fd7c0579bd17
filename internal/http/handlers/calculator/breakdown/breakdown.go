// Package breakdown отдаёт премиум-разбивку расчёта: график платежей по кредиту
// и рост вкладов и инвестиций по годам или месяцам.
package breakdown

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-calculator/internal/calculator"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

// Handler обрабатывает запросы на разбивку.
type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:      log,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Разбивка расчёта
// @Description График платежей EMI, рост SIP и FD по годам, помесячный график RD. Только для подписчиков.
// @Tags Calculators
// @Accept json
// @Produce json
// @Param kind path string true "Калькулятор" Enums(emi, sip, fd, rd)
// @Param request body object false "Входные данные калькулятора"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректные входные данные"
// @Failure 402 {object} response.ErrorResponse "Нужна подписка"
// @Failure 404 {object} response.ErrorResponse "Для калькулятора нет разбивки"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /calculators/{kind}/breakdown [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculator.breakdown"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kind := calculator.Kind(chi.URLParam(r, "kind"))
	in, ok := calculator.NewInput(kind)
	if !ok || !calculator.HasBreakdown(kind) {
		log.Info("breakdown is not available", slog.String("kind", string(kind)))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("breakdown is not available for this calculator"))
		return
	}

	if err := json.NewDecoder(r.Body).Decode(in); err != nil && !errors.Is(err, io.EOF) {
		log.Info("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	rows, err := calculator.Breakdown(in)
	if err != nil {
		log.Info("breakdown rejected", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"kind": kind,
		"rows": rows,
	}))
}
