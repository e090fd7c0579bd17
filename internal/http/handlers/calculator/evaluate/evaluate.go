// Package evaluate реализует HTTP-обработчик расчёта по одному калькулятору.
//
// Калькулятор выбирается параметром {kind} в URL. Тело запроса накладывается
// на значения по умолчанию, поэтому пустое тело даёт расчёт по умолчанию,
// а клиент может передавать только изменённые поля.
package evaluate

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

// Recorder учитывает выполненные расчёты.
type Recorder interface {
	Calculation(kind, status string)
}

// Result ответ калькулятора.
type Result struct {
	Kind    calculator.Kind   `json:"kind"`
	Input   calculator.Input  `json:"input"`
	Result  calculator.Result `json:"result"`
	Summary string            `json:"summary"`
}

// Handler обрабатывает запросы на расчёт.
type Handler struct {
	log      *slog.Logger
	recorder Recorder
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, recorder Recorder) *Handler {
	return &Handler{
		log:      log,
		recorder: recorder,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Рассчитать
// @Description Считает результат калькулятора. Поля, которых нет в теле, берутся по умолчанию.
// @Tags Calculators
// @Accept json
// @Produce json
// @Param kind path string true "Калькулятор" Enums(emi, sip, fd, rd, ppf, gst, income-tax, home-loan, personal-loan, compound-interest)
// @Param request body object false "Входные данные калькулятора"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Некорректные входные данные"
// @Failure 404 {object} response.ErrorResponse "Неизвестный калькулятор"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /calculators/{kind} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculator.evaluate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kind := calculator.Kind(chi.URLParam(r, "kind"))
	in, ok := calculator.NewInput(kind)
	if !ok {
		log.Info("unknown calculator", slog.String("kind", string(kind)))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown calculator"))
		return
	}

	if err := json.NewDecoder(r.Body).Decode(in); err != nil && !errors.Is(err, io.EOF) {
		log.Info("failed to decode request", sl.Err(err))
		h.recorder.Calculation(string(kind), "invalid")
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
		h.recorder.Calculation(string(kind), "invalid")
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	res, err := calculator.Evaluate(in)
	if err != nil {
		log.Info("calculation rejected", sl.Err(err))
		h.recorder.Calculation(string(kind), "invalid")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	body, err := json.Marshal(response.StatusOKWithData(Result{
		Kind:    kind,
		Input:   in,
		Result:  res,
		Summary: calculator.Summary(in, res),
	}))
	if err != nil {
		log.Error("failed to encode result", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	// засчитывается только расчёт, который клиент получит целиком
	h.recorder.Calculation(string(kind), "ok")
	log.Debug("calculation done", slog.String("kind", string(kind)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error("failed to write response", sl.Err(err))
	}
}
