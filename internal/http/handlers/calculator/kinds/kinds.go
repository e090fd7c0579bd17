// Package kinds отдаёт список калькуляторов с входными данными по умолчанию.
package kinds

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/calculator"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
)

// Item калькулятор и его значения по умолчанию.
type Item struct {
	Kind         calculator.Kind  `json:"kind"`
	Defaults     calculator.Input `json:"defaults"`
	HasBreakdown bool             `json:"has_breakdown"`
}

// Handler обрабатывает запрос списка калькуляторов.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Список калькуляторов
// @Description Возвращает все калькуляторы с входными данными по умолчанию
// @Tags Calculators
// @Produce json
// @Success 200 {object} response.Response{data=[]Item}
// @Router /calculators [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calculator.kinds"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kinds := calculator.Kinds()
	items := make([]Item, 0, len(kinds))
	for _, k := range kinds {
		in, _ := calculator.NewInput(k)
		items = append(items, Item{Kind: k, Defaults: in, HasBreakdown: calculator.HasBreakdown(k)})
	}

	log.Debug("calculators listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(items))
}
