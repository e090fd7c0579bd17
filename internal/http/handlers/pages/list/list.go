// Package list отдаёт SEO-метаданные всех страниц сайта.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/services/seo"
)

// Catalogue источник метаданных.
type Catalogue interface {
	Pages() []seo.Page
}

// Handler обрабатывает запрос списка страниц.
type Handler struct {
	log       *slog.Logger
	catalogue Catalogue
}

// New создает новый Handler.
func New(log *slog.Logger, catalogue Catalogue) *Handler {
	return &Handler{log: log, catalogue: catalogue}
}

// ServeHTTP godoc
// @Summary Страницы сайта
// @Tags Pages
// @Produce json
// @Success 200 {object} response.Response{data=[]seo.Page}
// @Router /pages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.catalogue.Pages()))
}
