// Package read отдаёт SEO-метаданные одной страницы по slug.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/services/seo"
)

// Catalogue источник метаданных.
type Catalogue interface {
	Page(slug string) (seo.Page, bool)
}

// Handler обрабатывает запрос страницы.
type Handler struct {
	log       *slog.Logger
	catalogue Catalogue
}

// New создает новый Handler.
func New(log *slog.Logger, catalogue Catalogue) *Handler {
	return &Handler{log: log, catalogue: catalogue}
}

// ServeHTTP godoc
// @Summary Метаданные страницы
// @Tags Pages
// @Produce json
// @Param slug path string true "Slug страницы, home для главной"
// @Success 200 {object} response.Response{data=seo.Page}
// @Failure 404 {object} response.ErrorResponse "Страница не найдена"
// @Router /pages/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.read"

	slug := chi.URLParam(r, "slug")
	page, ok := h.catalogue.Page(slug)
	if !ok {
		h.log.Info("page not found",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("slug", slug),
		)
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("page not found"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(page))
}
