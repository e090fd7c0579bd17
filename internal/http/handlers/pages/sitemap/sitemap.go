// Package sitemap отдаёт sitemap.xml.
package sitemap

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

// Catalogue источник sitemap.
type Catalogue interface {
	Sitemap() ([]byte, error)
}

// Handler обрабатывает запрос sitemap.xml.
type Handler struct {
	log       *slog.Logger
	catalogue Catalogue
}

// New создает новый Handler.
func New(log *slog.Logger, catalogue Catalogue) *Handler {
	return &Handler{log: log, catalogue: catalogue}
}

// ServeHTTP godoc
// @Summary sitemap.xml
// @Tags Pages
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pages.sitemap"

	body, err := h.catalogue.Sitemap()
	if err != nil {
		h.log.Error("failed to build sitemap", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build sitemap"))
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
