package read

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/services/seo"
)

func TestReadHandler(t *testing.T) {
	h := New(sl.NewDiscardLogger(), seo.NewCatalogue("https://calc.example.in"))

	tests := []struct {
		slug           string
		expectedStatus int
		expectedBody   string
	}{
		{slug: "home", expectedStatus: http.StatusOK, expectedBody: `"slug":"home"`},
		{slug: "emi", expectedStatus: http.StatusOK, expectedBody: `"premium_feature":"Amortization Schedule"`},
		{slug: "crypto-calculator", expectedStatus: http.StatusNotFound, expectedBody: `page not found`},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pages/"+tt.slug, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("slug", tt.slug)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
