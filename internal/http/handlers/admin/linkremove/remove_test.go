package linkremove

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{name: "удалена", expectedStatus: http.StatusOK, expectedBody: `"deleted":"link-7"`},
		{name: "не найдена", err: fmt.Errorf("affiliate.Delete: %w", affiliate.ErrLinkNotFound), expectedStatus: http.StatusNotFound, expectedBody: `affiliate link not found`},
		{name: "ошибка хранилища", err: errors.New("down"), expectedStatus: http.StatusInternalServerError, expectedBody: `could not remove affiliate link`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Delete", mock.Anything, "link-7").Return(tt.err)

			req := httptest.NewRequest(http.MethodDelete, "/admin/affiliate-links/link-7", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "link-7")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()
			New(sl.NewDiscardLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
