package linklist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]models.AffiliateLink, error) {
	args := m.Called(ctx)
	links, _ := args.Get(0).([]models.AffiliateLink)
	return links, args.Error(1)
}

func TestListHandler(t *testing.T) {
	t.Run("включая выключенные", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything).Return([]models.AffiliateLink{
			{ID: "1", PartnerName: "Groww", Status: models.StatusActive},
			{ID: "2", PartnerName: "Zerodha", Status: models.StatusInactive},
		}, nil)

		w := httptest.NewRecorder()
		New(sl.NewDiscardLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/affiliate-links", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"inactive"`)
		svc.AssertExpectations(t)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything).Return(nil, errors.New("down"))

		w := httptest.NewRecorder()
		New(sl.NewDiscardLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/affiliate-links", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
