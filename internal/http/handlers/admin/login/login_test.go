package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-calculator/internal/services/admin"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, password string) (string, time.Time, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"password":"s3cret"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "s3cret").Return("jwt-token", now.Add(12*time.Hour), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"token":"jwt-token","expires_in":43200}}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"password":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "пустой пароль",
			body:           `{"password":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверный пароль",
			body: `{"password":"guess"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "guess").Return("", time.Time{}, fmt.Errorf("admin.Login: %w", admin.ErrInvalidCredentials))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `invalid credentials`,
		},
		{
			name: "вход отключён",
			body: `{"password":"any"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "any").Return("", time.Time{}, fmt.Errorf("admin.Login: %w", admin.ErrDisabled))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `admin login is disabled`,
		},
		{
			name: "ошибка выпуска токена",
			body: `{"password":"s3cret"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "s3cret").Return("", time.Time{}, errors.New("sign failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `internal error`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			h := New(sl.NewDiscardLogger(), svc)
			h.now = func() time.Time { return now }

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
