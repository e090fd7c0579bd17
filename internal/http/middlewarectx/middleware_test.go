package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

const testClientID = "0b7e6d2c-8f7a-4c39-9a53-2f3c1f6f9d11"

func TestClientIDMiddleware(t *testing.T) {
	var got string
	h := middlewarectx.ClientIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middlewarectx.ClientID(r.Context())
	}))

	t.Run("from header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewarectx.ClientIDHeader, testClientID)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, testClientID, got)
		assert.Equal(t, testClientID, rr.Header().Get(middlewarectx.ClientIDHeader))
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middlewarectx.ClientIDCookie, Value: testClientID})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, testClientID, got)
	})

	t.Run("generated when missing or malformed", func(t *testing.T) {
		for _, header := range []string{"", "not-a-uuid"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middlewarectx.ClientIDHeader, header)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, got)
			assert.NotEqual(t, header, got)
			assert.Equal(t, got, rr.Header().Get(middlewarectx.ClientIDHeader))
			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, got, cookies[0].Value)
		}
	})
}

func TestAdminJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	adminToken, _, err := maker.GenerateToken("admin", jwt.RoleAdmin)
	require.NoError(t, err)
	userToken, _, err := maker.GenerateToken("someone", "user")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "foreign secret", header: "Bearer " + foreignToken(t), wantStatus: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + userToken, wantStatus: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, wantStatus: http.StatusOK, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, "admin", middlewarectx.Subject(r.Context()))
				w.WriteHeader(http.StatusOK)
			})
			h := middlewarectx.AdminJWTMiddleware(maker, sl.NewDiscardLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func foreignToken(t *testing.T) string {
	t.Helper()
	tok, _, err := jwt.NewJWTMaker("other-secret", time.Hour).GenerateToken("admin", jwt.RoleAdmin)
	require.NoError(t, err)
	return tok
}

func TestIPRateLimiter(t *testing.T) {
	l := middlewarectx.NewIPRateLimiter(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// отдельный bucket на каждый адрес
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimitMiddleware(t *testing.T) {
	l := middlewarectx.NewIPRateLimiter(0.001, 1)
	h := middlewarectx.RateLimitMiddleware(sl.NewDiscardLogger(), l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("192.168.1.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, do("192.168.1.1:2000"))
	assert.Equal(t, http.StatusOK, do("192.168.1.2:1000"))
}

func TestIPRateLimiter_Concurrent(t *testing.T) {
	l := middlewarectx.NewIPRateLimiter(0.001, 50)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("10.1.1.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

type PremiumMock struct {
	mock.Mock
}

func (m *PremiumMock) IsPremium(ctx context.Context, clientID string) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func TestPremiumMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		clientID   string
		premium    bool
		err        error
		wantStatus int
	}{
		{name: "no client", wantStatus: http.StatusUnauthorized},
		{name: "free client", clientID: testClientID, wantStatus: http.StatusPaymentRequired},
		{name: "store error", clientID: testClientID, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{name: "premium client", clientID: testClientID, premium: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := new(PremiumMock)
			if tt.clientID != "" {
				subs.On("IsPremium", mock.Anything, tt.clientID).Return(tt.premium, tt.err)
			}
			h := middlewarectx.PremiumMiddleware(sl.NewDiscardLogger(), subs)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.clientID != "" {
				req = req.WithContext(middlewarectx.WithClientID(req.Context(), tt.clientID))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			subs.AssertExpectations(t)
		})
	}
}

type observer struct {
	route, method, status string
}

func (o *observer) ObserveRequest(route, method, status string, _ time.Duration) {
	o.route, o.method, o.status = route, method, status
}

func TestMetricsMiddleware(t *testing.T) {
	obs := &observer{}
	r := chi.NewRouter()
	r.Use(middlewarectx.MetricsMiddleware(obs))
	r.Get("/pages/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pages/emi", nil))

	assert.Equal(t, "/pages/{slug}", obs.route)
	assert.Equal(t, http.MethodGet, obs.method)
	assert.Equal(t, "418", obs.status)
}
