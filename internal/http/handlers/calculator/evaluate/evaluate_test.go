package evaluate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Calculation(kind, status string) {
	m.Called(kind, status)
}

func serve(h http.Handler, kind, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/calculators/"+kind, http.NoBody)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/calculators/"+kind, strings.NewReader(body))
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("kind", kind)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestEvaluateHandler(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		body           string
		metricStatus   string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "emi с значениями по умолчанию",
			kind:           "emi",
			metricStatus:   "ok",
			expectedStatus: http.StatusOK,
			expectedBody:   `"summary":"EMI Calculator Results:`,
		},
		{
			name:           "gst с частичным телом",
			kind:           "gst",
			body:           `{"amount":1000}`,
			metricStatus:   "ok",
			expectedStatus: http.StatusOK,
			expectedBody:   `"gst_amount":180`,
		},
		{
			name:           "неизвестный калькулятор",
			kind:           "crypto",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"unknown calculator"}`,
		},
		{
			name:           "битый json",
			kind:           "sip",
			body:           `{"years":`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "нулевая сумма кредита",
			kind:           "emi",
			body:           `{"principal":0}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Principal must be greater than 0`,
		},
		{
			name:           "неизвестный режим налога",
			kind:           "income-tax",
			body:           `{"regime":"flat"}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Regime must be one of [old new]`,
		},
		{
			name:           "переполнение gst",
			kind:           "gst",
			body:           `{"amount":1e308,"rate":200}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid input: result is out of range"}`,
		},
		{
			name:           "срок ppf больше предельного",
			kind:           "ppf",
			body:           `{"years":500000000}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Years must be at most 50`,
		},
		{
			name:           "срок rd больше предельного",
			kind:           "rd",
			body:           `{"annual_rate":0,"years":2000000000}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Years must be at most 50`,
		},
		{
			name:           "срок кредита больше предельного",
			kind:           "emi",
			body:           `{"tenure":51}`,
			metricStatus:   "invalid",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `tenure must not exceed 600 months`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := new(MockRecorder)
			if tt.metricStatus != "" {
				rec.On("Calculation", tt.kind, tt.metricStatus).Once()
			}

			w := serve(New(sl.NewDiscardLogger(), rec), tt.kind, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			rec.AssertExpectations(t)
		})
	}
}

func TestEvaluateHandler_Response(t *testing.T) {
	rec := new(MockRecorder)
	rec.On("Calculation", "income-tax", "ok").Once()

	w := serve(New(sl.NewDiscardLogger(), rec), "income-tax", `{"income":1200000,"regime":"old","deduction_80c":150000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Kind   string         `json:"kind"`
			Input  map[string]any `json:"input"`
			Result map[string]any `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "income-tax", body.Data.Kind)
	assert.Equal(t, "old", body.Data.Input["regime"])
	// 1200000 - 150000 - 50000 = 1000000
	assert.EqualValues(t, 1000000, body.Data.Result["taxable_income"])
	// 12500 + 100000 = 112500, cess 4500
	assert.InDelta(t, 117000, body.Data.Result["total_tax"], 0.01)
}
