// Package metrics объявляет счётчики Prometheus сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fincalc"

// Metrics набор метрик. Методы безопасны для конкурентного вызова.
type Metrics struct {
	calculations  *prometheus.CounterVec
	clicks        *prometheus.CounterVec
	activations   *prometheus.CounterVec
	requestTiming *prometheus.HistogramVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Calculator evaluations by kind and outcome.",
		}, []string{"kind", "status"}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "affiliate_clicks_total",
			Help:      "Tracked affiliate link clicks by calculator page.",
		}, []string{"page"}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_activated_total",
			Help:      "Paid subscription activations by plan.",
		}, []string{"plan"}),
		requestTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(m.calculations, m.clicks, m.activations, m.requestTiming)
	return m
}

// Calculation учитывает вычисление калькулятора kind со статусом ok или invalid.
func (m *Metrics) Calculation(kind, status string) {
	m.calculations.WithLabelValues(kind, status).Inc()
}

// AffiliateClick учитывает переход по партнёрской ссылке.
func (m *Metrics) AffiliateClick(page string) {
	m.clicks.WithLabelValues(page).Inc()
}

// SubscriptionActivated учитывает активацию тарифа.
func (m *Metrics) SubscriptionActivated(plan string) {
	m.activations.WithLabelValues(plan).Inc()
}

// ObserveRequest записывает длительность HTTP-запроса.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	m.requestTiming.WithLabelValues(route, method, status).Observe(d.Seconds())
}
