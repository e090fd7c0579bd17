package financecalculator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/finance-calculator/internal/config"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/linkcreate"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/linklist"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/linkremove"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/linktoggle"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/linkupdate"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/login"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/ads/slots"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/affiliate/click"
	affiliatelist "github.com/magabrotheeeer/finance-calculator/internal/http/handlers/affiliate/list"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/calculator/breakdown"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/calculator/evaluate"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/calculator/kinds"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/health"
	pagelist "github.com/magabrotheeeer/finance-calculator/internal/http/handlers/pages/list"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/pages/read"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/pages/sitemap"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/payment/webhook"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/subscription/confirm"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/subscription/plans"
	"github.com/magabrotheeeer/finance-calculator/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/finance-calculator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-calculator/internal/metrics"
	"github.com/magabrotheeeer/finance-calculator/internal/services/admin"
	"github.com/magabrotheeeer/finance-calculator/internal/services/ads"
	"github.com/magabrotheeeer/finance-calculator/internal/services/affiliate"
	"github.com/magabrotheeeer/finance-calculator/internal/services/payment"
	"github.com/magabrotheeeer/finance-calculator/internal/services/seo"
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"

	// swagger спецификация
	_ "github.com/magabrotheeeer/finance-calculator/docs"
)

// Вход администратора: не больше 5 попыток в минуту с одного адреса.
const (
	loginRPS   = 5.0 / 60
	loginBurst = 5
)

// Services зависимости маршрутов.
type Services struct {
	Store         Store
	Metrics       *metrics.Metrics
	Limiter       config.RateLimit
	Tokens        *jwt.MakerImpl
	Catalogue     *seo.Catalogue
	Affiliates    *affiliate.Service
	Subscriptions *subscription.Service
	Payments      *payment.Service
	Admin         *admin.Service
	Ads           *ads.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(s.Metrics),
		middlewarectx.RateLimitMiddleware(logger, middlewarectx.NewIPRateLimiter(s.Limiter.RPS, s.Limiter.Burst)),
		middlewarectx.ClientIDMiddleware,
	)

	r.Get("/health", health.New(logger, s.Store).ServeHTTP)
	r.Get("/sitemap.xml", sitemap.New(logger, s.Catalogue).ServeHTTP)
	r.Get("/go/{id}", click.New(logger, s.Affiliates).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/pages", pagelist.New(logger, s.Catalogue).ServeHTTP)
		r.Get("/pages/{slug}", read.New(logger, s.Catalogue).ServeHTTP)

		r.Get("/calculators", kinds.New(logger).ServeHTTP)
		r.Post("/calculators/{kind}", evaluate.New(logger, s.Metrics).ServeHTTP)
		r.With(middlewarectx.PremiumMiddleware(logger, s.Subscriptions)).
			Post("/calculators/{kind}/breakdown", breakdown.New(logger).ServeHTTP)

		r.Get("/affiliate-links", affiliatelist.New(logger, s.Affiliates).ServeHTTP)
		r.Post("/affiliate-links/{id}/click", click.New(logger, s.Affiliates).ServeHTTP)
		r.Get("/ads/slots", slots.New(logger, s.Ads).ServeHTTP)

		r.Get("/subscription", status.New(logger, s.Subscriptions).ServeHTTP)
		r.Get("/subscription/plans", plans.ServeHTTP)
		r.Post("/subscription/checkout", checkout.New(logger, s.Payments).ServeHTTP)
		r.Post("/subscription/confirm", confirm.New(logger, s.Payments).ServeHTTP)

		// Webhook шлюза, подлинность проверяется подписью
		r.Post("/payments/webhook", webhook.New(logger, s.Payments).ServeHTTP)

		r.Route("/admin", func(r chi.Router) {
			r.With(middlewarectx.RateLimitMiddleware(logger, middlewarectx.NewIPRateLimiter(loginRPS, loginBurst))).
				Post("/login", login.New(logger, s.Admin).ServeHTTP)

			// Группа с JWT аутентификацией
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminJWTMiddleware(s.Tokens, logger))
				r.Get("/affiliate-links", linklist.New(logger, s.Affiliates).ServeHTTP)
				r.Post("/affiliate-links", linkcreate.New(logger, s.Affiliates).ServeHTTP)
				r.Put("/affiliate-links/{id}", linkupdate.New(logger, s.Affiliates).ServeHTTP)
				r.Delete("/affiliate-links/{id}", linkremove.New(logger, s.Affiliates).ServeHTTP)
				r.Post("/affiliate-links/{id}/toggle", linktoggle.New(logger, s.Affiliates).ServeHTTP)
				r.Get("/stats", stats.New(logger, s.Affiliates).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
