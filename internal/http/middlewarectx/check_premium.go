package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/lib/sl"
)

// PremiumChecker определяет, активна ли у клиента платная подписка.
type PremiumChecker interface {
	IsPremium(ctx context.Context, clientID string) (bool, error)
}

// PremiumMiddleware пропускает к премиум-функциям только клиентов с активной подпиской.
// Остальные получают HTTP 402 Payment Required.
func PremiumMiddleware(log *slog.Logger, subs PremiumChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.PremiumMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			clientID := ClientID(r.Context())
			if clientID == "" {
				log.Error("client identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("client identification missing"))
				return
			}

			premium, err := subs.IsPremium(r.Context(), clientID)
			if err != nil {
				log.Error("failed to get subscription status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !premium {
				log.Info("premium feature requested without subscription", slog.String("client_id", clientID))
				render.Status(r, http.StatusPaymentRequired)
				render.JSON(w, r, response.Error("premium subscription required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
