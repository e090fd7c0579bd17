// Package plans отдаёт каталог платных тарифов.
package plans

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
	"github.com/magabrotheeeer/finance-calculator/internal/services/subscription"
)

// ServeHTTP godoc
// @Summary Тарифы
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Response{data=[]models.SubscriptionTier}
// @Router /subscription/plans [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(subscription.Plans()))
}
