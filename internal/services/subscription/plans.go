package subscription

import "github.com/magabrotheeeer/finance-calculator/internal/models"

var tiers = []models.SubscriptionTier{
	{
		ID:       models.PlanBasic,
		Name:     "Basic",
		Price:    199,
		Months:   1,
		Duration: "1 Month",
		Features: []string{
			"Ad-free experience",
			"Basic charts & visualizations",
			"Email support",
			"All calculators access",
		},
	},
	{
		ID:       models.PlanStandard,
		Name:     "Standard",
		Price:    499,
		Months:   3,
		Duration: "3 Months",
		Features: []string{
			"Everything in Basic",
			"Advanced charts",
			"Downloadable PDF reports",
			"Priority email support",
			"Investment recommendations",
		},
		Recommended: true,
	},
	{
		ID:       models.PlanPremium,
		Name:     "Premium",
		Price:    999,
		Months:   6,
		Duration: "6 Months",
		Features: []string{
			"Everything in Standard",
			"Detailed analytics dashboard",
			"Custom calculations",
			"Priority support (24/7)",
			"Exclusive financial insights",
		},
	},
	{
		ID:       models.PlanUltimate,
		Name:     "Ultimate",
		Price:    1799,
		Months:   12,
		Duration: "12 Months",
		Features: []string{
			"Everything in Premium",
			"Personal finance consultation",
			"Tax planning guidance",
			"Portfolio analysis",
			"Lifetime updates",
			"VIP support",
		},
	},
}

// Plans возвращает копию каталога платных тарифов.
func Plans() []models.SubscriptionTier {
	res := make([]models.SubscriptionTier, len(tiers))
	for i, t := range tiers {
		t.Features = append([]string(nil), t.Features...)
		res[i] = t
	}
	return res
}

// Plan ищет тариф по id.
func Plan(id models.PlanID) (models.SubscriptionTier, bool) {
	for _, t := range Plans() {
		if t.ID == id {
			return t, true
		}
	}
	return models.SubscriptionTier{}, false
}
