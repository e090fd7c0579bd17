package affiliate

import "github.com/magabrotheeeer/finance-calculator/internal/models"

// DefaultLinks партнёрские ссылки, которыми заполняется пустое хранилище.
func DefaultLinks() []models.AffiliateLink {
	link := func(id string, page models.CalculatorPage, partner, cta string, placement models.Placement, url string, priority int) models.AffiliateLink {
		return models.AffiliateLink{
			ID:             id,
			CalculatorPage: page,
			PartnerName:    partner,
			CTAText:        cta,
			Placement:      placement,
			ReferralLink:   url,
			Status:         models.StatusActive,
			Priority:       priority,
		}
	}
	return []models.AffiliateLink{
		// EMI
		link("1", models.PageEMI, "Kotak Bank (Credit Card)", "Compare Top Loan Rates Now", models.PlacementPrimaryButton, "https://mdeal.in/c_XGUC5jXY", 1),
		link("2", models.PageEMI, "SBI Card (Credit Card)", "Get Exclusive Credit Card Offers", models.PlacementSecondaryButton, "https://mdeal.in/c_di5Rm6Qm", 2),
		link("3", models.PageEMI, "IndusInd Bank (Credit Card)", "Check Instant Loan Eligibility", models.PlacementTertiaryCard, "https://mdeal.in/c_vYTSNxU3", 3),
		link("4", models.PageEMI, "HDFC Bank (Credit Card)", "Apply for HDFC Bank Credit Card", models.PlacementSecondaryCard, "https://mdeal.in/c_USvdoY78", 4),
		// SIP, FD, RD
		link("5", models.PageSIP, "Stable Money", "Open High-Interest FD A/C Now", models.PlacementPrimaryButton, "https://mdeal.in/c_NM2IBuOv", 1),
		link("6", models.PageFD, "Stable Money", "Open High-Interest FD A/C Now", models.PlacementPrimaryButton, "https://mdeal.in/c_NM2IBuOv", 1),
		link("7", models.PageRD, "Stable Money", "Open High-Interest FD A/C Now", models.PlacementPrimaryButton, "https://mdeal.in/c_NM2IBuOv", 1),
		// general
		link("8", models.PageGeneral, "Kotak (General Bank)", "Explore Kotak Bank Savings Offers", models.PlacementContentLink, "https://mdeal.in/c_kgQeKTGV", 5),
		link("9", models.PageGeneral, "Swiggy HDFC Bank", "Get Cashback on Food Delivery Card", models.PlacementBanner, "https://mdeal.in/c_DlRs6zXy", 6),
		link("10", models.PageGeneral, "Airtel Broadband", "Check Best Broadband Plans", models.PlacementSidebar, "https://mdeal.in/c_G1aJtvQG", 7),
		// footer
		link("11", models.PageGeneral, "Flipkart", "Shop Electronics on EMI via Flipkart", models.PlacementFooter, "https://mdeal.in/c_ZXBeRsyD", 8),
		link("12", models.PageGeneral, "Acer", "Buy Acer Laptops on EMI", models.PlacementFooter, "https://mdeal.in/c_MUkksm5h", 9),
		link("13", models.PageGeneral, "Dell", "Latest Dell Offers for Students", models.PlacementFooter, "https://mdeal.in/c_XhfEI1LK", 10),
	}
}
