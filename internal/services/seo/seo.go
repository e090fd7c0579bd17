// Package seo описывает страницы сайта и их метаданные для поисковиков.
package seo

import (
	"encoding/xml"
	"strings"

	"github.com/magabrotheeeer/finance-calculator/internal/calculator"
)

// DefaultBaseURL адрес сайта, от которого строятся канонические ссылки.
const DefaultBaseURL = "https://myfinancecalculator.netlify.app"

// Page метаданные страницы.
type Page struct {
	Slug           string          `json:"slug"`
	Path           string          `json:"path"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Keywords       []string        `json:"keywords,omitempty"`
	Canonical      string          `json:"canonical"`
	Calculator     calculator.Kind `json:"calculator,omitempty"`
	PremiumFeature string          `json:"premium_feature,omitempty"`
}

type entry struct {
	path        string
	title       string
	description string
	keywords    string
	kind        calculator.Kind
	premium     string
}

var entries = []entry{
	{
		path:        "/",
		title:       "My Finance Calculator - Free SIP, EMI, FD & RD Calculators India 2025",
		description: "Free online financial calculators for India. Calculate SIP returns, EMI payments, FD maturity, and RD investments instantly. Accurate, fast, and SEO-optimized for 2025.",
		keywords:    "SIP calculator India, EMI calculator, FD calculator, RD calculator, financial calculator, investment calculator 2025",
	},
	{
		path:        "/sip",
		title:       "Best SIP Calculator 2026: Calculate Returns & Maturity | Free",
		description: "Calculate your SIP returns instantly! Start your investment journey today with our Free SIP Calculator India 2026. Get accurate CAGR, maturity value & investment projections.",
		keywords:    "SIP calculator India 2026, mutual fund calculator, systematic investment plan, SIP returns calculator, CAGR calculator",
		kind:        calculator.KindSIP,
		premium:     "Investment Charts",
	},
	{
		path:        "/emi",
		title:       "EMI Calculator 2026: Home, Car & Personal Loan | Apply Now",
		description: "Calculate EMI instantly & check loan eligibility with lowest interest rates. Apply for Home, Car & Personal Loans Now! Free EMI Calculator India 2026 with charts.",
		keywords:    "EMI calculator India 2026, home loan EMI calculator, car loan calculator, personal loan EMI, loan calculator",
		kind:        calculator.KindEMI,
		premium:     "Amortization Schedule",
	},
	{
		path:        "/fd",
		title:       "Best FD Calculator 2026: Compare Interest Rates & Maturity",
		description: "Calculate your Fixed Deposit returns instantly. Compare bank FD rates & maximize earnings! Free FD Calculator for India 2026 with compound interest.",
		keywords:    "FD calculator India 2026, fixed deposit calculator, FD maturity calculator, bank FD calculator, FD interest calculator",
		kind:        calculator.KindFD,
		premium:     "Growth Charts",
	},
	{
		path:        "/rd",
		title:       "RD Calculator 2026: Recurring Deposit Maturity & Interest | Best RD",
		description: "Calculate Recurring Deposit maturity instantly! Plan monthly savings with best RD rates across banks. Free RD Calculator India 2026 with interest breakdown.",
		keywords:    "RD calculator India 2026, recurring deposit calculator, RD maturity calculator, bank RD calculator, monthly deposit calculator",
		kind:        calculator.KindRD,
		premium:     "Deposit Schedule",
	},
	{
		path:        "/gst",
		title:       "GST Calculator 2026: Calculate GST, CGST & SGST Online - Free India",
		description: "Free GST Calculator India 2026. Calculate GST amount, CGST, SGST & IGST instantly. Add or remove GST from prices. Accurate tax calculator for businesses & individuals.",
		keywords:    "GST calculator, GST calculator India, CGST SGST calculator, GST tax calculator, calculate GST online",
		kind:        calculator.KindGST,
	},
	{
		path:        "/income-tax",
		title:       "Income Tax Calculator 2026-27: Calculate Tax Online Free India",
		description: "Free Income Tax Calculator India FY 2025-26 (AY 2026-27). Compare Old vs New Tax Regime. Calculate income tax, deductions, rebate & cess instantly with latest slabs.",
		keywords:    "income tax calculator, income tax calculator India 2026, tax calculator FY 2025-26, new tax regime calculator, old tax regime calculator",
		kind:        calculator.KindIncomeTax,
	},
	{
		path:        "/home-loan",
		title:       "Home Loan EMI Calculator 2026: Calculate Home Loan EMI Online India",
		description: "Free Home Loan Calculator India 2026. Calculate home loan EMI, total interest & amortization schedule instantly. Compare best home loan rates from top banks.",
		keywords:    "home loan calculator, home loan EMI calculator, housing loan calculator India, home loan interest calculator",
		kind:        calculator.KindHomeLoan,
	},
	{
		path:        "/ppf",
		title:       "PPF Calculator 2026: Calculate Public Provident Fund Returns India",
		description: "Free PPF Calculator 2026. Calculate PPF maturity amount, interest earned & returns for 15 years. Latest PPF interest rate 7.1%. Plan your long-term tax-free investment.",
		keywords:    "PPF calculator, PPF calculator India, public provident fund calculator, PPF maturity calculator, PPF returns calculator",
		kind:        calculator.KindPPF,
	},
	{
		path:        "/personal-loan",
		title:       "Personal Loan Calculator 2026: Calculate Personal Loan EMI India",
		description: "Free Personal Loan Calculator 2026. Calculate personal loan EMI, total interest & processing fees. Compare best rates from top banks. Get instant approval online.",
		keywords:    "personal loan calculator, personal loan EMI calculator, instant personal loan calculator, personal loan eligibility calculator India 2026",
		kind:        calculator.KindPersonalLoan,
	},
	{
		path:        "/compound-interest",
		title:       "Compound Interest Calculator 2026: Calculate CI Online Free India",
		description: "Free Compound Interest Calculator 2026. Calculate compound interest with daily, monthly, quarterly & yearly compounding. See wealth growth with CI formula & examples.",
		keywords:    "compound interest calculator, CI calculator, compound interest calculator India, daily compound interest calculator 2026",
		kind:        calculator.KindCompoundInterest,
	},
	{
		path:        "/subscription",
		title:       "Premium Plans - My Finance Calculator",
		description: "Upgrade to premium for advanced features, charts, PDF reports, and priority support. Choose from flexible subscription plans.",
	},
	{
		path:        "/about",
		title:       "About Us - My Finance Calculator",
		description: "Learn about our mission to simplify financial planning, and how we help thousands of users make informed financial decisions.",
	},
	{
		path:        "/contact",
		title:       "Contact Us - My Finance Calculator",
		description: "Get in touch for support, feedback, or inquiries about our financial calculators and premium services.",
	},
	{
		path:        "/faq",
		title:       "Frequently Asked Questions - My Finance Calculator",
		description: "Find answers to common questions about our financial calculators, premium features, subscriptions, and how to use our tools effectively.",
	},
	{
		path:        "/policy",
		title:       "Privacy Policy & Terms of Service - My Finance Calculator",
		description: "Read our privacy policy and terms of service to understand how we protect your data and the terms governing your use of our financial calculators.",
	},
}

// Catalogue каталог страниц с каноническими ссылками относительно baseURL.
type Catalogue struct {
	pages  []Page
	bySlug map[string]int
}

// NewCatalogue строит каталог. Пустой baseURL означает DefaultBaseURL.
func NewCatalogue(baseURL string) *Catalogue {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Catalogue{pages: make([]Page, 0, len(entries)), bySlug: make(map[string]int, len(entries))}
	for _, e := range entries {
		slug := strings.TrimPrefix(e.path, "/")
		if slug == "" {
			slug = "home"
		}
		var keywords []string
		if e.keywords != "" {
			keywords = strings.Split(e.keywords, ", ")
		}
		c.bySlug[slug] = len(c.pages)
		c.pages = append(c.pages, Page{
			Slug:           slug,
			Path:           e.path,
			Title:          e.title,
			Description:    e.description,
			Keywords:       keywords,
			Canonical:      baseURL + e.path,
			Calculator:     e.kind,
			PremiumFeature: e.premium,
		})
	}
	return c
}

// Pages возвращает все страницы в порядке навигации.
func (c *Catalogue) Pages() []Page {
	return append([]Page(nil), c.pages...)
}

// Page ищет страницу по slug ("home" для корня).
func (c *Catalogue) Page(slug string) (Page, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// Sitemap возвращает sitemap.xml со всеми каноническими адресами.
func (c *Catalogue) Sitemap() ([]byte, error) {
	set := urlset{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range c.pages {
		set.URLs = append(set.URLs, struct {
			Loc string `xml:"loc"`
		}{Loc: p.Canonical})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
