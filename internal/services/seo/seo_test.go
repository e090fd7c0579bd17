package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-calculator/internal/calculator"
)

func TestCatalogue_CoversEveryCalculator(t *testing.T) {
	c := NewCatalogue("")

	seen := map[calculator.Kind]bool{}
	for _, p := range c.Pages() {
		if p.Calculator != "" {
			seen[p.Calculator] = true
			assert.Equal(t, "/"+string(p.Calculator), p.Path)
		}
		assert.NotEmpty(t, p.Title, p.Path)
		assert.NotEmpty(t, p.Description, p.Path)
		assert.Equal(t, DefaultBaseURL+p.Path, p.Canonical)
	}
	for _, k := range calculator.Kinds() {
		assert.True(t, seen[k], "no page for %s", k)
	}
	assert.Len(t, c.Pages(), 16)
}

func TestCatalogue_Page(t *testing.T) {
	c := NewCatalogue("https://calc.example.in/")

	home, ok := c.Page("home")
	require.True(t, ok)
	assert.Equal(t, "/", home.Path)
	assert.Equal(t, "https://calc.example.in/", home.Canonical)

	emi, ok := c.Page("emi")
	require.True(t, ok)
	assert.Equal(t, "Amortization Schedule", emi.PremiumFeature)
	assert.Contains(t, emi.Keywords, "loan calculator")

	_, ok = c.Page("admin")
	assert.False(t, ok)
}

func TestCatalogue_PagesIsCopy(t *testing.T) {
	c := NewCatalogue("")
	pages := c.Pages()
	pages[0].Title = "changed"

	home, _ := c.Page("home")
	assert.NotEqual(t, "changed", home.Title)
}

func TestSitemap(t *testing.T) {
	out, err := NewCatalogue("").Sitemap()
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, "<loc>https://myfinancecalculator.netlify.app/income-tax</loc>")
	assert.Equal(t, 16, strings.Count(s, "<url>"))
}
