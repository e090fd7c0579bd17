package calculator

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/finance-calculator/internal/lib/inr"
)

type line struct {
	label string
	value string
}

func render(title string, lines []line) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString(" Results:")
	for _, l := range lines {
		fmt.Fprintf(&b, "\n%s: %s", l.label, l.value)
	}
	return b.String()
}

func pct(v float64) string {
	return fmt.Sprintf("%g%%", v)
}

// Summary возвращает текстовую сводку результата для копирования пользователем.
func Summary(in Input, res Result) string {
	switch r := res.(type) {
	case EMIResult:
		i, _ := unwrap(in).(EMIInput)
		unit := i.TenureUnit
		if unit == "" {
			unit = TenureYears
		}
		return render("EMI Calculator", []line{
			{"Loan Amount", inr.Format(r.Principal)},
			{"Interest Rate", pct(i.AnnualRate)},
			{"Tenure", fmt.Sprintf("%g %s", i.Tenure, unit)},
			{"Monthly EMI", inr.Format(r.EMI)},
			{"Total Interest", inr.Format(r.TotalInterest)},
			{"Total Payment", inr.Format(r.TotalPayment)},
		})
	case HomeLoanResult:
		return loanSummary("Home Loan Calculator", r.EMIResult, nil)
	case PersonalLoanResult:
		return loanSummary("Personal Loan Calculator", r.EMIResult, []line{
			{"Processing Fee", inr.Format(r.ProcessingFee)},
			{"Total Cost", inr.Format(r.TotalCost)},
		})
	case SIPResult:
		i, _ := unwrap(in).(SIPInput)
		return render("SIP Calculator", []line{
			{"Monthly SIP", inr.Format(i.MonthlyInvestment)},
			{"Tenure", fmt.Sprintf("%g years", i.Years)},
			{"Expected Return", pct(i.AnnualReturn)},
			{"Total Investment", inr.Format(r.TotalInvestment)},
			{"Estimated Returns", inr.Format(r.EstimatedReturns)},
			{"Future Value", inr.Format(r.FutureValue)},
			{"CAGR", fmt.Sprintf("%.2f%%", r.CAGR)},
		})
	case FDResult:
		i, _ := unwrap(in).(FDInput)
		return render("FD Calculator", []line{
			{"Principal", inr.Format(r.Principal)},
			{"Interest Rate", pct(i.AnnualRate)},
			{"Tenure", fmt.Sprintf("%g years", i.Years)},
			{"Compounding", string(r.Compounding)},
			{"Total Interest", inr.Format(r.TotalInterest)},
			{"Maturity Amount", inr.Format(r.MaturityAmount)},
		})
	case CompoundInterestResult:
		return render("Compound Interest Calculator", []line{
			{"Principal", inr.Format(r.Principal)},
			{"Compounding", string(r.Compounding)},
			{"Compound Interest", inr.Format(r.TotalInterest)},
			{"Total Amount", inr.Format(r.MaturityAmount)},
		})
	case RDResult:
		i, _ := unwrap(in).(RDInput)
		return render("RD Calculator", []line{
			{"Monthly Deposit", inr.Format(i.MonthlyDeposit)},
			{"Interest Rate", pct(i.AnnualRate)},
			{"Tenure", fmt.Sprintf("%g years", i.Years)},
			{"Total Deposit", inr.Format(r.TotalDeposit)},
			{"Total Interest", inr.Format(r.TotalInterest)},
			{"Maturity Value", inr.Format(r.MaturityValue)},
		})
	case PPFResult:
		return render("PPF Calculator", []line{
			{"Interest Rate", pct(r.Rate)},
			{"Tenure", fmt.Sprintf("%d years", r.Years)},
			{"Total Investment", inr.Format(r.TotalInvestment)},
			{"Total Interest", inr.Format(r.TotalInterest)},
			{"Maturity Amount", inr.Format(r.MaturityAmount)},
		})
	case GSTResult:
		return render("GST Calculator", []line{
			{"Net Amount", inr.Format(r.NetAmount)},
			{"GST Rate", pct(r.Rate)},
			{"CGST", inr.Format(r.CGST)},
			{"SGST", inr.Format(r.SGST)},
			{"Total GST", inr.Format(r.GSTAmount)},
			{"Total Amount", inr.Format(r.TotalAmount)},
		})
	case IncomeTaxResult:
		return render("Income Tax Calculator", []line{
			{"Regime", string(r.Regime)},
			{"Taxable Income", inr.Format(r.TaxableIncome)},
			{"Income Tax", inr.Format(r.Tax)},
			{"Cess (4%)", inr.Format(r.Cess)},
			{"Total Tax", inr.Format(r.TotalTax)},
			{"Post-Tax Income", inr.Format(r.PostTaxIncome)},
			{"Effective Tax Rate", fmt.Sprintf("%.2f%%", r.EffectiveRate)},
		})
	}
	return ""
}

func loanSummary(title string, r EMIResult, extra []line) string {
	lines := []line{
		{"Loan Amount", inr.Format(r.Principal)},
		{"Tenure", fmt.Sprintf("%g months", r.Months)},
		{"Monthly EMI", inr.Format(r.EMI)},
		{"Total Interest", inr.Format(r.TotalInterest)},
		{"Total Payment", inr.Format(r.TotalPayment)},
	}
	return render(title, append(lines, extra...))
}

// unwrap приводит указатель из реестра к значению.
func unwrap(in Input) Input {
	switch v := in.(type) {
	case *EMIInput:
		return *v
	case *SIPInput:
		return *v
	case *FDInput:
		return *v
	case *RDInput:
		return *v
	}
	return in
}
