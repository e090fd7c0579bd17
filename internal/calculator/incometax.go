package calculator

import "math"

// Regime — налоговый режим.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

const (
	// StandardDeduction — стандартный вычет для зарплатного дохода в обоих режимах.
	StandardDeduction = 50000
	// Max80CDeduction — предел вычета по разделу 80C (старый режим).
	Max80CDeduction = 150000
	// MaxHomeLoanInterestDeduction — предел вычета процентов по ипотеке (старый режим).
	MaxHomeLoanInterestDeduction = 200000
	// CessRate — health & education cess, начисляется на сумму налога.
	CessRate = 0.04
)

type slab struct {
	upTo float64
	rate float64
}

// Ставки применяются к части дохода между границами (прогрессивная шкала).
var slabs = map[Regime][]slab{
	RegimeOld: {
		{upTo: 250000, rate: 0},
		{upTo: 500000, rate: 0.05},
		{upTo: 1000000, rate: 0.20},
		{upTo: math.Inf(1), rate: 0.30},
	},
	// FY 2025-26
	RegimeNew: {
		{upTo: 300000, rate: 0},
		{upTo: 700000, rate: 0.05},
		{upTo: 1000000, rate: 0.10},
		{upTo: 1200000, rate: 0.15},
		{upTo: 1500000, rate: 0.20},
		{upTo: math.Inf(1), rate: 0.30},
	},
}

// IncomeTaxInput — годовой доход и вычеты.
type IncomeTaxInput struct {
	Income           float64 `json:"income" validate:"gte=0"`
	Regime           Regime  `json:"regime" validate:"omitempty,oneof=old new"`
	Deduction80C     float64 `json:"deduction_80c" validate:"gte=0"`
	HomeLoanInterest float64 `json:"home_loan_interest" validate:"gte=0"`
}

// IncomeTaxResult — налог по выбранному режиму.
type IncomeTaxResult struct {
	Regime        Regime  `json:"regime"`
	TaxableIncome float64 `json:"taxable_income"`
	Tax           float64 `json:"tax"`
	Cess          float64 `json:"cess"`
	TotalTax      float64 `json:"total_tax"`
	PostTaxIncome float64 `json:"post_tax_income"`
	EffectiveRate float64 `json:"effective_rate"`
}

func (IncomeTaxInput) Kind() Kind  { return KindIncomeTax }
func (IncomeTaxResult) Kind() Kind { return KindIncomeTax }
func (IncomeTaxResult) isResult()  {}

// Evaluate реализует Input.
func (in IncomeTaxInput) Evaluate() (Result, error) {
	return IncomeTax(in)
}

// SlabTax применяет шкалу режима к налогооблагаемому доходу.
func SlabTax(regime Regime, taxable float64) float64 {
	var tax, lower float64
	for _, s := range slabs[regime] {
		if taxable <= lower {
			break
		}
		tax += (math.Min(taxable, s.upTo) - lower) * s.rate
		lower = s.upTo
	}
	return tax
}

// IncomeTax считает подоходный налог. В старом режиме учитываются вычеты 80C и проценты
// по ипотеке (с лимитами), в новом — только стандартный вычет. К налогу добавляется cess 4%.
func IncomeTax(in IncomeTaxInput) (IncomeTaxResult, error) {
	if err := nonNegative("income", in.Income); err != nil {
		return IncomeTaxResult{}, err
	}
	if err := nonNegative("deduction_80c", in.Deduction80C); err != nil {
		return IncomeTaxResult{}, err
	}
	if err := nonNegative("home_loan_interest", in.HomeLoanInterest); err != nil {
		return IncomeTaxResult{}, err
	}
	regime := in.Regime
	if regime == "" {
		regime = RegimeNew
	}

	var taxable float64
	switch regime {
	case RegimeOld:
		taxable = in.Income -
			math.Min(in.Deduction80C, Max80CDeduction) -
			math.Min(in.HomeLoanInterest, MaxHomeLoanInterestDeduction) -
			StandardDeduction
	case RegimeNew:
		taxable = in.Income - StandardDeduction
	default:
		return IncomeTaxResult{}, invalid("regime", "must be old or new")
	}
	taxable = math.Max(taxable, 0)

	tax := SlabTax(regime, taxable)
	cess := tax * CessRate
	total := tax + cess

	var effective float64
	if in.Income > 0 {
		effective = total / in.Income * 100
	}
	if err := checkResult(taxable, total, effective); err != nil {
		return IncomeTaxResult{}, err
	}
	return IncomeTaxResult{
		Regime:        regime,
		TaxableIncome: taxable,
		Tax:           tax,
		Cess:          cess,
		TotalTax:      total,
		PostTaxIncome: in.Income - total,
		EffectiveRate: effective,
	}, nil
}
