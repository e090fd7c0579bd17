package calculator

import (
	"fmt"
	"math"
)

// TenureUnit — единица срока кредита.
type TenureUnit string

const (
	TenureYears  TenureUnit = "years"
	TenureMonths TenureUnit = "months"
)

// PersonalLoanFeeRate — типичная комиссия за выдачу потребительского кредита.
const PersonalLoanFeeRate = 0.02

// EMIInput описывает кредит для расчёта ежемесячного платежа.
type EMIInput struct {
	Principal  float64    `json:"principal" validate:"gt=0"`
	AnnualRate float64    `json:"annual_rate" validate:"gte=0"`
	Tenure     float64    `json:"tenure" validate:"gt=0,lte=600"`
	TenureUnit TenureUnit `json:"tenure_unit" validate:"omitempty,oneof=years months"`
}

// EMIResult — результат расчёта аннуитетного платежа.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
	Principal     float64 `json:"principal"`
	Months        float64 `json:"months"`
}

func (EMIInput) Kind() Kind  { return KindEMI }
func (EMIResult) Kind() Kind { return KindEMI }
func (EMIResult) isResult()  {}

// Months возвращает срок кредита в месяцах.
func (in EMIInput) Months() float64 {
	if in.TenureUnit == TenureMonths {
		return in.Tenure
	}
	return in.Tenure * 12
}

func (in EMIInput) validate() error {
	if err := positive("principal", in.Principal); err != nil {
		return err
	}
	if err := nonNegative("annual_rate", in.AnnualRate); err != nil {
		return err
	}
	if err := positive("tenure", in.Tenure); err != nil {
		return err
	}
	switch in.TenureUnit {
	case "", TenureYears, TenureMonths:
	default:
		return invalid("tenure_unit", "must be years or months")
	}
	if in.Months() > MaxMonths {
		return invalid("tenure", fmt.Sprintf("must not exceed %d months", MaxMonths))
	}
	return nil
}

// Evaluate реализует Input.
func (in EMIInput) Evaluate() (Result, error) {
	return EMI(in)
}

// EMI считает аннуитетный платёж EMI = P·r·(1+r)^n / ((1+r)^n − 1),
// где r — месячная ставка, n — срок в месяцах. При нулевой ставке EMI = P/n.
func EMI(in EMIInput) (EMIResult, error) {
	if err := in.validate(); err != nil {
		return EMIResult{}, err
	}
	n := in.Months()
	emi := monthlyPayment(in.Principal, in.AnnualRate, n)
	total := emi * n
	res := EMIResult{
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total - in.Principal,
		Principal:     in.Principal,
		Months:        n,
	}
	if err := checkResult(res.EMI, res.TotalPayment); err != nil {
		return EMIResult{}, err
	}
	return res, nil
}

func monthlyPayment(principal, annualRate, months float64) float64 {
	r := annualRate / 12 / 100
	if r == 0 {
		return principal / months
	}
	growth := math.Pow(1+r, months)
	return principal * r * growth / (growth - 1)
}

// LoanInput — общие параметры ипотеки и потребительского кредита (срок в годах).
type LoanInput struct {
	Amount     float64 `json:"amount" validate:"gt=0"`
	AnnualRate float64 `json:"annual_rate" validate:"gte=0"`
	Years      float64 `json:"years" validate:"gt=0,lte=50"`
}

func (in LoanInput) emi() (EMIResult, error) {
	return EMI(EMIInput{
		Principal:  in.Amount,
		AnnualRate: in.AnnualRate,
		Tenure:     in.Years,
		TenureUnit: TenureYears,
	})
}

// HomeLoanInput — параметры ипотечного кредита.
type HomeLoanInput struct {
	LoanInput
}

// HomeLoanResult — результат расчёта ипотеки.
type HomeLoanResult struct {
	EMIResult
}

func (HomeLoanInput) Kind() Kind  { return KindHomeLoan }
func (HomeLoanResult) Kind() Kind { return KindHomeLoan }

// Evaluate реализует Input.
func (in HomeLoanInput) Evaluate() (Result, error) {
	return HomeLoan(in)
}

// HomeLoan считает ежемесячный платёж по ипотеке.
func HomeLoan(in HomeLoanInput) (HomeLoanResult, error) {
	res, err := in.emi()
	if err != nil {
		return HomeLoanResult{}, err
	}
	return HomeLoanResult{EMIResult: res}, nil
}

// PersonalLoanInput — параметры потребительского кредита.
type PersonalLoanInput struct {
	LoanInput
}

// PersonalLoanResult дополняет расчёт платежа комиссией за выдачу.
type PersonalLoanResult struct {
	EMIResult
	ProcessingFee float64 `json:"processing_fee"`
	TotalCost     float64 `json:"total_cost"`
}

func (PersonalLoanInput) Kind() Kind  { return KindPersonalLoan }
func (PersonalLoanResult) Kind() Kind { return KindPersonalLoan }

// Evaluate реализует Input.
func (in PersonalLoanInput) Evaluate() (Result, error) {
	return PersonalLoan(in)
}

// PersonalLoan считает платёж по потребительскому кредиту и комиссию 2%.
func PersonalLoan(in PersonalLoanInput) (PersonalLoanResult, error) {
	res, err := in.emi()
	if err != nil {
		return PersonalLoanResult{}, err
	}
	fee := in.Amount * PersonalLoanFeeRate
	return PersonalLoanResult{
		EMIResult:     res,
		ProcessingFee: fee,
		TotalCost:     res.TotalPayment + fee,
	}, nil
}

// AmortizationRow — строка графика платежей.
type AmortizationRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Amortization строит помесячный график погашения кредита.
// Срок должен быть целым числом месяцев.
func Amortization(in EMIInput) ([]AmortizationRow, error) {
	res, err := EMI(in)
	if err != nil {
		return nil, err
	}
	months := int(math.Round(res.Months))
	if float64(months) != res.Months {
		return nil, invalid("tenure", "must be a whole number of months")
	}

	r := in.AnnualRate / 12 / 100
	balance := in.Principal
	rows := make([]AmortizationRow, 0, months)
	for m := 1; m <= months; m++ {
		interest := balance * r
		principal := res.EMI - interest
		balance -= principal
		// последний платёж гасит остаток, накопленный погрешностью округления
		if m == months || balance < 0 {
			principal += balance
			balance = 0
		}
		rows = append(rows, AmortizationRow{
			Month:     m,
			Payment:   principal + interest,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return rows, nil
}

// Breakdown возвращает подробную разбивку для калькуляторов, где она есть:
// график платежей для EMI, рост по годам для SIP и FD, график взносов для RD.
func Breakdown(in Input) (any, error) {
	switch v := in.(type) {
	case *EMIInput:
		return Amortization(*v)
	case EMIInput:
		return Amortization(v)
	case *SIPInput:
		return SIPGrowth(*v)
	case SIPInput:
		return SIPGrowth(v)
	case *FDInput:
		return FDGrowth(*v)
	case FDInput:
		return FDGrowth(v)
	case *RDInput:
		return RDSchedule(*v)
	case RDInput:
		return RDSchedule(v)
	default:
		return nil, fmt.Errorf("%w: no breakdown for %v", ErrInvalidInput, kindOf(in))
	}
}

// HasBreakdown сообщает, строит ли Breakdown разбивку для калькулятора kind.
func HasBreakdown(kind Kind) bool {
	switch kind {
	case KindEMI, KindSIP, KindFD, KindRD:
		return true
	}
	return false
}

func kindOf(in Input) Kind {
	if in == nil {
		return ""
	}
	return in.Kind()
}
