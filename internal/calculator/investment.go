package calculator

import (
	"fmt"
	"math"
)

// SIPInput — параметры систематического инвестиционного плана.
type SIPInput struct {
	MonthlyInvestment float64 `json:"monthly_investment" validate:"gt=0"`
	AnnualReturn      float64 `json:"annual_return" validate:"gte=0"`
	Years             float64 `json:"years" validate:"gt=0,lte=50"`
}

// SIPResult — результат расчёта SIP.
type SIPResult struct {
	TotalInvestment  float64 `json:"total_investment"`
	EstimatedReturns float64 `json:"estimated_returns"`
	FutureValue      float64 `json:"future_value"`
	CAGR             float64 `json:"cagr"`
}

func (SIPInput) Kind() Kind  { return KindSIP }
func (SIPResult) Kind() Kind { return KindSIP }
func (SIPResult) isResult()  {}

// Evaluate реализует Input.
func (in SIPInput) Evaluate() (Result, error) {
	return SIP(in)
}

func (in SIPInput) validate() error {
	if err := positive("monthly_investment", in.MonthlyInvestment); err != nil {
		return err
	}
	if err := nonNegative("annual_return", in.AnnualReturn); err != nil {
		return err
	}
	return term("years", in.Years)
}

// sipValue считает FV = P·[((1+r)^n − 1)/r]·(1+r) для n месяцев.
func sipValue(monthly, annualReturn, months float64) float64 {
	r := annualReturn / 100 / 12
	if r == 0 {
		return monthly * months
	}
	return monthly * ((math.Pow(1+r, months) - 1) / r) * (1 + r)
}

// SIP считает будущую стоимость ежемесячных взносов (платёж в начале месяца)
// и среднегодовой темп роста CAGR = (FV/вложено)^(1/лет) − 1 в процентах.
func SIP(in SIPInput) (SIPResult, error) {
	if err := in.validate(); err != nil {
		return SIPResult{}, err
	}
	months := in.Years * 12
	fv := sipValue(in.MonthlyInvestment, in.AnnualReturn, months)
	invested := in.MonthlyInvestment * months
	cagr := (math.Pow(fv/invested, 1/in.Years) - 1) * 100
	if err := checkResult(fv, cagr); err != nil {
		return SIPResult{}, err
	}
	return SIPResult{
		TotalInvestment:  invested,
		EstimatedReturns: fv - invested,
		FutureValue:      fv,
		CAGR:             cagr,
	}, nil
}

// SIPGrowth возвращает стоимость портфеля на конец каждого года.
func SIPGrowth(in SIPInput) ([]GrowthRow, error) {
	if _, err := SIP(in); err != nil {
		return nil, err
	}
	var rows []GrowthRow
	for y := 1; float64(y) < in.Years; y++ {
		rows = append(rows, sipRow(in, y, float64(y)))
	}
	rows = append(rows, sipRow(in, int(math.Ceil(in.Years)), in.Years))
	return rows, nil
}

func sipRow(in SIPInput, year int, years float64) GrowthRow {
	months := years * 12
	v := sipValue(in.MonthlyInvestment, in.AnnualReturn, months)
	invested := in.MonthlyInvestment * months
	return GrowthRow{Year: year, Invested: invested, Interest: v - invested, Value: v}
}

const (
	// PPFDefaultRate — текущая ставка PPF, % годовых.
	PPFDefaultRate = 7.1
	// PPFDefaultYears — базовый срок счёта PPF.
	PPFDefaultYears = 15
)

// PPFInput — параметры счёта Public Provident Fund.
type PPFInput struct {
	YearlyDeposit float64 `json:"yearly_deposit" validate:"gt=0"`
	Years         int     `json:"years" validate:"gte=0,lte=50"`
	AnnualRate    float64 `json:"annual_rate" validate:"gte=0"`
}

// PPFResult — результат по счёту PPF с разбивкой по годам.
type PPFResult struct {
	TotalInvestment float64     `json:"total_investment"`
	TotalInterest   float64     `json:"total_interest"`
	MaturityAmount  float64     `json:"maturity_amount"`
	Years           int         `json:"years"`
	Rate            float64     `json:"rate"`
	Yearly          []GrowthRow `json:"yearly"`
}

func (PPFInput) Kind() Kind  { return KindPPF }
func (PPFResult) Kind() Kind { return KindPPF }
func (PPFResult) isResult()  {}

// Evaluate реализует Input.
func (in PPFInput) Evaluate() (Result, error) {
	return PPF(in)
}

// PPF считает счёт с ежегодной капитализацией: взнос вносится в начале года,
// balance = (balance + deposit)·(1 + rate). Нулевой срок означает 15 лет.
func PPF(in PPFInput) (PPFResult, error) {
	if err := positive("yearly_deposit", in.YearlyDeposit); err != nil {
		return PPFResult{}, err
	}
	if err := nonNegative("annual_rate", in.AnnualRate); err != nil {
		return PPFResult{}, err
	}
	if in.Years < 0 {
		return PPFResult{}, invalid("years", "must be a non-negative number")
	}
	if in.Years > MaxYears {
		return PPFResult{}, invalid("years", fmt.Sprintf("must not exceed %d years", MaxYears))
	}
	years := in.Years
	if years == 0 {
		years = PPFDefaultYears
	}

	rate := in.AnnualRate / 100
	var balance float64
	rows := make([]GrowthRow, 0, years)
	for y := 1; y <= years; y++ {
		balance = (balance + in.YearlyDeposit) * (1 + rate)
		invested := in.YearlyDeposit * float64(y)
		rows = append(rows, GrowthRow{Year: y, Invested: invested, Interest: balance - invested, Value: balance})
	}
	if err := checkResult(balance); err != nil {
		return PPFResult{}, err
	}

	total := in.YearlyDeposit * float64(years)
	return PPFResult{
		TotalInvestment: total,
		TotalInterest:   balance - total,
		MaturityAmount:  balance,
		Years:           years,
		Rate:            in.AnnualRate,
		Yearly:          rows,
	}, nil
}
