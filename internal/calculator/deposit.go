package calculator

import "math"

// Compounding — периодичность начисления процентов.
type Compounding string

const (
	Yearly     Compounding = "yearly"
	HalfYearly Compounding = "half-yearly"
	Quarterly  Compounding = "quarterly"
	Monthly    Compounding = "monthly"
	Daily      Compounding = "daily"
)

// PeriodsPerYear возвращает число периодов начисления в году или 0 для неизвестного значения.
func (c Compounding) PeriodsPerYear() float64 {
	switch c {
	case Yearly:
		return 1
	case HalfYearly:
		return 2
	case Quarterly:
		return 4
	case Monthly:
		return 12
	case Daily:
		return 365
	}
	return 0
}

// compound считает A = P·(1 + r/n)^(n·t).
func compound(principal, annualRate, years float64, c Compounding) float64 {
	n := c.PeriodsPerYear()
	return principal * math.Pow(1+annualRate/100/n, n*years)
}

// DepositResult — итог по вкладу с капитализацией.
type DepositResult struct {
	Principal      float64 `json:"principal"`
	MaturityAmount float64 `json:"maturity_amount"`
	TotalInterest  float64 `json:"total_interest"`
}

func depositResult(principal, annualRate, years float64, c Compounding) (DepositResult, error) {
	if err := positive("principal", principal); err != nil {
		return DepositResult{}, err
	}
	if err := nonNegative("annual_rate", annualRate); err != nil {
		return DepositResult{}, err
	}
	if err := term("years", years); err != nil {
		return DepositResult{}, err
	}
	if c.PeriodsPerYear() == 0 {
		return DepositResult{}, invalid("compounding", "must be one of yearly, half-yearly, quarterly, monthly, daily")
	}
	amount := compound(principal, annualRate, years, c)
	if err := checkResult(amount); err != nil {
		return DepositResult{}, err
	}
	return DepositResult{
		Principal:      principal,
		MaturityAmount: amount,
		TotalInterest:  amount - principal,
	}, nil
}

// FDInput — параметры срочного вклада.
type FDInput struct {
	Principal   float64     `json:"principal" validate:"gt=0"`
	AnnualRate  float64     `json:"annual_rate" validate:"gte=0"`
	Years       float64     `json:"years" validate:"gt=0,lte=50"`
	Compounding Compounding `json:"compounding" validate:"omitempty,oneof=yearly half-yearly quarterly monthly daily"`
}

// FDResult — результат по срочному вкладу.
type FDResult struct {
	DepositResult
	Compounding Compounding `json:"compounding"`
}

func (FDInput) Kind() Kind  { return KindFD }
func (FDResult) Kind() Kind { return KindFD }
func (FDResult) isResult()  {}

func (in FDInput) compounding() Compounding {
	if in.Compounding == "" {
		return Quarterly
	}
	return in.Compounding
}

// Evaluate реализует Input.
func (in FDInput) Evaluate() (Result, error) {
	return FD(in)
}

// FD считает сумму срочного вклада к погашению. По умолчанию капитализация ежеквартальная.
func FD(in FDInput) (FDResult, error) {
	c := in.compounding()
	res, err := depositResult(in.Principal, in.AnnualRate, in.Years, c)
	if err != nil {
		return FDResult{}, err
	}
	return FDResult{DepositResult: res, Compounding: c}, nil
}

// GrowthRow — состояние вложения на конец года.
type GrowthRow struct {
	Year     int     `json:"year"`
	Invested float64 `json:"invested"`
	Interest float64 `json:"interest"`
	Value    float64 `json:"value"`
}

// FDGrowth возвращает стоимость вклада на конец каждого полного года и на конец срока.
func FDGrowth(in FDInput) ([]GrowthRow, error) {
	if _, err := FD(in); err != nil {
		return nil, err
	}
	c := in.compounding()
	var rows []GrowthRow
	for y := 1; float64(y) < in.Years; y++ {
		v := compound(in.Principal, in.AnnualRate, float64(y), c)
		rows = append(rows, GrowthRow{Year: y, Invested: in.Principal, Interest: v - in.Principal, Value: v})
	}
	v := compound(in.Principal, in.AnnualRate, in.Years, c)
	rows = append(rows, GrowthRow{
		Year:     int(math.Ceil(in.Years)),
		Invested: in.Principal,
		Interest: v - in.Principal,
		Value:    v,
	})
	return rows, nil
}

// CompoundInterestInput — параметры калькулятора сложных процентов.
type CompoundInterestInput struct {
	Principal   float64     `json:"principal" validate:"gt=0"`
	AnnualRate  float64     `json:"annual_rate" validate:"gte=0"`
	Years       float64     `json:"years" validate:"gt=0,lte=50"`
	Compounding Compounding `json:"compounding" validate:"omitempty,oneof=yearly half-yearly quarterly monthly daily"`
}

// CompoundInterestResult — результат калькулятора сложных процентов.
type CompoundInterestResult struct {
	DepositResult
	Compounding Compounding `json:"compounding"`
}

func (CompoundInterestInput) Kind() Kind  { return KindCompoundInterest }
func (CompoundInterestResult) Kind() Kind { return KindCompoundInterest }
func (CompoundInterestResult) isResult()  {}

// Evaluate реализует Input.
func (in CompoundInterestInput) Evaluate() (Result, error) {
	return CompoundInterest(in)
}

// CompoundInterest считает A = P·(1 + r/n)^(n·t). По умолчанию капитализация ежегодная.
func CompoundInterest(in CompoundInterestInput) (CompoundInterestResult, error) {
	c := in.Compounding
	if c == "" {
		c = Yearly
	}
	res, err := depositResult(in.Principal, in.AnnualRate, in.Years, c)
	if err != nil {
		return CompoundInterestResult{}, err
	}
	return CompoundInterestResult{DepositResult: res, Compounding: c}, nil
}

// RDMethod — способ расчёта пополняемого вклада.
type RDMethod string

const (
	// RDCompound — каждый ежемесячный взнос капитализируется ежеквартально.
	RDCompound RDMethod = "compound"
	// RDSimple — линейное приближение P·n + P·n(n+1)/2·r, сохранено для совместимости
	// со старыми расчётами.
	RDSimple RDMethod = "simple"
)

// RDInput — параметры пополняемого вклада.
type RDInput struct {
	MonthlyDeposit float64  `json:"monthly_deposit" validate:"gt=0"`
	AnnualRate     float64  `json:"annual_rate" validate:"gte=0"`
	Years          float64  `json:"years" validate:"gt=0,lte=50"`
	Method         RDMethod `json:"method" validate:"omitempty,oneof=compound simple"`
}

// RDResult — результат по пополняемому вкладу.
type RDResult struct {
	TotalDeposit  float64  `json:"total_deposit"`
	TotalInterest float64  `json:"total_interest"`
	MaturityValue float64  `json:"maturity_value"`
	Method        RDMethod `json:"method"`
}

func (RDInput) Kind() Kind  { return KindRD }
func (RDResult) Kind() Kind { return KindRD }
func (RDResult) isResult()  {}

// Evaluate реализует Input.
func (in RDInput) Evaluate() (Result, error) {
	return RD(in)
}

func (in RDInput) validate() (int, error) {
	if err := positive("monthly_deposit", in.MonthlyDeposit); err != nil {
		return 0, err
	}
	if err := nonNegative("annual_rate", in.AnnualRate); err != nil {
		return 0, err
	}
	if err := term("years", in.Years); err != nil {
		return 0, err
	}
	switch in.Method {
	case "", RDCompound, RDSimple:
	default:
		return 0, invalid("method", "must be compound or simple")
	}
	months := in.Years * 12
	n := int(math.Round(months))
	if float64(n) != months {
		return 0, invalid("years", "must cover a whole number of months")
	}
	return n, nil
}

func (in RDInput) method() RDMethod {
	if in.Method == "" {
		return RDCompound
	}
	return in.Method
}

// rdInstallmentValue — стоимость k-го с конца взноса, пролежавшего k месяцев.
func rdInstallmentValue(deposit, annualRate float64, k int) float64 {
	return deposit * math.Pow(1+annualRate/100/4, float64(k)/3)
}

// RD считает сумму пополняемого вклада к погашению.
func RD(in RDInput) (RDResult, error) {
	n, err := in.validate()
	if err != nil {
		return RDResult{}, err
	}
	method := in.method()
	total := in.MonthlyDeposit * float64(n)

	var maturity float64
	switch method {
	case RDSimple:
		r := in.AnnualRate / 100 / 12
		nf := float64(n)
		maturity = total + in.MonthlyDeposit*nf*(nf+1)/2*r
	default:
		for k := 1; k <= n; k++ {
			maturity += rdInstallmentValue(in.MonthlyDeposit, in.AnnualRate, k)
		}
	}
	if err := checkResult(maturity); err != nil {
		return RDResult{}, err
	}
	return RDResult{
		TotalDeposit:  total,
		TotalInterest: maturity - total,
		MaturityValue: maturity,
		Method:        method,
	}, nil
}

// RDScheduleRow — взнос и его стоимость к концу срока.
type RDScheduleRow struct {
	Month         int     `json:"month"`
	Deposit       float64 `json:"deposit"`
	MonthsHeld    int     `json:"months_held"`
	MaturityValue float64 `json:"maturity_value"`
}

// RDSchedule возвращает график взносов: сколько месяцев пролежит каждый взнос
// и во что он превратится к концу срока (по методу compound).
func RDSchedule(in RDInput) ([]RDScheduleRow, error) {
	n, err := in.validate()
	if err != nil {
		return nil, err
	}
	rows := make([]RDScheduleRow, 0, n)
	for m := 1; m <= n; m++ {
		held := n - m + 1
		rows = append(rows, RDScheduleRow{
			Month:         m,
			Deposit:       in.MonthlyDeposit,
			MonthsHeld:    held,
			MaturityValue: rdInstallmentValue(in.MonthlyDeposit, in.AnnualRate, held),
		})
	}
	return rows, nil
}
