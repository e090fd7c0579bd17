// Package calculator содержит формулы финансовых калькуляторов:
// EMI, SIP, FD, RD, PPF, GST, подоходный налог, ипотека, потребительский кредит
// и сложные проценты.
//
// Каждый калькулятор принимает собственную типизированную структуру входных данных
// и возвращает собственный тип результата. Все функции детерминированы и не имеют
// побочных эффектов; единственная ошибка — ErrInvalidInput.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Kind — дискриминатор калькулятора.
type Kind string

const (
	KindEMI              Kind = "emi"
	KindSIP              Kind = "sip"
	KindFD               Kind = "fd"
	KindRD               Kind = "rd"
	KindPPF              Kind = "ppf"
	KindGST              Kind = "gst"
	KindIncomeTax        Kind = "income-tax"
	KindHomeLoan         Kind = "home-loan"
	KindPersonalLoan     Kind = "personal-loan"
	KindCompoundInterest Kind = "compound-interest"
)

// ErrInvalidInput возвращается при нечисловых, бесконечных или недопустимых значениях.
var ErrInvalidInput = errors.New("invalid input")

// Input — входные данные одного калькулятора.
type Input interface {
	Kind() Kind
	Evaluate() (Result, error)
}

// Result — результат одного калькулятора. Набор реализаций закрыт этим пакетом.
type Result interface {
	Kind() Kind
	isResult()
}

var registry = map[Kind]func() Input{
	KindEMI: func() Input {
		return &EMIInput{Principal: 1000000, AnnualRate: 8, Tenure: 20, TenureUnit: TenureYears}
	},
	KindSIP: func() Input {
		return &SIPInput{MonthlyInvestment: 5000, AnnualReturn: 12, Years: 10}
	},
	KindFD: func() Input {
		return &FDInput{Principal: 100000, AnnualRate: 6, Years: 5, Compounding: Quarterly}
	},
	KindRD: func() Input {
		return &RDInput{MonthlyDeposit: 5000, AnnualRate: 6, Years: 5, Method: RDCompound}
	},
	KindPPF: func() Input {
		return &PPFInput{YearlyDeposit: 150000, Years: PPFDefaultYears, AnnualRate: PPFDefaultRate}
	},
	KindGST: func() Input {
		return &GSTInput{Amount: 10000, Rate: 18, Mode: GSTExclusive}
	},
	KindIncomeTax: func() Input {
		return &IncomeTaxInput{Income: 1000000, Regime: RegimeNew, Deduction80C: 150000}
	},
	KindHomeLoan: func() Input {
		return &HomeLoanInput{LoanInput{Amount: 5000000, AnnualRate: 8.5, Years: 20}}
	},
	KindPersonalLoan: func() Input {
		return &PersonalLoanInput{LoanInput{Amount: 500000, AnnualRate: 11.5, Years: 3}}
	},
	KindCompoundInterest: func() Input {
		return &CompoundInterestInput{Principal: 100000, AnnualRate: 8, Years: 10, Compounding: Yearly}
	},
}

// NewInput возвращает входные данные калькулятора kind, заполненные значениями по умолчанию.
func NewInput(kind Kind) (Input, bool) {
	f, ok := registry[kind]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Kinds возвращает список всех калькуляторов в алфавитном порядке.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Evaluate вычисляет результат для произвольных входных данных.
func Evaluate(in Input) (Result, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}
	return in.Evaluate()
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}

func isNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(field string, v float64) error {
	if !isNumber(v) || v <= 0 {
		return invalid(field, "must be a positive number")
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !isNumber(v) || v < 0 {
		return invalid(field, "must be a non-negative number")
	}
	return nil
}

// MaxYears — предельный срок любого калькулятора, MaxMonths — тот же срок в месяцах.
// Разбивки строятся по годам и месяцам, поэтому срок ограничен сверху.
const (
	MaxYears  = 50
	MaxMonths = MaxYears * 12
)

// term проверяет срок в годах: положительный и не больше MaxYears.
func term(field string, years float64) error {
	if err := positive(field, years); err != nil {
		return err
	}
	if years > MaxYears {
		return invalid(field, fmt.Sprintf("must not exceed %d years", MaxYears))
	}
	return nil
}

// checkResult отбрасывает переполнения вида (1+r)^n = +Inf.
func checkResult(values ...float64) error {
	for _, v := range values {
		if !isNumber(v) {
			return fmt.Errorf("%w: result is out of range", ErrInvalidInput)
		}
	}
	return nil
}
