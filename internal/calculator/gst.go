package calculator

// GSTMode — направление расчёта GST.
type GSTMode string

const (
	// GSTExclusive — налог добавляется к сумме.
	GSTExclusive GSTMode = "exclusive"
	// GSTInclusive — налог выделяется из суммы, которая его уже содержит.
	GSTInclusive GSTMode = "inclusive"
)

// GSTInput — параметры калькулятора GST.
type GSTInput struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Rate   float64 `json:"rate" validate:"gte=0"`
	Mode   GSTMode `json:"mode" validate:"omitempty,oneof=exclusive inclusive"`
}

// GSTResult — сумма без налога, налог, его центральная и штатная части и итог.
type GSTResult struct {
	NetAmount   float64 `json:"net_amount"`
	GSTAmount   float64 `json:"gst_amount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	TotalAmount float64 `json:"total_amount"`
	Rate        float64 `json:"rate"`
	Mode        GSTMode `json:"mode"`
}

func (GSTInput) Kind() Kind  { return KindGST }
func (GSTResult) Kind() Kind { return KindGST }
func (GSTResult) isResult()  {}

// Evaluate реализует Input.
func (in GSTInput) Evaluate() (Result, error) {
	return GST(in)
}

// AddGST возвращает сумму с налогом.
func AddGST(amount, rate float64) float64 {
	return amount + amount*rate/100
}

// ExtractGST возвращает сумму без налога из суммы, которая его содержит.
func ExtractGST(gross, rate float64) float64 {
	return gross * 100 / (100 + rate)
}

// GST добавляет налог к сумме (exclusive) или выделяет его (inclusive)
// и делит поровну на CGST и SGST.
func GST(in GSTInput) (GSTResult, error) {
	if err := positive("amount", in.Amount); err != nil {
		return GSTResult{}, err
	}
	if err := nonNegative("rate", in.Rate); err != nil {
		return GSTResult{}, err
	}
	mode := in.Mode
	if mode == "" {
		mode = GSTExclusive
	}

	var net, total float64
	switch mode {
	case GSTExclusive:
		net = in.Amount
		total = AddGST(in.Amount, in.Rate)
	case GSTInclusive:
		net = ExtractGST(in.Amount, in.Rate)
		total = in.Amount
	default:
		return GSTResult{}, invalid("mode", "must be exclusive or inclusive")
	}
	tax := total - net
	if err := checkResult(net, tax, total); err != nil {
		return GSTResult{}, err
	}
	return GSTResult{
		NetAmount:   net,
		GSTAmount:   tax,
		CGST:        tax / 2,
		SGST:        tax / 2,
		TotalAmount: total,
		Rate:        in.Rate,
		Mode:        mode,
	}, nil
}
