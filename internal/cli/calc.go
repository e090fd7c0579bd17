package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/finance-calculator/internal/calculator"
	"github.com/magabrotheeeer/finance-calculator/internal/http/response"
)

var descriptions = map[calculator.Kind]string{
	calculator.KindEMI:              "Ежемесячный платёж по кредиту",
	calculator.KindSIP:              "Доход от систематических инвестиций",
	calculator.KindFD:               "Срочный вклад",
	calculator.KindRD:               "Пополняемый вклад",
	calculator.KindPPF:              "Public Provident Fund",
	calculator.KindGST:              "Начисление и выделение GST",
	calculator.KindIncomeTax:        "Подоходный налог по старому и новому режиму",
	calculator.KindHomeLoan:         "Ипотека",
	calculator.KindPersonalLoan:     "Потребительский кредит с комиссией",
	calculator.KindCompoundInterest: "Сложные проценты",
}

type output struct {
	Kind    calculator.Kind   `json:"kind"`
	Input   calculator.Input  `json:"input"`
	Result  calculator.Result `json:"result,omitempty"`
	Summary string            `json:"summary,omitempty"`
	Rows    any               `json:"rows,omitempty"`
}

func newCalculatorCmds() []*cobra.Command {
	kinds := calculator.Kinds()
	cmds := make([]*cobra.Command, 0, len(kinds))
	for _, kind := range kinds {
		cmds = append(cmds, newCalculatorCmd(kind))
	}
	return cmds
}

func newCalculatorCmd(kind calculator.Kind) *cobra.Command {
	// флаги привязаны к значениям по умолчанию этого экземпляра
	in, _ := calculator.NewInput(kind)

	var asJSON, breakdown bool
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: descriptions[kind],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validator.New().Struct(in); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) {
					return errors.New(response.ValidationError(verrs).Error)
				}
				return err
			}

			out := output{Kind: kind, Input: in}
			if breakdown {
				rows, err := calculator.Breakdown(in)
				if err != nil {
					return err
				}
				out.Rows = rows
				return writeJSON(cmd, out)
			}

			res, err := calculator.Evaluate(in)
			if err != nil {
				return err
			}
			out.Result = res
			out.Summary = calculator.Summary(in, res)
			if asJSON {
				return writeJSON(cmd, out)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Summary)
			return err
		},
	}

	bindFlags(cmd, reflect.ValueOf(in).Elem())
	cmd.Flags().BoolVar(&asJSON, "json", false, "вывести результат в JSON")
	if calculator.HasBreakdown(kind) {
		cmd.Flags().BoolVar(&breakdown, "breakdown", false, "вывести разбивку по периодам в JSON")
	}
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// bindFlags создаёт по флагу на каждое поле входной структуры. Имя флага берётся
// из json-тега с дефисами вместо подчёркиваний, значение по умолчанию из самой структуры.
func bindFlags(cmd *cobra.Command, v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		f, fv := t.Field(i), v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			bindFlags(cmd, fv)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		flag := strings.ReplaceAll(name, "_", "-")
		usage := strings.ReplaceAll(name, "_", " ")

		switch fv.Kind() {
		case reflect.Float64:
			p := fv.Addr().Interface().(*float64)
			cmd.Flags().Float64Var(p, flag, *p, usage)
		case reflect.Int:
			p := fv.Addr().Interface().(*int)
			cmd.Flags().IntVar(p, flag, *p, usage)
		case reflect.String:
			if opts := oneOf(f.Tag.Get("validate")); opts != "" {
				usage += " (" + opts + ")"
			}
			cmd.Flags().Var(&stringValue{v: fv}, flag, usage)
		}
	}
}

func oneOf(tag string) string {
	for _, rule := range strings.Split(tag, ",") {
		if opts, ok := strings.CutPrefix(rule, "oneof="); ok {
			return strings.ReplaceAll(opts, " ", "|")
		}
	}
	return ""
}

// stringValue флаг для именованных строковых типов вроде calculator.Compounding.
type stringValue struct {
	v reflect.Value
}

func (s *stringValue) String() string {
	if !s.v.IsValid() {
		return ""
	}
	return s.v.String()
}

func (s *stringValue) Set(val string) error {
	s.v.SetString(val)
	return nil
}

func (s *stringValue) Type() string { return "string" }
