// Package inr форматирует денежные суммы в рупиях с индийской группировкой разрядов
// (12,34,567), как это делает toLocaleString("en-IN") в браузере.
package inr

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Symbol — знак рупии.
const Symbol = "₹"

// Format округляет сумму до целых рупий и форматирует её со знаком ₹.
func Format(amount float64) string {
	v := int64(math.Round(amount))
	if v < 0 {
		return "-" + Symbol + printer.Sprintf("%d", -v)
	}
	return Symbol + printer.Sprintf("%d", v)
}

// Number форматирует число с индийской группировкой без знака валюты.
func Number(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}
