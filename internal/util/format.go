package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatInt 千分位整数，如 154,320
func FormatInt(v int) string {
	return printer.Sprintf("%d", v)
}

// FormatCurrency 货币格式，如 $154,320.00
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", -v)
	}
	return "$" + printer.Sprintf("%.2f", v)
}

// FormatPercent 百分比，value 已是百分数，如 3.4 -> 3.40%
func FormatPercent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
