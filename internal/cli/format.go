// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a dollar amount with thousands separators and no
// cents. e.g., 1918.56 -> "$1,919", -2500 -> "-$2,500"
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	r := math.Round(v)
	if r < 0 {
		return "-" + printer.Sprintf("$%.0f", -r)
	}
	return printer.Sprintf("$%.0f", r)
}

// FormatCents formats a dollar amount to the cent.
// e.g., 1918.5617 -> "$1,918.56"
func FormatCents(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v < 0 {
		return "-" + printer.Sprintf("$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent formats a percentage that is already scaled to 0-100.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatYears formats a fractional year count.
// e.g., 1 -> "1 year", 9.17 -> "9.2 years"
func FormatYears(y float64) string {
	if y == 1 {
		return "1 year"
	}
	if y == math.Trunc(y) {
		return fmt.Sprintf("%.0f years", y)
	}
	return fmt.Sprintf("%.1f years", y)
}

// FormatDelta formats a dollar difference with an explicit sign.
func FormatDelta(delta float64) string {
	if math.Round(delta) >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return FormatCurrency(delta)
}
