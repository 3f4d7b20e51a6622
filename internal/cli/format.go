// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatAmount formats a money amount with two decimals, digit grouping and
// the currency symbol as a prefix. e.g., 1234.5 -> "₹1,234.50"
func FormatAmount(symbol string, amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + symbol + printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprint(number.Decimal(n))
}

// FormatPercent formats a 0-100 share as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

// FormatMonth returns a 3-letter month abbreviation for 1-12.
func FormatMonth(month int) string {
	if month < 1 || month > 12 {
		return "???"
	}
	return time.Month(month).String()[:3]
}

// ShortID returns the first eight characters of an expense ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
