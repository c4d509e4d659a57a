// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/config"
)

// currency is the display currency used by FormatMoney.
var currency, _ = config.LookupCurrency("USD")

// SetCurrency changes the display currency for all money formatting.
func SetCurrency(code string) {
	currency, _ = config.LookupCurrency(code)
}

// FormatMoney formats an amount in the display currency with thousands
// separators, e.g. 1234.5 -> "$1,234.50".
func FormatMoney(d decimal.Decimal) string {
	return formatMoney(d, currency)
}

func formatMoney(d decimal.Decimal, c config.Currency) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(c.Decimals)

	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err == nil {
		intPart = FormatNumber(n)
	}
	if frac != "" {
		intPart += "." + frac
	}

	out := c.Symbol + intPart
	if c.SymbolAfter {
		out = intPart + " " + c.Symbol
	}
	if neg {
		return "-" + out
	}
	return out
}

// FormatAmount formats an amount without a currency symbol, for exports.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(currency.Decimals)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole percentage.
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatDelta formats a money change with an explicit sign.
func FormatDelta(current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return "-" + FormatMoney(delta.Neg())
	}
	return "+" + FormatMoney(delta)
}

// FormatDate re-renders a YYYY-MM-DD date using layout. Unparseable input
// is returned as is.
func FormatDate(date, layout string) string {
	if layout == "" || layout == "2006-01-02" {
		return date
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// Plural picks the singular or plural noun for n.
func Plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
