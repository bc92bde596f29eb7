// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// maxExact is the largest magnitude printed digit for digit; larger
// amounts switch to the compact form so integer parts cannot wrap.
const maxExact = 1e15

// FormatCurrency formats a monetary amount with thousands separators and
// two decimals, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0.00"
	}
	if math.Abs(v) >= maxExact {
		return FormatCompactCurrency(v)
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	_, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + humanize.Comma(d.IntPart()) + "." + frac
}

// FormatWholeCurrency formats an amount rounded to whole units,
// e.g. 9999.6 -> "$10,000".
func FormatWholeCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	if math.Abs(v) >= maxExact {
		return FormatCompactCurrency(v)
	}
	n := decimal.NewFromFloat(v).Round(0).IntPart()
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatCompactCurrency formats an amount with K/M suffixes for narrow
// columns and chart axes, e.g. 12500 -> "$12.5K".
func FormatCompactCurrency(v float64) string {
	return "$" + FormatCompact(v)
}

// FormatCompact formats a value with K/M/B/T suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000_000:
		return fmt.Sprintf("%.1fT", v/1_000_000_000_000)
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	case abs == math.Trunc(abs):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a percentage already on the 0-100 scale.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatSignedPercent formats a change with an explicit sign, e.g. "+4.2%".
func FormatSignedPercent(p float64) string {
	if p > 0 {
		return fmt.Sprintf("+%.1f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// FormatRatio formats an LTV:CAC style ratio as "x.y:1", or "N/A" when the
// ratio is undefined.
func FormatRatio(r float64) string {
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f:1", r)
}

// FormatMonths formats a month count, e.g. 1 -> "1 month", 14 -> "14 months".
func FormatMonths(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d month", n)
	}
	return fmt.Sprintf("%d months", n)
}

// FormatDelta formats an amount change with sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatWholeCurrency(delta)
	}
	return "-" + FormatWholeCurrency(-delta)
}
