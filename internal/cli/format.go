// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCompact formats a value with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1800000 -> "1.8M", 2500000000 -> "2.5B"
func FormatCompact(v float64) string {
	abs := math.Abs(v)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
}

// FormatMoney formats a USD amount rounded to whole dollars.
// e.g., 595000 -> "$595,000", -45000 -> "-$45,000"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	return "$" + FormatNumber(int64(math.Round(v)))
}

// FormatCompactMoney formats a USD amount with a suffix, e.g. "$1.8M".
func FormatCompactMoney(v float64) string {
	if v < 0 {
		return "-" + FormatCompactMoney(-v)
	}
	return "$" + FormatCompact(v)
}

// FormatAmount formats a decimal ledger amount. Cents are shown only
// when present.
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(d.Neg())
	}
	whole := d.Truncate(0)
	s := "$" + FormatNumber(whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		s += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return s
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

// FormatPercent formats a value that is already a percentage.
// e.g., 15 -> "15%", 8.5 -> "8.5%"
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(math.Round(pct*10)/10, 'f', -1, 64) + "%"
}

// FormatMonths formats a runway length, e.g. "1 month", "11.1 months".
func FormatMonths(m float64) string {
	s := strconv.FormatFloat(math.Round(m*10)/10, 'f', -1, 64)
	if s == "1" {
		return "1 month"
	}
	return s + " months"
}

// FormatDelta formats a signed cash flow with an explicit sign.
func FormatDelta(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatDate formats a ledger date, e.g. "Jun 15, 2023".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
