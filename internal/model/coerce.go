package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "", "_", "")

// ParseNumber coerces form input to a number. Anything that does not parse
// as a finite number becomes 0.
func ParseNumber(s string) float64 {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount is ParseNumber for money fields.
func ParseAmount(s string) decimal.Decimal {
	s = numberCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
