package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownFrequency is returned when a frequency string is not one of the
// supported billing cadences.
var ErrUnknownFrequency = errors.New("unknown frequency")

// Category labels a budget line item. The four known categories get their
// own color in the dashboard; any other non-empty name is accepted and
// rendered with the fallback color.
type Category string

// Known budget categories.
const (
	CategorySalaries    Category = "Salaries"
	CategoryMarketing   Category = "Marketing"
	CategoryOperations  Category = "Operations"
	CategoryDevelopment Category = "Development"
)

// KnownCategories lists the categories offered by the add-item form.
var KnownCategories = []Category{
	CategorySalaries,
	CategoryMarketing,
	CategoryOperations,
	CategoryDevelopment,
}

// Known reports whether c is one of the predefined categories.
func (c Category) Known() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Frequency is the billing cadence of a budget item.
type Frequency string

// Supported frequencies.
const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
	FrequencyOneTime   Frequency = "one-time"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyAnnual,
	FrequencyOneTime,
}

// ParseFrequency converts user input into a Frequency.
// Empty input defaults to monthly.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FrequencyMonthly, nil
	}
	if s == "onetime" || s == "one_time" {
		s = string(FrequencyOneTime)
	}
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}

// BudgetItem is one line of the operating budget.
type BudgetItem struct {
	ID          string          `json:"id"`
	Category    Category        `json:"category"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	IsRecurring bool            `json:"isRecurring"`
}
