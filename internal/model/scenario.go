package model

import "math"

// ScenarioConfig holds the editable what-if assumptions that drive the
// runway projection. All amounts are monthly USD.
type ScenarioConfig struct {
	Revenue  RevenueAssumptions `json:"revenue"`
	Expenses ExpenseAssumptions `json:"expenses"`
	Funding  FundingAssumptions `json:"funding"`
}

// RevenueAssumptions describes current revenue and its growth.
type RevenueAssumptions struct {
	Current float64 `json:"current"`
	Growth  float64 `json:"growth"` // percent per month, compounding
}

// ExpenseAssumptions holds the four monthly expense categories.
type ExpenseAssumptions struct {
	Salaries    float64 `json:"salaries"`
	Marketing   float64 `json:"marketing"`
	Operations  float64 `json:"operations"`
	Development float64 `json:"development"`
}

// FundingAssumptions describes the next planned raise.
type FundingAssumptions struct {
	Amount   float64 `json:"amount"`
	Timeline float64 `json:"timeline"` // months until close
}

// RevenueField names a leaf of RevenueAssumptions.
type RevenueField string

// ExpenseField names a leaf of ExpenseAssumptions.
type ExpenseField string

// FundingField names a leaf of FundingAssumptions.
type FundingField string

// Scenario leaf names.
const (
	RevenueCurrent RevenueField = "current"
	RevenueGrowth  RevenueField = "growth"

	ExpenseSalaries    ExpenseField = "salaries"
	ExpenseMarketing   ExpenseField = "marketing"
	ExpenseOperations  ExpenseField = "operations"
	ExpenseDevelopment ExpenseField = "development"

	FundingAmount   FundingField = "amount"
	FundingTimeline FundingField = "timeline"
)

// DefaultScenario returns the baseline assumptions.
func DefaultScenario() ScenarioConfig {
	return ScenarioConfig{
		Revenue: RevenueAssumptions{Current: 25000, Growth: 15},
		Expenses: ExpenseAssumptions{
			Salaries:    45000,
			Marketing:   8000,
			Operations:  5000,
			Development: 12000,
		},
		Funding: FundingAssumptions{Amount: 500000, Timeline: 6},
	}
}

// ResetToDefaults discards every edit and returns the baseline.
func (c ScenarioConfig) ResetToDefaults() ScenarioConfig {
	return DefaultScenario()
}

// WithRevenue returns a copy of c with one revenue leaf replaced.
// Unknown fields leave the copy unchanged.
func (c ScenarioConfig) WithRevenue(field RevenueField, v float64) ScenarioConfig {
	switch field {
	case RevenueCurrent:
		c.Revenue.Current = v
	case RevenueGrowth:
		c.Revenue.Growth = v
	}
	return c
}

// WithExpense returns a copy of c with one expense leaf replaced.
func (c ScenarioConfig) WithExpense(field ExpenseField, v float64) ScenarioConfig {
	switch field {
	case ExpenseSalaries:
		c.Expenses.Salaries = v
	case ExpenseMarketing:
		c.Expenses.Marketing = v
	case ExpenseOperations:
		c.Expenses.Operations = v
	case ExpenseDevelopment:
		c.Expenses.Development = v
	}
	return c
}

// WithFunding returns a copy of c with one funding leaf replaced.
func (c ScenarioConfig) WithFunding(field FundingField, v float64) ScenarioConfig {
	switch field {
	case FundingAmount:
		c.Funding.Amount = v
	case FundingTimeline:
		c.Funding.Timeline = v
	}
	return c
}

// TotalExpenses is the flat monthly burn: the sum of all expense categories.
func (c ScenarioConfig) TotalExpenses() float64 {
	e := c.Expenses
	return e.Salaries + e.Marketing + e.Operations + e.Development
}

// NetCashFlow is current revenue minus total expenses.
func (c ScenarioConfig) NetCashFlow() float64 {
	return c.Revenue.Current - c.TotalExpenses()
}

// minBufferedBurn keeps BufferedRunway finite when revenue covers expenses.
const minBufferedBurn = 1000

// BufferedRunway estimates how many months the planned raise alone would
// last at today's net burn. Net burn is floored at 1000/month.
func (c ScenarioConfig) BufferedRunway() float64 {
	return c.Funding.Amount / math.Max(c.TotalExpenses()-c.Revenue.Current, minBufferedBurn)
}

// ScenarioField describes one slider control on the scenario planner.
type ScenarioField struct {
	Key   string
	Group string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Money bool

	get func(ScenarioConfig) float64
	set func(ScenarioConfig, float64) ScenarioConfig
}

// Get reads the field from c.
func (f ScenarioField) Get(c ScenarioConfig) float64 {
	return f.get(c)
}

// Set returns a copy of c with the field replaced by v. v is not clamped.
func (f ScenarioField) Set(c ScenarioConfig, v float64) ScenarioConfig {
	return f.set(c, v)
}

// Nudge moves the field by steps slider increments, clamped to [Min, Max].
func (f ScenarioField) Nudge(c ScenarioConfig, steps int) ScenarioConfig {
	v := f.get(c) + float64(steps)*f.Step
	v = math.Max(f.Min, math.Min(f.Max, v))
	return f.set(c, v)
}

func revenueField(key RevenueField, label string, lo, hi, step float64, money bool) ScenarioField {
	return ScenarioField{
		Key: "revenue." + string(key), Group: "Revenue", Label: label,
		Min: lo, Max: hi, Step: step, Money: money,
		get: func(c ScenarioConfig) float64 {
			if key == RevenueGrowth {
				return c.Revenue.Growth
			}
			return c.Revenue.Current
		},
		set: func(c ScenarioConfig, v float64) ScenarioConfig { return c.WithRevenue(key, v) },
	}
}

func expenseField(key ExpenseField, label string, lo, hi, step float64) ScenarioField {
	return ScenarioField{
		Key: "expenses." + string(key), Group: "Expenses", Label: label,
		Min: lo, Max: hi, Step: step, Money: true,
		get: func(c ScenarioConfig) float64 {
			switch key {
			case ExpenseMarketing:
				return c.Expenses.Marketing
			case ExpenseOperations:
				return c.Expenses.Operations
			case ExpenseDevelopment:
				return c.Expenses.Development
			default:
				return c.Expenses.Salaries
			}
		},
		set: func(c ScenarioConfig, v float64) ScenarioConfig { return c.WithExpense(key, v) },
	}
}

func fundingField(key FundingField, label string, lo, hi, step float64, money bool) ScenarioField {
	return ScenarioField{
		Key: "funding." + string(key), Group: "Funding", Label: label,
		Min: lo, Max: hi, Step: step, Money: money,
		get: func(c ScenarioConfig) float64 {
			if key == FundingTimeline {
				return c.Funding.Timeline
			}
			return c.Funding.Amount
		},
		set: func(c ScenarioConfig, v float64) ScenarioConfig { return c.WithFunding(key, v) },
	}
}

// ScenarioFields lists the planner controls in display order.
var ScenarioFields = []ScenarioField{
	revenueField(RevenueCurrent, "Monthly Revenue", 0, 100000, 1000, true),
	revenueField(RevenueGrowth, "Growth %/mo", 0, 50, 1, false),
	expenseField(ExpenseSalaries, "Salaries", 0, 100000, 1000),
	expenseField(ExpenseMarketing, "Marketing", 0, 50000, 500),
	expenseField(ExpenseOperations, "Operations", 0, 30000, 500),
	expenseField(ExpenseDevelopment, "Development", 0, 50000, 1000),
	fundingField(FundingAmount, "Next Raise", 100000, 5000000, 50000, true),
	fundingField(FundingTimeline, "Timeline (months)", 1, 24, 1, false),
}

// ScenarioFieldByKey looks up a control by its dotted key, e.g. "expenses.marketing".
func ScenarioFieldByKey(key string) (ScenarioField, bool) {
	for _, f := range ScenarioFields {
		if f.Key == key {
			return f, true
		}
	}
	return ScenarioField{}, false
}
