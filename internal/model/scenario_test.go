package model

import (
	"errors"
	"testing"
)

func TestWithRevenue_LeavesSiblingsUntouched(t *testing.T) {
	base := DefaultScenario()
	got := base.WithRevenue(RevenueGrowth, 3)

	if got.Revenue.Growth != 3 {
		t.Fatalf("Growth = %.0f, want 3", got.Revenue.Growth)
	}
	if got.Revenue.Current != base.Revenue.Current {
		t.Errorf("Current = %.0f, want %.0f", got.Revenue.Current, base.Revenue.Current)
	}
	if got.Expenses != base.Expenses || got.Funding != base.Funding {
		t.Error("revenue edit touched another branch")
	}
	if base.Revenue.Growth != 15 {
		t.Errorf("original mutated: Growth = %.0f", base.Revenue.Growth)
	}
}

func TestWithExpenseAndFunding(t *testing.T) {
	c := DefaultScenario().
		WithExpense(ExpenseMarketing, 1000).
		WithFunding(FundingTimeline, 12)

	if c.Expenses.Marketing != 1000 {
		t.Errorf("Marketing = %.0f, want 1000", c.Expenses.Marketing)
	}
	if c.Expenses.Salaries != 45000 || c.Expenses.Operations != 5000 || c.Expenses.Development != 12000 {
		t.Errorf("sibling expenses changed: %+v", c.Expenses)
	}
	if c.Funding.Timeline != 12 || c.Funding.Amount != 500000 {
		t.Errorf("Funding = %+v, want {500000 12}", c.Funding)
	}
}

func TestResetToDefaults_Idempotent(t *testing.T) {
	edited := DefaultScenario().WithRevenue(RevenueCurrent, 1)
	first := edited.ResetToDefaults()
	second := first.ResetToDefaults()
	if first != second {
		t.Fatalf("reset not idempotent: %+v vs %+v", first, second)
	}
	if first != DefaultScenario() {
		t.Fatalf("reset = %+v, want defaults", first)
	}
}

func TestScenarioSummaryScalars(t *testing.T) {
	c := DefaultScenario()
	if got := c.TotalExpenses(); got != 70000 {
		t.Errorf("TotalExpenses = %.0f, want 70000", got)
	}
	if got := c.NetCashFlow(); got != -45000 {
		t.Errorf("NetCashFlow = %.0f, want -45000", got)
	}
	// 500000 / 45000
	if got := c.BufferedRunway(); got < 11.11 || got > 11.12 {
		t.Errorf("BufferedRunway = %.3f, want ~11.11", got)
	}

	profitable := c.WithRevenue(RevenueCurrent, 90000)
	if got := profitable.BufferedRunway(); got != 500 {
		t.Errorf("BufferedRunway with surplus = %.1f, want 500 (floored burn)", got)
	}
}

func TestScenarioField_NudgeClamps(t *testing.T) {
	f, ok := ScenarioFieldByKey("revenue.growth")
	if !ok {
		t.Fatal("revenue.growth not found")
	}
	c := DefaultScenario()

	c = f.Nudge(c, 1)
	if got := f.Get(c); got != 16 {
		t.Errorf("after +1 step growth = %.0f, want 16", got)
	}
	c = f.Nudge(c, 100)
	if got := f.Get(c); got != 50 {
		t.Errorf("growth clamp high = %.0f, want 50", got)
	}
	c = f.Nudge(c, -100)
	if got := f.Get(c); got != 0 {
		t.Errorf("growth clamp low = %.0f, want 0", got)
	}

	// Typed values bypass the slider range.
	c = f.Set(c, 80)
	if got := f.Get(c); got != 80 {
		t.Errorf("Set = %.0f, want 80", got)
	}
}

func TestScenarioFields_RoundTripEveryLeaf(t *testing.T) {
	for _, f := range ScenarioFields {
		c := f.Set(DefaultScenario(), 4242)
		if got := f.Get(c); got != 4242 {
			t.Errorf("%s: Get after Set = %.0f, want 4242", f.Key, got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1500", 1500},
		{" $12,500 ", 12500},
		{"15%", 15},
		{"2.5", 2.5},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"-40", -40},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := ParseAmount("$1,000.50"); got.String() != "1000.5" {
		t.Errorf("ParseAmount = %s, want 1000.5", got)
	}
	if !ParseAmount("twelve").IsZero() {
		t.Error("ParseAmount of junk should be zero")
	}
}

func TestParseFrequencyAndRoundType(t *testing.T) {
	if f, err := ParseFrequency(""); err != nil || f != FrequencyMonthly {
		t.Errorf("ParseFrequency(\"\") = %q, %v", f, err)
	}
	if f, err := ParseFrequency("One-Time"); err != nil || f != FrequencyOneTime {
		t.Errorf("ParseFrequency(One-Time) = %q, %v", f, err)
	}
	if _, err := ParseFrequency("weekly"); !errors.Is(err, ErrUnknownFrequency) {
		t.Errorf("ParseFrequency(weekly) err = %v, want ErrUnknownFrequency", err)
	}

	if rt, err := ParseRoundType("Series A"); err != nil || rt != RoundSeriesA {
		t.Errorf("ParseRoundType(Series A) = %q, %v", rt, err)
	}
	if _, err := ParseRoundType("bridge"); !errors.Is(err, ErrUnknownRoundType) {
		t.Errorf("ParseRoundType(bridge) err = %v, want ErrUnknownRoundType", err)
	}
	if got := RoundTokenSale.Label(); got != "TOKEN SALE" {
		t.Errorf("Label = %q, want TOKEN SALE", got)
	}
}

func TestCategoryKnown(t *testing.T) {
	if !CategoryDevelopment.Known() {
		t.Error("Development should be known")
	}
	if Category("Legal").Known() {
		t.Error("Legal should fall through to the fallback category")
	}
}
