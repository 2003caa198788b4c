package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func mustDay(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// SampleBudget returns the seed budget a fresh session starts with.
func SampleBudget() []BudgetItem {
	start := mustDay("2024-01-01")
	return []BudgetItem{
		{
			ID: "1", Category: CategorySalaries, Subcategory: "Engineering Team",
			Amount: decimal.NewFromInt(45000), Frequency: FrequencyMonthly,
			StartDate: start, IsRecurring: true,
		},
		{
			ID: "2", Category: CategoryMarketing, Subcategory: "Digital Ads",
			Amount: decimal.NewFromInt(8000), Frequency: FrequencyMonthly,
			StartDate: start, IsRecurring: true,
		},
		{
			ID: "3", Category: CategoryOperations, Subcategory: "Infrastructure",
			Amount: decimal.NewFromInt(5000), Frequency: FrequencyMonthly,
			StartDate: start, IsRecurring: true,
		},
	}
}

// SampleFunding returns the seed funding history.
func SampleFunding() []FundingRound {
	preSeedPrice := decimal.RequireFromString("0.05")
	idoPrice := decimal.RequireFromString("0.12")
	preSeedTokens := int64(5_000_000)
	idoTokens := int64(4_166_667)

	return []FundingRound{
		{
			ID: "1", Name: "Pre-Seed Round", Amount: decimal.NewFromInt(250000),
			Date: mustDay("2023-06-15"), Type: RoundPreSeed, Dilution: 15,
			TokenPrice: &preSeedPrice, TokensIssued: &preSeedTokens,
		},
		{
			ID: "2", Name: "IDO Launch", Amount: decimal.NewFromInt(500000),
			Date: mustDay("2023-12-01"), Type: RoundIDO, Dilution: 10,
			TokenPrice: &idoPrice, TokensIssued: &idoTokens,
		},
	}
}

// SampleTreasury returns the seed treasury snapshot stamped at now.
func SampleTreasury(now time.Time) TreasuryBalance {
	return TreasuryBalance{
		Fiat:        595000,
		Tokens:      15_000_000,
		TokenValue:  1_800_000,
		LastUpdated: now,
	}
}

// SampleMetrics returns the headline KPI snapshot.
func SampleMetrics() FinancialMetrics {
	return FinancialMetrics{
		BurnRate:   70000,
		Runway:     8.5,
		CashFlow:   -45000,
		GrowthRate: 15,
		Efficiency: 72,
	}
}
