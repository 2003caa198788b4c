// Package model defines the domain types for runway: scenarios, budget
// items, funding rounds and treasury snapshots.
package model

import "time"

// TreasuryBalance is a static snapshot of what the company holds.
// It is not recomputed from the ledgers.
type TreasuryBalance struct {
	Fiat        float64   `json:"fiat"`
	Tokens      float64   `json:"tokens"`
	TokenValue  float64   `json:"tokenValue"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FinancialMetrics is the headline KPI snapshot shown above the budget.
// Like TreasuryBalance it is display-only and independent of the scenario.
type FinancialMetrics struct {
	BurnRate   float64 `json:"burnRate"`
	Runway     float64 `json:"runway"`
	CashFlow   float64 `json:"cashFlow"`
	GrowthRate float64 `json:"growthRate"`
	Efficiency float64 `json:"efficiency"`
}
