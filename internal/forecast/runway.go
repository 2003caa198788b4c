// Package forecast projects cash runway from a scenario.
package forecast

import (
	"math"

	"github.com/theirongolddev/runway/internal/model"
)

// HorizonMonths is the last month index the projection will emit.
const HorizonMonths = 24

// Band multipliers applied to the balance for the scenario envelope.
const (
	conservativeFactor = 0.8
	optimisticFactor   = 1.2
)

// MonthPoint is the state at the start of one projected month.
type MonthPoint struct {
	Month        int     `json:"month"`
	Balance      float64 `json:"balance"`
	Burn         float64 `json:"burn"`
	Revenue      float64 `json:"revenue"`
	NetCashFlow  float64 `json:"netCashFlow"`
	Conservative float64 `json:"conservative"`
	Optimistic   float64 `json:"optimistic"`
}

// Project simulates the balance month by month. Expenses are a flat burn;
// revenue compounds at cfg.Revenue.Growth percent per month. The returned
// series stops at the last month that started with cash, so its length
// (1..HorizonMonths+1) is itself the runway signal.
func Project(initialBalance float64, cfg model.ScenarioConfig) []MonthPoint {
	monthlyBurn := cfg.TotalExpenses()
	growth := cfg.Revenue.Growth / 100

	points := make([]MonthPoint, 0, HorizonMonths+1)
	balance := initialBalance
	for i := 0; i <= HorizonMonths; i++ {
		revenue := cfg.Revenue.Current * math.Pow(1+growth, float64(i))
		netBurn := monthlyBurn - revenue

		points = append(points, MonthPoint{
			Month:        i,
			Balance:      math.Max(0, balance),
			Burn:         monthlyBurn,
			Revenue:      revenue,
			NetCashFlow:  revenue - monthlyBurn,
			Conservative: math.Max(0, balance*conservativeFactor),
			Optimistic:   math.Max(0, balance*optimisticFactor),
		})

		balance -= netBurn
		if balance <= 0 {
			break
		}
	}
	return points
}

// Summary holds the scalars derived from a projection.
type Summary struct {
	RunwayMonths          int
	CashFlowPositiveMonth int // -1 when not reached within the horizon
	MonthlyBurn           float64
	EndingBalance         float64

	// PastHorizon is set when cash is still positive after the final
	// projected month, so the real runway is longer than the series.
	PastHorizon bool
}

// Summarize derives runway length and the first cash-flow-positive month.
func Summarize(points []MonthPoint) Summary {
	s := Summary{
		RunwayMonths:          len(points) - 1,
		CashFlowPositiveMonth: -1,
	}
	if len(points) == 0 {
		return s
	}
	s.MonthlyBurn = points[0].Burn
	last := points[len(points)-1]
	s.EndingBalance = last.Balance
	s.PastHorizon = last.Month == HorizonMonths && last.Balance+last.NetCashFlow > 0
	for _, p := range points {
		if p.NetCashFlow >= 0 {
			s.CashFlowPositiveMonth = p.Month
			break
		}
	}
	return s
}

// CashFlowPositive returns the break-even month and whether one was projected.
func (s Summary) CashFlowPositive() (int, bool) {
	return s.CashFlowPositiveMonth, s.CashFlowPositiveMonth >= 0
}

// Health buckets a runway length the way the dashboard badge does.
type Health int

// Health levels.
const (
	Critical Health = iota
	Warning
	Healthy
)

// HealthFor classifies runway: under 6 months is critical, under 12 a warning.
func HealthFor(runwayMonths int) Health {
	switch {
	case runwayMonths < 6:
		return Critical
	case runwayMonths < 12:
		return Warning
	default:
		return Healthy
	}
}

func (h Health) String() string {
	switch h {
	case Critical:
		return "Critical"
	case Warning:
		return "Warning"
	default:
		return "Healthy"
	}
}

// Series extracts one column of a projection for charting.
func Series(points []MonthPoint, pick func(MonthPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = pick(p)
	}
	return out
}
