package forecast

import (
	"math"
	"testing"

	"github.com/theirongolddev/runway/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestProject_DefaultScenario(t *testing.T) {
	points := Project(595000, model.DefaultScenario())

	if len(points) != HorizonMonths+1 {
		t.Fatalf("len = %d, want %d (revenue overtakes burn before cash runs out)", len(points), HorizonMonths+1)
	}

	p0 := points[0]
	if p0.Month != 0 || p0.Balance != 595000 || p0.Burn != 70000 || p0.Revenue != 25000 || p0.NetCashFlow != -45000 {
		t.Fatalf("month 0 = %+v", p0)
	}
	if !approx(p0.Conservative, 476000) || !approx(p0.Optimistic, 714000) {
		t.Errorf("bands = %.0f / %.0f, want 476000 / 714000", p0.Conservative, p0.Optimistic)
	}

	// Balance falls while burning, then rises once revenue covers burn.
	for i := 1; i <= 8; i++ {
		if points[i].Balance >= points[i-1].Balance {
			t.Errorf("month %d balance %.0f did not drop from %.0f", i, points[i].Balance, points[i-1].Balance)
		}
	}
	if points[9].Balance <= points[8].Balance {
		t.Errorf("month 9 balance %.0f should exceed month 8 %.0f", points[9].Balance, points[8].Balance)
	}

	s := Summarize(points)
	if s.RunwayMonths != 24 {
		t.Errorf("RunwayMonths = %d, want 24", s.RunwayMonths)
	}
	month, ok := s.CashFlowPositive()
	if !ok || month != 8 {
		t.Errorf("CashFlowPositive = %d,%v want 8,true", month, ok)
	}
	if s.MonthlyBurn != 70000 {
		t.Errorf("MonthlyBurn = %.0f, want 70000", s.MonthlyBurn)
	}
}

func TestProject_ZeroGrowthIsFlat(t *testing.T) {
	cfg := model.DefaultScenario().WithRevenue(model.RevenueGrowth, 0)
	points := Project(10_000_000, cfg)

	for _, p := range points {
		if p.Revenue != cfg.Revenue.Current {
			t.Fatalf("month %d revenue = %.2f, want %.2f", p.Month, p.Revenue, cfg.Revenue.Current)
		}
	}
	if _, ok := Summarize(points).CashFlowPositive(); ok {
		t.Error("flat revenue below burn should never turn cash-flow positive")
	}
}

func TestProject_EarlyTermination(t *testing.T) {
	cfg := model.DefaultScenario().
		WithRevenue(model.RevenueCurrent, 0).
		WithRevenue(model.RevenueGrowth, 0)

	tests := []struct {
		name    string
		balance float64
		wantLen int
	}{
		{"zero balance still emits month 0", 0, 1},
		{"one partial month", 100000, 2},
		{"balance hits exactly zero", 140000, 2},
		{"just over two months", 140001, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Project(tt.balance, cfg)
			if len(points) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(points), tt.wantLen)
			}
			if points[0].Month != 0 || points[0].Balance != tt.balance {
				t.Errorf("month 0 = %+v", points[0])
			}
			if got := Summarize(points).RunwayMonths; got != tt.wantLen-1 {
				t.Errorf("RunwayMonths = %d, want %d", got, tt.wantLen-1)
			}
		})
	}
}

func TestSummarize_PastHorizon(t *testing.T) {
	flat := model.DefaultScenario().
		WithRevenue(model.RevenueCurrent, 0).
		WithRevenue(model.RevenueGrowth, 0)

	tests := []struct {
		name    string
		balance float64
		runway  int
		want    bool
	}{
		// 70k burn: month 24 starts with 70k and spends all of it.
		{"runs out in month 24", 25 * 70000, 24, false},
		{"cash left after month 24", 25*70000 + 1, 24, true},
		{"runs out early", 100000, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(Project(tt.balance, flat))
			if s.RunwayMonths != tt.runway {
				t.Fatalf("RunwayMonths = %d, want %d", s.RunwayMonths, tt.runway)
			}
			if s.PastHorizon != tt.want {
				t.Errorf("PastHorizon = %v, want %v (runway %d)", s.PastHorizon, tt.want, s.RunwayMonths)
			}
		})
	}

	if !Summarize(Project(595000, model.DefaultScenario())).PastHorizon {
		t.Error("default scenario recovers before month 24 and should extend past it")
	}
}

func TestProject_RevenueAboveBurnRunsFullHorizon(t *testing.T) {
	cfg := model.DefaultScenario().WithRevenue(model.RevenueCurrent, 80000)
	points := Project(0, cfg)

	if len(points) != HorizonMonths+1 {
		t.Fatalf("len = %d, want %d", len(points), HorizonMonths+1)
	}
	month, ok := Summarize(points).CashFlowPositive()
	if !ok || month != 0 {
		t.Errorf("CashFlowPositive = %d,%v want 0,true", month, ok)
	}
}

func TestProject_LengthAlwaysBounded(t *testing.T) {
	balances := []float64{-5000, 0, 1, 70000, 1e6, 1e9}
	growths := []float64{0, 1, 15, 50}
	for _, b := range balances {
		for _, g := range growths {
			points := Project(b, model.DefaultScenario().WithRevenue(model.RevenueGrowth, g))
			if len(points) < 1 || len(points) > HorizonMonths+1 {
				t.Errorf("balance=%.0f growth=%.0f: len = %d", b, g, len(points))
			}
			for _, p := range points {
				if p.Balance < 0 || p.Conservative < 0 || p.Optimistic < 0 {
					t.Fatalf("negative display value in %+v", p)
				}
			}
		}
	}
}

func TestCashFlowPositiveMatchesCompounding(t *testing.T) {
	cfg := model.DefaultScenario()
	want := -1
	for i := 0; i <= HorizonMonths; i++ {
		if cfg.Revenue.Current*math.Pow(1.15, float64(i)) >= cfg.TotalExpenses() {
			want = i
			break
		}
	}
	got := Summarize(Project(1e9, cfg)).CashFlowPositiveMonth
	if got != want {
		t.Errorf("CashFlowPositiveMonth = %d, want %d", got, want)
	}
}

func TestHealthFor(t *testing.T) {
	tests := []struct {
		months int
		want   Health
	}{
		{0, Critical},
		{5, Critical},
		{6, Warning},
		{11, Warning},
		{12, Healthy},
		{24, Healthy},
	}
	for _, tt := range tests {
		if got := HealthFor(tt.months); got != tt.want {
			t.Errorf("HealthFor(%d) = %s, want %s", tt.months, got, tt.want)
		}
	}
}

func TestSeries(t *testing.T) {
	points := Project(595000, model.DefaultScenario())
	rev := Series(points, func(p MonthPoint) float64 { return p.Revenue })
	if len(rev) != len(points) || rev[0] != 25000 {
		t.Fatalf("Series = %v", rev[:1])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.RunwayMonths != -1 || s.CashFlowPositiveMonth != -1 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}
