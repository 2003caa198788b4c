package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/runway/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "runway.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestPutGet(t *testing.T) {
	st := openTemp(t)

	if _, err := st.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
	if err := st.Put("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := st.Put("k", "two"); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get("k")
	if err != nil || got != "two" {
		t.Errorf("Get(k) = %q, %v want two", got, err)
	}
}

func TestSaveScenario_RoundTripsShape(t *testing.T) {
	st := openTemp(t)
	cfg := model.DefaultScenario().
		WithRevenue(model.RevenueGrowth, 22).
		WithFunding(model.FundingTimeline, 9)

	if err := st.SaveScenario(cfg); err != nil {
		t.Fatalf("SaveScenario: %v", err)
	}

	raw, err := st.Get(ScenarioKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	var nested map[string]map[string]float64
	if err := json.Unmarshal([]byte(raw), &nested); err != nil {
		t.Fatalf("blob is not nested JSON: %v", err)
	}
	if nested["revenue"]["growth"] != 22 || nested["funding"]["timeline"] != 9 {
		t.Errorf("blob = %s", raw)
	}

	var back model.ScenarioConfig
	if err := json.Unmarshal([]byte(raw), &back); err != nil {
		t.Fatal(err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestSaveScenarioAt_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runway.db")

	if err := SaveScenarioAt(path, model.DefaultScenario()); err != nil {
		t.Fatal(err)
	}
	edited := model.DefaultScenario().WithExpense(model.ExpenseSalaries, 60000)
	if err := SaveScenarioAt(path, edited); err != nil {
		t.Fatal(err)
	}

	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = st.Close() }()

	raw, _ := st.Get(ScenarioKey)
	var back model.ScenarioConfig
	if err := json.Unmarshal([]byte(raw), &back); err != nil {
		t.Fatal(err)
	}
	if back.Expenses.Salaries != 60000 {
		t.Errorf("Salaries = %.0f, want 60000 (last save wins)", back.Expenses.Salaries)
	}
}
