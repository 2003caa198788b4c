package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/model"
)

func TestFundingAdd_RejectsMissingFields(t *testing.T) {
	l := NewFundingLedger(model.SampleFunding()...)

	drafts := []RoundDraft{
		{Amount: decimal.NewFromInt(1), Dilution: 5},
		{Name: "Seed", Dilution: 5},
		{Name: "Seed", Amount: decimal.NewFromInt(1)},
	}
	for _, d := range drafts {
		if _, err := l.Add(d); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Add(%+v) err = %v, want ErrMissingFields", d, err)
		}
	}
	if got := len(l.Rounds()); got != 2 {
		t.Errorf("rejected adds changed ledger: len = %d", got)
	}
}

func TestFundingAdd_RejectsNegativeAmount(t *testing.T) {
	l := NewFundingLedger(model.SampleFunding()...)
	raised := l.TotalRaised()

	_, err := l.Add(RoundDraft{Name: "Clawback", Amount: model.ParseAmount("-250000"), Dilution: 5})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
	if got := len(l.Rounds()); got != 2 {
		t.Errorf("len = %d, want 2 (unchanged)", got)
	}
	if !l.TotalRaised().Equal(raised) {
		t.Errorf("TotalRaised = %s, want %s", l.TotalRaised(), raised)
	}
}

func TestFundingAdd_DefaultsAndDate(t *testing.T) {
	l := NewFundingLedger()
	l.now = fixedClock

	r, err := l.Add(RoundDraft{Name: "Angels", Amount: decimal.NewFromInt(100000), Dilution: 4})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.Type != model.RoundSeed {
		t.Errorf("Type = %q, want seed", r.Type)
	}
	if r.Date.Format("2006-01-02") != "2024-03-09" {
		t.Errorf("Date = %s, want 2024-03-09", r.Date)
	}
	if r.ID == "" {
		t.Error("empty id")
	}
}

func TestFundingAggregates(t *testing.T) {
	l := NewFundingLedger(model.SampleFunding()...)

	if got := l.TotalRaised(); !got.Equal(decimal.NewFromInt(750000)) {
		t.Errorf("TotalRaised = %s, want 750000", got)
	}
	if got := l.TotalDilution(); got != 25 {
		t.Errorf("TotalDilution = %v, want 25", got)
	}
	v, ok := l.ImpliedValuation()
	if !ok || !v.Equal(decimal.NewFromInt(3000000)) {
		t.Errorf("ImpliedValuation = %s,%v want 3000000,true", v, ok)
	}
}

func TestImpliedValuation_ZeroDilution(t *testing.T) {
	l := NewFundingLedger()
	if v, ok := l.ImpliedValuation(); ok || !v.IsZero() {
		t.Errorf("empty ledger ImpliedValuation = %s,%v want 0,false", v, ok)
	}
}
