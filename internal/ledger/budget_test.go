package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)
}

func TestBudgetAdd_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		draft BudgetDraft
	}{
		{"no category", BudgetDraft{Subcategory: "Ads", Amount: decimal.NewFromInt(100)}},
		{"blank subcategory", BudgetDraft{Category: model.CategoryMarketing, Subcategory: "  ", Amount: decimal.NewFromInt(100)}},
		{"zero amount", BudgetDraft{Category: model.CategoryMarketing, Subcategory: "Ads"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewBudgetLedger(model.SampleBudget()...)
			before := l.Items()

			_, err := l.Add(tt.draft)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("err = %v, want ErrMissingFields", err)
			}
			if l.Len() != len(before) {
				t.Errorf("ledger grew to %d after rejected add", l.Len())
			}
		})
	}
}

func TestBudgetAdd_RejectsNegativeAmount(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)
	total := l.TotalMonthlyBudget()

	_, err := l.Add(BudgetDraft{
		Category:    model.CategoryOperations,
		Subcategory: "Refund",
		Amount:      model.ParseAmount("-5"),
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
	if l.Len() != 3 {
		t.Errorf("len = %d, want 3 (unchanged)", l.Len())
	}
	if !l.TotalMonthlyBudget().Equal(total) {
		t.Errorf("TotalMonthlyBudget = %s, want %s", l.TotalMonthlyBudget(), total)
	}
}

func TestBudgetAdd_AppendsWithFreshID(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)
	l.now = fixedClock

	item, err := l.Add(BudgetDraft{
		Category:    model.CategoryDevelopment,
		Subcategory: " Contractors ",
		Amount:      decimal.NewFromInt(12000),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := l.Items()
	if len(items) != 4 || items[3].ID != item.ID {
		t.Fatalf("new item not appended last: %+v", items)
	}
	for _, it := range items[:3] {
		if it.ID == item.ID {
			t.Fatalf("id %q collides with existing item", item.ID)
		}
	}
	if item.Subcategory != "Contractors" {
		t.Errorf("Subcategory = %q, want trimmed", item.Subcategory)
	}
	if item.Frequency != model.FrequencyMonthly {
		t.Errorf("Frequency = %q, want monthly default", item.Frequency)
	}
	if !item.IsRecurring {
		t.Error("new items are always recurring")
	}
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !item.StartDate.Equal(want) {
		t.Errorf("StartDate = %s, want %s", item.StartDate, want)
	}
}

func TestBudgetAdd_RetriesCollidingID(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)
	ids := []string{"1", "2", "fresh"}
	l.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	item, err := l.Add(BudgetDraft{Category: "Legal", Subcategory: "Counsel", Amount: decimal.NewFromInt(3000)})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.ID != "fresh" {
		t.Errorf("ID = %q, want fresh", item.ID)
	}
}

func TestBudgetRemove(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)

	if !l.Remove("2") {
		t.Fatal("Remove(2) = false")
	}
	items := l.Items()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("after remove: %+v", items)
	}
	if l.Remove("nope") {
		t.Error("Remove of unknown id reported true")
	}
	if l.Len() != 2 {
		t.Errorf("unknown id changed ledger: len = %d", l.Len())
	}
}

func TestTotalMonthlyBudget(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)
	if got := l.TotalMonthlyBudget(); !got.Equal(decimal.NewFromInt(58000)) {
		t.Fatalf("TotalMonthlyBudget = %s, want 58000", got)
	}

	_, _ = l.Add(BudgetDraft{
		Category: model.CategoryOperations, Subcategory: "Audit",
		Amount: decimal.NewFromInt(20000), Frequency: model.FrequencyAnnual,
	})
	if got := l.TotalMonthlyBudget(); !got.Equal(decimal.NewFromInt(58000)) {
		t.Errorf("annual item counted: total = %s", got)
	}
	if l.Len() != 4 {
		t.Errorf("annual item not listed: len = %d", l.Len())
	}
}

func TestActiveCategoryCountAndByCategory(t *testing.T) {
	l := NewBudgetLedger(model.SampleBudget()...)
	_, _ = l.Add(BudgetDraft{Category: model.CategoryMarketing, Subcategory: "Events", Amount: decimal.NewFromInt(2000)})

	if got := l.ActiveCategoryCount(); got != 3 {
		t.Errorf("ActiveCategoryCount = %d, want 3", got)
	}

	totals := l.ByCategory()
	if len(totals) != 3 {
		t.Fatalf("ByCategory len = %d, want 3", len(totals))
	}
	if totals[0].Category != model.CategorySalaries {
		t.Errorf("largest = %s, want Salaries", totals[0].Category)
	}
	if totals[1].Category != model.CategoryMarketing || !totals[1].Amount.Equal(decimal.NewFromInt(10000)) || totals[1].Items != 2 {
		t.Errorf("marketing = %+v, want 10000 over 2 items", totals[1])
	}
}
