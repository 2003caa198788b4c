// Package ledger holds the in-memory budget and funding ledgers and the
// aggregates derived from them.
package ledger

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/model"
)

// ErrMissingFields is returned by Add when a required field is empty or zero.
// The ledger is left unchanged.
var ErrMissingFields = errors.New("please fill in all required fields")

// ErrNegativeAmount is returned by Add when the amount is below zero.
var ErrNegativeAmount = errors.New("amount must not be negative")

// BudgetDraft is the user-entered form for a new budget item.
type BudgetDraft struct {
	Category    model.Category
	Subcategory string
	Amount      decimal.Decimal
	Frequency   model.Frequency
}

// BudgetLedger is an ordered list of budget items.
type BudgetLedger struct {
	items []model.BudgetItem
	now   func() time.Time
	newID func() string
}

// NewBudgetLedger returns a ledger seeded with items, in order.
func NewBudgetLedger(items ...model.BudgetItem) *BudgetLedger {
	l := &BudgetLedger{now: time.Now, newID: uuid.NewString}
	l.items = append(l.items, items...)
	return l
}

// Items returns a copy of the ledger in insertion order.
func (l *BudgetLedger) Items() []model.BudgetItem {
	out := make([]model.BudgetItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *BudgetLedger) Len() int {
	return len(l.items)
}

// Add validates d and appends a new item with a fresh id.
func (l *BudgetLedger) Add(d BudgetDraft) (model.BudgetItem, error) {
	if strings.TrimSpace(string(d.Category)) == "" ||
		strings.TrimSpace(d.Subcategory) == "" ||
		d.Amount.IsZero() {
		return model.BudgetItem{}, ErrMissingFields
	}
	if d.Amount.IsNegative() {
		return model.BudgetItem{}, ErrNegativeAmount
	}

	freq := d.Frequency
	if freq == "" {
		freq = model.FrequencyMonthly
	}

	now := l.now()
	item := model.BudgetItem{
		ID:          uniqueID(l.newID, l.hasID),
		Category:    model.Category(strings.TrimSpace(string(d.Category))),
		Subcategory: strings.TrimSpace(d.Subcategory),
		Amount:      d.Amount,
		Frequency:   freq,
		StartDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
	}
	l.items = append(l.items, item)
	return item, nil
}

// Remove drops the item with the given id. It reports whether anything
// was removed; an unknown id is a no-op.
func (l *BudgetLedger) Remove(id string) bool {
	kept := l.items[:0:0]
	for _, it := range l.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(l.items)
	l.items = kept
	return removed
}

func (l *BudgetLedger) hasID(id string) bool {
	for _, it := range l.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// TotalMonthlyBudget sums recurring monthly items only. Quarterly, annual
// and one-time items stay listed but are excluded here.
func (l *BudgetLedger) TotalMonthlyBudget() decimal.Decimal {
	total := decimal.Zero
	for _, it := range l.items {
		if it.Frequency == model.FrequencyMonthly && it.IsRecurring {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// ActiveCategoryCount counts distinct categories across all items.
func (l *BudgetLedger) ActiveCategoryCount() int {
	seen := make(map[model.Category]struct{})
	for _, it := range l.items {
		seen[it.Category] = struct{}{}
	}
	return len(seen)
}

// CategoryTotal is the summed amount of one category, any frequency.
type CategoryTotal struct {
	Category model.Category
	Amount   decimal.Decimal
	Items    int
}

// ByCategory totals every item per category, largest first.
func (l *BudgetLedger) ByCategory() []CategoryTotal {
	idx := make(map[model.Category]int)
	var out []CategoryTotal
	for _, it := range l.items {
		i, ok := idx[it.Category]
		if !ok {
			i = len(out)
			idx[it.Category] = i
			out = append(out, CategoryTotal{Category: it.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(it.Amount)
		out[i].Items++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// uniqueID draws ids until one does not collide with an existing entry.
func uniqueID(gen func() string, taken func(string) bool) string {
	for {
		id := gen()
		if !taken(id) {
			return id
		}
	}
}
