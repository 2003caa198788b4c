package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/model"
)

// RoundDraft is the user-entered form for a new funding round.
type RoundDraft struct {
	Name         string
	Amount       decimal.Decimal
	Type         model.RoundType
	Dilution     float64
	TokenPrice   *decimal.Decimal
	TokensIssued *int64
}

// FundingLedger is an append-only list of funding rounds.
type FundingLedger struct {
	rounds []model.FundingRound
	now    func() time.Time
	newID  func() string
}

// NewFundingLedger returns a ledger seeded with rounds, in order.
func NewFundingLedger(rounds ...model.FundingRound) *FundingLedger {
	l := &FundingLedger{now: time.Now, newID: uuid.NewString}
	l.rounds = append(l.rounds, rounds...)
	return l
}

// Rounds returns a copy of the ledger in insertion order.
func (l *FundingLedger) Rounds() []model.FundingRound {
	out := make([]model.FundingRound, len(l.rounds))
	copy(out, l.rounds)
	return out
}

// Add validates d and appends a new round dated today.
func (l *FundingLedger) Add(d RoundDraft) (model.FundingRound, error) {
	if strings.TrimSpace(d.Name) == "" || d.Amount.IsZero() || d.Dilution == 0 {
		return model.FundingRound{}, ErrMissingFields
	}
	if d.Amount.IsNegative() {
		return model.FundingRound{}, ErrNegativeAmount
	}

	rt := d.Type
	if rt == "" {
		rt = model.RoundSeed
	}

	now := l.now()
	round := model.FundingRound{
		ID:           uniqueID(l.newID, l.hasID),
		Name:         strings.TrimSpace(d.Name),
		Amount:       d.Amount,
		Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Type:         rt,
		Dilution:     d.Dilution,
		TokenPrice:   d.TokenPrice,
		TokensIssued: d.TokensIssued,
	}
	l.rounds = append(l.rounds, round)
	return round, nil
}

func (l *FundingLedger) hasID(id string) bool {
	for _, r := range l.rounds {
		if r.ID == id {
			return true
		}
	}
	return false
}

// TotalRaised sums every round's amount.
func (l *FundingLedger) TotalRaised() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.rounds {
		total = total.Add(r.Amount)
	}
	return total
}

// TotalDilution is the plain sum of per-round dilution percentages. It does
// not compound across rounds, so it overstates ownership sold.
func (l *FundingLedger) TotalDilution() float64 {
	var total float64
	for _, r := range l.rounds {
		total += r.Dilution
	}
	return total
}

// ImpliedValuation is TotalRaised / (TotalDilution/100). It reports false
// when total dilution is zero.
func (l *FundingLedger) ImpliedValuation() (decimal.Decimal, bool) {
	dilution := l.TotalDilution()
	if dilution == 0 {
		return decimal.Zero, false
	}
	return l.TotalRaised().Div(decimal.NewFromFloat(dilution / 100)), true
}
