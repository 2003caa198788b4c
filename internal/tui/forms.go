package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/runway/internal/ledger"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formBudgetItem
	formFundingRound
)

// Form values live behind pointers: huh writes through them while App is
// copied on every Update.
type budgetFormValues struct {
	category    string
	subcategory string
	amount      string
	frequency   string
}

type roundFormValues struct {
	name         string
	amount       string
	roundType    string
	dilution     string
	tokenPrice   string
	tokensIssued string
}

func (a App) formWidth() int {
	return min(max(a.contentWidth()-4, 40), 72)
}

func (a App) openBudgetForm() (tea.Model, tea.Cmd) {
	vals := &budgetFormValues{
		category:  string(model.CategorySalaries),
		frequency: string(model.FrequencyMonthly),
	}

	categories := make([]huh.Option[string], 0, len(model.KnownCategories))
	for _, c := range model.KnownCategories {
		categories = append(categories, huh.NewOption(string(c), string(c)))
	}
	frequencies := make([]huh.Option[string], 0, len(model.Frequencies))
	for _, f := range model.Frequencies {
		frequencies = append(frequencies, huh.NewOption(string(f), string(f)))
	}

	a.budgetVals = vals
	a.formKind = formBudgetItem
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&vals.category),
			huh.NewInput().
				Title("Subcategory").
				Placeholder("e.g. Engineering Team").
				Value(&vals.subcategory),
			huh.NewInput().
				Title("Amount (USD)").
				Placeholder("e.g. 45000").
				Validate(validateAmount).
				Value(&vals.amount),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(frequencies...).
				Value(&vals.frequency),
		).Title("Add Budget Item"),
	).WithWidth(a.formWidth()).WithShowHelp(false)

	return a, a.form.Init()
}

func (a App) openRoundForm() (tea.Model, tea.Cmd) {
	vals := &roundFormValues{roundType: string(model.RoundSeed)}

	types := make([]huh.Option[string], 0, len(model.RoundTypes))
	for _, rt := range model.RoundTypes {
		types = append(types, huh.NewOption(rt.Label(), string(rt)))
	}

	a.roundVals = vals
	a.formKind = formFundingRound
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Round name").
				Placeholder("e.g. Series A").
				Value(&vals.name),
			huh.NewInput().
				Title("Amount raised (USD)").
				Placeholder("e.g. 2000000").
				Validate(validateAmount).
				Value(&vals.amount),
			huh.NewSelect[string]().
				Title("Type").
				Options(types...).
				Value(&vals.roundType),
			huh.NewInput().
				Title("Dilution (%)").
				Placeholder("e.g. 15").
				Value(&vals.dilution),
		).Title("Add Funding Round"),
		huh.NewGroup(
			huh.NewInput().
				Title("Token price (optional)").
				Value(&vals.tokenPrice),
			huh.NewInput().
				Title("Tokens issued (optional)").
				Validate(validateOptionalInt).
				Value(&vals.tokensIssued),
		).Title("Token details"),
	).WithWidth(a.formWidth()).WithShowHelp(false)

	return a, a.form.Init()
}

// validateAmount only rejects negatives; blank and junk input coerce to 0
// and are reported as missing on submit.
func validateAmount(s string) error {
	if model.ParseAmount(s).IsNegative() {
		return errors.New("amount cannot be negative")
	}
	return nil
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.budgetVals = nil
	a.roundVals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fm, cmd := a.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	case huh.StateCompleted:
		return a.submitForm()
	}
	return a, cmd
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	kind := a.formKind
	budgetVals, roundVals := a.budgetVals, a.roundVals
	a.closeForm()

	switch kind {
	case formBudgetItem:
		item, err := a.budget.Add(budgetDraft(budgetVals))
		if err != nil {
			notify := a.setNotice(addErrorNotice(err), components.NoticeError)
			return a, notify
		}
		a.budgetState.cursor = a.budget.Len() - 1
		a.log.Info().Str("id", item.ID).Str("category", string(item.Category)).
			Str("amount", item.Amount.String()).Msg("budget item added")
		notify := a.setNotice("Budget item added successfully", components.NoticeSuccess)
		return a, notify

	case formFundingRound:
		round, err := a.funding.Add(roundDraft(roundVals))
		if err != nil {
			notify := a.setNotice(addErrorNotice(err), components.NoticeError)
			return a, notify
		}
		a.log.Info().Str("id", round.ID).Str("type", string(round.Type)).
			Str("amount", round.Amount.String()).Msg("funding round added")
		notify := a.setNotice("Funding round added successfully", components.NoticeSuccess)
		return a, notify
	}
	return a, nil
}

const noticeMissingFields = "Please fill in all required fields"

func addErrorNotice(err error) string {
	if errors.Is(err, ledger.ErrNegativeAmount) {
		return "Amount cannot be negative"
	}
	return noticeMissingFields
}

func budgetDraft(v *budgetFormValues) ledger.BudgetDraft {
	freq, err := model.ParseFrequency(v.frequency)
	if err != nil {
		freq = model.FrequencyMonthly
	}
	return ledger.BudgetDraft{
		Category:    model.Category(v.category),
		Subcategory: v.subcategory,
		Amount:      model.ParseAmount(v.amount),
		Frequency:   freq,
	}
}

func roundDraft(v *roundFormValues) ledger.RoundDraft {
	rt, err := model.ParseRoundType(v.roundType)
	if err != nil {
		rt = model.RoundSeed
	}
	d := ledger.RoundDraft{
		Name:     v.name,
		Amount:   model.ParseAmount(v.amount),
		Type:     rt,
		Dilution: model.ParseNumber(v.dilution),
	}
	if strings.TrimSpace(v.tokenPrice) != "" {
		if p := model.ParseAmount(v.tokenPrice); !p.IsZero() {
			d.TokenPrice = &p
		}
	}
	if s := strings.TrimSpace(strings.ReplaceAll(v.tokensIssued, ",", "")); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			d.TokensIssued = &n
		}
	}
	return d
}
