package workflow

import (
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type SaveMode string

const (
	SaveNone SaveMode = "none"
	SaveAdd  SaveMode = "add"
	SaveEdit SaveMode = "edit"
)

// SavePrompt is what the user acknowledges before a report is written.
type SavePrompt struct {
	Mode         SaveMode        `json:"mode"`
	HasExpenses  bool            `json:"has_expenses"`
	ExpenseCount int             `json:"expense_count"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
}

// SaveGate holds a report draft between "save" and the user's answer. A
// declined or failed save keeps the draft so the form can be resubmitted.
type SaveGate struct {
	Pending SaveMode           `json:"pending"`
	Draft   *model.ReportDraft `json:"draft,omitempty"`
}

func NewSaveGate() SaveGate {
	return SaveGate{Pending: SaveNone}
}

func (g SaveGate) pending() SaveMode {
	if g.Pending == "" {
		return SaveNone
	}
	return g.Pending
}

func (g SaveGate) RequestSave(mode SaveMode, draft model.ReportDraft) (SaveGate, SavePrompt, error) {
	if mode != SaveAdd && mode != SaveEdit {
		return g, SavePrompt{}, fmt.Errorf("%w: unknown save mode %q", model.ErrInvalidInput, mode)
	}
	if g.pending() != SaveNone {
		return g, SavePrompt{}, fmt.Errorf("%w: a %s save is already pending", ErrInvalidTransition, g.pending())
	}
	next := SaveGate{Pending: mode, Draft: &draft}
	prompt, _ := next.Prompt()
	return next, prompt, nil
}

// Prompt reports the pending confirmation, if any.
func (g SaveGate) Prompt() (SavePrompt, bool) {
	if g.pending() == SaveNone || g.Draft == nil {
		return SavePrompt{Mode: SaveNone, ExpenseTotal: decimal.Zero}, false
	}
	return SavePrompt{
		Mode:         g.pending(),
		HasExpenses:  len(g.Draft.Expenses) > 0,
		ExpenseCount: len(g.Draft.Expenses),
		ExpenseTotal: g.Draft.ExpenseTotal(),
	}, true
}

func (g SaveGate) Decline() (SaveGate, error) {
	if g.pending() == SaveNone {
		return g, fmt.Errorf("%w: no save pending", ErrInvalidTransition)
	}
	return SaveGate{Pending: SaveNone, Draft: g.Draft}, nil
}

// Accept closes the prompt and hands back the draft to write. The draft
// stays in the gate until Clear is called after a successful write.
func (g SaveGate) Accept() (SaveGate, SaveMode, model.ReportDraft, error) {
	if g.pending() == SaveNone || g.Draft == nil {
		return g, SaveNone, model.ReportDraft{}, fmt.Errorf("%w: no save pending", ErrInvalidTransition)
	}
	return SaveGate{Pending: SaveNone, Draft: g.Draft}, g.pending(), *g.Draft, nil
}

func (g SaveGate) Clear() SaveGate {
	return NewSaveGate()
}
