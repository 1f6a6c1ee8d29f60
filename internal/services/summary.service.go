package services

import (
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/state"
)

type SummaryService struct {
	policy *policy.Policy
}

func NewSummaryService(p *policy.Policy) *SummaryService {
	return &SummaryService{policy: p}
}

// Daily is the cross-business totals for one date, today when date is empty.
func (s *SummaryService) Daily(ws *state.Workspace, date string) (ledger.Summary, error) {
	snap := ws.Snapshot()
	if !policy.CanViewSummary(snap.User) {
		return ledger.Summary{}, ErrForbidden
	}
	if date == "" {
		date = s.policy.Today()
	}
	if err := model.ValidateDate(date); err != nil {
		return ledger.Summary{}, err
	}
	return ledger.DailySummary(snap.Businesses, snap.Reports, date), nil
}

func (s *SummaryService) RecentEdits(ws *state.Workspace, kind model.EntityKind) ([]ledger.Edit, error) {
	snap := ws.Snapshot()
	switch kind {
	case model.KindTransaction:
		return ledger.RecentTransactionEdits(snap.Transactions), nil
	case model.KindReport:
		return ledger.RecentReportEdits(snap.Reports), nil
	case model.KindCashMovement:
		return ledger.RecentCashEdits(snap.CashMoves), nil
	default:
		return nil, fmt.Errorf("%w: no edit history for %q", model.ErrInvalidInput, kind)
	}
}
