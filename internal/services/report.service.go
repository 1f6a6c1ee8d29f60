package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"github.com/shopspring/decimal"
)

var ErrReportSaveFailed = errors.New("report save failed")

type ReportRepository interface {
	List(ctx context.Context) ([]*model.DailyReport, error)
	FindByBusinessDate(ctx context.Context, businessID int64, date string) (*model.DailyReport, error)
	Create(ctx context.Context, report *model.DailyReport, expenses []model.ExpenseDraft) (*model.DailyReport, error)
	Update(ctx context.Context, id int64, totals model.ReportTotals, audit model.Audit, expenses []model.ExpenseDraft) (*model.DailyReport, error)
	Delete(ctx context.Context, id int64) error
}

type ReportView struct {
	*model.DailyReport
	ExpenseTotal   decimal.Decimal `json:"expense_total"`
	CashDifference decimal.Decimal `json:"cash_difference"`
}

type DraftState struct {
	Gate   workflow.SaveGate   `json:"gate"`
	Prompt workflow.SavePrompt `json:"prompt"`
}

type ReportService struct {
	repo   ReportRepository
	policy *policy.Policy
	clock  clock.Clock
}

func NewReportService(repo ReportRepository, p *policy.Policy, c clock.Clock) *ReportService {
	return &ReportService{repo: repo, policy: p, clock: c}
}

// List returns the reports of a business, newest date first. With a date only
// that day's report is returned, if any.
func (s *ReportService) List(ws *state.Workspace, businessID int64, date string) ([]*ReportView, error) {
	snap := ws.Snapshot()
	if !policy.CanAccessBusiness(snap.User, businessID) {
		return nil, ErrForbidden
	}
	if date != "" {
		if err := model.ValidateDate(date); err != nil {
			return nil, err
		}
	}
	out := []*ReportView{}
	for _, r := range snap.Reports {
		if r.BusinessID != businessID || (date != "" && r.Date != date) {
			continue
		}
		out = append(out, viewOf(r))
	}
	return out, nil
}

// RequestSave checks the draft and parks it behind the expense confirmation.
func (s *ReportService) RequestSave(ws *state.Workspace, mode workflow.SaveMode, draft model.ReportDraft) (workflow.SavePrompt, error) {
	if err := s.authorize(ws, mode, &draft); err != nil {
		return workflow.SavePrompt{}, err
	}
	var prompt workflow.SavePrompt
	_, err := ws.UpdateSaveGate(func(g workflow.SaveGate) (workflow.SaveGate, error) {
		next, p, err := g.RequestSave(mode, draft)
		prompt = p
		return next, err
	})
	return prompt, err
}

func (s *ReportService) Draft(ws *state.Workspace) DraftState {
	g := ws.SaveGate()
	prompt, _ := g.Prompt()
	return DraftState{Gate: g, Prompt: prompt}
}

// Decline closes the prompt without writing. The draft stays available.
func (s *ReportService) Decline(ws *state.Workspace) (DraftState, error) {
	g, err := ws.UpdateSaveGate(func(g workflow.SaveGate) (workflow.SaveGate, error) {
		return g.Decline()
	})
	if err != nil {
		return DraftState{}, err
	}
	prompt, _ := g.Prompt()
	return DraftState{Gate: g, Prompt: prompt}, nil
}

// Accept writes the pending draft. On failure the draft is retained and the
// error wraps ErrReportSaveFailed.
func (s *ReportService) Accept(ctx context.Context, ws *state.Workspace) (*ReportView, error) {
	var (
		mode  workflow.SaveMode
		draft model.ReportDraft
	)
	_, err := ws.UpdateSaveGate(func(g workflow.SaveGate) (workflow.SaveGate, error) {
		next, m, d, err := g.Accept()
		mode, draft = m, d
		return next, err
	})
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ws, mode, &draft); err != nil {
		return nil, err
	}

	var saved *model.DailyReport
	switch mode {
	case workflow.SaveAdd:
		if err = s.ensureUnique(ctx, ws, draft); errors.Is(err, repository.ErrDuplicateReport) {
			return nil, err
		}
		if err == nil {
			saved, err = s.add(ctx, ws.User(), draft)
		}
		prom.RecordMutation(string(model.KindReport), "create", err)
	case workflow.SaveEdit:
		saved, err = s.edit(ctx, ws.User(), draft)
		prom.RecordMutation(string(model.KindReport), "update", err)
	default:
		err = fmt.Errorf("%w: unknown save mode %q", model.ErrInvalidInput, mode)
	}
	if err != nil {
		logger.Error("report save failed", "mode", mode, "business_id", draft.BusinessID, "date", draft.Date, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReportSaveFailed, err)
	}

	if mode == workflow.SaveAdd {
		ws.AddReport(saved)
	} else {
		ws.ReplaceReport(saved)
	}
	ws.UpdateSaveGate(func(g workflow.SaveGate) (workflow.SaveGate, error) {
		return g.Clear(), nil
	})
	return viewOf(saved), nil
}

// ensureUnique asks the database for a report on the draft's business and
// date. One the workspace has not loaded yet is added to it.
func (s *ReportService) ensureUnique(ctx context.Context, ws *state.Workspace, d model.ReportDraft) error {
	existing, err := s.repo.FindByBusinessDate(ctx, d.BusinessID, d.Date)
	switch {
	case err == nil:
		ws.AddReport(existing)
		return repository.ErrDuplicateReport
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check existing report: %w", err)
	}
}

func (s *ReportService) add(ctx context.Context, u *model.User, d model.ReportDraft) (*model.DailyReport, error) {
	return s.repo.Create(ctx, &model.DailyReport{
		BusinessID: d.BusinessID,
		UserID:     u.ID,
		Date:       d.Date,
		CreditCard: d.CreditCard,
		Cash:       d.Cash,
		MealCards:  d.MealCards,
		ActualCash: d.ActualCash,
		Notes:      d.Notes,
	}, d.Expenses)
}

func (s *ReportService) edit(ctx context.Context, u *model.User, d model.ReportDraft) (*model.DailyReport, error) {
	return s.repo.Update(ctx, d.ReportID, d.Totals(), model.NewAudit(u.FullName, s.clock.Now()), d.Expenses)
}

// authorize validates the draft against the session. For edits it pins the
// draft to the stored report's business and date.
func (s *ReportService) authorize(ws *state.Workspace, mode workflow.SaveMode, d *model.ReportDraft) error {
	u := ws.User()
	switch mode {
	case workflow.SaveAdd:
		if err := d.Validate(); err != nil {
			return err
		}
		if !policy.CanAccessBusiness(u, d.BusinessID) || !s.policy.CanAddReport(u, d.Date) {
			return ErrForbidden
		}
		if _, exists := ws.ReportByDate(d.BusinessID, d.Date); exists {
			return repository.ErrDuplicateReport
		}
	case workflow.SaveEdit:
		current, ok := ws.Report(d.ReportID)
		if !ok && d.ReportID == 0 {
			current, ok = ws.ReportByDate(d.BusinessID, d.Date)
		}
		if !ok {
			return repository.ErrNotFound
		}
		d.ReportID = current.ID
		d.BusinessID = current.BusinessID
		d.Date = current.Date
		if err := d.Validate(); err != nil {
			return err
		}
		if !policy.CanAccessBusiness(u, current.BusinessID) || !s.policy.CanEdit(u, current.Date) {
			return ErrForbidden
		}
	default:
		return fmt.Errorf("%w: unknown save mode %q", model.ErrInvalidInput, mode)
	}
	return nil
}

func viewOf(r *model.DailyReport) *ReportView {
	return &ReportView{
		DailyReport:    r,
		ExpenseTotal:   ledger.ExpenseTotal(r),
		CashDifference: ledger.CashDifference(r),
	}
}
