package services

import (
	"context"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
)

type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteResult is returned by each confirmation step. Deleted is set only
// once the second confirmation has removed the record.
type DeleteResult struct {
	Flow    workflow.DeleteFlow    `json:"flow"`
	Deleted *workflow.DeleteTarget `json:"deleted,omitempty"`
}

type DeletionService struct {
	deleters map[model.EntityKind]Deleter
	policy   *policy.Policy
}

func NewDeletionService(suppliers, transactions, reports, cash Deleter, p *policy.Policy) *DeletionService {
	return &DeletionService{
		deleters: map[model.EntityKind]Deleter{
			model.KindSupplier:     suppliers,
			model.KindTransaction:  transactions,
			model.KindReport:       reports,
			model.KindCashMovement: cash,
		},
		policy: p,
	}
}

func (s *DeletionService) State(ws *state.Workspace) workflow.DeleteFlow {
	return ws.DeleteFlow()
}

func (s *DeletionService) Initiate(ws *state.Workspace, kind model.EntityKind, id int64) (workflow.DeleteFlow, error) {
	target, err := s.target(ws, kind, id)
	if err != nil {
		return ws.DeleteFlow(), err
	}
	return ws.UpdateDeleteFlow(func(f workflow.DeleteFlow) (workflow.DeleteFlow, error) {
		return f.Initiate(target)
	})
}

// Confirm advances the flow by one step. The second step deletes the target
// and returns the flow to idle whether or not the delete succeeds.
func (s *DeletionService) Confirm(ctx context.Context, ws *state.Workspace) (*DeleteResult, error) {
	var target *workflow.DeleteTarget
	flow, err := ws.UpdateDeleteFlow(func(f workflow.DeleteFlow) (workflow.DeleteFlow, error) {
		if f.Stage == workflow.DeleteConfirm2 {
			next, t, err := f.ConfirmStep2()
			if err == nil {
				target = &t
			}
			return next, err
		}
		return f.ConfirmStep1()
	})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return &DeleteResult{Flow: flow}, nil
	}

	// the record may have changed since Initiate
	if _, err := s.target(ws, target.Kind, target.ID); err != nil {
		return nil, err
	}
	if err := s.delete(ctx, ws, *target); err != nil {
		return nil, err
	}
	return &DeleteResult{Flow: flow, Deleted: target}, nil
}

func (s *DeletionService) Cancel(ws *state.Workspace) (workflow.DeleteFlow, error) {
	return ws.UpdateDeleteFlow(func(f workflow.DeleteFlow) (workflow.DeleteFlow, error) {
		return f.Cancel()
	})
}

func (s *DeletionService) delete(ctx context.Context, ws *state.Workspace, t workflow.DeleteTarget) error {
	d, ok := s.deleters[t.Kind]
	if !ok || d == nil {
		return fmt.Errorf("%w: unknown kind %q", model.ErrInvalidInput, t.Kind)
	}
	err := d.Delete(ctx, t.ID)
	prom.RecordMutation(string(t.Kind), "delete", err)
	if err != nil {
		logger.Error("delete failed", "kind", t.Kind, "id", t.ID, "error", err)
		return err
	}

	switch t.Kind {
	case model.KindSupplier:
		ws.RemoveSupplier(t.ID)
	case model.KindTransaction:
		ws.RemoveTransaction(t.ID)
	case model.KindReport:
		ws.RemoveReport(t.ID)
	case model.KindCashMovement:
		ws.RemoveCashMovement(t.ID)
	}
	return nil
}

// target looks the record up in the workspace, checks the caller may delete
// it and builds the label shown in the confirmation dialog.
func (s *DeletionService) target(ws *state.Workspace, kind model.EntityKind, id int64) (workflow.DeleteTarget, error) {
	u := ws.User()
	t := workflow.DeleteTarget{Kind: kind, ID: id}

	switch kind {
	case model.KindSupplier:
		sup, ok := ws.Supplier(id)
		if !ok {
			return t, repository.ErrNotFound
		}
		if !policy.CanManageSuppliers(u) || !policy.CanAccessBusiness(u, sup.BusinessID) {
			return t, ErrForbidden
		}
		t.Label = sup.Name
	case model.KindTransaction:
		tx, ok := ws.Transaction(id)
		if !ok {
			return t, repository.ErrNotFound
		}
		if !policy.CanAccessBusiness(u, tx.BusinessID) || !s.policy.CanEdit(u, tx.Date) {
			return t, ErrForbidden
		}
		t.Label = fmt.Sprintf("%s %s (%s)", tx.Type, tx.Amount.StringFixed(2), tx.Date)
	case model.KindReport:
		r, ok := ws.Report(id)
		if !ok {
			return t, repository.ErrNotFound
		}
		if !policy.CanAccessBusiness(u, r.BusinessID) || !s.policy.CanEdit(u, r.Date) {
			return t, ErrForbidden
		}
		t.Label = r.Date
	case model.KindCashMovement:
		m, ok := ws.CashMovement(id)
		if !ok {
			return t, repository.ErrNotFound
		}
		if !s.policy.CanEdit(u, m.Date) {
			return t, ErrForbidden
		}
		t.Label = m.Description
	default:
		return t, fmt.Errorf("%w: unknown kind %q", model.ErrInvalidInput, kind)
	}
	return t, nil
}
