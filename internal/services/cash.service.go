package services

import (
	"context"
	"strings"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"github.com/shopspring/decimal"
)

type CashMovementRepository interface {
	List(ctx context.Context) ([]*model.CashMovement, error)
	Create(ctx context.Context, m *model.CashMovement) (*model.CashMovement, error)
	Update(ctx context.Context, id int64, p model.CashMovementPatch) error
	Delete(ctx context.Context, id int64) error
}

type CashLedger struct {
	Date      string                `json:"date,omitempty"`
	In        decimal.Decimal       `json:"in"`
	Out       decimal.Decimal       `json:"out"`
	Net       decimal.Decimal       `json:"net"`
	Movements []*model.CashMovement `json:"movements"`
}

type CashService struct {
	repo   CashMovementRepository
	policy *policy.Policy
	clock  clock.Clock
}

func NewCashService(repo CashMovementRepository, p *policy.Policy, c clock.Clock) *CashService {
	return &CashService{repo: repo, policy: p, clock: c}
}

// List returns the cash ledger newest first. With a date the movements and
// the in/out totals are limited to that day.
func (s *CashService) List(ws *state.Workspace, date string) (*CashLedger, error) {
	snap := ws.Snapshot()
	if !policy.CanAccessCashLedger(snap.User) {
		return nil, ErrForbidden
	}
	if date != "" {
		if err := model.ValidateDate(date); err != nil {
			return nil, err
		}
	}
	in, out := ledger.CashTotals(snap.CashMoves, date)
	res := &CashLedger{
		Date:      date,
		In:        in,
		Out:       out,
		Net:       in.Sub(out),
		Movements: []*model.CashMovement{},
	}
	for _, m := range snap.CashMoves {
		if date == "" || m.Date == date {
			res.Movements = append(res.Movements, m)
		}
	}
	return res, nil
}

func (s *CashService) Create(ctx context.Context, ws *state.Workspace, req model.CashMovementCreateRequest) (*model.CashMovement, error) {
	u := ws.User()
	if !policy.CanAccessCashLedger(u) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.CashMovement{
		UserID:      u.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
	})
	prom.RecordMutation(string(model.KindCashMovement), "create", err)
	if err != nil {
		logger.Error("add cash movement failed", "error", err)
		return nil, err
	}
	ws.AddCashMovement(created)
	return created, nil
}

func (s *CashService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.CashMovementUpdateRequest) (*model.CashMovement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	current, ok := ws.CashMovement(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := ws.User()
	if !s.policy.CanEdit(u, current.Date) {
		return nil, ErrForbidden
	}

	patch := model.CashMovementPatch{
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Audit:       model.NewAudit(u.FullName, s.clock.Now()),
	}
	err := s.repo.Update(ctx, id, patch)
	prom.RecordMutation(string(model.KindCashMovement), "update", err)
	if err != nil {
		logger.Error("edit cash movement failed", "cash_movement_id", id, "error", err)
		return nil, err
	}
	updated := *current
	updated.Amount = patch.Amount
	updated.Description = patch.Description
	updated.Audit = patch.Audit
	ws.ReplaceCashMovement(&updated)
	return &updated, nil
}
