package services

import (
	"context"
	"strings"

	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"github.com/shopspring/decimal"
)

type SupplierRepository interface {
	List(ctx context.Context) ([]*model.Supplier, error)
	Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	Update(ctx context.Context, id int64, p model.SupplierUpdateRequest) error
	Delete(ctx context.Context, id int64) error
}

type SupplierBalance struct {
	*model.Supplier
	Balance   decimal.Decimal  `json:"balance"`
	Direction ledger.Direction `json:"direction"`
}

type SupplierList struct {
	BusinessID int64              `json:"business_id"`
	TotalDebt  decimal.Decimal    `json:"total_debt"`
	Suppliers  []*SupplierBalance `json:"suppliers"`
}

type SupplierDetail struct {
	SupplierBalance
	Transactions []*model.Transaction `json:"transactions"`
}

type SupplierService struct {
	repo SupplierRepository
}

func NewSupplierService(repo SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

// List returns the suppliers of a business with their balances. The total
// debt always covers every supplier of the business, search or not.
func (s *SupplierService) List(ws *state.Workspace, businessID int64, search string) (*SupplierList, error) {
	snap := ws.Snapshot()
	if !policy.CanAccessBusiness(snap.User, businessID) {
		return nil, ErrForbidden
	}
	needle := strings.ToLower(strings.TrimSpace(search))

	out := &SupplierList{
		BusinessID: businessID,
		TotalDebt:  ledger.BusinessTotalDebt(snap.Suppliers, snap.Transactions, businessID),
		Suppliers:  []*SupplierBalance{},
	}
	for _, sup := range snap.Suppliers {
		if sup.BusinessID != businessID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(sup.Name), needle) {
			continue
		}
		out.Suppliers = append(out.Suppliers, balanceOf(sup, snap.Transactions))
	}
	return out, nil
}

func (s *SupplierService) Get(ws *state.Workspace, id int64) (*SupplierDetail, error) {
	sup, ok := ws.Supplier(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	snap := ws.Snapshot()
	if !policy.CanAccessBusiness(snap.User, sup.BusinessID) {
		return nil, ErrForbidden
	}
	txs := []*model.Transaction{}
	for _, t := range snap.Transactions {
		if t.SupplierID == id {
			txs = append(txs, t)
		}
	}
	return &SupplierDetail{SupplierBalance: *balanceOf(sup, snap.Transactions), Transactions: txs}, nil
}

func (s *SupplierService) Create(ctx context.Context, ws *state.Workspace, req model.SupplierCreateRequest) (*model.Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !policy.CanAccessBusiness(ws.User(), req.BusinessID) {
		return nil, ErrForbidden
	}

	created, err := s.repo.Create(ctx, &model.Supplier{
		BusinessID: req.BusinessID,
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Notes:      req.Notes,
	})
	prom.RecordMutation(string(model.KindSupplier), "create", err)
	if err != nil {
		logger.Error("add supplier failed", "business_id", req.BusinessID, "error", err)
		return nil, err
	}
	ws.AddSupplier(created)
	return created, nil
}

func (s *SupplierService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.SupplierUpdateRequest) (*model.Supplier, error) {
	if !policy.CanManageSuppliers(ws.User()) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	current, ok := ws.Supplier(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !policy.CanAccessBusiness(ws.User(), current.BusinessID) {
		return nil, ErrForbidden
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	err := s.repo.Update(ctx, id, req)
	prom.RecordMutation(string(model.KindSupplier), "update", err)
	if err != nil {
		logger.Error("edit supplier failed", "supplier_id", id, "error", err)
		return nil, err
	}
	updated := *current
	updated.Name = req.Name
	updated.Phone = req.Phone
	updated.Notes = req.Notes
	ws.ReplaceSupplier(&updated)
	return &updated, nil
}

func balanceOf(sup *model.Supplier, txs []*model.Transaction) *SupplierBalance {
	bal := ledger.SupplierBalance(txs, sup.ID)
	return &SupplierBalance{
		Supplier:  sup,
		Balance:   bal,
		Direction: ledger.BalanceDirection(bal),
	}
}
