package services

import (
	"context"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
)

type TransactionRepository interface {
	List(ctx context.Context) ([]*model.Transaction, error)
	Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p model.TransactionPatch) error
	Delete(ctx context.Context, id int64) error
}

type InvoiceUploader interface {
	Put(ctx context.Context, businessID int64, filename string, data []byte) (string, error)
}

type TransactionService struct {
	repo     TransactionRepository
	invoices InvoiceUploader
	policy   *policy.Policy
	clock    clock.Clock
}

func NewTransactionService(repo TransactionRepository, invoices InvoiceUploader, p *policy.Policy, c clock.Clock) *TransactionService {
	return &TransactionService{
		repo:     repo,
		invoices: invoices,
		policy:   p,
		clock:    c,
	}
}

func (s *TransactionService) Create(ctx context.Context, ws *state.Workspace, req model.TransactionCreateRequest, invoice *InvoiceFile) (*model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sup, ok := ws.Supplier(req.SupplierID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := ws.User()
	if !policy.CanAccessBusiness(u, sup.BusinessID) {
		return nil, ErrForbidden
	}

	created, err := s.repo.Create(ctx, &model.Transaction{
		SupplierID:    sup.ID,
		BusinessID:    sup.BusinessID,
		UserID:        u.ID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		InvoiceURL:    s.upload(ctx, sup.BusinessID, invoice),
	})
	prom.RecordMutation(string(model.KindTransaction), "create", err)
	if err != nil {
		logger.Error("add transaction failed", "supplier_id", sup.ID, "error", err)
		return nil, err
	}
	ws.AddTransaction(created)
	return created, nil
}

// Update rewrites amount, payment method, description and optionally the
// invoice. Type and date never change after creation.
func (s *TransactionService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.TransactionUpdateRequest, invoice *InvoiceFile) (*model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	current, ok := ws.Transaction(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := ws.User()
	if !policy.CanAccessBusiness(u, current.BusinessID) || !s.policy.CanEdit(u, current.Date) {
		return nil, ErrForbidden
	}

	invoiceURL := current.InvoiceURL
	if url := s.upload(ctx, current.BusinessID, invoice); url != nil {
		invoiceURL = url
	}
	patch := model.TransactionPatch{
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		InvoiceURL:    invoiceURL,
		Audit:         model.NewAudit(u.FullName, s.clock.Now()),
	}
	err := s.repo.Update(ctx, id, patch)
	prom.RecordMutation(string(model.KindTransaction), "update", err)
	if err != nil {
		logger.Error("edit transaction failed", "transaction_id", id, "error", err)
		return nil, err
	}

	updated := *current
	updated.Amount = patch.Amount
	updated.Description = patch.Description
	updated.PaymentMethod = patch.PaymentMethod
	updated.InvoiceURL = patch.InvoiceURL
	updated.Audit = patch.Audit
	ws.ReplaceTransaction(&updated)
	return &updated, nil
}

// upload stores the invoice if one was attached. A failed upload is logged
// and yields no URL; the caller carries on without it.
func (s *TransactionService) upload(ctx context.Context, businessID int64, f *InvoiceFile) *string {
	if f == nil || len(f.Data) == 0 || s.invoices == nil {
		return nil
	}
	url, err := s.invoices.Put(ctx, businessID, f.Name, f.Data)
	if err != nil {
		logger.Error("invoice upload failed", "business_id", businessID, "filename", f.Name, "error", err)
		return nil
	}
	return &url
}
