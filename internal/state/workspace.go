// Package state keeps the in-memory copy of everything one session has
// loaded, plus that session's confirmation workflows.
package state

import (
	"slices"
	"sync"

	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
)

// Workspace is safe for concurrent use. Rows are treated as immutable: a
// patch swaps the pointer in the slice and never writes through it, so the
// slices handed out by Snapshot can be read without the lock.
type Workspace struct {
	mu sync.Mutex

	user         *model.User
	businesses   []*model.Business
	suppliers    []*model.Supplier
	transactions []*model.Transaction
	reports      []*model.DailyReport
	cash         []*model.CashMovement

	deletion workflow.DeleteFlow
	save     workflow.SaveGate
}

type Snapshot struct {
	User         *model.User
	Businesses   []*model.Business
	Suppliers    []*model.Supplier
	Transactions []*model.Transaction
	Reports      []*model.DailyReport
	CashMoves    []*model.CashMovement
}

func NewWorkspace(u *model.User) *Workspace {
	return &Workspace{
		user:     u,
		deletion: workflow.NewDeleteFlow(),
		save:     workflow.NewSaveGate(),
	}
}

func (w *Workspace) User() *model.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		User:         w.user,
		Businesses:   slices.Clone(w.businesses),
		Suppliers:    slices.Clone(w.suppliers),
		Transactions: slices.Clone(w.transactions),
		Reports:      slices.Clone(w.reports),
		CashMoves:    slices.Clone(w.cash),
	}
}

/* ------------------------------- loading ---------------------------------- */

func (w *Workspace) SetBusinesses(items []*model.Business) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.businesses = items
}

func (w *Workspace) SetSuppliers(items []*model.Supplier) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppliers = items
}

func (w *Workspace) SetTransactions(items []*model.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transactions = items
}

func (w *Workspace) SetReports(items []*model.DailyReport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = items
}

func (w *Workspace) SetCashMovements(items []*model.CashMovement) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cash = items
}

/* -------------------------------- lookups --------------------------------- */

func (w *Workspace) Supplier(id int64) (*model.Supplier, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return find(w.suppliers, id, supplierID)
}

func (w *Workspace) Transaction(id int64) (*model.Transaction, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return find(w.transactions, id, transactionID)
}

func (w *Workspace) Report(id int64) (*model.DailyReport, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return find(w.reports, id, reportID)
}

func (w *Workspace) ReportByDate(businessID int64, date string) (*model.DailyReport, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := ledger.ReportFor(w.reports, businessID, date)
	return r, r != nil
}

func (w *Workspace) CashMovement(id int64) (*model.CashMovement, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return find(w.cash, id, cashID)
}

/* -------------------------------- patches --------------------------------- */

func (w *Workspace) AddSupplier(s *model.Supplier) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppliers = append(w.suppliers, s)
}

func (w *Workspace) ReplaceSupplier(s *model.Supplier) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppliers = replace(w.suppliers, s, supplierID)
}

// RemoveSupplier drops the supplier together with its transactions.
func (w *Workspace) RemoveSupplier(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppliers = remove(w.suppliers, id, supplierID)
	w.transactions = slices.DeleteFunc(slices.Clone(w.transactions), func(t *model.Transaction) bool {
		return t.SupplierID == id
	})
}

// AddTransaction puts the new row first, matching the newest-first load order.
func (w *Workspace) AddTransaction(t *model.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transactions = prepend(w.transactions, t)
}

func (w *Workspace) ReplaceTransaction(t *model.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transactions = replace(w.transactions, t, transactionID)
}

func (w *Workspace) RemoveTransaction(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transactions = remove(w.transactions, id, transactionID)
}

func (w *Workspace) AddReport(r *model.DailyReport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = prepend(w.reports, r)
}

func (w *Workspace) ReplaceReport(r *model.DailyReport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = replace(w.reports, r, reportID)
}

func (w *Workspace) RemoveReport(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = remove(w.reports, id, reportID)
}

func (w *Workspace) AddCashMovement(m *model.CashMovement) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cash = prepend(w.cash, m)
}

func (w *Workspace) ReplaceCashMovement(m *model.CashMovement) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cash = replace(w.cash, m, cashID)
}

func (w *Workspace) RemoveCashMovement(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cash = remove(w.cash, id, cashID)
}

/* ------------------------------- workflows -------------------------------- */

func (w *Workspace) DeleteFlow() workflow.DeleteFlow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.deletion
}

// UpdateDeleteFlow applies a transition atomically. The state is only
// replaced when fn succeeds.
func (w *Workspace) UpdateDeleteFlow(fn func(workflow.DeleteFlow) (workflow.DeleteFlow, error)) (workflow.DeleteFlow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := fn(w.deletion)
	if err != nil {
		return w.deletion, err
	}
	w.deletion = next
	return next, nil
}

func (w *Workspace) SaveGate() workflow.SaveGate {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.save
}

func (w *Workspace) UpdateSaveGate(fn func(workflow.SaveGate) (workflow.SaveGate, error)) (workflow.SaveGate, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, err := fn(w.save)
	if err != nil {
		return w.save, err
	}
	w.save = next
	return next, nil
}

/* -------------------------------- helpers --------------------------------- */

func supplierID(s *model.Supplier) int64       { return s.ID }
func transactionID(t *model.Transaction) int64 { return t.ID }
func reportID(r *model.DailyReport) int64      { return r.ID }
func cashID(m *model.CashMovement) int64       { return m.ID }

func find[T any](items []T, id int64, key func(T) int64) (T, bool) {
	for _, it := range items {
		if key(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

func replace[T any](items []T, v T, key func(T) int64) []T {
	out := slices.Clone(items)
	id := key(v)
	for i, it := range out {
		if key(it) == id {
			out[i] = v
		}
	}
	return out
}

func remove[T any](items []T, id int64, key func(T) int64) []T {
	return slices.DeleteFunc(slices.Clone(items), func(it T) bool {
		return key(it) == id
	})
}
