package services

import (
	"context"
	"sync"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"github.com/nimasrn/outlet-ledger/pkg/worker"
)

const loadWorkers = 5

type BusinessRepository interface {
	List(ctx context.Context) ([]*model.Business, error)
}

type heldWorkspace struct {
	ws        *state.Workspace
	expiresAt time.Time
}

// WorkspaceService loads reference data into per-session workspaces and
// keeps them keyed by session token until the session expires.
type WorkspaceService struct {
	businesses   BusinessRepository
	suppliers    SupplierRepository
	transactions TransactionRepository
	reports      ReportRepository
	cash         CashMovementRepository

	mu   sync.Mutex
	open map[string]heldWorkspace
	now  func() time.Time
}

func NewWorkspaceService(businesses BusinessRepository, suppliers SupplierRepository, transactions TransactionRepository, reports ReportRepository, cash CashMovementRepository) *WorkspaceService {
	return &WorkspaceService{
		businesses:   businesses,
		suppliers:    suppliers,
		transactions: transactions,
		reports:      reports,
		cash:         cash,
		open:         make(map[string]heldWorkspace),
		now:          time.Now,
	}
}

// Open returns the workspace held for token, loading a new one if there is
// none. Concurrent callers for the same token all get the first stored one.
func (s *WorkspaceService) Open(ctx context.Context, token string, u *model.User, ttl time.Duration) *state.Workspace {
	if ws, ok := s.Get(token); ok {
		return ws
	}
	ws := state.NewWorkspace(u)
	s.Load(ctx, ws)

	s.mu.Lock()
	defer s.mu.Unlock()
	if held, ok := s.open[token]; ok && s.now().Before(held.expiresAt) {
		return held.ws
	}
	s.open[token] = heldWorkspace{ws: ws, expiresAt: s.now().Add(ttl)}
	return ws
}

func (s *WorkspaceService) Get(token string) (*state.Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := s.open[token]
	if !ok {
		return nil, false
	}
	if !s.now().Before(held.expiresAt) {
		delete(s.open, token)
		return nil, false
	}
	return held.ws, true
}

func (s *WorkspaceService) Drop(token string) {
	s.mu.Lock()
	delete(s.open, token)
	s.mu.Unlock()
}

func (s *WorkspaceService) Held() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Sweep drops expired workspaces and those whose session alive reports gone.
// A token alive fails on is kept. It returns how many were dropped.
func (s *WorkspaceService) Sweep(ctx context.Context, alive func(ctx context.Context, token string) (bool, error)) int {
	s.mu.Lock()
	dropped := 0
	tokens := make([]string, 0, len(s.open))
	for token, held := range s.open {
		if !s.now().Before(held.expiresAt) {
			delete(s.open, token)
			dropped++
			continue
		}
		tokens = append(tokens, token)
	}
	s.mu.Unlock()

	for _, token := range tokens {
		ok, err := alive(ctx, token)
		if err != nil {
			logger.Warn("workspace sweep: session check failed", "error", err)
			continue
		}
		if !ok {
			s.Drop(token)
			dropped++
		}
	}
	return dropped
}

// Load fetches every collection concurrently. A collection that fails to load
// is logged and keeps whatever the workspace held before; the names of the
// failed collections are returned in load order.
func (s *WorkspaceService) Load(ctx context.Context, ws *state.Workspace) []string {
	collections := []string{"businesses", "suppliers", "transactions", "reports", "cash_movements"}
	errs := worker.Run(ctx, loadWorkers,
		func(ctx context.Context) error {
			items, err := s.businesses.List(ctx)
			if err == nil {
				ws.SetBusinesses(items)
			}
			return err
		},
		func(ctx context.Context) error {
			items, err := s.suppliers.List(ctx)
			if err == nil {
				ws.SetSuppliers(items)
			}
			return err
		},
		func(ctx context.Context) error {
			items, err := s.transactions.List(ctx)
			if err == nil {
				ws.SetTransactions(items)
			}
			return err
		},
		func(ctx context.Context) error {
			items, err := s.reports.List(ctx)
			if err == nil {
				ws.SetReports(items)
			}
			return err
		},
		func(ctx context.Context) error {
			items, err := s.cash.List(ctx)
			if err == nil {
				ws.SetCashMovements(items)
			}
			return err
		},
	)

	var failed []string
	for i, err := range errs {
		prom.RecordWorkspaceLoad(collections[i], err)
		if err != nil {
			logger.Error("workspace load failed", "collection", collections[i], "error", err)
			failed = append(failed, collections[i])
		}
	}
	return failed
}

// AllowedBusinesses is the subset of loaded businesses the session user may open.
func (s *WorkspaceService) AllowedBusinesses(ws *state.Workspace) []*model.Business {
	snap := ws.Snapshot()
	out := make([]*model.Business, 0, len(snap.Businesses))
	for _, b := range snap.Businesses {
		if snap.User.AllowedIn(b.ID) {
			out = append(out, b)
		}
	}
	return out
}
