package services

import (
	"context"
	"testing"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/stretchr/testify/mock"
)

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) List(ctx context.Context) ([]*model.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Business), args.Error(1)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) List(ctx context.Context) ([]*model.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, id int64, p model.SupplierUpdateRequest) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int64, p model.TransactionPatch) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) List(ctx context.Context) ([]*model.DailyReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) FindByBusinessDate(ctx context.Context, businessID int64, date string) (*model.DailyReport, error) {
	args := m.Called(ctx, businessID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) Create(ctx context.Context, r *model.DailyReport, expenses []model.ExpenseDraft) (*model.DailyReport, error) {
	args := m.Called(ctx, r, expenses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, id int64, totals model.ReportTotals, audit model.Audit, expenses []model.ExpenseDraft) (*model.DailyReport, error) {
	args := m.Called(ctx, id, totals, audit, expenses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyReport), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCashMovementRepository struct {
	mock.Mock
}

func (m *MockCashMovementRepository) List(ctx context.Context) ([]*model.CashMovement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CashMovement), args.Error(1)
}

func (m *MockCashMovementRepository) Create(ctx context.Context, c *model.CashMovement) (*model.CashMovement, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CashMovement), args.Error(1)
}

func (m *MockCashMovementRepository) Update(ctx context.Context, id int64, p model.CashMovementPatch) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *MockCashMovementRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockInvoiceUploader struct {
	mock.Mock
}

func (m *MockInvoiceUploader) Put(ctx context.Context, businessID int64, filename string, data []byte) (string, error) {
	args := m.Called(ctx, businessID, filename, data)
	return args.String(0), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Put(ctx context.Context, obj *model.InvoiceObject) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, path string) (*model.InvoiceObject, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceObject), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

/* -------------------------------- fixtures -------------------------------- */

const today = "2024-03-15"

func testClock() clock.Fixed {
	loc, _ := time.LoadLocation("Europe/Istanbul")
	return clock.Fixed{At: time.Date(2024, 3, 15, 10, 30, 0, 0, loc), Loc: loc}
}

func testPolicy() *policy.Policy {
	return policy.New(testClock())
}

func adminUser() *model.User {
	return &model.User{ID: 1, Username: "admin", FullName: "Admin User", Role: model.RoleAdmin, AllowedBusinesses: []int64{1, 2}}
}

func staffUser() *model.User {
	return &model.User{ID: 2, Username: "staff", FullName: "Staff User", Role: model.RoleStaff, AllowedBusinesses: []int64{1}}
}

func newWorkspace(t *testing.T, u *model.User) *state.Workspace {
	t.Helper()
	ws := state.NewWorkspace(u)
	ws.SetBusinesses([]*model.Business{
		{ID: 1, Name: "Kadikoy"},
		{ID: 2, Name: "Besiktas"},
	})
	return ws
}
