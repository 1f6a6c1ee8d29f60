package handlers

import (
	"context"

	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/stretchr/testify/mock"
	"github.com/valyala/fasthttp"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string, remember bool) (*services.Session, error) {
	args := m.Called(ctx, username, password, remember)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Resume(ctx context.Context, token string) (*services.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Load(ctx context.Context, ws *state.Workspace) []string {
	args := m.Called(ctx, ws)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockWorkspaceService) AllowedBusinesses(ws *state.Workspace) []*model.Business {
	args := m.Called(ws)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*model.Business)
}

type MockSupplierService struct {
	mock.Mock
}

func (m *MockSupplierService) List(ws *state.Workspace, businessID int64, search string) (*services.SupplierList, error) {
	args := m.Called(ws, businessID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SupplierList), args.Error(1)
}

func (m *MockSupplierService) Get(ws *state.Workspace, id int64) (*services.SupplierDetail, error) {
	args := m.Called(ws, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SupplierDetail), args.Error(1)
}

func (m *MockSupplierService) Create(ctx context.Context, ws *state.Workspace, req model.SupplierCreateRequest) (*model.Supplier, error) {
	args := m.Called(ctx, ws, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

func (m *MockSupplierService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.SupplierUpdateRequest) (*model.Supplier, error) {
	args := m.Called(ctx, ws, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Supplier), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, ws *state.Workspace, req model.TransactionCreateRequest, invoice *services.InvoiceFile) (*model.Transaction, error) {
	args := m.Called(ctx, ws, req, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.TransactionUpdateRequest, invoice *services.InvoiceFile) (*model.Transaction, error) {
	args := m.Called(ctx, ws, id, req, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) List(ws *state.Workspace, businessID int64, date string) ([]*services.ReportView, error) {
	args := m.Called(ws, businessID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*services.ReportView), args.Error(1)
}

func (m *MockReportService) RequestSave(ws *state.Workspace, mode workflow.SaveMode, draft model.ReportDraft) (workflow.SavePrompt, error) {
	args := m.Called(ws, mode, draft)
	return args.Get(0).(workflow.SavePrompt), args.Error(1)
}

func (m *MockReportService) Draft(ws *state.Workspace) services.DraftState {
	return m.Called(ws).Get(0).(services.DraftState)
}

func (m *MockReportService) Decline(ws *state.Workspace) (services.DraftState, error) {
	args := m.Called(ws)
	return args.Get(0).(services.DraftState), args.Error(1)
}

func (m *MockReportService) Accept(ctx context.Context, ws *state.Workspace) (*services.ReportView, error) {
	args := m.Called(ctx, ws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReportView), args.Error(1)
}

type MockCashService struct {
	mock.Mock
}

func (m *MockCashService) List(ws *state.Workspace, date string) (*services.CashLedger, error) {
	args := m.Called(ws, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CashLedger), args.Error(1)
}

func (m *MockCashService) Create(ctx context.Context, ws *state.Workspace, req model.CashMovementCreateRequest) (*model.CashMovement, error) {
	args := m.Called(ctx, ws, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CashMovement), args.Error(1)
}

func (m *MockCashService) Update(ctx context.Context, ws *state.Workspace, id int64, req model.CashMovementUpdateRequest) (*model.CashMovement, error) {
	args := m.Called(ctx, ws, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CashMovement), args.Error(1)
}

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Daily(ws *state.Workspace, date string) (ledger.Summary, error) {
	args := m.Called(ws, date)
	return args.Get(0).(ledger.Summary), args.Error(1)
}

func (m *MockSummaryService) RecentEdits(ws *state.Workspace, kind model.EntityKind) ([]ledger.Edit, error) {
	args := m.Called(ws, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Edit), args.Error(1)
}

type MockDeletionService struct {
	mock.Mock
}

func (m *MockDeletionService) State(ws *state.Workspace) workflow.DeleteFlow {
	return m.Called(ws).Get(0).(workflow.DeleteFlow)
}

func (m *MockDeletionService) Initiate(ws *state.Workspace, kind model.EntityKind, id int64) (workflow.DeleteFlow, error) {
	args := m.Called(ws, kind, id)
	return args.Get(0).(workflow.DeleteFlow), args.Error(1)
}

func (m *MockDeletionService) Confirm(ctx context.Context, ws *state.Workspace) (*services.DeleteResult, error) {
	args := m.Called(ctx, ws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DeleteResult), args.Error(1)
}

func (m *MockDeletionService) Cancel(ws *state.Workspace) (workflow.DeleteFlow, error) {
	args := m.Called(ws)
	return args.Get(0).(workflow.DeleteFlow), args.Error(1)
}

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Open(ctx context.Context, path string) (*model.InvoiceObject, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceObject), args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Get() error {
	return m.Called().Error(0)
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

// withSession attaches a session the way AuthMiddleware would.
func withSession(ctx *xhttp.RequestCtx, u *model.User) *state.Workspace {
	ws := state.NewWorkspace(u)
	ctx.SetUserValue(sessionKey, &services.Session{Token: "tok", Workspace: ws})
	return ws
}

func staffUser() *model.User {
	return &model.User{ID: 2, Username: "staff", FullName: "Staff User", Role: model.RoleStaff, AllowedBusinesses: []int64{1}}
}

func adminUser() *model.User {
	return &model.User{ID: 1, Username: "admin", FullName: "Admin User", Role: model.RoleAdmin, AllowedBusinesses: []int64{1, 2}}
}
