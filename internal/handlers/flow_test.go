package handlers_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/handlers"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/policy"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/session"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"github.com/nimasrn/outlet-ledger/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestEnvironment struct {
	DB      *pg.DB
	Redis   *miniredis.Miniredis
	Handler xhttp.RequestHandler
}

func setupFlowEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.UserBusinessEntity{},
		&repository.BusinessEntity{},
		&repository.SupplierEntity{},
		&repository.TransactionEntity{},
		&repository.DailyReportEntity{},
		&repository.ExpenseEntity{},
		&repository.CashMovementEntity{},
		&repository.InvoiceObjectEntity{},
	)
	require.NoError(t, err)
	pgDB := pg.New(db, db)

	mr := miniredis.RunT(t)
	adapter, err := redis.NewRedisAdapter(t.Name(), "test:", &redis.Options{Addrs: []string{mr.Addr()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Client().Close() })

	ctx := context.Background()
	businessRepo := repository.NewBusinessRepository(pgDB)
	userRepo := repository.NewUserRepository(pgDB)
	kadikoy, err := businessRepo.Create(ctx, "Kadikoy")
	require.NoError(t, err)
	_, err = businessRepo.Create(ctx, "Besiktas")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = userRepo.Create(ctx, &model.User{Username: "staff", PasswordHash: string(hash), FullName: "Staff User",
		Role: model.RoleStaff, AllowedBusinesses: []int64{kadikoy.ID}})
	require.NoError(t, err)
	_, err = userRepo.Create(ctx, &model.User{Username: "admin", PasswordHash: string(hash), FullName: "Admin User",
		Role: model.RoleAdmin, AllowedBusinesses: []int64{kadikoy.ID}})
	require.NoError(t, err)

	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	businessClock := clock.Fixed{At: time.Date(2024, 3, 15, 10, 30, 0, 0, loc), Loc: loc}
	editPolicy := policy.New(businessClock)

	supplierRepo := repository.NewSupplierRepository(pgDB)
	transactionRepo := repository.NewTransactionRepository(pgDB)
	reportRepo := repository.NewDailyReportRepository(pgDB)
	cashRepo := repository.NewCashMovementRepository(pgDB)

	workspaceService := services.NewWorkspaceService(businessRepo, supplierRepo, transactionRepo, reportRepo, cashRepo)
	authService := services.NewAuthService(userRepo, session.NewStore(adapter, time.Hour, 720*time.Hour), workspaceService)
	invoiceService := services.NewInvoiceService(repository.NewInvoiceRepository(pgDB), "http://ledger.test", 1<<20)

	r := xhttp.CreateDefaultRouter()
	auth := handlers.AuthMiddleware(authService)
	g := r.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, handlers.NewAuthHandler(authService), auth)
	handlers.RegisterWorkspaceRoutes(g, handlers.NewWorkspaceHandler(workspaceService), auth)
	handlers.RegisterSupplierRoutes(g, handlers.NewSupplierHandler(services.NewSupplierService(supplierRepo)), auth)
	handlers.RegisterTransactionRoutes(g, handlers.NewTransactionHandler(
		services.NewTransactionService(transactionRepo, invoiceService, editPolicy, businessClock)), auth)
	handlers.RegisterReportRoutes(g, handlers.NewReportHandler(services.NewReportService(reportRepo, editPolicy, businessClock)), auth)
	handlers.RegisterCashRoutes(g, handlers.NewCashHandler(services.NewCashService(cashRepo, editPolicy, businessClock)), auth)
	handlers.RegisterSummaryRoutes(g, handlers.NewSummaryHandler(services.NewSummaryService(editPolicy)), auth)
	handlers.RegisterDeletionRoutes(g, handlers.NewDeletionHandler(
		services.NewDeletionService(supplierRepo, transactionRepo, reportRepo, cashRepo, editPolicy)), auth)
	handlers.RegisterInvoiceRoutes(r, handlers.NewInvoiceHandler(invoiceService))

	return &TestEnvironment{DB: pgDB, Redis: mr, Handler: r.Handler}
}

type response struct {
	status int
	body   []byte
}

func (e *TestEnvironment) do(t *testing.T, method, path, token, body string) response {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	e.Handler(ctx)
	return response{status: ctx.Response.StatusCode(), body: append([]byte(nil), ctx.Response.Body()...)}
}

func (e *TestEnvironment) login(t *testing.T, username string) string {
	t.Helper()
	res := e.do(t, "POST", "/api/v1/auth/login", "", `{"username":"`+username+`","password":"secret1"}`)
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decodeID(t *testing.T, res response) int64 {
	t.Helper()
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.body, &out), string(res.body))
	return out.ID
}

func TestFlow_SupplierLedger(t *testing.T) {
	env := setupFlowEnvironment(t)
	token := env.login(t, "staff")

	res := env.do(t, "POST", "/api/v1/businesses/1/suppliers", token, `{"name":"Ayran AS","phone":"0555"}`)
	require.Equal(t, xhttp.StatusCreated, res.status, string(res.body))
	supplierID := decodeID(t, res)

	res = env.do(t, "POST", "/api/v1/businesses/2/suppliers", token, `{"name":"Elsewhere"}`)
	assert.Equal(t, xhttp.StatusForbidden, res.status)

	res = env.do(t, "POST", "/api/v1/suppliers/1/transactions", token,
		`{"type":"ALIM","amount":"100","date":"2024-03-15","payment_method":"nakit"}`)
	require.Equal(t, xhttp.StatusCreated, res.status, string(res.body))
	purchaseID := decodeID(t, res)

	res = env.do(t, "POST", "/api/v1/suppliers/1/transactions", token,
		`{"type":"ODEME","amount":"40,00","date":"2024-03-15","payment_method":"kredi_karti"}`)
	require.Equal(t, xhttp.StatusCreated, res.status, string(res.body))

	res = env.do(t, "GET", "/api/v1/businesses/1/suppliers", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	var list struct {
		TotalDebt string `json:"total_debt"`
		Suppliers []struct {
			ID        int64  `json:"id"`
			Balance   string `json:"balance"`
			Direction string `json:"direction"`
		} `json:"suppliers"`
	}
	require.NoError(t, json.Unmarshal(res.body, &list))
	assert.Equal(t, "60", list.TotalDebt)
	require.Len(t, list.Suppliers, 1)
	assert.Equal(t, supplierID, list.Suppliers[0].ID)
	assert.Equal(t, "debt", list.Suppliers[0].Direction)

	res = env.do(t, "PUT", "/api/v1/transactions/1", token, `{"amount":"120","payment_method":"nakit"}`)
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	assert.Contains(t, string(res.body), `"updated_by_name":"Staff User"`)

	// two confirmations before the purchase is gone
	res = env.do(t, "POST", "/api/v1/deletions", token, `{"kind":"transaction","id":1}`)
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	assert.Contains(t, string(res.body), `"stage":"confirm1"`)
	res = env.do(t, "POST", "/api/v1/deletions/confirm", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	assert.Contains(t, string(res.body), `"stage":"confirm2"`)
	res = env.do(t, "POST", "/api/v1/deletions/confirm", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	assert.Contains(t, string(res.body), `"stage":"idle"`)

	var remaining int64
	require.NoError(t, env.DB.Read(context.Background()).Model(&repository.TransactionEntity{}).
		Where("id = ?", purchaseID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	res = env.do(t, "GET", "/api/v1/suppliers/1", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	assert.Contains(t, string(res.body), `"direction":"credit"`)
}

func TestFlow_DailyReportAndSummary(t *testing.T) {
	env := setupFlowEnvironment(t)
	staff := env.login(t, "staff")

	draft := `{"mode":"add","business_id":1,"date":"2024-03-15","credit_card":"400","cash":"1000","meal_cards":"100",
		"actual_cash":"950","expenses":[{"description":"ice","amount":"50"}]}`
	res := env.do(t, "POST", "/api/v1/reports/draft", staff, draft)
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	assert.Contains(t, string(res.body), `"expense_count":1`)

	res = env.do(t, "POST", "/api/v1/reports/draft/accept", staff, "")
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	assert.Contains(t, string(res.body), `"cash_difference":"0"`)

	res = env.do(t, "POST", "/api/v1/reports/draft", staff, draft)
	assert.Equal(t, xhttp.StatusConflict, res.status)

	res = env.do(t, "GET", "/api/v1/summary?date=2024-03-15", staff, "")
	assert.Equal(t, xhttp.StatusForbidden, res.status)

	admin := env.login(t, "admin")
	res = env.do(t, "GET", "/api/v1/summary?date=2024-03-15", admin, "")
	require.Equal(t, xhttp.StatusOK, res.status, string(res.body))
	var sum struct {
		Total    string `json:"total"`
		NetTotal string `json:"net_total"`
	}
	require.NoError(t, json.Unmarshal(res.body, &sum))
	assert.Equal(t, "1500", sum.Total)
	assert.Equal(t, "1450", sum.NetTotal)
}

func TestFlow_SessionLifecycle(t *testing.T) {
	env := setupFlowEnvironment(t)

	res := env.do(t, "POST", "/api/v1/auth/login", "", `{"username":"staff","password":"wrong1"}`)
	assert.Equal(t, xhttp.StatusUnauthorized, res.status)

	token := env.login(t, "staff")
	res = env.do(t, "GET", "/api/v1/businesses", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	assert.Contains(t, string(res.body), "Kadikoy")
	assert.NotContains(t, string(res.body), "Besiktas")

	res = env.do(t, "POST", "/api/v1/cash-movements", token, `{"type":"IN","amount":"300","description":"float","date":"2024-03-15"}`)
	require.Equal(t, xhttp.StatusCreated, res.status, string(res.body))
	res = env.do(t, "GET", "/api/v1/cash-movements?date=2024-03-15", token, "")
	require.Equal(t, xhttp.StatusOK, res.status)
	assert.Contains(t, string(res.body), `"net":"300"`)

	res = env.do(t, "POST", "/api/v1/auth/logout", token, "")
	assert.Equal(t, xhttp.StatusNoContent, res.status)

	res = env.do(t, "GET", "/api/v1/auth/me", token, "")
	assert.Equal(t, xhttp.StatusUnauthorized, res.status)
	assert.Empty(t, env.Redis.Keys())
}
