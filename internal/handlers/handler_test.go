package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidCredentials, xhttp.StatusUnauthorized},
		{services.ErrUnauthorized, xhttp.StatusUnauthorized},
		{services.ErrForbidden, xhttp.StatusForbidden},
		{fmt.Errorf("find: %w", repository.ErrNotFound), xhttp.StatusNotFound},
		{repository.ErrDuplicateReport, xhttp.StatusConflict},
		{workflow.ErrInvalidTransition, xhttp.StatusConflict},
		{services.ErrInvoiceTooLarge, xhttp.StatusRequestEntityTooLarge},
		{services.ErrInvoiceType, xhttp.StatusBadRequest},
		{fmt.Errorf("%w: date is required", model.ErrInvalidInput), xhttp.StatusBadRequest},
		{fmt.Errorf("%w: %w", services.ErrReportSaveFailed, repository.ErrDuplicateReport), xhttp.StatusInternalServerError},
		{errors.New("boom"), xhttp.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var req struct {
		A amount `json:"a"`
		B amount `json:"b"`
		C amount `json:"c"`
		D amount `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12,5","b":40.25,"c":null,"d":"abc"}`), &req))

	a, err := req.A.Decimal()
	require.NoError(t, err)
	assert.True(t, a.Equal(decimal.RequireFromString("12.5")))

	b, err := req.B.Decimal()
	require.NoError(t, err)
	assert.True(t, b.Equal(decimal.RequireFromString("40.25")))

	c, err := req.C.Decimal()
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = req.D.Decimal()
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAuthMiddleware(t *testing.T) {
	reached := false
	next := func(ctx *xhttp.RequestCtx) {
		reached = true
		require.NotNil(t, currentSession(ctx))
		ctx.SetStatusCode(xhttp.StatusOK)
	}

	t.Run("missing token", func(t *testing.T) {
		reached = false
		auth := new(MockAuthService)
		ctx := setupTestContext("GET", "/api/v1/businesses", nil)

		AuthMiddleware(auth)(next)(ctx)

		assert.Equal(t, xhttp.StatusUnauthorized, ctx.Response.StatusCode())
		assert.False(t, reached)
		auth.AssertNotCalled(t, "Resume", mock.Anything, mock.Anything)
	})

	t.Run("expired session", func(t *testing.T) {
		reached = false
		auth := new(MockAuthService)
		auth.On("Resume", mock.Anything, "stale").Return(nil, services.ErrUnauthorized)
		ctx := setupTestContext("GET", "/api/v1/businesses", nil)
		ctx.Request.Header.Set("Authorization", "Bearer stale")

		AuthMiddleware(auth)(next)(ctx)

		assert.Equal(t, xhttp.StatusUnauthorized, ctx.Response.StatusCode())
		assert.False(t, reached)
	})

	t.Run("valid session", func(t *testing.T) {
		reached = false
		auth := new(MockAuthService)
		sess := &services.Session{Token: "tok", Workspace: state.NewWorkspace(staffUser())}
		auth.On("Resume", mock.Anything, "tok").Return(sess, nil)
		ctx := setupTestContext("GET", "/api/v1/businesses", nil)
		ctx.Request.Header.Set("Authorization", "bearer tok")

		AuthMiddleware(auth)(next)(ctx)

		assert.True(t, reached)
		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
		auth.AssertExpectations(t)
	})
}

func TestPathInt64(t *testing.T) {
	ctx := setupTestContext("GET", "/suppliers/7", nil)
	ctx.SetUserValue("id", "7")
	id, err := pathInt64(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	ctx.SetUserValue("id", "-1")
	_, err = pathInt64(ctx, "id")
	assert.Error(t, err)

	ctx.SetUserValue("id", "abc")
	_, err = pathInt64(ctx, "id")
	assert.Error(t, err)
}
