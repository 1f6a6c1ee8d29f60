package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"testing"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/services"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionHandler_CreateJSON(t *testing.T) {
	svc := new(MockTransactionService)
	handler := NewTransactionHandler(svc)

	body := []byte(`{"type":"ALIM","amount":"1.250,5","date":"2024-03-15","payment_method":"nakit"}`)
	ctx := setupTestContext("POST", "/api/v1/suppliers/5/transactions", body)
	ctx.SetUserValue("id", "5")
	withSession(ctx, staffUser())

	handler.Create(ctx)
	// "1.250,5" becomes "1.250.5" which is not a number
	assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	body = []byte(`{"type":"ALIM","amount":"250,5","date":"2024-03-15","description":"flour","payment_method":"nakit"}`)
	ctx = setupTestContext("POST", "/api/v1/suppliers/5/transactions", body)
	ctx.SetUserValue("id", "5")
	withSession(ctx, staffUser())

	svc.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(r model.TransactionCreateRequest) bool {
		return r.SupplierID == 5 && r.Type == model.TransactionPurchase &&
			r.Amount.Equal(decimal.RequireFromString("250.5")) && r.PaymentMethod == model.PaymentCash
	}), (*services.InvoiceFile)(nil)).Return(&model.Transaction{ID: 30, SupplierID: 5}, nil)

	handler.Create(ctx)
	assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestTransactionHandler_CreateMultipart(t *testing.T) {
	svc := new(MockTransactionService)
	handler := NewTransactionHandler(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("type", "ODEME"))
	require.NoError(t, w.WriteField("amount", "75"))
	require.NoError(t, w.WriteField("date", "2024-03-15"))
	require.NoError(t, w.WriteField("payment_method", "kredi_karti"))
	part, err := w.CreateFormFile("invoice", "receipt.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ctx := setupTestContext("POST", "/api/v1/suppliers/5/transactions", buf.Bytes())
	ctx.Request.Header.SetContentType(w.FormDataContentType())
	ctx.SetUserValue("id", "5")
	withSession(ctx, staffUser())

	svc.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(r model.TransactionCreateRequest) bool {
		return r.Type == model.TransactionPayment && r.Amount.Equal(decimal.NewFromInt(75))
	}), mock.MatchedBy(func(f *services.InvoiceFile) bool {
		return f != nil && f.Name == "receipt.pdf" && string(f.Data) == "%PDF-1.4\n"
	})).Return(&model.Transaction{ID: 31}, nil)

	handler.Create(ctx)
	assert.Equal(t, xhttp.StatusCreated, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestTransactionHandler_Update(t *testing.T) {
	svc := new(MockTransactionService)
	handler := NewTransactionHandler(svc)

	body, _ := json.Marshal(map[string]any{"amount": 90, "description": "fixed", "payment_method": "cek"})
	ctx := setupTestContext("PUT", "/api/v1/transactions/77", body)
	ctx.SetUserValue("id", "77")
	withSession(ctx, staffUser())

	svc.On("Update", mock.Anything, mock.Anything, int64(77), mock.MatchedBy(func(r model.TransactionUpdateRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(90)) && r.PaymentMethod == model.PaymentCheque
	}), (*services.InvoiceFile)(nil)).Return(nil, repository.ErrNotFound)

	handler.Update(ctx)
	assert.Equal(t, xhttp.StatusNotFound, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}
