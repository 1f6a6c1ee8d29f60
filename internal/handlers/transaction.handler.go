package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/valyala/fasthttp"
)

const invoiceField = "invoice"

type TransactionService interface {
	Create(ctx context.Context, ws *state.Workspace, req model.TransactionCreateRequest, invoice *services.InvoiceFile) (*model.Transaction, error)
	Update(ctx context.Context, ws *state.Workspace, id int64, req model.TransactionUpdateRequest, invoice *services.InvoiceFile) (*model.Transaction, error)
}

type TransactionHandler struct {
	transactionService TransactionService
}

type transactionRequest struct {
	Type          model.TransactionType `json:"type"`
	Amount        amount                `json:"amount"`
	Date          string                `json:"date"`
	Description   string                `json:"description"`
	PaymentMethod model.PaymentMethod   `json:"payment_method"`
}

func RegisterTransactionRoutes(g *router.Group, h *TransactionHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/suppliers/{id}/transactions", auth(h.Create))
	g.PUT("/transactions/{id}", auth(h.Update))
}

func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) Create(ctx *xhttp.RequestCtx) {
	supplierID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	req, invoice, err := readTransaction(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	amt, err := req.Amount.Decimal()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	tx, err := h.transactionService.Create(ctx, workspace(ctx), model.TransactionCreateRequest{
		SupplierID:    supplierID,
		Type:          req.Type,
		Amount:        amt,
		Date:          req.Date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}, invoice)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, tx)
}

func (h *TransactionHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	req, invoice, err := readTransaction(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	amt, err := req.Amount.Decimal()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	tx, err := h.transactionService.Update(ctx, workspace(ctx), id, model.TransactionUpdateRequest{
		Amount:        amt,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}, invoice)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, tx)
}

// readTransaction accepts either a JSON body or a multipart form whose
// optional "invoice" part carries the attachment.
func readTransaction(ctx *xhttp.RequestCtx) (transactionRequest, *services.InvoiceFile, error) {
	var req transactionRequest
	if !bytes.HasPrefix(ctx.Request.Header.ContentType(), []byte("multipart/form-data")) {
		if err := readJSON(ctx, &req); err != nil {
			return req, nil, fmt.Errorf("%w: invalid JSON", model.ErrInvalidInput)
		}
		return req, nil, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return req, nil, fmt.Errorf("%w: %s", model.ErrInvalidInput, err)
	}
	req.Type = model.TransactionType(formValue(form, "type"))
	req.Amount = amount(formValue(form, "amount"))
	req.Date = formValue(form, "date")
	req.Description = formValue(form, "description")
	req.PaymentMethod = model.PaymentMethod(formValue(form, "payment_method"))

	fh, err := ctx.FormFile(invoiceField)
	if errors.Is(err, fasthttp.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return req, nil, fmt.Errorf("%w: %s", model.ErrInvalidInput, err)
	}
	f, err := fh.Open()
	if err != nil {
		return req, nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return req, nil, err
	}
	return req, &services.InvoiceFile{Name: fh.Filename, Data: data}, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
