package handlers

import (
	"context"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type InvoiceService interface {
	Open(ctx context.Context, path string) (*model.InvoiceObject, error)
}

type InvoiceHandler struct {
	invoiceService InvoiceService
}

// RegisterInvoiceRoutes mounts the public invoice URLs at the router root.
func RegisterInvoiceRoutes(r *xhttp.Router, h *InvoiceHandler) {
	r.GET(services.InvoiceRoute+"{filepath:*}", h.Get)
}

func NewInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

func (h *InvoiceHandler) Get(ctx *xhttp.RequestCtx) {
	path, _ := ctx.UserValue("filepath").(string)
	if path == "" {
		writeError(ctx, xhttp.StatusNotFound, "not found")
		return
	}
	obj, err := h.invoiceService.Open(ctx, path)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Type", obj.ContentType)
	ctx.Response.Header.Set("Cache-Control", "private, max-age=86400")
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(obj.Data)
}
