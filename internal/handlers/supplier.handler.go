package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type SupplierService interface {
	List(ws *state.Workspace, businessID int64, search string) (*services.SupplierList, error)
	Get(ws *state.Workspace, id int64) (*services.SupplierDetail, error)
	Create(ctx context.Context, ws *state.Workspace, req model.SupplierCreateRequest) (*model.Supplier, error)
	Update(ctx context.Context, ws *state.Workspace, id int64, req model.SupplierUpdateRequest) (*model.Supplier, error)
}

type SupplierHandler struct {
	supplierService SupplierService
}

type supplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func RegisterSupplierRoutes(g *router.Group, h *SupplierHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/businesses/{id}/suppliers", auth(h.List))
	g.POST("/businesses/{id}/suppliers", auth(h.Create))
	g.GET("/suppliers/{id}", auth(h.Get))
	g.PUT("/suppliers/{id}", auth(h.Update))
}

func NewSupplierHandler(supplierService SupplierService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
	}
}

func (h *SupplierHandler) List(ctx *xhttp.RequestCtx) {
	businessID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	list, err := h.supplierService.List(workspace(ctx), businessID, query(ctx, "q"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, list)
}

func (h *SupplierHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	detail, err := h.supplierService.Get(workspace(ctx), id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, detail)
}

func (h *SupplierHandler) Create(ctx *xhttp.RequestCtx) {
	businessID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req supplierRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	sup, err := h.supplierService.Create(ctx, workspace(ctx), model.SupplierCreateRequest{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, sup)
}

func (h *SupplierHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req supplierRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	sup, err := h.supplierService.Update(ctx, workspace(ctx), id, model.SupplierUpdateRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, sup)
}
