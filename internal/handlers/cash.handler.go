package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type CashService interface {
	List(ws *state.Workspace, date string) (*services.CashLedger, error)
	Create(ctx context.Context, ws *state.Workspace, req model.CashMovementCreateRequest) (*model.CashMovement, error)
	Update(ctx context.Context, ws *state.Workspace, id int64, req model.CashMovementUpdateRequest) (*model.CashMovement, error)
}

type CashHandler struct {
	cashService CashService
}

type cashMovementRequest struct {
	Type        model.CashDirection `json:"type"`
	Amount      amount              `json:"amount"`
	Description string              `json:"description"`
	Date        string              `json:"date"`
}

func RegisterCashRoutes(g *router.Group, h *CashHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/cash-movements", auth(h.List))
	g.POST("/cash-movements", auth(h.Create))
	g.PUT("/cash-movements/{id}", auth(h.Update))
}

func NewCashHandler(cashService CashService) *CashHandler {
	return &CashHandler{
		cashService: cashService,
	}
}

func (h *CashHandler) List(ctx *xhttp.RequestCtx) {
	day, err := h.cashService.List(workspace(ctx), query(ctx, "date"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, day)
}

func (h *CashHandler) Create(ctx *xhttp.RequestCtx) {
	var req cashMovementRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	amt, err := req.Amount.Decimal()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	m, err := h.cashService.Create(ctx, workspace(ctx), model.CashMovementCreateRequest{
		Type:        req.Type,
		Amount:      amt,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, m)
}

func (h *CashHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	var req cashMovementRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	amt, err := req.Amount.Decimal()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	m, err := h.cashService.Update(ctx, workspace(ctx), id, model.CashMovementUpdateRequest{
		Amount:      amt,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, m)
}
