package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type DeletionService interface {
	State(ws *state.Workspace) workflow.DeleteFlow
	Initiate(ws *state.Workspace, kind model.EntityKind, id int64) (workflow.DeleteFlow, error)
	Confirm(ctx context.Context, ws *state.Workspace) (*services.DeleteResult, error)
	Cancel(ws *state.Workspace) (workflow.DeleteFlow, error)
}

type DeletionHandler struct {
	deletionService DeletionService
}

type deletionRequest struct {
	Kind model.EntityKind `json:"kind"`
	ID   int64            `json:"id"`
}

func RegisterDeletionRoutes(g *router.Group, h *DeletionHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/deletions", auth(h.State))
	g.POST("/deletions", auth(h.Initiate))
	g.POST("/deletions/confirm", auth(h.Confirm))
	g.DELETE("/deletions", auth(h.Cancel))
}

func NewDeletionHandler(deletionService DeletionService) *DeletionHandler {
	return &DeletionHandler{
		deletionService: deletionService,
	}
}

func (h *DeletionHandler) State(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, h.deletionService.State(workspace(ctx)))
}

func (h *DeletionHandler) Initiate(ctx *xhttp.RequestCtx) {
	var req deletionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	flow, err := h.deletionService.Initiate(workspace(ctx), req.Kind, req.ID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, flow)
}

// Confirm advances the pending deletion by one step. The record is removed on
// the second confirmation.
func (h *DeletionHandler) Confirm(ctx *xhttp.RequestCtx) {
	res, err := h.deletionService.Confirm(ctx, workspace(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, res)
}

func (h *DeletionHandler) Cancel(ctx *xhttp.RequestCtx) {
	flow, err := h.deletionService.Cancel(workspace(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, flow)
}
