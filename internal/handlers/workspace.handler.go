package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type WorkspaceService interface {
	Load(ctx context.Context, ws *state.Workspace) []string
	AllowedBusinesses(ws *state.Workspace) []*model.Business
}

type WorkspaceHandler struct {
	workspaceService WorkspaceService
}

type reloadResponse struct {
	Failed []string `json:"failed"`
}

func RegisterWorkspaceRoutes(g *router.Group, h *WorkspaceHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/workspace/reload", auth(h.Reload))
	g.GET("/businesses", auth(h.ListBusinesses))
}

func NewWorkspaceHandler(workspaceService WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// Reload refetches every collection. Collections that fail keep their previous
// contents and are reported back by name.
func (h *WorkspaceHandler) Reload(ctx *xhttp.RequestCtx) {
	failed := h.workspaceService.Load(ctx, workspace(ctx))
	if failed == nil {
		failed = []string{}
	}
	writeJSON(ctx, xhttp.StatusOK, reloadResponse{Failed: failed})
}

func (h *WorkspaceHandler) ListBusinesses(ctx *xhttp.RequestCtx) {
	items := h.workspaceService.AllowedBusinesses(workspace(ctx))
	if items == nil {
		items = []*model.Business{}
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}
