package handlers

import (
	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/ledger"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type SummaryService interface {
	Daily(ws *state.Workspace, date string) (ledger.Summary, error)
	RecentEdits(ws *state.Workspace, kind model.EntityKind) ([]ledger.Edit, error)
}

type SummaryHandler struct {
	summaryService SummaryService
}

func RegisterSummaryRoutes(g *router.Group, h *SummaryHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/summary", auth(h.Daily))
	g.GET("/recent-edits", auth(h.RecentEdits))
}

func NewSummaryHandler(summaryService SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

func (h *SummaryHandler) Daily(ctx *xhttp.RequestCtx) {
	sum, err := h.summaryService.Daily(workspace(ctx), query(ctx, "date"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, sum)
}

func (h *SummaryHandler) RecentEdits(ctx *xhttp.RequestCtx) {
	edits, err := h.summaryService.RecentEdits(workspace(ctx), model.EntityKind(query(ctx, "kind")))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if edits == nil {
		edits = []ledger.Edit{}
	}
	writeJSON(ctx, xhttp.StatusOK, edits)
}
