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

type ReportService interface {
	List(ws *state.Workspace, businessID int64, date string) ([]*services.ReportView, error)
	RequestSave(ws *state.Workspace, mode workflow.SaveMode, draft model.ReportDraft) (workflow.SavePrompt, error)
	Draft(ws *state.Workspace) services.DraftState
	Decline(ws *state.Workspace) (services.DraftState, error)
	Accept(ctx context.Context, ws *state.Workspace) (*services.ReportView, error)
}

type ReportHandler struct {
	reportService ReportService
}

type expenseRequest struct {
	Description string `json:"description"`
	Amount      amount `json:"amount"`
}

type draftRequest struct {
	Mode       workflow.SaveMode `json:"mode"`
	ReportID   int64             `json:"report_id"`
	BusinessID int64             `json:"business_id"`
	Date       string            `json:"date"`
	CreditCard amount            `json:"credit_card"`
	Cash       amount            `json:"cash"`
	MealCards  amount            `json:"meal_cards"`
	ActualCash amount            `json:"actual_cash"`
	Notes      string            `json:"notes"`
	Expenses   []expenseRequest  `json:"expenses"`
}

func (r draftRequest) draft() (model.ReportDraft, error) {
	d := model.ReportDraft{
		ReportID:   r.ReportID,
		BusinessID: r.BusinessID,
		Date:       r.Date,
		Notes:      r.Notes,
	}
	var err error
	if d.CreditCard, err = r.CreditCard.Decimal(); err != nil {
		return d, err
	}
	if d.Cash, err = r.Cash.Decimal(); err != nil {
		return d, err
	}
	if d.MealCards, err = r.MealCards.Decimal(); err != nil {
		return d, err
	}
	if d.ActualCash, err = r.ActualCash.Decimal(); err != nil {
		return d, err
	}
	for _, e := range r.Expenses {
		amt, err := e.Amount.Decimal()
		if err != nil {
			return d, err
		}
		d.Expenses = append(d.Expenses, model.ExpenseDraft{Description: e.Description, Amount: amt})
	}
	return d, nil
}

func RegisterReportRoutes(g *router.Group, h *ReportHandler, auth xhttp.MiddlewareFunc) {
	g.GET("/businesses/{id}/reports", auth(h.List))
	g.POST("/reports/draft", auth(h.RequestSave))
	g.GET("/reports/draft", auth(h.Draft))
	g.POST("/reports/draft/accept", auth(h.Accept))
	g.POST("/reports/draft/decline", auth(h.Decline))
}

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) List(ctx *xhttp.RequestCtx) {
	businessID, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}
	views, err := h.reportService.List(workspace(ctx), businessID, query(ctx, "date"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if views == nil {
		views = []*services.ReportView{}
	}
	writeJSON(ctx, xhttp.StatusOK, views)
}

// RequestSave parks the draft and answers with the confirmation prompt. Nothing
// is written until the prompt is accepted.
func (h *ReportHandler) RequestSave(ctx *xhttp.RequestCtx) {
	var req draftRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Mode == "" {
		req.Mode = workflow.SaveAdd
	}
	if req.Mode != workflow.SaveAdd && req.Mode != workflow.SaveEdit {
		writeError(ctx, xhttp.StatusBadRequest, "mode must be add or edit")
		return
	}
	draft, err := req.draft()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	prompt, err := h.reportService.RequestSave(workspace(ctx), req.Mode, draft)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, prompt)
}

func (h *ReportHandler) Draft(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, h.reportService.Draft(workspace(ctx)))
}

func (h *ReportHandler) Accept(ctx *xhttp.RequestCtx) {
	view, err := h.reportService.Accept(ctx, workspace(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, view)
}

func (h *ReportHandler) Decline(ctx *xhttp.RequestCtx) {
	st, err := h.reportService.Decline(workspace(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, st)
}
