package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/services"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
)

type AuthService interface {
	Login(ctx context.Context, username, password string, remember bool) (*services.Session, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	authService AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type sessionResponse struct {
	Token    string      `json:"token,omitempty"`
	Remember bool        `json:"remember"`
	User     *model.User `json:"user"`
}

func RegisterAuthRoutes(g *router.Group, h *AuthHandler, auth xhttp.MiddlewareFunc) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", auth(h.Logout))
	g.GET("/auth/me", auth(h.Me))
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON")
		return
	}
	sess, err := h.authService.Login(ctx, req.Username, req.Password, req.Remember)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, sessionResponse{Token: sess.Token, Remember: sess.Remember, User: sess.User()})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	sess := currentSession(ctx)
	if err := h.authService.Logout(ctx, sess.Token); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(xhttp.StatusNoContent)
}

func (h *AuthHandler) Me(ctx *xhttp.RequestCtx) {
	sess := currentSession(ctx)
	writeJSON(ctx, xhttp.StatusOK, sessionResponse{Remember: sess.Remember, User: sess.User()})
}
