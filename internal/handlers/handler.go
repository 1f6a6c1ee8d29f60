package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/internal/workflow"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/shopspring/decimal"
)

const sessionKey = "ledger.session"

type Authenticator interface {
	Resume(ctx context.Context, token string) (*services.Session, error)
}

// AuthMiddleware resolves the bearer token to a session and stores it on the
// request. Requests without a valid session get 401.
func AuthMiddleware(auth Authenticator) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			token := xhttp.BearerToken(ctx)
			if token == "" {
				writeError(ctx, xhttp.StatusUnauthorized, services.ErrUnauthorized.Error())
				return
			}
			sess, err := auth.Resume(ctx, token)
			if err != nil {
				writeServiceError(ctx, err)
				return
			}
			ctx.SetUserValue(sessionKey, sess)
			next(ctx)
		}
	}
}

func currentSession(ctx *xhttp.RequestCtx) *services.Session {
	sess, _ := ctx.UserValue(sessionKey).(*services.Session)
	return sess
}

func workspace(ctx *xhttp.RequestCtx) *state.Workspace {
	if sess := currentSession(ctx); sess != nil {
		return sess.Workspace
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrReportSaveFailed):
		return xhttp.StatusInternalServerError
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthorized):
		return xhttp.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return xhttp.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return xhttp.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, repository.ErrDuplicateReport):
		return xhttp.StatusConflict
	case errors.Is(err, services.ErrInvoiceTooLarge):
		return xhttp.StatusRequestEntityTooLarge
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, services.ErrInvoiceType):
		return xhttp.StatusBadRequest
	default:
		return xhttp.StatusInternalServerError
	}
}

func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	writeError(ctx, statusFor(err), err.Error())
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// amount is a user-typed money value. It accepts a JSON number or a string
// using either "." or "," as decimal separator.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	*a = amount(b)
	return nil
}

func (a amount) Decimal() (decimal.Decimal, error) {
	return model.ParseAmount(string(a))
}
