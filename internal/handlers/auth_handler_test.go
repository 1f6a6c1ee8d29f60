package handlers

import (
	"encoding/json"
	"testing"

	"github.com/nimasrn/outlet-ledger/internal/services"
	"github.com/nimasrn/outlet-ledger/internal/state"
	xhttp "github.com/nimasrn/outlet-ledger/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns token and user", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)
		sess := &services.Session{Token: "abc", Remember: true, Workspace: state.NewWorkspace(staffUser())}
		svc.On("Login", mock.Anything, "staff", "secret1", true).Return(sess, nil)

		body, _ := json.Marshal(loginRequest{Username: "staff", Password: "secret1", Remember: true})
		ctx := setupTestContext("POST", "/api/v1/auth/login", body)
		handler.Login(ctx)

		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
		var resp struct {
			Token    string `json:"token"`
			Remember bool   `json:"remember"`
			User     struct {
				FullName     string `json:"full_name"`
				PasswordHash string `json:"password_hash"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "abc", resp.Token)
		assert.True(t, resp.Remember)
		assert.Equal(t, "Staff User", resp.User.FullName)
		assert.Empty(t, resp.User.PasswordHash)
		svc.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)
		svc.On("Login", mock.Anything, "staff", "nope", false).Return(nil, services.ErrInvalidCredentials)

		body, _ := json.Marshal(loginRequest{Username: "staff", Password: "nope"})
		ctx := setupTestContext("POST", "/api/v1/auth/login", body)
		handler.Login(ctx)

		assert.Equal(t, xhttp.StatusUnauthorized, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "invalid username or password")
	})

	t.Run("invalid json", func(t *testing.T) {
		svc := new(MockAuthService)
		ctx := setupTestContext("POST", "/api/v1/auth/login", []byte("{"))
		NewAuthHandler(svc).Login(ctx)

		assert.Equal(t, xhttp.StatusBadRequest, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	svc := new(MockAuthService)
	handler := NewAuthHandler(svc)
	svc.On("Logout", mock.Anything, "tok").Return(nil)

	ctx := setupTestContext("GET", "/api/v1/auth/me", nil)
	withSession(ctx, adminUser())
	handler.Me(ctx)
	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"role":"admin"`)

	ctx = setupTestContext("POST", "/api/v1/auth/logout", nil)
	withSession(ctx, adminUser())
	handler.Logout(ctx)
	assert.Equal(t, xhttp.StatusNoContent, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler(t *testing.T) {
	svc := new(MockWorkspaceService)
	handler := NewWorkspaceHandler(svc)

	ctx := setupTestContext("POST", "/api/v1/workspace/reload", nil)
	ws := withSession(ctx, staffUser())
	svc.On("Load", mock.Anything, ws).Return([]string{"reports"})
	handler.Reload(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"failed":["reports"]}`, string(ctx.Response.Body()))

	ctx = setupTestContext("GET", "/api/v1/businesses", nil)
	ws = withSession(ctx, staffUser())
	svc.On("AllowedBusinesses", ws).Return(nil)
	handler.ListBusinesses(ctx)

	assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "[]", string(ctx.Response.Body()))
}
