package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/internal/repository"
	"github.com/nimasrn/outlet-ledger/internal/session"
	"github.com/nimasrn/outlet-ledger/internal/state"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("not allowed")
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, u *model.User, remember bool) (*session.Record, error)
	Get(ctx context.Context, token string) (*session.Record, error)
	Refresh(ctx context.Context, rec *session.Record, u *model.User) error
	Delete(ctx context.Context, token string) error
	TTL(ctx context.Context, token string) (time.Duration, error)
	Exists(ctx context.Context, token string) (bool, error)
}

// Session is an authenticated caller together with its loaded workspace.
type Session struct {
	Token     string
	Remember  bool
	Workspace *state.Workspace
}

func (s *Session) User() *model.User {
	return s.Workspace.User()
}

type AuthService struct {
	users      UserRepository
	sessions   SessionStore
	workspaces *WorkspaceService
}

func NewAuthService(users UserRepository, sessions SessionStore, workspaces *WorkspaceService) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		workspaces: workspaces,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) (*Session, error) {
	sess, err := s.login(ctx, strings.TrimSpace(username), password, remember)
	prom.RecordLogin(err)
	return sess, err
}

func (s *AuthService) login(ctx context.Context, username, password string, remember bool) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	rec, err := s.sessions.Create(ctx, u, remember)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	u.PasswordHash = ""
	if n := s.workspaces.Sweep(ctx, s.sessions.Exists); n > 0 {
		logger.Debug("released expired workspaces", "count", n)
	}
	ws, err := s.open(ctx, rec.Token, u)
	if err != nil {
		return nil, err
	}
	logger.Info("user logged in", "user_id", u.ID, "remember", remember)
	return &Session{Token: rec.Token, Remember: remember, Workspace: ws}, nil
}

// open holds the workspace for as long as the session has left in Redis.
func (s *AuthService) open(ctx context.Context, token string, u *model.User) (*state.Workspace, error) {
	ttl, err := s.sessions.TTL(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("session ttl: %w", err)
	}
	return s.workspaces.Open(ctx, token, u, ttl), nil
}

// Resume returns the session behind token. A token this process has not seen
// yet is revalidated against the users table, and its stored session is
// dropped when the user no longer exists.
func (s *AuthService) Resume(ctx context.Context, token string) (*Session, error) {
	rec, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			s.workspaces.Drop(token)
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if ws, ok := s.workspaces.Get(token); ok {
		return &Session{Token: token, Remember: rec.Remember, Workspace: ws}, nil
	}

	u, err := s.users.FindByID(ctx, rec.User.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if err := s.sessions.Delete(ctx, token); err != nil {
				logger.Error("failed to clear stale session", "error", err)
			}
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("revalidate user: %w", err)
	}
	u.PasswordHash = ""
	if err := s.sessions.Refresh(ctx, rec, u); err != nil {
		logger.Warn("failed to refresh session", "user_id", u.ID, "error", err)
	}
	ws, err := s.open(ctx, token, u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Remember: rec.Remember, Workspace: ws}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	s.workspaces.Drop(token)
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
