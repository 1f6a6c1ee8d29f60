package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/redis"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	keyPrefix      = "session:"
	createAttempts = 3
)

// Record is the remembered session. The user snapshot never carries the
// password hash.
type Record struct {
	Token    string     `json:"token"`
	User     model.User `json:"user"`
	Remember bool       `json:"remember"`
	IssuedAt time.Time  `json:"issued_at"`
}

type Store struct {
	rds         redis.RedisAdapter
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

func NewStore(rds redis.RedisAdapter, ttl, rememberTTL time.Duration) *Store {
	return &Store{rds: rds, ttl: ttl, rememberTTL: rememberTTL, now: time.Now}
}

func (s *Store) Create(ctx context.Context, u *model.User, remember bool) (*Record, error) {
	rec := &Record{
		User:     *u,
		Remember: remember,
		IssuedAt: s.now().UTC(),
	}
	rec.User.PasswordHash = ""

	for attempt := 0; attempt < createAttempts; attempt++ {
		rec.Token = uuid.NewString()
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("session: encode: %w", err)
		}
		ok, err := s.rds.SetNX(ctx, keyPrefix+rec.Token, b, s.lifetime(remember))
		if err != nil {
			return nil, fmt.Errorf("session: store: %w", err)
		}
		if ok {
			return rec, nil
		}
	}
	return nil, errors.New("session: could not allocate a unique token")
}

func (s *Store) Get(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	b, err := s.rds.Get(ctx, keyPrefix+token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return &rec, nil
}

// Refresh rewrites the user snapshot after revalidation, keeping the TTL class.
func (s *Store) Refresh(ctx context.Context, rec *Record, u *model.User) error {
	rec.User = *u
	rec.User.PasswordHash = ""
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	return s.rds.Set(ctx, keyPrefix+rec.Token, b, s.lifetime(rec.Remember))
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rds.Del(ctx, keyPrefix+token)
}

// TTL is how long the session has left. A session stored without expiry
// counts as remembered.
func (s *Store) TTL(ctx context.Context, token string) (time.Duration, error) {
	d, err := s.rds.TTL(ctx, keyPrefix+token)
	if err != nil {
		return 0, fmt.Errorf("session: ttl: %w", err)
	}
	switch {
	case d == -2:
		return 0, ErrSessionNotFound
	case d < 0:
		return s.rememberTTL, nil
	}
	return d, nil
}

func (s *Store) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rds.Exist(ctx, keyPrefix+token)
	if err != nil {
		return false, fmt.Errorf("session: exists: %w", err)
	}
	return n > 0, nil
}

func (s *Store) lifetime(remember bool) time.Duration {
	if remember {
		return s.rememberTTL
	}
	return s.ttl
}
