// Package session owns the credential token: its persistent slot in the
// local store and the guard deciding access to protected screens.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dmitrijs2005/cmsadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cmsadmin/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

const createdAtKey = "token_created_at"

// Session is the explicit owner of the credential token. The token is
// persisted under common.TokenStorageKey and cached in memory after the
// first read. Safe for concurrent use.
type Session struct {
	db  *sql.DB
	now func() time.Time

	mu     sync.RWMutex
	token  string
	loaded bool
}

func New(db *sql.DB) *Session {
	return &Session{db: db, now: time.Now}
}

func (s *Session) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Create stores token, replacing any previous one.
func (s *Session) Create(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrInvalidToken
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
			return err
		}
		stamp := s.now().UTC().Format(time.RFC3339)
		return repo.Set(ctx, createdAtKey, []byte(stamp))
	})
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	s.mu.Lock()
	s.token, s.loaded = token, true
	s.mu.Unlock()
	return nil
}

// Clear removes the token and its timestamp, which are all the store holds.
// The in-memory copy is dropped even when the store fails, so the process
// never keeps using a revoked token.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.loaded = "", true
	s.mu.Unlock()

	if err := s.repo(s.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Peek returns the current token, if any.
func (s *Session) Peek(ctx context.Context) (string, bool) {
	s.mu.RLock()
	token, loaded := s.token, s.loaded
	s.mu.RUnlock()
	if loaded {
		return token, token != ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		v, err := s.repo(s.db).Get(ctx, common.TokenStorageKey)
		if err != nil {
			return "", false
		}
		s.token, s.loaded = string(v), true
	}
	return s.token, s.token != ""
}

// CreatedAt reports when the current token was stored.
func (s *Session) CreatedAt(ctx context.Context) (time.Time, error) {
	v, err := s.repo(s.db).Get(ctx, createdAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if v == nil {
		return time.Time{}, common.ErrorNoSession
	}
	return time.Parse(time.RFC3339, string(v))
}

// Expired inspects the token as an unverified JWT and reports whether its
// exp claim has passed. Tokens that are not JWTs, or carry no exp, are
// treated as opaque and never expire locally.
func (s *Session) Expired(ctx context.Context) bool {
	token, ok := s.Peek(ctx)
	if !ok {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Before(exp.Time)
}
