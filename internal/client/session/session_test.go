package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	return db
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.org",
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t))

	_, ok := s.Peek(ctx)
	assert.False(t, ok, "fresh store has no token")

	require.NoError(t, s.Create(ctx, "opaque-token"))
	tok, ok := s.Peek(ctx)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", tok)

	require.NoError(t, s.Clear(ctx))
	_, ok = s.Peek(ctx)
	assert.False(t, ok)

	_, err := s.CreatedAt(ctx)
	assert.ErrorIs(t, err, common.ErrorNoSession, "clear drops the timestamp too")
}

func TestSession_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	require.NoError(t, New(db).Create(ctx, "kept"))

	restarted := New(db)
	tok, ok := restarted.Peek(ctx)
	require.True(t, ok)
	assert.Equal(t, "kept", tok)

	require.NoError(t, restarted.Clear(ctx))
	_, ok = New(db).Peek(ctx)
	assert.False(t, ok)
}

func TestSession_CreateRejectsEmpty(t *testing.T) {
	s := New(setupDB(t))
	assert.ErrorIs(t, s.Create(context.Background(), ""), common.ErrInvalidToken)
}

func TestSession_CreatedAt(t *testing.T) {
	ctx := context.Background()
	s := New(setupDB(t))
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.CreatedAt(ctx)
	assert.ErrorIs(t, err, common.ErrorNoSession)

	require.NoError(t, s.Create(ctx, "t"))
	got, err := s.CreatedAt(ctx)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(got))
}

func TestSession_ClearDropsCacheEvenOnStoreError(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db)
	require.NoError(t, s.Create(ctx, "t"))
	require.NoError(t, db.Close())

	assert.Error(t, s.Clear(ctx))
	_, ok := s.Peek(ctx)
	assert.False(t, ok)
}

func TestSession_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "future exp", token: signed(t, now.Add(time.Hour)), want: false},
		{name: "past exp", token: signed(t, now.Add(-time.Minute)), want: true},
		{name: "opaque token", token: "not-a-jwt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(setupDB(t))
			s.now = func() time.Time { return now }
			require.NoError(t, s.Create(ctx, tt.token))
			assert.Equal(t, tt.want, s.Expired(ctx))
		})
	}

	t.Run("no token", func(t *testing.T) {
		assert.False(t, New(setupDB(t)).Expired(ctx))
	})
}
