package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/client/clienttest"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type stack struct {
	srv     *clienttest.Server
	session *session.Session
	client  *client.HTTPClient
	auth    AuthService
	banners BannerService
	news    NewsService
}

func setup(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sess := session.New(db)
	c, err := client.NewHTTPClient(srv.URL, sess)
	require.NoError(t, err)

	return &stack{
		srv:     srv,
		session: sess,
		client:  c,
		auth:    NewAuthService(c, sess),
		banners: NewBannerService(c),
		news:    NewNewsService(c),
	}
}

func (s *stack) login(t *testing.T) {
	t.Helper()
	require.NoError(t, s.auth.Login(context.Background(), clienttest.DefaultEmail, []byte(clienttest.DefaultPassword)))
}

// ---- fake client ----

// countingClient fails the test on any call; services must validate first.
type countingClient struct {
	client.Client
	calls int
}

func (c *countingClient) UploadBanner(context.Context, models.BannerUpload) (models.Banner, error) {
	c.calls++
	return models.Banner{}, nil
}

func (c *countingClient) UploadNews(context.Context, models.NewsUpload) (models.News, error) {
	c.calls++
	return models.News{}, nil
}

func (c *countingClient) ListBanners(context.Context, models.BannerType) ([]models.Banner, error) {
	c.calls++
	return nil, nil
}

func (c *countingClient) Login(context.Context, string, []byte) (string, error) {
	c.calls++
	return "", errors.New("unexpected")
}

// ---- auth ----

func TestAuthService_LoginStoresToken(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	assert.False(t, s.auth.LoggedIn(ctx))
	s.login(t)
	assert.True(t, s.auth.LoggedIn(ctx))
	assert.False(t, s.session.Expired(ctx))
	require.NoError(t, s.auth.Ping(ctx))

	require.NoError(t, s.auth.Logout(ctx))
	assert.False(t, s.auth.LoggedIn(ctx))
}

func TestAuthService_LoginWipesPassword(t *testing.T) {
	s := setup(t)
	pw := []byte(clienttest.DefaultPassword)

	require.NoError(t, s.auth.Login(context.Background(), clienttest.DefaultEmail, pw))
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestAuthService_BadCredentialsKeepSession(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.login(t)
	before, _ := s.session.Peek(ctx)

	err := s.auth.Login(ctx, clienttest.DefaultEmail, []byte("wrong"))
	require.ErrorIs(t, err, client.ErrUnauthorized)

	after, ok := s.session.Peek(ctx)
	assert.True(t, ok)
	assert.Equal(t, before, after)
}

func TestAuthService_LoginValidation(t *testing.T) {
	fc := &countingClient{}
	auth := NewAuthService(fc, nil)

	for _, tc := range []struct {
		email string
		pw    []byte
	}{
		{"", []byte("x")},
		{"   ", []byte("x")},
		{"a@b.c", nil},
	} {
		err := auth.Login(context.Background(), tc.email, tc.pw)
		assert.ErrorIs(t, err, common.ErrorValidation)
	}
	assert.Zero(t, fc.calls)
}

// ---- banners ----

func TestBannerService_UploadListDelete(t *testing.T) {
	s := setup(t)
	s.login(t)
	ctx := context.Background()
	img := &models.File{Name: "a.png", Data: []byte("\x89PNG\r\n\x1a\n")}

	b, err := s.banners.Upload(ctx, models.BannerUpload{Type: models.BannerTypeHomepage, Desktop: img, Mobile: img})
	require.NoError(t, err)

	list, err := s.banners.List(ctx, models.BannerTypeHomepage)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, s.banners.Delete(ctx, b.ID))
	err = s.banners.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Error(t, s.banners.Delete(ctx, ""))
}

func TestBannerService_ValidatesBeforeSending(t *testing.T) {
	fc := &countingClient{}
	svc := NewBannerService(fc)
	ctx := context.Background()

	_, err := svc.Upload(ctx, models.BannerUpload{Type: models.BannerTypeHomepage, Desktop: &models.File{Name: "a", Data: []byte{1}}})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.List(ctx, "sidebar")
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Zero(t, fc.calls)
}

func TestBannerService_UnauthorizedClearsSession(t *testing.T) {
	s := setup(t)
	s.login(t)
	s.srv.RevokeTokens()

	_, err := s.banners.List(context.Background(), models.BannerTypePlacement)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.auth.LoggedIn(context.Background()))
}

// ---- news ----

func TestNewsService_UploadListDelete(t *testing.T) {
	s := setup(t)
	s.login(t)
	ctx := context.Background()

	n, err := s.news.Upload(ctx, models.NewsUpload{Title: "Open day", Description: "All welcome", Author: "Dean"})
	require.NoError(t, err)

	list, err := s.news.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Open day", list[0].Title)

	require.NoError(t, s.news.Delete(ctx, n.ID))
	assert.ErrorIs(t, s.news.Delete(ctx, n.ID), client.ErrNotFound)
}

func TestNewsService_ValidatesBeforeSending(t *testing.T) {
	fc := &countingClient{}
	_, err := NewNewsService(fc).Upload(context.Background(), models.NewsUpload{Title: "t", Author: "a"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Zero(t, fc.calls)
}

func TestNewsService_Forbidden(t *testing.T) {
	s := setup(t)
	s.login(t)
	s.srv.ForbidNews(true)

	_, err := s.news.List(context.Background())
	require.ErrorIs(t, err, client.ErrForbidden)
	assert.True(t, s.auth.LoggedIn(context.Background()), "403 keeps the session")
}
