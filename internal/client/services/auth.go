// Package services contains the application services of the CMS client.
// This file defines the authentication service: login against the API,
// logout, and the login-state query used by the router.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
)

// Sessions is the token slot the auth service writes to.
type Sessions interface {
	Create(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Peek(ctx context.Context) (string, bool)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and persist it.
//   - Logout: drop the persisted token.
//   - LoggedIn: report whether a token is present.
//   - Ping: authenticated liveness check.
//
// A failed Login leaves any existing session untouched.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) bool
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Sessions
}

// NewAuthService constructs an AuthService bound to the given API client and session.
func NewAuthService(client client.Client, session Sessions) AuthService {
	return &authService{client: client, session: session}
}

// Login wipes password once it has been sent.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return common.NewValidationError("Email and password are required")
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Create(ctx, token); err != nil {
		return fmt.Errorf("session error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	_, ok := a.session.Peek(ctx)
	return ok
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
