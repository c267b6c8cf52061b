package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/router"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/dmitrijs2005/cmsadmin/internal/common"
	"github.com/dustin/go-humanize"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	NoticeLoginSuccess       = "Login successful!"
	NoticeInvalidCredentials = "Invalid credentials"
	NoticeLoginFailed        = "Login failed, server unavailable"
	NoticeLoggedOut          = "Logged out"
)

// Login prompts for credentials and exchanges them for a token. On success
// the user is sent on from the login screen; on failure they stay on it and
// any existing session is left alone.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in")
		a.router.Navigate(ctx, router.PathLogin)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		var verr *common.ValidationError
		switch {
		case errors.As(err, &verr):
			a.notify.Error(ctx, verr.Msg)
		case errors.Is(err, client.ErrUnauthorized):
			a.notify.Error(ctx, NoticeInvalidCredentials)
		default:
			a.log.Warn(ctx, "login failed", "error", err)
			a.notify.Error(ctx, NoticeLoginFailed)
		}
		return err
	}

	a.notify.Success(ctx, NoticeLoginSuccess)
	a.router.Navigate(ctx, router.PathLogin)
	return nil
}

// Logout clears the stored token and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.resetScreens()
	a.notify.Info(ctx, NoticeLoggedOut)
	a.router.Navigate(ctx, router.PathLogin)
	return nil
}

// Whoami shows when the stored token was obtained.
func (a *App) Whoami(ctx context.Context) error {
	since, err := a.sess.CreatedAt(ctx)
	if errors.Is(err, common.ErrorNoSession) {
		a.notify.Error(ctx, session.LoginRequiredNotice)
		return nil
	}
	if err != nil {
		a.log.Warn(ctx, "read session timestamp", "error", err)
		return err
	}
	a.println(fmt.Sprintf("Logged in since %s (%s)", since.Local().Format(time.DateTime), humanize.Time(since)))
	return nil
}
