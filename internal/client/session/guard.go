package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

// LoginRequiredNotice is shown when a protected screen is refused.
const LoginRequiredNotice = "Please login to access this page"

// Pinger issues a lightweight authenticated request.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Notifier receives user-visible notices.
type Notifier interface {
	Error(ctx context.Context, msg string)
}

// Guard decides whether protected content may be shown.
//
// By default it only checks that a token is present. With validation
// enabled it also rejects locally expired JWTs and pings the API; any
// failure clears the stored token. A 401 from the ping has already been
// handled by the gateway, so the guard refuses silently.
type Guard struct {
	session  *Session
	pinger   Pinger
	validate bool
	notifier Notifier
	log      logging.Logger
}

type GuardOption func(*Guard)

// WithValidation checks the token against the API through p.
func WithValidation(p Pinger) GuardOption {
	return func(g *Guard) {
		g.pinger = p
		g.validate = p != nil
	}
}

func WithNotifier(n Notifier) GuardOption {
	return func(g *Guard) { g.notifier = n }
}

func WithLogger(l logging.Logger) GuardOption {
	return func(g *Guard) { g.log = l }
}

func NewGuard(s *Session, opts ...GuardOption) *Guard {
	g := &Guard{session: s, log: logging.Nop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Allow reports whether protected content may be rendered.
func (g *Guard) Allow(ctx context.Context) bool {
	if _, ok := g.session.Peek(ctx); !ok {
		return g.deny(ctx, "no token")
	}
	if !g.validate {
		return true
	}

	if g.session.Expired(ctx) {
		g.clear(ctx)
		return g.deny(ctx, "token expired")
	}
	if err := g.pinger.Ping(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			g.log.Info(ctx, "access denied", "reason", "token rejected")
			return false
		}
		g.clear(ctx)
		return g.deny(ctx, "ping failed", "error", err)
	}
	return true
}

func (g *Guard) clear(ctx context.Context) {
	if err := g.session.Clear(ctx); err != nil {
		g.log.Error(ctx, "failed to clear session", "error", err)
	}
}

func (g *Guard) deny(ctx context.Context, reason string, args ...any) bool {
	g.log.Info(ctx, "access denied", append([]any{"reason", reason}, args...)...)
	if g.notifier != nil {
		g.notifier.Error(ctx, LoginRequiredNotice)
	}
	return false
}
