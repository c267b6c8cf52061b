// Package router maps client paths to screens and applies the session
// guard to the protected shell under /home.
package router

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

const (
	PathLogin  = "/"
	PathHome   = "/home"
	PathBanner = "/home/banner"
	PathNews   = "/home/news"
)

// Guard decides whether protected screens may be shown.
type Guard interface {
	Allow(ctx context.Context) bool
}

// LoginState reports whether a token is present.
type LoginState interface {
	LoggedIn(ctx context.Context) bool
}

type Router struct {
	guard Guard
	login LoginState
	log   logging.Logger

	mu         sync.Mutex
	current    string
	moves      uint64
	onNavigate func(ctx context.Context, path string)
}

func New(guard Guard, login LoginState, log logging.Logger) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{guard: guard, login: login, log: log, current: PathLogin}
}

// OnNavigate registers fn to be called after every navigation with the
// resolved path.
func (r *Router) OnNavigate(fn func(ctx context.Context, path string)) {
	r.mu.Lock()
	r.onNavigate = fn
	r.mu.Unlock()
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve applies redirects and the guard to target without navigating.
//
//	/            -> /home when a token is present
//	/home        -> /home/banner
//	/home/*      -> / when the guard refuses
//	anything else -> /
func (r *Router) Resolve(ctx context.Context, target string) string {
	switch p := clean(target); p {
	case PathLogin:
		if r.login != nil && r.login.LoggedIn(ctx) {
			return r.Resolve(ctx, PathHome)
		}
		return PathLogin
	case PathHome, PathBanner, PathNews:
		if !r.guard.Allow(ctx) {
			return PathLogin
		}
		if p == PathHome {
			return PathBanner
		}
		return p
	default:
		return PathLogin
	}
}

// Navigate resolves target and makes it current. When resolving already
// forced the router onto the same path, it is not entered twice.
func (r *Router) Navigate(ctx context.Context, target string) string {
	before := r.moveCount()
	resolved := r.Resolve(ctx, target)
	r.log.Debug(ctx, "navigate", "target", target, "resolved", resolved)

	r.mu.Lock()
	forced := r.moves != before && r.current == resolved
	r.mu.Unlock()
	if forced {
		return resolved
	}
	r.set(ctx, resolved)
	return resolved
}

func (r *Router) moveCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moves
}

// ForceNavigate switches to target with no guard or redirects. The gateway
// calls it after a 401 has cleared the session.
func (r *Router) ForceNavigate(ctx context.Context, target string) {
	r.log.Info(ctx, "forced navigation", "target", target)
	r.set(ctx, clean(target))
}

func (r *Router) set(ctx context.Context, p string) {
	r.mu.Lock()
	r.current = p
	r.moves++
	fn := r.onNavigate
	r.mu.Unlock()

	if fn != nil {
		fn(ctx, p)
	}
}

func clean(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return PathLogin
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
