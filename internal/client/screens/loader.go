// Package screens holds the state of the tabbed banner and news screens:
// mode tabs, staged upload forms, cached lists and slideshows. Rendering
// is left to the CLI.
package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
)

// ErrStale is returned by Loader.Load when a newer load superseded this one.
var ErrStale = errors.New("stale result discarded")

// Loader runs fetches so that only the latest one is applied. Each Load
// takes a new generation and cancels the fetch it supersedes. An auth
// failure is returned even from a superseded fetch: the session is gone
// whichever load noticed it.
type Loader[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (l *Loader[T]) Load(ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	if l.cancel != nil {
		l.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	v, err := fetch(fctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		cancel()
		var zero T
		if client.IsAuthFailure(err) {
			return zero, err
		}
		return zero, ErrStale
	}
	l.cancel = nil
	cancel()
	return v, err
}

// Cancel abandons any in-flight fetch; its result will be stale.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
