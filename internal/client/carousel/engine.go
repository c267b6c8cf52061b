// Package carousel implements the auto-advancing, looping slideshow used to
// preview banners.
//
// The visible strip is the item list with a clone of the first item
// appended. Advancing from the last item slides onto the clone; after the
// transition delay the engine snaps back to index 0 without a transition,
// so the loop looks continuous.
package carousel

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultInterval        = 4 * time.Second
	DefaultTransitionDelay = 700 * time.Millisecond
)

// State is a snapshot of the engine. Index ranges over [0, Len]; Len is the
// transient clone position.
type State struct {
	Index         int
	Transitioning bool
	Len           int
}

// AtBoundary reports whether the clone of the first item is showing.
func (s State) AtBoundary() bool {
	return s.Len > 0 && s.Index == s.Len
}

type Option func(*Engine)

func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithTransitionDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithLabel names the list in the empty-state placeholder.
func WithLabel(label string) Option {
	return func(e *Engine) { e.label = label }
}

// Engine is safe for concurrent use. Timer callbacks run on their own
// goroutines; observers are called without the lock held.
type Engine struct {
	clock    clockwork.Clock
	interval time.Duration
	delay    time.Duration
	label    string

	mu            sync.Mutex
	items         []string
	index         int
	transitioning bool
	running       bool
	gen           uint64
	tick          clockwork.Timer
	snap          clockwork.Timer
	onChange      func(State)
}

// New builds a stopped engine. A nil clock means the wall clock.
func New(clock clockwork.Clock, items []string, opts ...Option) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	e := &Engine{
		clock:         clock,
		interval:      DefaultInterval,
		delay:         DefaultTransitionDelay,
		items:         append([]string(nil), items...),
		transitioning: true,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// OnChange registers fn to be called after every index change.
func (e *Engine) OnChange(fn func(State)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// Start arms the interval timer. With no items nothing is scheduled. An
// engine stopped on the clone resumes from the first item.
func (e *Engine) Start() {
	e.mu.Lock()
	e.running = true
	resolved := e.resolveBoundaryLocked()
	e.armLocked()
	st, fn := e.stateLocked(), e.onChange
	e.mu.Unlock()

	if resolved && fn != nil {
		fn(st)
	}
}

// Stop cancels every pending timer. The current index is kept, including
// the clone; Start resolves it.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.running = false
	e.gen++
	e.stopLocked()
	e.mu.Unlock()
}

// SetItems replaces the list and restarts from the first item.
func (e *Engine) SetItems(items []string) {
	e.mu.Lock()
	e.items = append([]string(nil), items...)
	e.index = 0
	e.transitioning = true
	e.armLocked()
	st, fn := e.stateLocked(), e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	return State{Index: e.index, Transitioning: e.transitioning, Len: len(e.items)}
}

func (e *Engine) resolveBoundaryLocked() bool {
	if n := len(e.items); n == 0 || e.index < n {
		return false
	}
	e.index = 0
	e.transitioning = false
	return true
}

// armLocked replaces any pending timers with a fresh interval timer.
func (e *Engine) armLocked() {
	e.gen++
	e.stopLocked()
	if !e.running || len(e.items) == 0 {
		return
	}
	gen := e.gen
	e.tick = e.clock.AfterFunc(e.interval, func() { e.advance(gen) })
}

func (e *Engine) stopLocked() {
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
	if e.snap != nil {
		e.snap.Stop()
		e.snap = nil
	}
}

func (e *Engine) advance(gen uint64) {
	e.mu.Lock()
	n := len(e.items)
	if gen != e.gen || !e.running || n == 0 || e.index >= n {
		e.mu.Unlock()
		return
	}

	e.transitioning = true
	if e.index < n-1 {
		e.index++
		e.armLocked()
	} else {
		e.index = n
		e.armLocked()
		snapGen := e.gen
		e.snap = e.clock.AfterFunc(e.delay, func() { e.snapBack(snapGen) })
	}
	st, fn := e.stateLocked(), e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

func (e *Engine) snapBack(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || !e.running {
		e.mu.Unlock()
		return
	}
	e.snap = nil
	e.index = 0
	e.transitioning = false
	e.armLocked()
	st, fn := e.stateLocked(), e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

// Frames is the rendered strip: the items followed by a clone of the first.
func (e *Engine) Frames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.items) == 0 {
		return nil
	}
	frames := make([]string, 0, len(e.items)+1)
	frames = append(frames, e.items...)
	return append(frames, e.items[0])
}

// Offset is the strip translation in percent of one frame width.
func (e *Engine) Offset() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index * 100
}

// Current returns the item on screen. The clone maps to the first item.
func (e *Engine) Current() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.items) == 0 {
		return "", false
	}
	return e.items[e.index%len(e.items)], true
}

// Render formats the visible slide as a single terminal line.
func (e *Engine) Render() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderTrack(e.label, e.items, e.index)
}

func placeholder(label string) string {
	if label == "" {
		return "No banners available"
	}
	return fmt.Sprintf("No %s banners available", label)
}

func renderTrack(label string, items []string, index int) string {
	n := len(items)
	if n == 0 {
		return placeholder(label)
	}
	pos := index % n
	prefix := ""
	if label != "" {
		prefix = label + " "
	}
	return fmt.Sprintf("%s[%d/%d] %s", prefix, pos+1, n, items[pos])
}
