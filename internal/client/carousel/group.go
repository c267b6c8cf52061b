package carousel

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

// Track is one list shown in a Group, e.g. the desktop images.
type Track struct {
	Label string
	Items []string
}

// Group drives parallel tracks with a single engine, so they share one
// index and one timer. The slide count comes from the first non-empty
// track; shorter tracks render the placeholder past their end.
type Group struct {
	engine *Engine

	mu     sync.Mutex
	tracks []Track
}

func NewGroup(clock clockwork.Clock, tracks []Track, opts ...Option) *Group {
	g := &Group{tracks: copyTracks(tracks)}
	g.engine = New(clock, leadItems(tracks), opts...)
	return g
}

func (g *Group) Start() { g.engine.Start() }
func (g *Group) Stop() { g.engine.Stop() }
func (g *Group) State() State { return g.engine.State() }
func (g *Group) OnChange(fn func(State)) { g.engine.OnChange(fn) }

// SetTracks replaces every track and restarts from the first slide.
func (g *Group) SetTracks(tracks []Track) {
	g.mu.Lock()
	g.tracks = copyTracks(tracks)
	g.mu.Unlock()
	g.engine.SetItems(leadItems(tracks))
}

// Render returns one line per track at the shared index.
func (g *Group) Render() []string {
	st := g.engine.State()

	g.mu.Lock()
	defer g.mu.Unlock()

	lines := make([]string, 0, len(g.tracks))
	for _, t := range g.tracks {
		idx := st.Index
		if st.Len > 0 {
			idx = st.Index % st.Len
		}
		if idx >= len(t.Items) {
			lines = append(lines, placeholder(t.Label))
			continue
		}
		lines = append(lines, renderTrack(t.Label, t.Items, idx))
	}
	return lines
}

func leadItems(tracks []Track) []string {
	for _, t := range tracks {
		if len(t.Items) > 0 {
			return t.Items
		}
	}
	return nil
}

func copyTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = Track{Label: t.Label, Items: append([]string(nil), t.Items...)}
	}
	return out
}
