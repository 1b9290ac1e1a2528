// ABOUTME: Failure backoff gate suppresses calls to a source after repeated failures
// ABOUTME: Cooldown grows linearly with the consecutive failure count

package backoff

import (
	"sync"
	"time"
)

const (
	// DefaultMaxFailures is the failure count at which a source becomes throttled
	DefaultMaxFailures = 3

	// DefaultBackoffUnit is the cooldown per consecutive failure
	DefaultBackoffUnit = time.Second
)

// State is the failure bookkeeping for one source
type State struct {
	ConsecutiveFailures int
	LastFailureAt       *time.Time
}

// Gate tracks failures per source key. Safe for concurrent use.
type Gate struct {
	mu          sync.Mutex
	states      map[string]*State
	maxFailures int
	backoffUnit time.Duration
	now         func() time.Time
}

// Option configures a Gate
type Option func(*Gate)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithMaxFailures overrides the throttle threshold
func WithMaxFailures(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.maxFailures = n
		}
	}
}

// WithBackoffUnit overrides the per-failure cooldown
func WithBackoffUnit(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.backoffUnit = d
		}
	}
}

// NewGate creates a gate with every source open
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		states:      make(map[string]*State),
		maxFailures: DefaultMaxFailures,
		backoffUnit: DefaultBackoffUnit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanCall reports whether a call to the source is currently permitted
func (g *Gate) CanCall(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.states[key]
	if !ok || s.ConsecutiveFailures < g.maxFailures || s.LastFailureAt == nil {
		return true
	}

	wait := g.backoffUnit * time.Duration(s.ConsecutiveFailures)
	return g.now().Sub(*s.LastFailureAt) >= wait
}

// RecordSuccess resets the source to fully open
func (g *Gate) RecordSuccess(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.states, key)
}

// RecordFailure increments the failure count and stamps the failure time.
// Returns the new consecutive failure count.
func (g *Gate) RecordFailure(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.states[key]
	if !ok {
		s = &State{}
		g.states[key] = s
	}
	at := g.now()
	s.ConsecutiveFailures++
	s.LastFailureAt = &at
	return s.ConsecutiveFailures
}

// State returns a copy of the state for one source
func (g *Gate) State(key string) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.states[key]
	if !ok {
		return State{}
	}
	return copyState(s)
}

// Snapshot returns a copy of every tracked source
func (g *Gate) Snapshot() map[string]State {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[string]State, len(g.states))
	for k, s := range g.states {
		out[k] = copyState(s)
	}
	return out
}

func copyState(s *State) State {
	c := State{ConsecutiveFailures: s.ConsecutiveFailures}
	if s.LastFailureAt != nil {
		t := *s.LastFailureAt
		c.LastFailureAt = &t
	}
	return c
}
