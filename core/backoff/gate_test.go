package backoff

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestGate() (*Gate, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewGate(WithClock(clock.Now)), clock
}

func TestGate_StartsOpen(t *testing.T) {
	gate, _ := newTestGate()

	if !gate.CanCall("autocomplete") {
		t.Error("a fresh gate should permit calls")
	}
	if s := gate.State("autocomplete"); s.ConsecutiveFailures != 0 || s.LastFailureAt != nil {
		t.Errorf("expected zero state, got %+v", s)
	}
}

func TestGate_BelowThresholdStaysOpen(t *testing.T) {
	gate, _ := newTestGate()

	gate.RecordFailure("autocomplete")
	gate.RecordFailure("autocomplete")

	if !gate.CanCall("autocomplete") {
		t.Error("two failures should not throttle the source")
	}
}

func TestGate_LinearCooldownAfterThreeFailures(t *testing.T) {
	gate, clock := newTestGate()

	for i := 0; i < 3; i++ {
		gate.RecordFailure("autocomplete")
	}

	clock.Advance(2999 * time.Millisecond)
	if gate.CanCall("autocomplete") {
		t.Error("call at t0+2999ms should be denied")
	}

	clock.Advance(time.Millisecond)
	if !gate.CanCall("autocomplete") {
		t.Error("call at t0+3000ms should be permitted")
	}
}

func TestGate_FourFailuresNeedFourUnits(t *testing.T) {
	gate, clock := newTestGate()

	for i := 0; i < 4; i++ {
		gate.RecordFailure("autocomplete")
	}

	clock.Advance(3999 * time.Millisecond)
	if gate.CanCall("autocomplete") {
		t.Error("four failures should need a four second wait")
	}

	clock.Advance(time.Millisecond)
	if !gate.CanCall("autocomplete") {
		t.Error("call should be permitted after four seconds")
	}
}

func TestGate_SuccessResets(t *testing.T) {
	gate, _ := newTestGate()

	for i := 0; i < 5; i++ {
		gate.RecordFailure("autocomplete")
	}
	if gate.CanCall("autocomplete") {
		t.Fatal("source should be throttled")
	}

	gate.RecordSuccess("autocomplete")

	if !gate.CanCall("autocomplete") {
		t.Error("success should reopen the gate immediately")
	}
	if s := gate.State("autocomplete"); s.ConsecutiveFailures != 0 || s.LastFailureAt != nil {
		t.Errorf("success should reset state, got %+v", s)
	}
}

func TestGate_SourcesAreIndependent(t *testing.T) {
	gate, _ := newTestGate()

	for i := 0; i < 3; i++ {
		gate.RecordFailure("autocomplete")
	}

	if !gate.CanCall("naver-ads") {
		t.Error("failures on one source must not throttle another")
	}
}

func TestGate_RecordFailureReturnsCount(t *testing.T) {
	gate, _ := newTestGate()

	if n := gate.RecordFailure("x"); n != 1 {
		t.Errorf("expected 1, got %d", n)
	}
	if n := gate.RecordFailure("x"); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestGate_SnapshotIsCopy(t *testing.T) {
	gate, _ := newTestGate()
	gate.RecordFailure("autocomplete")

	snap := gate.Snapshot()
	s := snap["autocomplete"]
	s.ConsecutiveFailures = 99
	*s.LastFailureAt = time.Time{}

	got := gate.State("autocomplete")
	if got.ConsecutiveFailures != 1 || got.LastFailureAt.IsZero() {
		t.Errorf("snapshot should not alias internal state, got %+v", got)
	}
}

func TestGate_CustomThresholdAndUnit(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	gate := NewGate(WithClock(clock.Now), WithMaxFailures(1), WithBackoffUnit(10*time.Millisecond))

	gate.RecordFailure("x")
	if gate.CanCall("x") {
		t.Error("one failure should throttle with threshold 1")
	}

	clock.Advance(10 * time.Millisecond)
	if !gate.CanCall("x") {
		t.Error("call should be permitted after one unit")
	}
}

func TestGate_ConcurrentFailures(t *testing.T) {
	gate, _ := newTestGate()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate.RecordFailure("autocomplete")
			_ = gate.CanCall("autocomplete")
		}()
	}
	wg.Wait()

	if s := gate.State("autocomplete"); s.ConsecutiveFailures != 50 {
		t.Errorf("expected 50 failures, got %d", s.ConsecutiveFailures)
	}
}
