package radar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"airspace/shared/protocol"
)

var errOffline = errors.New("connection refused")

// fakeRemote is an in-memory server. Hooks, when set, replace the canned
// answers; they run on the request goroutine.
type fakeRemote struct {
	mu        sync.Mutex
	aircraft  []protocol.Aircraft
	conflicts []protocol.Conflict
	state     protocol.GameState
	readErr   error
	tapResult protocol.TapResult
	tapErr    error
	resetErr  error

	aircraftHook func(n int) ([]protocol.Aircraft, error)
	tapHook      func(id string) (protocol.TapResult, error)

	aircraftCalls int
	taps          []string
	created       []Point
	resets        int
	clears        int
}

func (f *fakeRemote) ListAircraft(ctx context.Context) ([]protocol.Aircraft, error) {
	f.mu.Lock()
	f.aircraftCalls++
	n, hook := f.aircraftCalls, f.aircraftHook
	list, err := f.aircraft, f.readErr
	f.mu.Unlock()
	if hook != nil {
		return hook(n)
	}
	return list, err
}

func (f *fakeRemote) ListConflicts(ctx context.Context) ([]protocol.Conflict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conflicts, f.readErr
}

func (f *fakeRemote) FetchGameState(ctx context.Context) (protocol.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.readErr
}

func (f *fakeRemote) CreateAircraft(ctx context.Context, x, y float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, Point{x, y})
	return nil
}

func (f *fakeRemote) TapAircraft(ctx context.Context, id string) (protocol.TapResult, error) {
	f.mu.Lock()
	f.taps = append(f.taps, id)
	hook, res, err := f.tapHook, f.tapResult, f.tapErr
	f.mu.Unlock()
	if hook != nil {
		return hook(id)
	}
	return res, err
}

func (f *fakeRemote) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return f.resetErr
}

func (f *fakeRemote) ClearAircraft(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeRemote) set(fn func(f *fakeRemote)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func newTestLoop(f *fakeRemote) *Loop {
	return NewLoop(context.Background(), f, NewSession(), 100*time.Millisecond, nil)
}

func TestLoopPollAppliesSnapshots(t *testing.T) {
	f := &fakeRemote{
		aircraft:  []protocol.Aircraft{{ID: "a", X: 10, Y: 10}, {ID: "b", X: 30, Y: 10}},
		conflicts: []protocol.Conflict{conflict("a", "b", false)},
		state:     protocol.GameState{Level: 2},
	}
	l := newTestLoop(f)
	l.Update(time.Now())
	l.Flush()

	s := l.Session()
	if len(s.Aircraft) != 2 || len(s.Conflicts) != 1 || !s.InConflict("b") {
		t.Fatalf("snapshots not applied: %+v", s)
	}
	if s.Level != 2 {
		t.Fatalf("level = %d", s.Level)
	}
	if got := kinds(l.Events()); len(got) != 1 || got[0] != EventLevelUp {
		t.Fatalf("events %v", got)
	}
}

func TestLoopCadence(t *testing.T) {
	f := &fakeRemote{}
	l := newTestLoop(f)
	t0 := time.Now()

	l.Update(t0) // immediate first poll
	l.Update(t0.Add(40 * time.Millisecond))
	l.Update(t0.Add(99 * time.Millisecond))
	l.Flush()
	if f.aircraftCalls != 1 {
		t.Fatalf("polled %d times before the period elapsed", f.aircraftCalls)
	}
	l.Update(t0.Add(100 * time.Millisecond))
	l.Update(t0.Add(210 * time.Millisecond))
	l.Flush()
	if f.aircraftCalls != 3 {
		t.Fatalf("polled %d times, want 3", f.aircraftCalls)
	}
}

func TestLoopFailureKeepsMirror(t *testing.T) {
	f := &fakeRemote{
		aircraft:  []protocol.Aircraft{{ID: "a"}},
		conflicts: []protocol.Conflict{conflict("a", "b", false)},
		state:     protocol.GameState{Level: 1},
	}
	l := newTestLoop(f)
	l.Poll()
	l.Flush()

	f.set(func(f *fakeRemote) { f.readErr = errOffline })
	l.Poll()
	l.Flush()

	s := l.Session()
	if len(s.Aircraft) != 1 || len(s.Conflicts) != 1 {
		t.Fatalf("failed poll cleared the mirror: %+v", s)
	}

	// The loop keeps going once the server is back.
	f.set(func(f *fakeRemote) {
		f.readErr = nil
		f.aircraft = nil
	})
	l.Poll()
	l.Flush()
	if len(s.Aircraft) != 0 {
		t.Fatalf("recovered poll not applied")
	}
}

func TestLoopDropsOutOfOrderResponse(t *testing.T) {
	release := make(chan struct{})
	f := &fakeRemote{
		aircraftHook: func(n int) ([]protocol.Aircraft, error) {
			if n == 1 {
				<-release
				return []protocol.Aircraft{{ID: "old"}}, nil
			}
			return []protocol.Aircraft{{ID: "new"}}, nil
		},
	}
	l := newTestLoop(f)
	l.Poll()
	l.Poll()

	// Wait for the second poll's response while the first is held back.
	deadline := time.Now().Add(2 * time.Second)
	for len(l.Session().Aircraft) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("second poll never settled")
		}
		l.Settle()
		time.Sleep(time.Millisecond)
	}
	close(release)
	l.Flush()

	if got := l.Session().Aircraft; len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("late response overwrote newer snapshot: %+v", got)
	}
}

func TestTapHitsAircraftOrCreates(t *testing.T) {
	f := &fakeRemote{
		aircraft:  []protocol.Aircraft{{ID: "a", X: 100, Y: 100}},
		tapResult: protocol.TapResult{Success: true, Level: 1},
	}
	l := newTestLoop(f)
	l.Poll()
	l.Flush()

	l.Tap(Point{110, 105})
	l.Tap(Point{400, 300})
	l.Flush()

	if len(f.taps) != 1 || f.taps[0] != "a" {
		t.Fatalf("taps %v", f.taps)
	}
	if len(f.created) != 1 || f.created[0] != (Point{400, 300}) {
		t.Fatalf("created %v", f.created)
	}
	if s := l.Session(); s.Score != 10 || !s.Flagged["a"] {
		t.Fatalf("score=%d flagged=%v", s.Score, s.Flagged)
	}
}

func TestTapNetworkFailureFallsBack(t *testing.T) {
	f := &fakeRemote{
		aircraft:  []protocol.Aircraft{{ID: "a"}, {ID: "lonely", X: 300}},
		conflicts: []protocol.Conflict{conflict("a", "b", false)},
		tapErr:    errOffline,
	}
	l := newTestLoop(f)
	l.Poll()
	l.Flush()

	l.TapAircraft("a")
	l.Flush()
	s := l.Session()
	if s.Score != 10 || !s.Flagged["a"] {
		t.Fatalf("fallback reward missing: score=%d flagged=%v", s.Score, s.Flagged)
	}

	l.TapAircraft("lonely")
	l.Flush()
	if s.Score != 5 || s.Flagged["lonely"] {
		t.Fatalf("fallback penalty missing: score=%d", s.Score)
	}
	if got := kinds(l.Events()); len(got) != 2 {
		t.Fatalf("want two score pulses, got %v", got)
	}
}

func TestTapIgnoresFlaggedAndInFlight(t *testing.T) {
	release := make(chan struct{})
	f := &fakeRemote{
		tapHook: func(id string) (protocol.TapResult, error) {
			<-release
			return protocol.TapResult{Success: true, Level: 1}, nil
		},
	}
	l := newTestLoop(f)
	l.TapAircraft("a")
	l.TapAircraft("a") // still in flight
	close(release)
	l.Flush()
	l.TapAircraft("a") // flagged now

	l.Flush()
	if len(f.taps) != 1 {
		t.Fatalf("sent %d taps, want 1", len(f.taps))
	}
	if l.Session().Score != 10 {
		t.Fatalf("score = %d", l.Session().Score)
	}
}

func TestTapIgnoredAfterGameOver(t *testing.T) {
	f := &fakeRemote{
		aircraft: []protocol.Aircraft{{ID: "a"}},
		state:    protocol.GameState{Level: 1, GameOver: true},
	}
	l := newTestLoop(f)
	l.Poll()
	l.Flush()

	l.Tap(Point{0, 0})
	l.Tap(Point{500, 500})
	l.Flush()
	if len(f.taps) != 0 || len(f.created) != 0 {
		t.Fatalf("input after game over reached the server: taps=%v created=%v", f.taps, f.created)
	}
}

func TestResetDiscardsInFlight(t *testing.T) {
	release := make(chan struct{})
	f := &fakeRemote{
		aircraftHook: func(n int) ([]protocol.Aircraft, error) {
			if n == 1 {
				<-release
			}
			return []protocol.Aircraft{{ID: "before-reset"}}, nil
		},
		state: protocol.GameState{Level: 3, GameOver: true},
	}
	l := newTestLoop(f)
	l.Poll() // aircraft call held back
	l.Reset()

	deadline := time.Now().Add(2 * time.Second)
	for l.InFlight() > 1 {
		if time.Now().After(deadline) {
			t.Fatalf("reset never settled")
		}
		l.Settle()
		time.Sleep(time.Millisecond)
	}
	close(release)
	l.Flush()

	s := l.Session()
	if s.Level != 1 || s.GameOver || s.Score != 0 {
		t.Fatalf("reset not applied: level=%d over=%v", s.Level, s.GameOver)
	}
	if len(s.Aircraft) != 0 {
		t.Fatalf("pre-reset snapshot leaked in: %+v", s.Aircraft)
	}
	if f.resets != 1 {
		t.Fatalf("resets = %d", f.resets)
	}
}

func TestResetFailureKeepsState(t *testing.T) {
	f := &fakeRemote{resetErr: errOffline}
	l := newTestLoop(f)
	l.Session().Score = 30
	l.Reset()
	l.Flush()
	if l.Session().Score != 30 {
		t.Fatalf("failed reset wiped the session")
	}
}

func TestClear(t *testing.T) {
	f := &fakeRemote{
		aircraft:  []protocol.Aircraft{{ID: "a"}},
		conflicts: []protocol.Conflict{conflict("a", "b", false)},
	}
	l := newTestLoop(f)
	l.Poll()
	l.Flush()
	l.Session().Flagged["a"] = true

	l.Clear()
	l.Flush()
	s := l.Session()
	if f.clears != 1 || len(s.Aircraft) != 0 || len(s.Flagged) != 0 {
		t.Fatalf("clear not applied: clears=%d %+v", f.clears, s)
	}
}
