package tui

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"airspace/client/internal/radar"
	"airspace/shared/protocol"

	"github.com/gdamore/tcell/v2"
)

type fakeRemote struct {
	mu      sync.Mutex
	state   protocol.GameState
	created []radar.Point
	resets  int
	clears  int
}

func (f *fakeRemote) ListAircraft(context.Context) ([]protocol.Aircraft, error)  { return nil, nil }
func (f *fakeRemote) ListConflicts(context.Context) ([]protocol.Conflict, error) { return nil, nil }
func (f *fakeRemote) FetchGameState(context.Context) (protocol.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, nil
}

func (f *fakeRemote) CreateAircraft(_ context.Context, x, y float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, radar.Point{X: x, Y: y})
	return nil
}

func (f *fakeRemote) TapAircraft(context.Context, string) (protocol.TapResult, error) {
	return protocol.TapResult{Success: true, Level: 1}, nil
}

func (f *fakeRemote) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return nil
}

func (f *fakeRemote) ClearAircraft(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

// newTestApp runs on a 100x31 simulated terminal: the radar is 68x30 cells
// starting at row 1, the panel takes the last 32 columns.
func newTestApp(t *testing.T) (*App, *fakeRemote, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 31)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	remote := &fakeRemote{state: protocol.GameState{Level: 1}}
	return New(ctx, screen, remote, time.Hour, nil), remote, screen
}

func click(a *App, x, y int) {
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func rowText(s tcell.SimulationScreen, x, y, n int) string {
	out := make([]rune, n)
	for i := range n {
		out[i], _, _, _ = s.GetContent(x+i, y)
	}
	return string(out)
}

func TestLayout(t *testing.T) {
	a, _, _ := newTestApp(t)
	if a.view != (radar.Viewport{Left: 0, Top: 1, Width: 68, Height: 30}) {
		t.Fatalf("view %+v", a.view)
	}
	if a.canvas.cols != 68 || a.canvas.rows != 30 {
		t.Fatalf("canvas %dx%d", a.canvas.cols, a.canvas.rows)
	}
}

func TestClickCreatesAircraftAtMappedPoint(t *testing.T) {
	a, remote, _ := newTestApp(t)
	click(a, 34, 16)
	a.loop.Flush()

	if len(remote.created) != 1 {
		t.Fatalf("created %v", remote.created)
	}
	got := remote.created[0]
	wantX, wantY := 34.5*800/68, 15.5*600/30
	if math.Abs(got.X-wantX) > 1e-9 || math.Abs(got.Y-wantY) > 1e-9 {
		t.Fatalf("created at %+v, want (%v, %v)", got, wantX, wantY)
	}
}

func TestHeldButtonIsOneClick(t *testing.T) {
	a, remote, _ := newTestApp(t)
	a.handleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	a.handleEvent(tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone)) // drag
	a.handleEvent(tcell.NewEventMouse(11, 10, tcell.ButtonNone, tcell.ModNone))
	a.loop.Flush()
	if len(remote.created) != 1 {
		t.Fatalf("created %d aircraft, want 1", len(remote.created))
	}
}

func TestPanelClicksDoNotTap(t *testing.T) {
	a, remote, _ := newTestApp(t)
	click(a, 90, 25)
	click(a, 50, 0) // header
	a.loop.Flush()
	if len(remote.created) != 0 {
		t.Fatalf("created %v", remote.created)
	}
}

func TestClearButton(t *testing.T) {
	a, remote, _ := newTestApp(t)
	click(a, a.clearBtn.x+2, a.clearBtn.y)
	a.loop.Flush()
	if remote.clears != 1 || len(remote.created) != 0 {
		t.Fatalf("clears=%d created=%v", remote.clears, remote.created)
	}
}

func TestNewAircraftKeySpawnsAtCenter(t *testing.T) {
	a, remote, _ := newTestApp(t)
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	a.loop.Flush()
	want := []radar.Point{{X: protocol.DefaultSpawnX, Y: protocol.DefaultSpawnY}}
	if len(remote.created) != 1 || remote.created[0] != want[0] {
		t.Fatalf("created %v want %v", remote.created, want)
	}
}

func TestGameOverOverlay(t *testing.T) {
	a, remote, screen := newTestApp(t)
	remote.state = protocol.GameState{Level: 3, GameOver: true}
	s := a.loop.Session()
	now := time.Now()
	a.frame(now) // polls
	a.loop.Flush()
	a.frame(now) // presents game over

	if a.summary != "You reached Level 3 with a score of 0." {
		t.Fatalf("summary %q", a.summary)
	}
	if got := rowText(screen, a.restartBtn.x, a.restartBtn.y, len(a.restartBtn.label)); got != a.restartBtn.label {
		t.Fatalf("restart button drawn as %q", got)
	}

	click(a, 34, 10)
	click(a, a.clearBtn.x+2, a.clearBtn.y)
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	a.loop.Flush()
	if len(remote.created) != 0 || remote.clears != 0 {
		t.Fatalf("overlay let input through: created=%v clears=%d", remote.created, remote.clears)
	}

	click(a, a.restartBtn.x+1, a.restartBtn.y)
	a.loop.Flush()
	if remote.resets != 1 {
		t.Fatalf("resets = %d", remote.resets)
	}
	if s.GameOver || s.Level != radar.InitialLevel {
		t.Fatalf("session not reset: over=%v level=%d", s.GameOver, s.Level)
	}
}

func TestFrameDrawsHeaderAndCounters(t *testing.T) {
	a, _, screen := newTestApp(t)
	a.frame(time.Now())

	if got := rowText(screen, 1, 0, len(protocol.GameName)); got != protocol.GameName {
		t.Fatalf("header %q", got)
	}
	if got := rowText(screen, 70, 1, len("Aircraft: 0")); got != "Aircraft: 0" {
		t.Fatalf("counter row %q", got)
	}
	if got := rowText(screen, 70, 4, len("Level: 1")); got != "Level: 1" {
		t.Fatalf("level row %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	} {
		a, _, _ := newTestApp(t)
		a.handleEvent(ev)
		if !a.quit {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
}
