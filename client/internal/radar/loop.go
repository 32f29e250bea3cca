package radar

import (
	"context"
	"log/slog"
	"time"

	"airspace/client/internal/log"
	"airspace/shared/protocol"
)

// Remote is the server API the loop drives. api.Client implements it.
type Remote interface {
	ListAircraft(ctx context.Context) ([]protocol.Aircraft, error)
	ListConflicts(ctx context.Context) ([]protocol.Conflict, error)
	FetchGameState(ctx context.Context) (protocol.GameState, error)
	CreateAircraft(ctx context.Context, x, y float64) error
	TapAircraft(ctx context.Context, id string) (protocol.TapResult, error)
	Reset(ctx context.Context) error
	ClearAircraft(ctx context.Context) error
}

// pendingCall is a request running on its own goroutine. Its callback runs
// on the Loop owner's goroutine once done is closed.
type pendingCall struct {
	name     string
	issued   time.Time
	done     chan struct{}
	err      error
	callback func(error)
}

func (p *pendingCall) finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Loop reconciles a Session with the server. Requests overlap freely;
// responses are applied only from Update (or Flush), so the Session is
// only ever touched by the goroutine that owns the Loop.
type Loop struct {
	ctx     context.Context
	remote  Remote
	session *Session
	lg      *log.Logger
	period  time.Duration

	nextPoll time.Time
	seq      uint64
	epoch    int // bumped on reset/clear; taps from an older epoch are dropped
	pending  []*pendingCall
	tapping  map[string]bool
}

func NewLoop(ctx context.Context, remote Remote, s *Session, period time.Duration, lg *log.Logger) *Loop {
	if period <= 0 {
		period = protocol.PollIntervalMs * time.Millisecond
	}
	return &Loop{
		ctx:     ctx,
		remote:  remote,
		session: s,
		lg:      lg,
		period:  period,
		tapping: map[string]bool{},
	}
}

func (l *Loop) Session() *Session { return l.session }

func (l *Loop) Period() time.Duration { return l.period }

// InFlight is the number of requests that have not been applied yet.
func (l *Loop) InFlight() int { return len(l.pending) }

// Update applies every settled response, then starts a poll if one is due.
// The first call always polls. Call it once per frame.
func (l *Loop) Update(now time.Time) {
	l.settle(false)
	if l.nextPoll.IsZero() || !now.Before(l.nextPoll) {
		l.Poll()
		l.nextPoll = l.nextPoll.Add(l.period)
		if l.nextPoll.Before(now) {
			// Fell behind (suspended window, debugger); don't burst.
			l.nextPoll = now.Add(l.period)
		}
	}
}

// Settle applies every settled response without starting a poll.
func (l *Loop) Settle() { l.settle(false) }

// Flush blocks until every in-flight request has settled and applies them.
func (l *Loop) Flush() {
	for len(l.pending) > 0 {
		l.settle(true)
	}
}

// Events drains the UI events produced since the last call.
func (l *Loop) Events() []Event { return l.session.DrainEvents() }

// Poll issues the three reads. Each is applied independently; a failure
// leaves the corresponding mirror as it was.
func (l *Loop) Poll() {
	l.seq++
	seq := l.seq

	var aircraft []protocol.Aircraft
	l.call("list aircraft", func(ctx context.Context) (err error) {
		aircraft, err = l.remote.ListAircraft(ctx)
		return
	}, func(err error) {
		if err != nil {
			l.lg.Warn("Error fetching aircraft", slog.Any("error", err), slog.Uint64("seq", seq))
			return
		}
		if !l.session.ApplyAircraft(seq, aircraft) {
			l.lg.Debug("Dropped stale aircraft snapshot", slog.Uint64("seq", seq))
		}
	})

	var conflicts []protocol.Conflict
	l.call("list conflicts", func(ctx context.Context) (err error) {
		conflicts, err = l.remote.ListConflicts(ctx)
		return
	}, func(err error) {
		if err != nil {
			l.lg.Warn("Error fetching conflicts", slog.Any("error", err), slog.Uint64("seq", seq))
			return
		}
		if !l.session.ApplyConflicts(seq, conflicts) {
			l.lg.Debug("Dropped stale conflict snapshot", slog.Uint64("seq", seq))
		}
	})

	var gs protocol.GameState
	l.call("fetch game state", func(ctx context.Context) (err error) {
		gs, err = l.remote.FetchGameState(ctx)
		return
	}, func(err error) {
		if err != nil {
			l.lg.Warn("Error fetching game state", slog.Any("error", err), slog.Uint64("seq", seq))
			return
		}
		wasOver := l.session.GameOver
		if l.session.ApplyGameState(seq, gs) && l.session.GameOver && !wasOver {
			l.lg.Info("Game over", slog.Int("level", l.session.Level), slog.Int("score", l.session.Score))
		}
	})
}

// Tap handles a tap at a simulation-space point: an aircraft under it is
// tapped, otherwise a new aircraft is requested there. Taps are ignored
// once the game is over.
func (l *Loop) Tap(p Point) {
	if l.session.GameOver {
		return
	}
	if ac, ok := HitTest(l.session.Aircraft, p); ok {
		l.TapAircraft(ac.ID)
		return
	}
	l.CreateAircraft(p)
}

// TapAircraft sends a tap for id unless it is already flagged or a tap for
// it is still in flight. A failed request falls back to local scoring.
func (l *Loop) TapAircraft(id string) {
	if !l.session.CanTap(id) || l.tapping[id] {
		return
	}
	l.tapping[id] = true
	epoch := l.epoch

	var res protocol.TapResult
	l.call("tap aircraft", func(ctx context.Context) (err error) {
		res, err = l.remote.TapAircraft(ctx, id)
		return
	}, func(err error) {
		delete(l.tapping, id)
		if epoch != l.epoch {
			return
		}
		if err != nil {
			l.lg.Warn("Error tapping aircraft, scoring locally", slog.String("id", id), slog.Any("error", err))
			l.session.ApplyTapFallback(id)
			return
		}
		l.session.ApplyTapResult(id, res)
		l.lg.Debug("Tap", slog.String("id", id), slog.Bool("success", res.Success),
			slog.Int("score", l.session.Score), slog.Int("level", l.session.Level))
	})
}

func (l *Loop) CreateAircraft(p Point) {
	l.call("create aircraft", func(ctx context.Context) error {
		return l.remote.CreateAircraft(ctx, p.X, p.Y)
	}, func(err error) {
		if err != nil {
			l.lg.Warn("Error adding aircraft", slog.Float64("x", p.X), slog.Float64("y", p.Y), slog.Any("error", err))
		}
	})
}

// Reset restarts the game on the server and, once acknowledged, resets the
// session. Responses to requests issued before the ack are discarded.
func (l *Loop) Reset() {
	l.call("reset", func(ctx context.Context) error {
		return l.remote.Reset(ctx)
	}, func(err error) {
		if err != nil {
			l.lg.Error("Error resetting game", slog.Any("error", err))
			return
		}
		l.epoch++
		l.session.Reset()
		l.session.DiscardThrough(l.seq)
		l.session.emit(EventReset)
		l.lg.Info("Game reset")
	})
}

// Clear removes all aircraft on the server and, once acknowledged, drops
// the local snapshots and flags.
func (l *Loop) Clear() {
	l.call("clear aircraft", func(ctx context.Context) error {
		return l.remote.ClearAircraft(ctx)
	}, func(err error) {
		if err != nil {
			l.lg.Error("Error clearing aircraft", slog.Any("error", err))
			return
		}
		l.epoch++
		l.session.ClearTraffic()
		l.session.DiscardThrough(l.seq)
	})
}

func (l *Loop) call(name string, fn func(context.Context) error, callback func(error)) {
	pc := &pendingCall{
		name:     name,
		issued:   time.Now(),
		done:     make(chan struct{}),
		callback: callback,
	}
	l.pending = append(l.pending, pc)
	go func() {
		defer close(pc.done)
		pc.err = fn(l.ctx)
	}()
}

// settle runs the callbacks of finished calls in issue order. With wait
// set it blocks on each call first.
func (l *Loop) settle(wait bool) {
	pending := l.pending
	l.pending = nil
	for _, pc := range pending {
		if wait {
			<-pc.done
		}
		if !pc.finished() {
			l.pending = append(l.pending, pc)
			continue
		}
		if pc.err != nil {
			l.lg.Debug("Call failed", slog.String("call", pc.name), slog.Duration("after", time.Since(pc.issued)))
		}
		pc.callback(pc.err)
	}
}
