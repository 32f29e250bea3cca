package radar

import (
	"airspace/shared/protocol"
)

const (
	TapReward    = 10
	TapPenalty   = 5
	InitialLevel = 1
)

type EventKind int

const (
	EventScorePulse EventKind = iota
	EventLevelUp
	EventGameOver
	EventReset
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventScorePulse:
		return "score"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	case EventReset:
		return "reset"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

// Event is a UI effect the frontends present. Score and Level are the
// session values at the time it was emitted.
type Event struct {
	Kind  EventKind
	Score int
	Level int
}

type stream int

const (
	streamAircraft stream = iota
	streamConflicts
	streamGameState
	numStreams
)

// Session is all client-local game state. Snapshots are replaced wholesale
// by the Apply methods and never mutated in place. A Session is not safe
// for concurrent use; the Loop only touches it from its Update caller.
type Session struct {
	Aircraft  []protocol.Aircraft
	Conflicts []protocol.Conflict
	Flagged   map[string]bool
	Score     int
	Level     int
	GameOver  bool

	// ConflictList is the display form of Conflicts, rebuilt on every
	// applied conflict poll.
	ConflictList []ConflictEntry

	byID    map[string]int  // index into Aircraft
	active  map[string]bool // ids in an unresolved conflict
	applied [numStreams]uint64
	events  []Event
}

func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset reinitializes every field, including the stale-response guards.
func (s *Session) Reset() {
	*s = Session{
		Flagged:      map[string]bool{},
		Level:        InitialLevel,
		ConflictList: buildConflictList(nil),
		byID:         map[string]int{},
		active:       map[string]bool{},
	}
}

// DiscardThrough makes every pending response numbered seq or lower stale.
func (s *Session) DiscardThrough(seq uint64) {
	for i := range s.applied {
		if s.applied[i] < seq {
			s.applied[i] = seq
		}
	}
}

// accept implements last-issued-wins: a response is applied only if it is
// newer than the last applied response of the same stream.
func (s *Session) accept(st stream, seq uint64) bool {
	if seq <= s.applied[st] {
		return false
	}
	s.applied[st] = seq
	return true
}

// ApplyAircraft replaces the aircraft snapshot. It reports false when the
// response was stale and dropped.
func (s *Session) ApplyAircraft(seq uint64, list []protocol.Aircraft) bool {
	if !s.accept(streamAircraft, seq) {
		return false
	}
	s.Aircraft = list
	s.byID = make(map[string]int, len(list))
	for i, ac := range list {
		s.byID[ac.ID] = i
	}
	return true
}

// ApplyConflicts replaces the conflict snapshot, then drops every flag
// whose aircraft is no longer in an unresolved conflict.
func (s *Session) ApplyConflicts(seq uint64, list []protocol.Conflict) bool {
	if !s.accept(streamConflicts, seq) {
		return false
	}
	s.Conflicts = list
	s.active = activeIDs(list)
	for id := range s.Flagged {
		if !s.active[id] {
			delete(s.Flagged, id)
		}
	}
	s.ConflictList = buildConflictList(list)
	return true
}

// ApplyGameState diffs the server state against the local mirror.
func (s *Session) ApplyGameState(seq uint64, gs protocol.GameState) bool {
	if !s.accept(streamGameState, seq) {
		return false
	}
	s.advanceLevel(gs.Level)
	if gs.GameOver {
		s.endGame()
	}
	return true
}

// ClearTraffic drops the local snapshots and flags after the server
// acknowledged a clear.
func (s *Session) ClearTraffic() {
	s.Aircraft = nil
	s.Conflicts = nil
	s.Flagged = map[string]bool{}
	s.byID = map[string]int{}
	s.active = map[string]bool{}
	s.ConflictList = buildConflictList(nil)
	s.emit(EventCleared)
}

// InConflict reports whether id is part of an unresolved conflict in the
// last applied conflict snapshot.
func (s *Session) InConflict(id string) bool {
	return s.active[id]
}

// Position returns the current snapshot position of ac, or the position
// embedded in ac itself when the aircraft is not in the snapshot.
func (s *Session) Position(ac protocol.Aircraft) Point {
	if i, ok := s.byID[ac.ID]; ok {
		cur := s.Aircraft[i]
		return Point{cur.X, cur.Y}
	}
	return Point{ac.X, ac.Y}
}

// DrainEvents returns and clears the pending UI events.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *Session) emit(k EventKind) {
	s.events = append(s.events, Event{Kind: k, Score: s.Score, Level: s.Level})
}

func activeIDs(list []protocol.Conflict) map[string]bool {
	ids := make(map[string]bool, 2*len(list))
	for _, c := range list {
		if !c.Resolved {
			ids[c.Aircraft1.ID] = true
			ids[c.Aircraft2.ID] = true
		}
	}
	return ids
}
