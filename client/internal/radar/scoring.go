package radar

import "airspace/shared/protocol"

// CanTap reports whether a tap on id may be sent: the game is running and
// the aircraft has not already been flagged in this conflict episode.
func (s *Session) CanTap(id string) bool {
	return !s.GameOver && !s.Flagged[id]
}

// ApplyTapResult applies the server's judgment on a tap.
func (s *Session) ApplyTapResult(id string, res protocol.TapResult) {
	if s.GameOver {
		return
	}
	if res.Success {
		s.reward(id)
		s.advanceLevel(res.Level)
	} else {
		s.penalize()
	}
	s.emit(EventScorePulse)
	if res.GameOver {
		s.endGame()
	}
}

// ApplyTapFallback scores a tap whose request failed, using the last known
// conflict snapshot in place of the server.
func (s *Session) ApplyTapFallback(id string) {
	if s.GameOver {
		return
	}
	if s.InConflict(id) {
		s.reward(id)
	} else {
		s.penalize()
	}
	s.emit(EventScorePulse)
}

func (s *Session) reward(id string) {
	s.Score += TapReward
	s.Flagged[id] = true
}

func (s *Session) penalize() {
	s.Score = max(0, s.Score-TapPenalty)
}

// endGame latches game over; later calls are no-ops.
func (s *Session) endGame() {
	if s.GameOver {
		return
	}
	s.GameOver = true
	s.emit(EventGameOver)
}

// advanceLevel moves the level mirror forward only.
func (s *Session) advanceLevel(level int) bool {
	if level <= s.Level {
		return false
	}
	s.Level = level
	s.emit(EventLevelUp)
	return true
}
