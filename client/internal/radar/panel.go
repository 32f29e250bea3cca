package radar

import (
	"fmt"

	"airspace/shared/protocol"
)

const NoConflicts = "No conflicts detected"

// ConflictEntry is one row of the conflict list.
type ConflictEntry struct {
	Title    string // "AC1234 ↔ AC5678"
	Distance string // "Distance: 12.3 units"
	Status   string // "✓ <resolution>" or "⚠ Resolving..."
	Resolved bool
}

func (e ConflictEntry) Lines() []string {
	if e.Distance == "" {
		return []string{e.Title}
	}
	return []string{e.Title, e.Distance, e.Status}
}

// buildConflictList renders the list shown next to the radar. An empty
// snapshot yields a single placeholder entry.
func buildConflictList(list []protocol.Conflict) []ConflictEntry {
	if len(list) == 0 {
		return []ConflictEntry{{Title: NoConflicts}}
	}
	out := make([]ConflictEntry, 0, len(list))
	for _, c := range list {
		e := ConflictEntry{
			Title:    c.Aircraft1.CallSign + " ↔ " + c.Aircraft2.CallSign,
			Distance: fmt.Sprintf("Distance: %.1f units", c.Distance),
			Status:   "⚠ Resolving...",
			Resolved: c.Resolved,
		}
		if c.Resolved {
			e.Status = "✓ " + c.Resolution
		}
		out = append(out, e)
	}
	return out
}

// Counters are the HUD lines in display order.
func (s *Session) Counters() []string {
	return []string{
		fmt.Sprintf("Aircraft: %d", len(s.Aircraft)),
		fmt.Sprintf("Conflicts: %d", len(s.Conflicts)),
		s.ScoreText(),
		s.LevelText(),
	}
}

func (s *Session) ScoreText() string { return fmt.Sprintf("Score: %d", s.Score) }
func (s *Session) LevelText() string { return fmt.Sprintf("Level: %d", s.Level) }

func (s *Session) GameOverSummary() string {
	return fmt.Sprintf("You reached Level %d with a score of %d.", s.Level, s.Score)
}
