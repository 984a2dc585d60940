package app

import "time"

// Session is the in-memory state of one play session.
type Session struct {
	ID           string
	ActiveMode   Mode
	StartedAt    time.Time
	EarnedBadges []string
	Tip          string
}

func (s *Session) HasBadge(name string) bool {
	for _, b := range s.EarnedBadges {
		if b == name {
			return true
		}
	}
	return false
}

// addBadge appends name unless present and reports whether it was added.
func (s *Session) addBadge(name string) bool {
	if s.HasBadge(name) {
		return false
	}
	s.EarnedBadges = append(s.EarnedBadges, name)
	return true
}

// Dashboard is the summary shown in the dashboard overlay and by the stats
// command.
type Dashboard struct {
	PlayMinutes int
	Quizzes     int
	Correct     int
	LastScores  []int
	Badges      []string
	AudioOn     bool
}
