package state

import "context"

// KV is a durable string key-value store scoped to one player profile.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Settings interface {
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
}

// ProgressRecord is the persisted learning history.
type ProgressRecord struct {
	TotalPlaySeconds int      `json:"time"`
	QuizzesCompleted int      `json:"quizzes"`
	CorrectAnswers   int      `json:"correct"`
	BugCatchScores   []int    `json:"bugScores"`
	Badges           []string `json:"badges"`
}

// Zero returns the record used for a fresh profile and after a full reset.
func Zero() ProgressRecord {
	return ProgressRecord{
		BugCatchScores: []int{},
		Badges:         []string{},
	}
}

// LastScores returns up to n of the most recent bug catch scores, oldest first.
func (r ProgressRecord) LastScores(n int) []int {
	if n <= 0 || len(r.BugCatchScores) == 0 {
		return []int{}
	}
	start := len(r.BugCatchScores) - n
	if start < 0 {
		start = 0
	}
	return append([]int(nil), r.BugCatchScores[start:]...)
}

func (r ProgressRecord) HasBadge(name string) bool {
	for _, b := range r.Badges {
		if b == name {
			return true
		}
	}
	return false
}

func (r ProgressRecord) clone() ProgressRecord {
	out := r
	out.BugCatchScores = append([]int{}, r.BugCatchScores...)
	out.Badges = append([]string{}, r.Badges...)
	return out
}
