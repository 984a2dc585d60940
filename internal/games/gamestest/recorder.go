// Package gamestest provides test doubles for the mode packages.
package gamestest

import "sync"

// Recorder is a games.Host and games.Sounds double that records every call.
type Recorder struct {
	mu        sync.Mutex
	Badges    []string
	BugScores []int
	Quizzes   []int
	Tones     []string
}

func (r *Recorder) AwardBadge(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.Badges {
		if b == name {
			return false
		}
	}
	r.Badges = append(r.Badges, name)
	r.Tones = append(r.Tones, "success")
	return true
}

func (r *Recorder) RecordBugScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BugScores = append(r.BugScores, score)
}

func (r *Recorder) RecordQuiz(correct int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Quizzes = append(r.Quizzes, correct)
}

func (r *Recorder) Success() { r.tone("success") }
func (r *Recorder) Fail()    { r.tone("fail") }
func (r *Recorder) Click()   { r.tone("click") }

func (r *Recorder) tone(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tones = append(r.Tones, name)
}

// LastTone returns the most recent tone or "".
func (r *Recorder) LastTone() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Tones) == 0 {
		return ""
	}
	return r.Tones[len(r.Tones)-1]
}
