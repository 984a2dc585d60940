package state

import (
	"context"
	"encoding/json"
	"fmt"
)

// ProgressKey is the fixed key the progress record lives under.
const ProgressKey = "spiderQuestProgress_v2"

type errorLogger interface {
	Error(msg string, keyvals ...any)
}

// ProgressStore reads and writes the single ProgressRecord held in a KV.
type ProgressStore struct {
	kv     KV
	logger errorLogger
}

func NewProgressStore(kv KV, logger errorLogger) *ProgressStore {
	return &ProgressStore{kv: kv, logger: logger}
}

// Load never fails: a missing, unreadable or corrupt record yields Zero().
func (s *ProgressStore) Load(ctx context.Context) ProgressRecord {
	raw, ok, err := s.kv.Get(ctx, ProgressKey)
	if err != nil {
		s.logError("progress.read_failed", err)
		return Zero()
	}
	if !ok {
		return Zero()
	}
	rec, err := decodeProgress(raw)
	if err != nil {
		s.logError("progress.decode_failed", err)
		return Zero()
	}
	return rec
}

// Save overwrites the stored record.
func (s *ProgressStore) Save(ctx context.Context, rec ProgressRecord) error {
	rec = normalize(rec)
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Set(ctx, ProgressKey, string(b)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Reset rewrites the stored record to Zero() and returns it.
func (s *ProgressStore) Reset(ctx context.Context) (ProgressRecord, error) {
	zero := Zero()
	if err := s.Save(ctx, zero); err != nil {
		return zero, err
	}
	return zero, nil
}

func (s *ProgressStore) logError(event string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(event, "key", ProgressKey, "error", err.Error())
}

func decodeProgress(raw string) (ProgressRecord, error) {
	// A stored JSON null decodes without error; treat it like an absent record.
	var rec *ProgressRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Zero(), err
	}
	if rec == nil {
		return Zero(), nil
	}
	return normalize(*rec), nil
}

func normalize(rec ProgressRecord) ProgressRecord {
	out := rec.clone()
	out.TotalPlaySeconds = max(0, out.TotalPlaySeconds)
	out.QuizzesCompleted = max(0, out.QuizzesCompleted)
	out.CorrectAnswers = max(0, out.CorrectAnswers)
	seen := make(map[string]bool, len(out.Badges))
	badges := make([]string, 0, len(out.Badges))
	for _, b := range out.Badges {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		badges = append(badges, b)
	}
	out.Badges = badges
	return out
}
