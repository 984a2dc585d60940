package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPackHasTipsAndQuestions(t *testing.T) {
	pack, err := Default()
	if err != nil {
		t.Fatalf("default pack: %v", err)
	}
	if len(pack.Tips) != 5 {
		t.Fatalf("expected 5 tips, got %d", len(pack.Tips))
	}
	if pack.Tips[0] != "Spiders have two body parts!" {
		t.Fatalf("unexpected first tip %q", pack.Tips[0])
	}
	q := pack.Questions
	if q[0].Options[q[0].Correct] != "8" || q[1].Options[q[1].Correct] != "Spinnerets" || q[2].Options[q[2].Correct] != "No" {
		t.Fatalf("unexpected answers %+v", q)
	}
	if len(q[2].Options) != 2 {
		t.Fatalf("third question should have two options")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	doc := `tips: [one]
questions:
  - {prompt: a, options: [x, y], correct: 0}
  - {prompt: b, options: [x, y, z], correct: 2}
  - {prompt: c, options: [x, y], correct: 1}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pack, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pack.Kind != PackKind || pack.Path != path || pack.Name == "" {
		t.Fatalf("defaults not applied: %+v", pack)
	}
}

func TestLoadRejectsWrongQuestionCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	doc := "tips: [one]\nquestions:\n  - {prompt: a, options: [x, y], correct: 0}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected question count error")
	}
}

func TestQuestionValidateRejectsOutOfRangeAnswer(t *testing.T) {
	q := Question{Prompt: "p", Options: []string{"a", "b"}, Correct: 2}
	if err := q.Validate(); err == nil {
		t.Fatalf("expected range error")
	}
	q = Question{Prompt: "p", Options: []string{"a", "b", "c", "d"}, Correct: 0}
	if err := q.Validate(); err == nil {
		t.Fatalf("expected option count error")
	}
}

func TestPackValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	p.SchemaVersion = SupportedSchemaVersion + 1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
