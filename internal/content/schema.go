package content

import "fmt"

const (
	PackKind               = "content"
	SupportedSchemaVersion = 1
	QuestionCount          = 3
	MinOptions             = 2
	MaxOptions             = 3
)

type Pack struct {
	Kind          string     `yaml:"kind"`
	SchemaVersion int        `yaml:"schema_version"`
	Name          string     `yaml:"name"`
	AboutMD       string     `yaml:"about_md"`
	Tips          []string   `yaml:"tips"`
	Questions     []Question `yaml:"questions"`

	Path string `yaml:"-"`
}

type Question struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

func (p Pack) Validate() error {
	if p.Kind != PackKind {
		return fmt.Errorf("kind must be %q", PackKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported content schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if len(p.Tips) == 0 {
		return fmt.Errorf("tips must not be empty")
	}
	for i, tip := range p.Tips {
		if tip == "" {
			return fmt.Errorf("tips[%d] is empty", i)
		}
	}
	if len(p.Questions) != QuestionCount {
		return fmt.Errorf("expected %d questions, got %d", QuestionCount, len(p.Questions))
	}
	for i, q := range p.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("questions[%d]: %w", i, err)
		}
	}
	return nil
}

func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("expected %d-%d options, got %d", MinOptions, MaxOptions, len(q.Options))
	}
	for i, o := range q.Options {
		if o == "" {
			return fmt.Errorf("options[%d] is empty", i)
		}
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.Correct)
	}
	return nil
}
