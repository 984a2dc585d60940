// Package content loads the tips and quiz questions shown by the game.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultPack []byte

// Default returns the built-in pack.
func Default() (Pack, error) {
	pack, err := parsePack(defaultPack)
	if err != nil {
		return pack, fmt.Errorf("builtin content: %w", err)
	}
	pack.Path = "builtin"
	return pack, nil
}

// Load reads the pack at path, or the built-in pack when path is empty.
func Load(path string) (Pack, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("read content %s: %w", path, err)
	}
	pack, err := parsePack(b)
	if err != nil {
		return pack, fmt.Errorf("content %s: %w", path, err)
	}
	pack.Path = path
	return pack, nil
}

func parsePack(b []byte) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return pack, fmt.Errorf("parse: %w", err)
	}
	applyDefaults(&pack)
	if err := pack.Validate(); err != nil {
		return pack, fmt.Errorf("validate: %w", err)
	}
	return pack, nil
}

func applyDefaults(pack *Pack) {
	if pack.Kind == "" {
		pack.Kind = PackKind
	}
	if pack.SchemaVersion == 0 {
		pack.SchemaVersion = SupportedSchemaVersion
	}
	if pack.Name == "" {
		pack.Name = "Spider Quest"
	}
}
