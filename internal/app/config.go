package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. SPIDERQUEST_DATA_DIR.
const EnvPrefix = "SPIDERQUEST_"

// Config controls runtime behavior for the game.
type Config struct {
	Dev          bool   `env:"DEV"`
	DevHTTP      string `env:"DEV_HTTP"`
	LogPath      string `env:"LOG"`
	Debug        bool   `env:"DEBUG"`
	DemoScenario string `env:"DEMO"`
	ASCIIOnly    bool   `env:"ASCII"`
	DataDir      string `env:"DATA_DIR"`
	ContentPath  string `env:"CONTENT"`
	BundleDir    string `env:"BUNDLE"`
	DownloadDir  string `env:"DOWNLOAD_DIR"`
	DevStateDir  string `env:"DEV_STATE_DIR"`
	Seed         int64  `env:"SEED"`
	Audio        string `env:"AUDIO"`
	StartMode    string `env:"MODE"`
	UI           UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	MotionLevel  string `env:"MOTION"`
}

func DefaultConfig() Config {
	return Config{
		DevHTTP:   "127.0.0.1:17321",
		Audio:     "auto",
		StartMode: string(ModeWebBuilder),
		UI: UIConfig{
			StyleVariant: "silk",
			MotionLevel:  "full",
		},
	}
}

// LoadConfig returns the defaults overlaid with SPIDERQUEST_* variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Audio)) {
	case "", "auto":
		c.Audio = "auto"
	case "on", "true", "1":
		c.Audio = "on"
	case "off", "false", "0":
		c.Audio = "off"
	default:
		return fmt.Errorf("invalid audio setting %q", c.Audio)
	}

	if c.StartMode == "" {
		c.StartMode = string(ModeWebBuilder)
	}
	mode, ok := parseMode(c.StartMode)
	if !ok || mode == ModeNone {
		return fmt.Errorf("invalid start mode %q", c.StartMode)
	}
	c.StartMode = string(mode)

	switch c.UI.StyleVariant {
	case "", "silk", "meadow", "retro":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "silk"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	if c.DevHTTP == "" {
		c.DevHTTP = "127.0.0.1:17321"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "spiderquest")
	}
	if c.DownloadDir == "" {
		c.DownloadDir = filepath.Join(c.DataDir, "books")
	}
	return nil
}
