package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chordedit/chord/internal/input/key"
)

// Config is the user-facing editor configuration, loaded from a TOML file.
// Zero values fall back to the defaults from Default.
type Config struct {
	// KeymapPath points at a TOML or YAML keymap file replacing the
	// built-in bindings. Empty keeps the defaults.
	KeymapPath string `toml:"keymap"`

	// WatchKeymap reloads the keymap file when it changes on disk.
	WatchKeymap bool `toml:"watch_keymap"`

	// CommandDir holds Lua command scripts, one command per file.
	CommandDir string `toml:"command_dir"`

	// CancelKey aborts a pending key sequence, "C-g" by default.
	CancelKey string `toml:"cancel_key"`

	// SelfInsert makes unbound printable keys type themselves.
	SelfInsert bool `toml:"self_insert"`

	// ApplyExactOnAmbiguity applies an exact match immediately instead of
	// waiting out longer bindings with the same prefix.
	ApplyExactOnAmbiguity bool `toml:"apply_exact_on_ambiguity"`

	// SequenceTimeoutMS resolves an ambiguous sequence to its exact match
	// after this many milliseconds. Zero waits for the next key.
	SequenceTimeoutMS int `toml:"sequence_timeout_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CancelKey:  "C-g",
		SelfInsert: true,
	}
}

// Load reads a configuration file over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// DefaultPath returns the standard config file location, under the
// user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chord", "config.toml"), nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if _, err := key.Parse(c.CancelKey); err != nil {
		return fmt.Errorf("cancel_key %q: %w", c.CancelKey, err)
	}
	if c.SequenceTimeoutMS < 0 {
		return fmt.Errorf("sequence_timeout_ms must not be negative")
	}
	return nil
}

// CancelChord returns the parsed cancel key.
func (c Config) CancelChord() (key.Chord, error) {
	return key.Parse(c.CancelKey)
}

// SequenceTimeout returns the ambiguity timeout as a duration.
func (c Config) SequenceTimeout() time.Duration {
	return time.Duration(c.SequenceTimeoutMS) * time.Millisecond
}
