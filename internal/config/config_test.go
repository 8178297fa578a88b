package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chordedit/chord/internal/input/key"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if !cfg.SelfInsert {
		t.Error("SelfInsert should default on")
	}
	c, err := cfg.CancelChord()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equals(key.MustParse("C-g")) {
		t.Errorf("CancelChord = %s, want C-g", c)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
keymap = "/home/user/.config/chord/keymap.toml"
watch_keymap = true
cancel_key = "Esc"
sequence_timeout_ms = 500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.KeymapPath != "/home/user/.config/chord/keymap.toml" || !cfg.WatchKeymap {
		t.Errorf("keymap settings = %+v", cfg)
	}
	if cfg.SequenceTimeout() != 500*time.Millisecond {
		t.Errorf("SequenceTimeout = %v", cfg.SequenceTimeout())
	}
	// Unset fields keep their defaults.
	if !cfg.SelfInsert {
		t.Error("SelfInsert default should survive partial files")
	}

	c, err := cfg.CancelChord()
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equals(key.MustParse("Esc")) {
		t.Errorf("CancelChord = %s, want Esc", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should load defaults, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "cancel_key = [\n"},
		{"bad cancel key", `cancel_key = "<Q-x>"`},
		{"negative timeout", `sequence_timeout_ms = -5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
