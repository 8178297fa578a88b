package keymap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/key"
)

const tomlKeymap = `
[[bindings]]
keys = "C-x C-s"
mode = "normal"
action = "save-buffer"
description = "Save the buffer"

[[bindings]]
keys = "C-f"
action = "move"
unit = "char"
direction = "forward"

[[bindings]]
keys = "C-w"
mode = "normal"
action = "delete"
unit = "word"
direction = "backward"
`

const yamlKeymap = `
bindings:
  - keys: C-x C-s
    mode: normal
    action: save-buffer
  - keys: C-f
    action: move
    unit: char
    direction: forward
`

func TestLoadTOML(t *testing.T) {
	bindings, err := LoadTOML([]byte(tomlKeymap))
	if err != nil {
		t.Fatalf("LoadTOML error: %v", err)
	}
	if len(bindings) != 3 {
		t.Fatalf("len(bindings) = %d, want 3", len(bindings))
	}

	if bindings[0].Mode != "normal" || bindings[0].Action.Kind != action.KindSaveBuffer {
		t.Errorf("binding 0 = %+v, want normal save-buffer", bindings[0])
	}
	if bindings[1].Action.Unit != action.UnitChar || bindings[1].Action.Direction != action.DirForward {
		t.Errorf("binding 1 = %+v, want move char forward", bindings[1])
	}
	if bindings[2].Action.Kind != action.KindDelete || bindings[2].Action.Unit != action.UnitWord {
		t.Errorf("binding 2 = %+v, want delete word", bindings[2])
	}
}

func TestLoadYAML(t *testing.T) {
	bindings, err := LoadYAML([]byte(yamlKeymap))
	if err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2", len(bindings))
	}
	if bindings[0].Keys != "C-x C-s" {
		t.Errorf("binding 0 keys = %q", bindings[0].Keys)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "[[bindings]]\nkeys = \"x\"\naction = \"frobnicate\"\n"},
		{"unknown unit", "[[bindings]]\nkeys = \"x\"\naction = \"move\"\nunit = \"furlong\"\n"},
		{"unknown direction", "[[bindings]]\nkeys = \"x\"\naction = \"move\"\ndirection = \"sideways\"\n"},
		{"bad keys", "[[bindings]]\nkeys = \"<Q-x>\"\naction = \"exit\"\n"},
		{"bad toml", "[[bindings\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTOML([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "keymap.toml")
	if err := os.WriteFile(tomlPath, []byte(tomlKeymap), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "keymap.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlKeymap), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(tomlPath); err != nil {
		t.Errorf("LoadFile(toml) error: %v", err)
	}
	if _, err := LoadFile(yamlPath); err != nil {
		t.Errorf("LoadFile(yaml) error: %v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "keymap.ini")); err == nil {
		t.Error("unsupported extension should fail")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}

	table, err := LoadTableFile(tomlPath)
	if err != nil {
		t.Fatalf("LoadTableFile error: %v", err)
	}
	res := table.Resolve("normal", key.MustParseSequence("C-x C-s"))
	if res.Kind != MatchExact {
		t.Errorf("loaded table C-x C-s Kind = %v, want exact", res.Kind)
	}
}
