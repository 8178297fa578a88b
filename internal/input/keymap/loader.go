package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chordedit/chord/internal/input/action"
)

// bindingSpec is the on-disk form of a binding. The same shape is accepted
// in TOML and YAML keymap files.
type bindingSpec struct {
	Keys        string  `toml:"keys" yaml:"keys"`
	Mode        string  `toml:"mode" yaml:"mode"`
	Action      string  `toml:"action" yaml:"action"`
	Text        string  `toml:"text" yaml:"text"`
	Unit        string  `toml:"unit" yaml:"unit"`
	Direction   string  `toml:"direction" yaml:"direction"`
	Name        string  `toml:"name" yaml:"name"`
	Amount      float64 `toml:"amount" yaml:"amount"`
	Count       int     `toml:"count" yaml:"count"`
	Description string  `toml:"description" yaml:"description"`
}

// keymapFile is the root of a keymap configuration file.
type keymapFile struct {
	Bindings []bindingSpec `toml:"bindings" yaml:"bindings"`
}

// LoadFile loads bindings from a keymap file, dispatching on the extension
// (.toml, .yaml, .yml).
func LoadFile(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(data)
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return nil, fmt.Errorf("keymap file %s: unsupported format", path)
	}
}

// LoadTOML parses bindings from TOML data.
func LoadTOML(data []byte) ([]Binding, error) {
	var file keymapFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return convertSpecs(file.Bindings)
}

// LoadYAML parses bindings from YAML data.
func LoadYAML(data []byte) ([]Binding, error) {
	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return convertSpecs(file.Bindings)
}

// LoadTableFile loads a keymap file and builds a table from it.
func LoadTableFile(path string) (*Table, error) {
	bindings, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTable(bindings)
}

func convertSpecs(specs []bindingSpec) ([]Binding, error) {
	bindings := make([]Binding, 0, len(specs))
	for i, spec := range specs {
		b, err := spec.toBinding()
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

func (s bindingSpec) toBinding() (Binding, error) {
	kind, ok := action.KindFromName(s.Action)
	if !ok {
		return Binding{}, fmt.Errorf("%q: unknown action %q", s.Keys, s.Action)
	}

	act := action.Action{
		Kind:   kind,
		Text:   s.Text,
		Name:   s.Name,
		Amount: s.Amount,
		Count:  s.Count,
	}

	if s.Unit != "" {
		unit, ok := action.UnitFromName(s.Unit)
		if !ok {
			return Binding{}, fmt.Errorf("%q: unknown unit %q", s.Keys, s.Unit)
		}
		act.Unit = unit
	}
	if s.Direction != "" {
		dir, ok := action.DirectionFromName(s.Direction)
		if !ok {
			return Binding{}, fmt.Errorf("%q: unknown direction %q", s.Keys, s.Direction)
		}
		act.Direction = dir
	}

	b := Binding{
		Keys:        s.Keys,
		Mode:        s.Mode,
		Action:      act,
		Description: s.Description,
	}
	if err := b.Validate(); err != nil {
		return Binding{}, err
	}
	return b, nil
}
