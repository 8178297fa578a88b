package key

import "strings"

// Modifier is a bit set of keyboard modifier keys. Because modifiers are
// flags, chord equality is independent of the order modifiers were added.
type Modifier uint8

const (
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModSuper indicates the Super key (Cmd on macOS, Win key elsewhere).
	ModSuper
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool { return m == ModNone }

// modOrder fixes the display order of String regardless of how the set
// was built.
var modOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModSuper, "Super"},
}

// String returns a representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	for _, e := range modOrder {
		if m.Has(e.mod) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values. The
// single letters follow keymap notation: C-x, A-x, S-x, M-x.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"a":       ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
	"m":       ModSuper,
}

// ModifierFromName returns the Modifier for a given name, ignoring case.
// Unrecognized names map to ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNameMap[strings.ToLower(name)]
}
