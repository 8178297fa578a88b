package key

import (
	"strings"
	"unicode"
)

// Chord is the normalized form of one physical key press: a base key plus a
// modifier set. Chords are immutable values; two chords are equal iff their
// key, rune and modifier set are equal, which makes Chord usable as a map key.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewRuneChord creates a chord for a character key.
func NewRuneChord(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: mods}
}

// NewSpecialChord creates a chord for a special key.
func NewSpecialChord(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// Normalize returns the chord in canonical form: rune chords are lowercased
// with Shift folded into the rune where the rune already encodes it. An
// uppercase rune with only Shift set becomes the uppercase rune with no
// modifiers, so "A" typed with Shift and "A" from a spec string compare equal.
func (c Chord) Normalize() Chord {
	if c.Key != KeyRune {
		return c
	}
	if c.Mods == ModShift && unicode.IsUpper(c.Rune) {
		c.Mods = ModNone
		return c
	}
	if c.Mods.Has(ModCtrl) {
		c.Rune = unicode.ToLower(c.Rune)
	}
	return c
}

// IsRune returns true if this is a character chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsModified returns true if a non-Shift modifier is held. For character
// chords Shift is part of the character itself and does not count.
func (c Chord) IsModified() bool {
	if c.IsRune() {
		return c.Mods&(ModCtrl|ModAlt|ModSuper) != 0
	}
	return c.Mods != ModNone
}

// IsText returns true if the chord would insert a printable character when
// no binding claims it.
func (c Chord) IsText() bool {
	return c.IsRune() && !c.IsModified() && unicode.IsPrint(c.Rune)
}

// String returns a canonical representation such as "a", "C-s" or "C-S-Tab".
func (c Chord) String() string {
	var parts []string
	if c.Mods.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if c.Mods.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if c.Mods.Has(ModSuper) {
		parts = append(parts, "M")
	}
	// Shift is only shown for non-character keys; for characters it is
	// already encoded in the rune.
	if c.Mods.Has(ModShift) && !c.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case c.Key == KeyRune && c.Rune == ' ':
		parts = append(parts, "Space")
	case c.Key == KeyRune:
		parts = append(parts, string(c.Rune))
	default:
		parts = append(parts, c.Key.String())
	}

	return strings.Join(parts, "-")
}

// Equals returns true if two chords represent the same key press.
func (c Chord) Equals(other Chord) bool {
	return c == other
}

// Matches checks whether this chord matches a specification string.
func (c Chord) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return c.Normalize() == parsed.Normalize()
}

// IsEscape returns true if this is the bare Escape key.
func (c Chord) IsEscape() bool {
	return c.Key == KeyEscape && c.Mods == ModNone
}

// IsEnter returns true if this is the bare Enter key.
func (c Chord) IsEnter() bool {
	return c.Key == KeyEnter && c.Mods == ModNone
}

// IsBackspace returns true if this is bare Backspace.
func (c Chord) IsBackspace() bool {
	return c.Key == KeyBackspace && c.Mods == ModNone
}
