package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single-chord specification string.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special key names: "Enter", "Esc", "Tab", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Short modifiers: "C-s", "A-f", "C-S-p"
//   - Angle notation: "<C-s>", "<A-Enter>", "<CR>", "<Esc>"
//
// The returned chord is normalized (see Chord.Normalize).
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseHyphen(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") && utf8.RuneCountInString(spec) > 1 {
		return parsePlus(spec)
	}

	if strings.Contains(spec, "-") && utf8.RuneCountInString(spec) > 1 {
		return parseHyphen(spec)
	}

	return parseBare(spec)
}

// parseHyphen parses hyphenated short notation, bare ("C-s") or taken from
// inside "<...>" ("C-s", "CR").
func parseHyphen(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")

	// A trailing empty part means the key itself is '-', as in "C--".
	if parts[len(parts)-1] == "" && len(parts) >= 2 {
		parts = parts[:len(parts)-1]
		parts[len(parts)-1] = "-"
	}

	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		switch p {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m":
			mods = mods.With(ModSuper)
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	return finishChord(keyPart, mods)
}

// parsePlus parses "Ctrl+Shift+S" style notation.
func parsePlus(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")

	// A trailing empty part means the key itself is '+', as in "Ctrl++".
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
		parts[len(parts)-1] += "+"
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return finishChord(strings.TrimSpace(parts[len(parts)-1]), mods)
}

// parseBare parses a spec with no modifier prefix.
func parseBare(spec string) (Chord, error) {
	return finishChord(spec, ModNone)
}

// aliasRunes maps symbolic key names to the runes they stand for.
var aliasRunes = map[string]rune{
	"space":   ' ',
	"lt":      '<',
	"less":    '<',
	"gt":      '>',
	"greater": '>',
	"plus":    '+',
	"bar":     '|',
	"bslash":  '\\',
}

// finishChord resolves a key part against named keys, rune aliases and
// single characters, and normalizes the result.
func finishChord(keyPart string, mods Modifier) (Chord, error) {
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}

	lower := strings.ToLower(keyPart)
	if r, ok := aliasRunes[lower]; ok {
		return NewRuneChord(r, mods).Normalize(), nil
	}
	if k := FromName(lower); k != KeyNone {
		return NewSpecialChord(k, mods).Normalize(), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods == ModNone && unicode.IsUpper(r) {
			// Uppercase letters carry an implicit Shift which
			// Normalize folds straight back into the rune.
			return NewRuneChord(r, ModShift).Normalize(), nil
		}
		return NewRuneChord(r, mods).Normalize(), nil
	}

	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence parses a multi-chord specification. Chords are separated by
// spaces; angle notation may also be concatenated, e.g. "<C-x><C-s>".
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	seq := NewSequence()
	if s == "" {
		return seq, nil
	}

	if strings.ContainsRune(s, ' ') {
		for _, part := range strings.Fields(s) {
			c, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq.Add(c)
		}
		return seq, nil
	}

	if strings.HasPrefix(s, "<") {
		for len(s) > 0 {
			end := strings.IndexByte(s, '>')
			if s[0] != '<' || end == -1 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
			}
			c, err := Parse(s[:end+1])
			if err != nil {
				return nil, err
			}
			seq.Add(c)
			s = s[end+1:]
		}
		return seq, nil
	}

	c, err := Parse(s)
	if err != nil {
		return nil, err
	}
	seq.Add(c)
	return seq, nil
}

// MustParse parses a chord specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// MustParseSequence parses a sequence specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
