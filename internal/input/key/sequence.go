package key

import "strings"

// Sequence is an ordered, append-only list of chords accumulated toward a
// binding. Examples: "C-x C-s" (save), "g g" (go to top).
type Sequence struct {
	chords []Chord
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{
		chords: make([]Chord, 0, 4), // most bound sequences are short
	}
}

// NewSequenceFrom creates a sequence from the given chords.
func NewSequenceFrom(chords ...Chord) *Sequence {
	return &Sequence{chords: chords}
}

// Len returns the number of chords in the sequence.
func (s *Sequence) Len() int {
	return len(s.chords)
}

// IsEmpty returns true if the sequence has no chords.
func (s *Sequence) IsEmpty() bool {
	return len(s.chords) == 0
}

// Add appends a chord to the sequence.
func (s *Sequence) Add(c Chord) {
	s.chords = append(s.chords, c)
}

// Clear removes all chords from the sequence.
func (s *Sequence) Clear() {
	s.chords = s.chords[:0]
}

// Chords returns the underlying chords. The slice must not be mutated.
func (s *Sequence) Chords() []Chord {
	return s.chords
}

// At returns the chord at the given index and whether it exists.
func (s *Sequence) At(index int) (Chord, bool) {
	if index < 0 || index >= len(s.chords) {
		return Chord{}, false
	}
	return s.chords[index], true
}

// Last returns the most recently added chord and whether one exists.
func (s *Sequence) Last() (Chord, bool) {
	return s.At(len(s.chords) - 1)
}

// Equals returns true if two sequences contain the same chords in order.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.chords) != len(other.chords) {
		return false
	}
	for i, c := range s.chords {
		if c != other.chords[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
// An empty prefix matches everything.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if len(prefix.chords) > len(s.chords) {
		return false
	}
	for i, c := range prefix.chords {
		if c != s.chords[i] {
			return false
		}
	}
	return true
}

// IsStrictPrefixOf returns true if this sequence is a proper prefix of other.
func (s *Sequence) IsStrictPrefixOf(other *Sequence) bool {
	return other != nil && len(s.chords) < len(other.chords) && other.HasPrefix(s)
}

// Clone returns an independent copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	chords := make([]Chord, len(s.chords))
	copy(chords, s.chords)
	return &Sequence{chords: chords}
}

// String returns a space-separated representation such as "C-x C-s".
func (s *Sequence) String() string {
	if len(s.chords) == 0 {
		return ""
	}
	parts := make([]string, len(s.chords))
	for i, c := range s.chords {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
