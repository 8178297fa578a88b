package dispatcher

import (
	"time"

	"github.com/chordedit/chord/internal/input"
)

// Config controls dispatch behavior.
type Config struct {
	// Input configures the key sequence accumulator. Nil uses
	// input.DefaultConfig.
	Input *input.Config

	// ApplyExactOnAmbiguity applies an exact match immediately even when
	// longer bindings share its prefix, forfeiting those bindings. When
	// false the exact match waits for the next chord or the timeout.
	ApplyExactOnAmbiguity bool

	// SequenceTimeout is how long an ambiguous sequence waits before its
	// exact match is applied. Zero disables the timeout; the ambiguity is
	// then resolved only by the next chord.
	SequenceTimeout time.Duration
}

// DefaultConfig returns the standard dispatch configuration.
func DefaultConfig() Config {
	return Config{}
}
