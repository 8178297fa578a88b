package input

import (
	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/key"
	"github.com/chordedit/chord/internal/input/keymap"
)

// StateKind classifies the accumulator state after feeding a chord.
type StateKind uint8

const (
	// StateIncomplete means the sequence is a prefix of at least one
	// binding and more chords are needed.
	StateIncomplete StateKind = iota

	// StateComplete means the sequence resolved to exactly one action.
	// The sequence has been reset.
	StateComplete

	// StateAmbiguous means the sequence is bound but longer bindings
	// also start with it. The exact action is carried in the state; the
	// sequence is kept pending so a following chord can still extend it.
	StateAmbiguous

	// StateNoMatch means no binding matches and none could. The
	// sequence has been reset.
	StateNoMatch

	// StateCancelled means the cancel chord interrupted a pending
	// sequence. The sequence has been reset; the cancel chord is never
	// reinterpreted.
	StateCancelled
)

// String returns a string representation of the state kind.
func (k StateKind) String() string {
	switch k {
	case StateIncomplete:
		return "incomplete"
	case StateComplete:
		return "complete"
	case StateAmbiguous:
		return "ambiguous"
	case StateNoMatch:
		return "no-match"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SequenceState is the result of feeding one chord to the Accumulator.
type SequenceState struct {
	// Kind classifies the state.
	Kind StateKind

	// Sequence is a snapshot of the sequence that produced this state.
	Sequence *key.Sequence

	// Action is the resolved action for StateComplete and the pending
	// exact action for StateAmbiguous.
	Action action.Action

	// Candidates lists longer bindings still reachable, for
	// StateIncomplete and StateAmbiguous.
	Candidates []keymap.Binding

	// Reinterpreted is true when a failed multi-chord sequence was
	// discarded and the final chord re-run as the start of a fresh
	// sequence; this state describes the re-run.
	Reinterpreted bool

	// Deferred is an exact action from an earlier ambiguous state whose
	// grace window just closed. It must be applied before this state's
	// own action.
	Deferred action.Action

	// HasDeferred reports whether Deferred is set.
	HasDeferred bool
}

// Config configures an Accumulator.
type Config struct {
	// Cancel is the chord that aborts a pending sequence. It only acts
	// as an interrupt while a sequence is pending; with no pending
	// chords it resolves through the binding table like any other key.
	Cancel key.Chord

	// SelfInsert controls whether a single unbound printable chord
	// resolves to an insert-text action instead of no-match, so plain
	// typing works without binding every character.
	SelfInsert bool
}

// DefaultConfig returns the standard accumulator configuration.
func DefaultConfig() Config {
	return Config{
		Cancel:     key.NewRuneChord('g', key.ModCtrl),
		SelfInsert: true,
	}
}

// Accumulator turns individual key chords into sequences and resolves them
// against a binding table. It is not safe for concurrent use; all input
// processing happens on one logical thread.
type Accumulator struct {
	config Config
	table  *keymap.Table
	seq    *key.Sequence

	// pendingExact is the exact action of the last ambiguous state,
	// kept so a timeout or an unrelated chord can force its resolution.
	pendingExact action.Action
	hasPending   bool
}

// NewAccumulator creates an accumulator over the given binding table.
func NewAccumulator(table *keymap.Table, config Config) *Accumulator {
	return &Accumulator{
		config: config,
		table:  table,
		seq:    key.NewSequence(),
	}
}

// SetTable swaps in a replacement binding table and resets accumulation.
// Call only between key events, never during Feed.
func (a *Accumulator) SetTable(table *keymap.Table) {
	a.table = table
	a.Reset()
}

// Pending returns a snapshot of the chords accumulated so far.
func (a *Accumulator) Pending() *key.Sequence {
	return a.seq.Clone()
}

// HasPendingExact reports whether an ambiguous exact action is waiting.
func (a *Accumulator) HasPendingExact() bool {
	return a.hasPending
}

// Reset clears all accumulation state.
func (a *Accumulator) Reset() {
	a.seq.Clear()
	a.pendingExact = action.Action{}
	a.hasPending = false
}

// Feed advances the accumulator with one chord under the given mode.
//
// A chord that turns a pending sequence into a dead end is not dropped: the
// failed sequence is reported through the Reinterpreted flag and the chord
// is re-run as the start of a fresh sequence, so no keystroke is lost.
func (a *Accumulator) Feed(mode string, c key.Chord) SequenceState {
	c = c.Normalize()

	// The cancel chord interrupts a pending sequence unconditionally and
	// is never reinterpreted.
	if !a.seq.IsEmpty() && c == a.config.Cancel.Normalize() {
		snapshot := a.Pending()
		snapshot.Add(c)
		a.Reset()
		return SequenceState{Kind: StateCancelled, Sequence: snapshot}
	}

	return a.feed(mode, c, false)
}

func (a *Accumulator) feed(mode string, c key.Chord, reinterpreted bool) SequenceState {
	a.seq.Add(c)
	snapshot := a.Pending()

	res := a.table.Resolve(mode, a.seq)
	switch res.Kind {
	case keymap.MatchExact:
		a.Reset()
		return SequenceState{
			Kind:          StateComplete,
			Sequence:      snapshot,
			Action:        res.Action,
			Reinterpreted: reinterpreted,
		}

	case keymap.MatchAmbiguous:
		a.pendingExact = res.Action
		a.hasPending = true
		return SequenceState{
			Kind:          StateAmbiguous,
			Sequence:      snapshot,
			Action:        res.Action,
			Candidates:    res.Candidates,
			Reinterpreted: reinterpreted,
		}

	case keymap.MatchPartial:
		a.pendingExact = action.Action{}
		a.hasPending = false
		return SequenceState{
			Kind:          StateIncomplete,
			Sequence:      snapshot,
			Candidates:    res.Candidates,
			Reinterpreted: reinterpreted,
		}

	default: // keymap.MatchNone
		wasMulti := a.seq.Len() > 1
		deferred, hasDeferred := a.pendingExact, a.hasPending
		a.Reset()

		if !wasMulti {
			if a.config.SelfInsert && c.IsText() {
				return SequenceState{
					Kind:          StateComplete,
					Sequence:      snapshot,
					Action:        action.Insert(string(c.Rune)),
					Reinterpreted: reinterpreted,
				}
			}
			return SequenceState{
				Kind:          StateNoMatch,
				Sequence:      snapshot,
				Reinterpreted: reinterpreted,
			}
		}

		// A longer sequence hit a dead end: re-run the offending chord
		// as the first chord of a fresh sequence. An exact action whose
		// grace window just closed rides along to be applied first.
		state := a.feed(mode, c, true)
		if hasDeferred {
			state.Deferred = deferred
			state.HasDeferred = true
		}
		return state
	}
}

// TakePendingExact forces resolution of a pending ambiguous sequence,
// returning its exact action. Used when a configured timeout elapses or
// when the caller's policy is to apply the exact match immediately.
func (a *Accumulator) TakePendingExact() (action.Action, bool) {
	if !a.hasPending {
		return action.Action{}, false
	}
	act := a.pendingExact
	a.Reset()
	return act, true
}
