package input

import (
	"testing"

	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/key"
	"github.com/chordedit/chord/internal/input/keymap"
)

func testAccumulator(t *testing.T) *Accumulator {
	t.Helper()
	table, err := keymap.NewTable([]keymap.Binding{
		keymap.NewBinding("C-x C-s", action.Simple(action.KindSaveBuffer)).InMode("normal"),
		keymap.NewBinding("C-x C-c", action.Simple(action.KindExit)).InMode("normal"),
		keymap.NewBinding("g", action.Move(action.UnitBuffer, action.DirBackward)).InMode("normal"),
		keymap.NewBinding("g g", action.Move(action.UnitBuffer, action.DirForward)).InMode("normal"),
	})
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}
	return NewAccumulator(table, DefaultConfig())
}

func TestFeedExactSequence(t *testing.T) {
	acc := testAccumulator(t)

	st := acc.Feed("normal", key.MustParse("C-x"))
	if st.Kind != StateIncomplete {
		t.Fatalf("after C-x: Kind = %v, want incomplete", st.Kind)
	}

	st = acc.Feed("normal", key.MustParse("C-s"))
	if st.Kind != StateComplete {
		t.Fatalf("after C-s: Kind = %v, want complete", st.Kind)
	}
	if st.Action.Kind != action.KindSaveBuffer {
		t.Errorf("Action = %v, want save-buffer", st.Action)
	}
	if !acc.Pending().IsEmpty() {
		t.Error("sequence should reset after a complete match")
	}
}

func TestFeedNoMatchReinterpretsChord(t *testing.T) {
	acc := testAccumulator(t)

	acc.Feed("normal", key.MustParse("C-x"))

	// "C-x z" is a dead end; 'z' must be re-run as a fresh sequence and,
	// being unbound printable text, resolve to self-insert.
	st := acc.Feed("normal", key.MustParse("z"))
	if st.Kind != StateComplete {
		t.Fatalf("Kind = %v, want complete via self-insert", st.Kind)
	}
	if !st.Reinterpreted {
		t.Error("state should be flagged as reinterpreted")
	}
	if st.Action.Kind != action.KindInsertText || st.Action.Text != "z" {
		t.Errorf("Action = %v, want insert-text %q", st.Action, "z")
	}
	if !acc.Pending().IsEmpty() {
		t.Error("sequence should be empty after resolution")
	}
}

func TestFeedNoMatchUnprintable(t *testing.T) {
	acc := testAccumulator(t)

	acc.Feed("normal", key.MustParse("C-x"))

	// C-q is unbound and not text: the re-run itself is a no-match.
	st := acc.Feed("normal", key.MustParse("C-q"))
	if st.Kind != StateNoMatch {
		t.Fatalf("Kind = %v, want no-match", st.Kind)
	}
	if !st.Reinterpreted {
		t.Error("state should be flagged as reinterpreted")
	}
	if !acc.Pending().IsEmpty() {
		t.Error("sequence should be empty after no-match")
	}
}

func TestFeedSelfInsert(t *testing.T) {
	acc := testAccumulator(t)

	st := acc.Feed("normal", key.NewRuneChord('a', key.ModNone))
	if st.Kind != StateComplete || st.Action.Kind != action.KindInsertText {
		t.Fatalf("bare 'a' = %v %v, want complete insert-text", st.Kind, st.Action)
	}
	if st.Action.Text != "a" {
		t.Errorf("Text = %q, want %q", st.Action.Text, "a")
	}

	// Uppercase via Shift inserts the uppercase character.
	st = acc.Feed("normal", key.NewRuneChord('A', key.ModShift))
	if st.Action.Text != "A" {
		t.Errorf("Text = %q, want %q", st.Action.Text, "A")
	}
}

func TestFeedSelfInsertDisabled(t *testing.T) {
	table := keymap.MustNewTable([]keymap.Binding{
		keymap.NewBinding("C-s", action.Simple(action.KindSaveBuffer)),
	})
	cfg := DefaultConfig()
	cfg.SelfInsert = false
	acc := NewAccumulator(table, cfg)

	st := acc.Feed("normal", key.NewRuneChord('a', key.ModNone))
	if st.Kind != StateNoMatch {
		t.Errorf("Kind = %v, want no-match with self-insert disabled", st.Kind)
	}
}

func TestFeedAmbiguous(t *testing.T) {
	acc := testAccumulator(t)

	st := acc.Feed("normal", key.NewRuneChord('g', key.ModNone))
	if st.Kind != StateAmbiguous {
		t.Fatalf("Kind = %v, want ambiguous", st.Kind)
	}
	if st.Action.Kind != action.KindMove || st.Action.Direction != action.DirBackward {
		t.Errorf("exact action = %v", st.Action)
	}
	if !acc.HasPendingExact() {
		t.Error("accumulator should hold a pending exact action")
	}

	// A second 'g' resolves the longer binding.
	st = acc.Feed("normal", key.NewRuneChord('g', key.ModNone))
	if st.Kind != StateComplete || st.Action.Direction != action.DirForward {
		t.Errorf("g g = %v %v, want complete move forward", st.Kind, st.Action)
	}
	if acc.HasPendingExact() {
		t.Error("pending exact should clear on resolution")
	}
}

func TestFeedAmbiguousGraceWindowCloses(t *testing.T) {
	acc := testAccumulator(t)

	acc.Feed("normal", key.NewRuneChord('g', key.ModNone))

	// 'x' extends no candidate: the pending exact action must ride along
	// as Deferred, then 'x' resolves on its own as self-insert.
	st := acc.Feed("normal", key.NewRuneChord('x', key.ModNone))
	if !st.HasDeferred {
		t.Fatal("expected a deferred exact action")
	}
	if st.Deferred.Kind != action.KindMove || st.Deferred.Direction != action.DirBackward {
		t.Errorf("Deferred = %v, want move backward", st.Deferred)
	}
	if st.Kind != StateComplete || st.Action.Text != "x" {
		t.Errorf("state = %v %v, want complete insert-text x", st.Kind, st.Action)
	}
}

func TestFeedCancel(t *testing.T) {
	acc := testAccumulator(t)

	acc.Feed("normal", key.MustParse("C-x"))
	st := acc.Feed("normal", key.MustParse("C-g"))
	if st.Kind != StateCancelled {
		t.Fatalf("Kind = %v, want cancelled", st.Kind)
	}
	if st.Reinterpreted || st.HasDeferred {
		t.Error("cancel never reinterprets or defers")
	}
	if !acc.Pending().IsEmpty() {
		t.Error("cancel should reset the sequence")
	}

	// With no pending sequence the cancel chord resolves normally
	// (here: unbound, not text, so no-match).
	st = acc.Feed("normal", key.MustParse("C-g"))
	if st.Kind != StateNoMatch {
		t.Errorf("bare C-g = %v, want no-match", st.Kind)
	}
}

func TestTakePendingExact(t *testing.T) {
	acc := testAccumulator(t)

	if _, ok := acc.TakePendingExact(); ok {
		t.Error("no pending exact expected initially")
	}

	acc.Feed("normal", key.NewRuneChord('g', key.ModNone))
	act, ok := acc.TakePendingExact()
	if !ok || act.Kind != action.KindMove {
		t.Errorf("TakePendingExact = %v %v, want move", act, ok)
	}
	if !acc.Pending().IsEmpty() {
		t.Error("TakePendingExact should reset the sequence")
	}
}

func TestSetTableResets(t *testing.T) {
	acc := testAccumulator(t)
	acc.Feed("normal", key.MustParse("C-x"))

	acc.SetTable(keymap.DefaultTable())
	if !acc.Pending().IsEmpty() {
		t.Error("SetTable should reset accumulation")
	}
}
