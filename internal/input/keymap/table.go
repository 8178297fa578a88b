package keymap

import (
	"fmt"
	"sort"

	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/key"
)

// MatchKind classifies the outcome of resolving a sequence.
type MatchKind uint8

const (
	// MatchNone means no binding matches and none could with more chords.
	MatchNone MatchKind = iota

	// MatchPartial means the sequence is a strict prefix of at least one
	// binding but is not itself bound.
	MatchPartial

	// MatchExact means exactly one binding matches and no longer binding
	// shares the sequence as a prefix.
	MatchExact

	// MatchAmbiguous means the sequence is bound and is also a strict
	// prefix of longer bindings. The exact action is carried in the
	// result; the longer candidates are listed so the caller can decide
	// whether to apply now or wait for another chord.
	MatchAmbiguous
)

// String returns a string representation of the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchPartial:
		return "partial"
	case MatchExact:
		return "exact"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// MatchResult is the outcome of resolving a sequence against a Table.
type MatchResult struct {
	// Kind classifies the match.
	Kind MatchKind

	// Action is the bound action for MatchExact and MatchAmbiguous.
	Action action.Action

	// Candidates lists the longer bindings the sequence prefixes, for
	// MatchAmbiguous and MatchPartial.
	Candidates []Binding
}

// Table is a read-only binding table partitioned by mode. It is built once
// from a declarative binding list and never mutated during input processing;
// rebinding builds a replacement table that the owner swaps in between keys.
type Table struct {
	partitions map[string]*trieNode
}

type trieNode struct {
	children map[key.Chord]*trieNode
	binding  *parsedBinding
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[key.Chord]*trieNode)}
}

// NewTable builds a table from bindings. It fails on unparseable bindings
// and on two bindings claiming the same sequence within one partition.
func NewTable(bindings []Binding) (*Table, error) {
	t := &Table{partitions: make(map[string]*trieNode)}

	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		seq := key.MustParseSequence(b.Keys)

		root, ok := t.partitions[b.Mode]
		if !ok {
			root = newTrieNode()
			t.partitions[b.Mode] = root
		}

		node := root
		for _, c := range seq.Chords() {
			child, ok := node.children[c]
			if !ok {
				child = newTrieNode()
				node.children[c] = child
			}
			node = child
		}
		if node.binding != nil {
			return nil, fmt.Errorf("binding %q: sequence already bound to %s in mode %q",
				b.Keys, node.binding.Action, b.Mode)
		}
		node.binding = &parsedBinding{Binding: b, seq: seq}
	}

	return t, nil
}

// MustNewTable builds a table and panics on error. Use only for static
// binding lists in initialization code.
func MustNewTable(bindings []Binding) *Table {
	t, err := NewTable(bindings)
	if err != nil {
		panic("invalid binding table: " + err.Error())
	}
	return t
}

// Resolve looks up a sequence in the given mode's partition. If the mode
// partition yields nothing at all, the global partition is consulted, so
// mode bindings shadow global ones the way an overlay keymap shadows its
// base.
func (t *Table) Resolve(mode string, seq *key.Sequence) MatchResult {
	if seq == nil || seq.IsEmpty() {
		return MatchResult{Kind: MatchNone}
	}

	res := t.resolveIn(mode, seq)
	if res.Kind != MatchNone || mode == GlobalMode {
		return res
	}
	return t.resolveIn(GlobalMode, seq)
}

// resolveIn resolves against a single partition.
func (t *Table) resolveIn(mode string, seq *key.Sequence) MatchResult {
	root, ok := t.partitions[mode]
	if !ok {
		return MatchResult{Kind: MatchNone}
	}

	node := root
	for _, c := range seq.Chords() {
		child, ok := node.children[c]
		if !ok {
			return MatchResult{Kind: MatchNone}
		}
		node = child
	}

	bound := node.binding != nil
	longer := collectBindings(node, true)

	switch {
	case bound && len(longer) > 0:
		return MatchResult{Kind: MatchAmbiguous, Action: node.binding.Action, Candidates: longer}
	case bound:
		return MatchResult{Kind: MatchExact, Action: node.binding.Action}
	case len(longer) > 0:
		return MatchResult{Kind: MatchPartial, Candidates: longer}
	default:
		return MatchResult{Kind: MatchNone}
	}
}

// collectBindings gathers the bindings reachable below node. When skipSelf
// is true the binding at node itself is excluded.
func collectBindings(node *trieNode, skipSelf bool) []Binding {
	var out []Binding
	if node.binding != nil && !skipSelf {
		out = append(out, node.binding.Binding)
	}
	for _, child := range node.children {
		out = append(out, collectBindings(child, false)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Bindings returns every binding in the table, for display and diagnostics.
func (t *Table) Bindings() []Binding {
	var out []Binding
	for _, root := range t.partitions {
		out = append(out, collectBindings(root, false)...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode < out[j].Mode
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Modes returns the mode partitions present in the table.
func (t *Table) Modes() []string {
	modes := make([]string, 0, len(t.partitions))
	for m := range t.partitions {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}
