package keymap

import (
	"fmt"

	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/key"
)

// GlobalMode is the binding table partition consulted when the current
// mode's partition has no match for a sequence.
const GlobalMode = ""

// Binding maps one key sequence to an action within a mode partition.
type Binding struct {
	// Keys is the sequence specification, e.g. "C-x C-s" or "<C-x><C-s>".
	Keys string

	// Mode is the partition this binding belongs to. GlobalMode applies
	// in every mode.
	Mode string

	// Action is the operation the sequence resolves to.
	Action action.Action

	// Description documents the binding for display purposes.
	Description string
}

// NewBinding creates a binding in the global partition.
func NewBinding(keys string, act action.Action) Binding {
	return Binding{Keys: keys, Action: act}
}

// InMode returns a copy of the binding assigned to a mode partition.
func (b Binding) InMode(mode string) Binding {
	b.Mode = mode
	return b
}

// WithDescription returns a copy of the binding with a description.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Validate checks that the binding parses and carries a real action.
func (b Binding) Validate() error {
	if b.Keys == "" {
		return fmt.Errorf("binding: empty keys")
	}
	if b.Action.IsZero() {
		return fmt.Errorf("binding %q: no action", b.Keys)
	}
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	if seq.IsEmpty() {
		return fmt.Errorf("binding %q: empty sequence", b.Keys)
	}
	return nil
}

// parsedBinding is a binding with its pre-parsed sequence.
type parsedBinding struct {
	Binding
	seq *key.Sequence
}
