package dispatcher

import (
	"fmt"

	"github.com/chordedit/chord/internal/input/mode"
)

// promptOp is what an open minibuffer does when confirmed.
type promptOp uint8

const (
	opNone promptOp = iota
	opOpenFile
	opSaveAs
	opSwitchBuffer
	opRunCommand
	opSearch
)

// prompt pushes the minibuffer over the current mode with the given
// prompt text. The confirm action executes op with the collected input.
func (d *Dispatcher) prompt(op promptOp, text string) error {
	if d.activeMinibuffer() != nil {
		return fmt.Errorf("minibuffer already open")
	}
	ctx := mode.NewContext()
	ctx.Extra[mode.ExtraPrompt] = text
	if err := d.modes.PushWithContext(mode.ModeMinibuffer, ctx); err != nil {
		return err
	}
	d.pendingOp = op
	return nil
}

// confirm accepts the minibuffer input and runs the pending operation.
func (d *Dispatcher) confirm() error {
	mb := d.activeMinibuffer()
	if mb == nil {
		return nil
	}

	input := mb.Input()
	op := d.pendingOp
	d.pendingOp = opNone
	if err := d.modes.Pop(); err != nil {
		_ = d.modes.Switch(mode.ModeNormal)
	}

	switch op {
	case opOpenFile:
		if input == "" {
			return nil
		}
		h, err := d.buffers.Open(input)
		if err != nil {
			return err
		}
		return d.showBuffer(h)

	case opSaveAs:
		if input == "" {
			return nil
		}
		h, err := d.focusedBuffer()
		if err != nil {
			return err
		}
		h.SetPath(input)
		if err := h.Save(); err != nil {
			return err
		}
		d.notice(fmt.Sprintf("Saved %s", h.Name()))
		return nil

	case opSwitchBuffer:
		return d.switchBuffer(input)

	case opRunCommand:
		if input == "" {
			return nil
		}
		return d.runCommand(input)

	case opSearch:
		// The incremental updates already moved the cursor; confirm just
		// leaves it at the match.
		return nil

	default:
		return nil
	}
}
