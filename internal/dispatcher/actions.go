package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chordedit/chord/internal/command"
	"github.com/chordedit/chord/internal/editor/buffer"
	"github.com/chordedit/chord/internal/input/action"
	"github.com/chordedit/chord/internal/input/mode"
	"github.com/chordedit/chord/internal/pane"
)

// applyChecked applies an action, surfacing failures as notices. Action
// failures are never fatal to the dispatch loop.
func (d *Dispatcher) applyChecked(act action.Action) {
	if err := d.apply(act); err != nil {
		d.notice(err.Error())
	}
}

func (d *Dispatcher) apply(act action.Action) error {
	switch act.Kind {
	case action.KindNone:
		return nil

	case action.KindInsertText:
		return d.insertText(act)

	case action.KindInsertLineAfter:
		h, err := d.focusedBuffer()
		if err != nil {
			return err
		}
		for i := 0; i < act.Repeat(); i++ {
			h.OpenLineAfter()
		}
		return nil

	case action.KindDelete:
		return d.deleteText(act)

	case action.KindMove:
		h, err := d.focusedBuffer()
		if err != nil {
			return err
		}
		return h.Move(act.Unit, act.Direction, act.Repeat())

	case action.KindSaveBuffer:
		return d.saveBuffer()

	case action.KindOpenFile:
		return d.prompt(opOpenFile, "Find file: ")

	case action.KindSwitchBuffer:
		if act.Name != "" {
			return d.switchBuffer(act.Name)
		}
		return d.prompt(opSwitchBuffer, "Switch to buffer: ")

	case action.KindCloseBuffer:
		return d.closeBuffer()

	case action.KindSplitPaneHorizontal:
		return d.splitPane(pane.OrientHorizontal)

	case action.KindSplitPaneVertical:
		return d.splitPane(pane.OrientVertical)

	case action.KindClosePane:
		return d.closePane()

	case action.KindFocusLeft:
		return d.focusMove(pane.DirLeft)
	case action.KindFocusRight:
		return d.focusMove(pane.DirRight)
	case action.KindFocusUp:
		return d.focusMove(pane.DirUp)
	case action.KindFocusDown:
		return d.focusMove(pane.DirDown)

	case action.KindNextPane:
		d.tree.NextLeaf()
		d.relayout()
		return nil
	case action.KindPrevPane:
		d.tree.PrevLeaf()
		d.relayout()
		return nil

	case action.KindResizePane:
		if err := d.tree.Resize(d.tree.Focus(), act.Amount); err != nil {
			return err
		}
		d.relayout()
		return nil

	case action.KindSwitchMode:
		return d.modes.Switch(act.Name)

	case action.KindSearch:
		return d.search()

	case action.KindRunCommand:
		if act.Name != "" {
			return d.runCommand(act.Name)
		}
		return d.prompt(opRunCommand, "Command: ")

	case action.KindCancel:
		d.cancel()
		return nil

	case action.KindConfirm:
		return d.confirm()

	case action.KindExit:
		d.done = true
		return nil

	default:
		return fmt.Errorf("unhandled action %s", act)
	}
}

// insertText routes typed text to the minibuffer when it is active,
// otherwise to the focused buffer.
func (d *Dispatcher) insertText(act action.Action) error {
	if mb := d.activeMinibuffer(); mb != nil {
		mb.Append(strings.Repeat(act.Text, act.Repeat()))
		d.searchUpdate()
		return nil
	}
	h, err := d.focusedBuffer()
	if err != nil {
		return err
	}
	h.Insert(strings.Repeat(act.Text, act.Repeat()))
	return nil
}

func (d *Dispatcher) deleteText(act action.Action) error {
	if mb := d.activeMinibuffer(); mb != nil {
		for i := 0; i < act.Repeat(); i++ {
			mb.DeleteBack()
		}
		d.searchUpdate()
		return nil
	}
	h, err := d.focusedBuffer()
	if err != nil {
		return err
	}
	for i := 0; i < act.Repeat(); i++ {
		if err := h.Delete(act.Unit, act.Direction); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) saveBuffer() error {
	h, err := d.focusedBuffer()
	if err != nil {
		return err
	}
	err = h.Save()
	if errors.Is(err, buffer.ErrNoPath) {
		// A scratch buffer needs a path first.
		return d.prompt(opSaveAs, "Save as: ")
	}
	if err != nil {
		return err
	}
	d.notice(fmt.Sprintf("Saved %s", h.Name()))
	return nil
}

// switchBuffer shows the named buffer in the focused pane. An empty name
// cycles to the next buffer.
func (d *Dispatcher) switchBuffer(name string) error {
	var target *buffer.Handle
	if name == "" {
		cur, err := d.tree.BufferOf(d.tree.Focus())
		if err != nil {
			return err
		}
		target, err = d.buffers.Next(cur)
		if err != nil {
			return err
		}
	} else {
		var ok bool
		target, ok = d.buffers.FindByName(name)
		if !ok {
			return fmt.Errorf("no buffer named %q", name)
		}
	}
	return d.showBuffer(target)
}

// showBuffer swaps the focused pane to the given buffer, moving the pane's
// reference from the old buffer to the new one.
func (d *Dispatcher) showBuffer(h *buffer.Handle) error {
	focus := d.tree.Focus()
	old, err := d.tree.BufferOf(focus)
	if err != nil {
		return err
	}
	if old == h.ID() {
		return nil
	}
	if err := d.buffers.Retain(h.ID()); err != nil {
		return err
	}
	if err := d.tree.SetBuffer(focus, h.ID()); err != nil {
		_ = d.buffers.Release(h.ID())
		return err
	}
	_ = d.buffers.Release(old)
	d.relayout()
	return nil
}

// OpenFile loads a file into a buffer and shows it in the focused pane.
func (d *Dispatcher) OpenFile(path string) error {
	h, err := d.buffers.Open(path)
	if err != nil {
		return err
	}
	return d.showBuffer(h)
}

// closeBuffer removes the focused pane's buffer. Every pane showing it is
// switched to the next buffer first; with no other buffer to switch to,
// the close is refused.
func (d *Dispatcher) closeBuffer() error {
	cur, err := d.tree.BufferOf(d.tree.Focus())
	if err != nil {
		return err
	}
	if d.buffers.Len() < 2 {
		return fmt.Errorf("cannot close the last buffer")
	}
	replacement, err := d.buffers.Next(cur)
	if err != nil {
		return err
	}

	for _, leaf := range d.tree.Leaves() {
		id, err := d.tree.BufferOf(leaf)
		if err != nil || id != cur {
			continue
		}
		if err := d.buffers.Retain(replacement.ID()); err != nil {
			return err
		}
		if err := d.tree.SetBuffer(leaf, replacement.ID()); err != nil {
			_ = d.buffers.Release(replacement.ID())
			return err
		}
		_ = d.buffers.Release(cur)
	}
	return d.buffers.Remove(cur)
}

func (d *Dispatcher) splitPane(o pane.Orientation) error {
	focus := d.tree.Focus()
	buf, err := d.tree.BufferOf(focus)
	if err != nil {
		return err
	}
	// The new leaf is one more reference to the shared buffer.
	if err := d.buffers.Retain(buf); err != nil {
		return err
	}
	if _, err := d.tree.Split(focus, o); err != nil {
		_ = d.buffers.Release(buf)
		return err
	}
	d.relayout()
	return nil
}

func (d *Dispatcher) closePane() error {
	focus := d.tree.Focus()
	buf, err := d.tree.BufferOf(focus)
	if err != nil {
		return err
	}
	if err := d.tree.Close(focus); err != nil {
		return err
	}
	_ = d.buffers.Release(buf)
	d.relayout()
	return nil
}

func (d *Dispatcher) focusMove(dir pane.Direction) error {
	if _, err := d.tree.FocusMove(dir); err != nil {
		return err
	}
	d.relayout()
	return nil
}

func (d *Dispatcher) runCommand(name string) error {
	h, _ := d.focusedBuffer()
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil
	}
	return d.runner.Run(fields[0], &command.Context{Buffer: h, Queue: d.queue}, fields[1:]...)
}

// cancel aborts whatever is in flight: a pending sequence has already been
// reset by the accumulator; an open minibuffer is dismissed.
func (d *Dispatcher) cancel() {
	if d.activeMinibuffer() != nil {
		if d.pendingOp == opSearch {
			if h, err := d.focusedBuffer(); err == nil {
				h.SetCursor(d.searchOrigin)
			}
		}
		d.pendingOp = opNone
		if err := d.modes.Pop(); err != nil {
			_ = d.modes.Switch(mode.ModeNormal)
		}
	}
	d.acc.Reset()
	d.notice("Quit")
}

func (d *Dispatcher) activeMinibuffer() *mode.MinibufferMode {
	if !d.modes.IsMode(mode.ModeMinibuffer) {
		return nil
	}
	mb, _ := d.modes.Current().(*mode.MinibufferMode)
	return mb
}
