package dispatcher

import "fmt"

// search opens the incremental search prompt. While the prompt is open
// the same action advances to the next match instead, so the search key
// repeats like any other.
func (d *Dispatcher) search() error {
	if d.pendingOp == opSearch && d.activeMinibuffer() != nil {
		return d.searchNext()
	}
	h, err := d.focusedBuffer()
	if err != nil {
		return err
	}
	d.searchOrigin = h.Cursor()
	return d.prompt(opSearch, "Search: ")
}

// searchUpdate re-runs the search from the origin after the query text
// changes. The cursor tracks the first match; an emptied or unmatched
// query returns it to where the search began.
func (d *Dispatcher) searchUpdate() {
	mb := d.activeMinibuffer()
	if mb == nil || d.pendingOp != opSearch {
		return
	}
	h, err := d.focusedBuffer()
	if err != nil {
		return
	}
	if pos, ok := h.SearchForward(mb.Input(), d.searchOrigin); ok {
		h.SetCursor(pos)
		return
	}
	h.SetCursor(d.searchOrigin)
	if mb.Input() != "" {
		d.notice(fmt.Sprintf("No match: %s", mb.Input()))
	}
}

// searchNext moves the cursor to the next match after the current one.
func (d *Dispatcher) searchNext() error {
	mb := d.activeMinibuffer()
	if mb == nil || mb.Input() == "" {
		return nil
	}
	h, err := d.focusedBuffer()
	if err != nil {
		return err
	}
	from := h.Cursor()
	from.Col++ // step off the match the cursor sits on
	pos, ok := h.SearchForward(mb.Input(), from)
	if !ok {
		d.notice(fmt.Sprintf("No more matches: %s", mb.Input()))
		return nil
	}
	h.SetCursor(pos)
	return nil
}
