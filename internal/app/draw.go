package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/chordedit/chord/internal/input/mode"
	"github.com/chordedit/chord/internal/pane"
)

var (
	styleText   = tcell.StyleDefault
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// draw repaints the whole frame: every pane's buffer window, the cursor
// of the focused pane and the status line.
func (a *App) draw() {
	s := a.screen
	s.Clear()

	tree := a.disp.Tree()
	layout := tree.LastLayout()

	for _, leaf := range tree.Leaves() {
		r, ok := layout[leaf]
		if !ok || r.Width < 1 || r.Height < 1 {
			continue
		}
		a.drawPane(leaf, r, leaf == tree.Focus())
	}

	a.drawStatus()
	s.Show()
}

func (a *App) drawPane(leaf pane.NodeID, r pane.Rect, focused bool) {
	tree := a.disp.Tree()
	bufID, err := tree.BufferOf(leaf)
	if err != nil {
		return
	}
	h, err := a.disp.Buffers().Get(bufID)
	if err != nil {
		return
	}

	scroll, _ := tree.Scroll(leaf)
	if focused {
		scroll = a.ensureVisible(leaf, r, h.Cursor().Line, scroll)
	}

	for row := 0; row < r.Height; row++ {
		line := []rune(h.Line(scroll + row))
		for col := 0; col < r.Width && col < len(line); col++ {
			a.screen.SetContent(r.X+col, r.Y+row, line[col], nil, styleText)
		}
	}

	if focused && a.disp.Modes().CurrentName() != mode.ModeMinibuffer {
		cur := h.Cursor()
		if cur.Line >= scroll && cur.Line < scroll+r.Height && cur.Col < r.Width {
			a.screen.ShowCursor(r.X+cur.Col, r.Y+cur.Line-scroll)
		}
	}
}

// ensureVisible scrolls the focused pane just enough to keep the cursor
// line inside its window.
func (a *App) ensureVisible(leaf pane.NodeID, r pane.Rect, line, scroll int) int {
	if line < scroll {
		scroll = line
	} else if line >= scroll+r.Height {
		scroll = line - r.Height + 1
	}
	_ = a.disp.Tree().SetScroll(leaf, scroll)
	return scroll
}

func (a *App) drawStatus() {
	s := a.screen
	w, h := s.Size()
	if h < 1 {
		return
	}
	y := h - 1

	var text string
	if mb, ok := a.disp.Modes().Current().(*mode.MinibufferMode); ok {
		text = mb.Prompt() + mb.Input()
		s.ShowCursor(len([]rune(text)), y)
	} else {
		text = a.statusText()
	}

	runes := []rune(text)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.SetContent(x, y, r, nil, styleStatus)
	}
}

func (a *App) statusText() string {
	name := "?"
	modified := ""
	if h, err := a.disp.FocusedBuffer(); err == nil {
		name = h.Name()
		if h.Modified() {
			modified = " *"
		}
	}

	text := fmt.Sprintf(" %s  %s%s", a.disp.Modes().Current().DisplayName(), name, modified)
	if pending := a.disp.PendingSequence(); pending != "" {
		text += "  " + pending + "-"
	}
	if a.notice != "" {
		text += "  " + a.notice
	}
	return text
}
