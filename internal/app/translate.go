package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/chordedit/chord/internal/event"
	"github.com/chordedit/chord/internal/input/key"
)

// specialKeys maps tcell named keys to ours. Keys that double as control
// characters (Enter, Tab, Backspace) are matched here before the control
// letter range.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyEsc:        key.KeyEscape,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// translateKey converts a terminal key event to a chord. Events that have
// no chord representation report false.
func translateKey(ev *tcell.EventKey) (key.Chord, bool) {
	mods := key.ModNone
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModSuper)
	}

	k := ev.Key()
	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialChord(special, mods), true
	}

	switch {
	case k == tcell.KeyRune:
		return key.NewRuneChord(ev.Rune(), mods).Normalize(), true

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// Terminals fold Ctrl+letter into control characters.
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneChord(r, mods.With(key.ModCtrl)), true

	case k == tcell.KeyCtrlSpace:
		return key.NewRuneChord(' ', mods.With(key.ModCtrl)), true
	}

	return key.Chord{}, false
}

func keymapReloadError(path string, err error) event.Message {
	return event.Error("keymap-watcher", fmt.Errorf("reload %s: %w", path, err))
}
