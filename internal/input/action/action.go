// Package action defines the closed set of editing operations the resolver
// can produce and the dispatcher can apply. Actions are plain values; the
// parameters each kind needs travel with it.
package action

import "fmt"

// Kind identifies an operation.
type Kind uint8

const (
	// KindNone is the zero value; it is never a valid resolved action.
	KindNone Kind = iota

	// Text editing
	KindInsertText      // insert Text at the cursor
	KindInsertLineAfter // insert a newline after the cursor, cursor stays
	KindDelete          // delete one Unit in Direction

	// Cursor movement
	KindMove // move the cursor one Unit in Direction

	// Buffer management
	KindSaveBuffer
	KindOpenFile
	KindSwitchBuffer
	KindCloseBuffer

	// Pane management
	KindSplitPaneHorizontal
	KindSplitPaneVertical
	KindClosePane
	KindFocusLeft
	KindFocusRight
	KindFocusUp
	KindFocusDown
	KindNextPane
	KindPrevPane
	KindResizePane // grow or shrink the focused pane by Amount

	// Mode and command
	KindSwitchMode // enter the mode named by Name
	KindRunCommand // run the user command named by Name
	KindSearch     // prompt for a query, or advance to the next match
	KindCancel     // abort the pending sequence or minibuffer operation
	KindConfirm    // accept the minibuffer input
	KindExit       // quit the editor
)

var kindNames = map[Kind]string{
	KindNone:                "none",
	KindInsertText:          "insert-text",
	KindInsertLineAfter:     "insert-line-after",
	KindDelete:              "delete",
	KindMove:                "move",
	KindSaveBuffer:          "save-buffer",
	KindOpenFile:            "open-file",
	KindSwitchBuffer:        "switch-buffer",
	KindCloseBuffer:         "close-buffer",
	KindSplitPaneHorizontal: "split-pane-horizontal",
	KindSplitPaneVertical:   "split-pane-vertical",
	KindClosePane:           "close-pane",
	KindFocusLeft:           "focus-left",
	KindFocusRight:          "focus-right",
	KindFocusUp:             "focus-up",
	KindFocusDown:           "focus-down",
	KindNextPane:            "next-pane",
	KindPrevPane:            "prev-pane",
	KindResizePane:          "resize-pane",
	KindSwitchMode:          "switch-mode",
	KindRunCommand:          "run-command",
	KindSearch:              "search",
	KindCancel:              "cancel",
	KindConfirm:             "confirm",
	KindExit:                "exit",
}

// String returns the canonical name of the kind, as used in keymap files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindFromName returns the Kind for a canonical name. Returns KindNone and
// false if the name is not recognized.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && k != KindNone {
			return k, true
		}
	}
	return KindNone, false
}

// Direction parameterizes movement and deletion.
type Direction uint8

const (
	DirNone Direction = iota
	DirBackward
	DirForward
	DirUp
	DirDown
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirBackward:
		return "backward"
	case DirForward:
		return "forward"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// DirectionFromName returns the Direction for a name used in keymap files.
func DirectionFromName(name string) (Direction, bool) {
	switch name {
	case "backward", "left":
		return DirBackward, true
	case "forward", "right":
		return DirForward, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	}
	return DirNone, false
}

// Unit parameterizes how far a move or delete reaches.
type Unit uint8

const (
	UnitNone Unit = iota
	UnitChar
	UnitWord
	UnitLine
	UnitLineEnd
	UnitPage
	UnitBuffer
)

// String returns a string representation of the unit.
func (u Unit) String() string {
	switch u {
	case UnitChar:
		return "char"
	case UnitWord:
		return "word"
	case UnitLine:
		return "line"
	case UnitLineEnd:
		return "line-end"
	case UnitPage:
		return "page"
	case UnitBuffer:
		return "buffer"
	default:
		return "none"
	}
}

// UnitFromName returns the Unit for a name used in keymap files.
func UnitFromName(name string) (Unit, bool) {
	switch name {
	case "char":
		return UnitChar, true
	case "word":
		return UnitWord, true
	case "line":
		return UnitLine, true
	case "line-end":
		return UnitLineEnd, true
	case "page":
		return UnitPage, true
	case "buffer":
		return UnitBuffer, true
	}
	return UnitNone, false
}

// Action is one resolved editing operation with its parameters.
type Action struct {
	// Kind identifies the operation.
	Kind Kind

	// Text is the payload for KindInsertText.
	Text string

	// Direction parameterizes moves, deletes and resizes.
	Direction Direction

	// Unit parameterizes moves and deletes.
	Unit Unit

	// Name is the target for KindSwitchMode and KindRunCommand.
	Name string

	// Amount is the resize delta for KindResizePane.
	Amount float64

	// Count is an optional repeat count. Zero means one.
	Count int
}

// IsZero returns true if the action carries no operation.
func (a Action) IsZero() bool {
	return a.Kind == KindNone
}

// Repeat returns the effective repeat count, never less than one.
func (a Action) Repeat() int {
	if a.Count < 1 {
		return 1
	}
	return a.Count
}

// String returns a compact description for status lines and logs.
func (a Action) String() string {
	switch a.Kind {
	case KindInsertText:
		return fmt.Sprintf("%s(%q)", a.Kind, a.Text)
	case KindMove, KindDelete:
		return fmt.Sprintf("%s(%s, %s)", a.Kind, a.Unit, a.Direction)
	case KindSwitchMode, KindRunCommand:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Name)
	default:
		return a.Kind.String()
	}
}

// Insert returns an insert-text action for the given text.
func Insert(text string) Action {
	return Action{Kind: KindInsertText, Text: text}
}

// Move returns a cursor movement action.
func Move(unit Unit, dir Direction) Action {
	return Action{Kind: KindMove, Unit: unit, Direction: dir}
}

// Delete returns a deletion action.
func Delete(unit Unit, dir Direction) Action {
	return Action{Kind: KindDelete, Unit: unit, Direction: dir}
}

// SwitchMode returns a mode switch action.
func SwitchMode(name string) Action {
	return Action{Kind: KindSwitchMode, Name: name}
}

// RunCommand returns a user command invocation.
func RunCommand(name string) Action {
	return Action{Kind: KindRunCommand, Name: name}
}

// Simple returns an action with no parameters.
func Simple(kind Kind) Action {
	return Action{Kind: kind}
}
