package keymap

import "github.com/chordedit/chord/internal/input/action"

// Mode names used by the default tables.
const (
	ModeNormal     = "normal"
	ModeMinibuffer = "minibuffer"
)

// Defaults returns the built-in binding list: an Emacs-flavored base map in
// the global partition plus minibuffer-specific bindings.
func Defaults() []Binding {
	global := []Binding{
		// Movement
		NewBinding("C-b", action.Move(action.UnitChar, action.DirBackward)).WithDescription("Back one character"),
		NewBinding("C-f", action.Move(action.UnitChar, action.DirForward)).WithDescription("Forward one character"),
		NewBinding("C-p", action.Move(action.UnitLine, action.DirUp)).WithDescription("Previous line"),
		NewBinding("C-n", action.Move(action.UnitLine, action.DirDown)).WithDescription("Next line"),
		NewBinding("C-a", action.Move(action.UnitLineEnd, action.DirBackward)).WithDescription("Start of line"),
		NewBinding("C-e", action.Move(action.UnitLineEnd, action.DirForward)).WithDescription("End of line"),
		NewBinding("A-v", action.Move(action.UnitPage, action.DirBackward)).WithDescription("Page up"),
		NewBinding("C-v", action.Move(action.UnitPage, action.DirForward)).WithDescription("Page down"),
		NewBinding("<A-lt>", action.Move(action.UnitBuffer, action.DirBackward)).WithDescription("Start of buffer"),
		NewBinding("<A-gt>", action.Move(action.UnitBuffer, action.DirForward)).WithDescription("End of buffer"),
		NewBinding("Up", action.Move(action.UnitLine, action.DirUp)),
		NewBinding("Down", action.Move(action.UnitLine, action.DirDown)),
		NewBinding("Left", action.Move(action.UnitChar, action.DirBackward)),
		NewBinding("Right", action.Move(action.UnitChar, action.DirForward)),

		// Editing
		NewBinding("BS", action.Delete(action.UnitChar, action.DirBackward)).WithDescription("Delete backward"),
		NewBinding("C-d", action.Delete(action.UnitChar, action.DirForward)).WithDescription("Delete forward"),
		NewBinding("C-o", action.Simple(action.KindInsertLineAfter)).WithDescription("Open line after cursor"),

		// Buffers and files
		NewBinding("C-x C-s", action.Simple(action.KindSaveBuffer)).WithDescription("Save buffer"),
		NewBinding("C-x C-f", action.Simple(action.KindOpenFile)).WithDescription("Open file"),
		NewBinding("C-x b", action.Simple(action.KindSwitchBuffer)).WithDescription("Switch buffer"),
		NewBinding("C-x k", action.Simple(action.KindCloseBuffer)).WithDescription("Close buffer"),

		// Panes
		NewBinding("C-x 2", action.Simple(action.KindSplitPaneVertical)).WithDescription("Split pane vertically"),
		NewBinding("C-x 3", action.Simple(action.KindSplitPaneHorizontal)).WithDescription("Split pane horizontally"),
		NewBinding("C-x 0", action.Simple(action.KindClosePane)).WithDescription("Close pane"),
		NewBinding("C-S-j", action.Simple(action.KindPrevPane)).WithDescription("Previous pane"),
		NewBinding("C-S-k", action.Simple(action.KindNextPane)).WithDescription("Next pane"),
		NewBinding("A-Left", action.Simple(action.KindFocusLeft)).WithDescription("Focus pane left"),
		NewBinding("A-Right", action.Simple(action.KindFocusRight)).WithDescription("Focus pane right"),
		NewBinding("A-Up", action.Simple(action.KindFocusUp)).WithDescription("Focus pane up"),
		NewBinding("A-Down", action.Simple(action.KindFocusDown)).WithDescription("Focus pane down"),

		// Search
		NewBinding("C-s", action.Simple(action.KindSearch)).WithDescription("Search forward"),

		// Commands
		NewBinding("A-x", action.Simple(action.KindRunCommand)).WithDescription("Run command"),
		NewBinding("C-g", action.Simple(action.KindCancel)).WithDescription("Cancel"),
		NewBinding("C-x C-c", action.Simple(action.KindExit)).WithDescription("Exit"),
	}

	minibuf := []Binding{
		NewBinding("Enter", action.Simple(action.KindConfirm)).InMode(ModeMinibuffer).WithDescription("Confirm"),
		NewBinding("Esc", action.Simple(action.KindCancel)).InMode(ModeMinibuffer).WithDescription("Cancel"),
	}

	return append(global, minibuf...)
}

// DefaultTable builds the built-in binding table.
func DefaultTable() *Table {
	return MustNewTable(Defaults())
}
