package mode

// Standard mode names.
const (
	ModeNormal     = "normal"
	ModeMinibuffer = "minibuffer"
)

// Mode determines how key sequences are interpreted. The keymap table is
// queried per mode name, so registering a mode and binding keys in it is
// all a new mode needs.
type Mode interface {
	// Name returns the unique mode identifier, such as "normal".
	Name() string

	// DisplayName returns the label shown in the status line.
	DisplayName() string

	// CursorStyle returns the cursor shape to draw while active.
	CursorStyle() CursorStyle

	// Enter is called when the mode becomes active.
	Enter(ctx *Context) error

	// Exit is called when the mode stops being active.
	Exit(ctx *Context) error
}

// Context carries transition data into Enter and Exit.
type Context struct {
	// PreviousMode names the mode being left (set for Enter).
	PreviousMode string

	// NextMode names the mode being entered (set for Exit).
	NextMode string

	// Extra holds per-transition data, such as the minibuffer prompt.
	Extra map[string]any
}

// NewContext creates an empty transition context.
func NewContext() *Context {
	return &Context{Extra: make(map[string]any)}
}

// CursorStyle selects the cursor shape a mode displays.
type CursorStyle uint8

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
	CursorHidden
)

var cursorStyleNames = [...]string{
	CursorBlock:     "block",
	CursorBar:       "bar",
	CursorUnderline: "underline",
	CursorHidden:    "hidden",
}

func (c CursorStyle) String() string {
	if int(c) < len(cursorStyleNames) {
		return cursorStyleNames[c]
	}
	return "unknown"
}
