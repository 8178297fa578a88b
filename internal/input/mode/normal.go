package mode

// NormalMode is the default editing mode: keys type text unless they start
// a bound sequence.
type NormalMode struct{}

// NewNormalMode creates the normal mode.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns "normal".
func (m *NormalMode) Name() string { return ModeNormal }

// DisplayName returns the status line name.
func (m *NormalMode) DisplayName() string { return "NORMAL" }

// CursorStyle returns the cursor style for normal mode.
func (m *NormalMode) CursorStyle() CursorStyle { return CursorBar }

// Enter is called when entering normal mode.
func (m *NormalMode) Enter(ctx *Context) error { return nil }

// Exit is called when leaving normal mode.
func (m *NormalMode) Exit(ctx *Context) error { return nil }
