package mode

// ExtraPrompt is the Context.Extra key carrying the minibuffer prompt on
// transitions into minibuffer mode.
const ExtraPrompt = "prompt"

// MinibufferMode collects a line of input at the bottom of the frame, such
// as a file path or a command name. Text typed while active accumulates in
// the minibuffer instead of the focused buffer.
type MinibufferMode struct {
	prompt string
	input  []rune
}

// NewMinibufferMode creates the minibuffer mode.
func NewMinibufferMode() *MinibufferMode {
	return &MinibufferMode{}
}

// Name returns "minibuffer".
func (m *MinibufferMode) Name() string { return ModeMinibuffer }

// DisplayName returns the status line name.
func (m *MinibufferMode) DisplayName() string { return "MINIBUFFER" }

// CursorStyle returns the cursor style for the minibuffer.
func (m *MinibufferMode) CursorStyle() CursorStyle { return CursorBar }

// Enter resets the input line and reads the prompt from the context.
func (m *MinibufferMode) Enter(ctx *Context) error {
	m.input = m.input[:0]
	m.prompt = ""
	if ctx != nil && ctx.Extra != nil {
		if p, ok := ctx.Extra[ExtraPrompt].(string); ok {
			m.prompt = p
		}
	}
	return nil
}

// Exit clears the input line.
func (m *MinibufferMode) Exit(ctx *Context) error {
	m.input = m.input[:0]
	return nil
}

// Prompt returns the active prompt text.
func (m *MinibufferMode) Prompt() string { return m.prompt }

// Input returns the text typed so far.
func (m *MinibufferMode) Input() string { return string(m.input) }

// Append adds text to the input line.
func (m *MinibufferMode) Append(text string) {
	m.input = append(m.input, []rune(text)...)
}

// DeleteBack removes the last character of the input line, if any.
func (m *MinibufferMode) DeleteBack() {
	if len(m.input) > 0 {
		m.input = m.input[:len(m.input)-1]
	}
}
