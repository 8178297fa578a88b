package event

import (
	"time"

	"github.com/chordedit/chord/internal/editor/buffer"
)

// Kind classifies a message.
type Kind uint8

const (
	// KindNotice is an informational message for the status line.
	KindNotice Kind = iota

	// KindError is a non-fatal error to surface to the user.
	KindError

	// KindBufferText is text a background producer appends to a buffer,
	// such as process output streaming into a log buffer.
	KindBufferText

	// KindRedraw asks the frontend to repaint without any state change
	// of its own.
	KindRedraw

	// KindTimeout signals that a pending key sequence's timeout elapsed.
	KindTimeout
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNotice:
		return "notice"
	case KindError:
		return "error"
	case KindBufferText:
		return "buffer-text"
	case KindRedraw:
		return "redraw"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Message is one unit of work sent from a background producer to the
// dispatch thread. Messages are immutable once created.
type Message struct {
	// Kind classifies the message.
	Kind Kind

	// Text is the notice, error text or buffer content.
	Text string

	// Buffer is the target buffer for KindBufferText.
	Buffer buffer.ID

	// Source identifies the producer, for diagnostics.
	Source string

	// Time is when the message was created.
	Time time.Time
}

// Notice creates an informational message.
func Notice(source, text string) Message {
	return Message{Kind: KindNotice, Text: text, Source: source, Time: time.Now()}
}

// Error creates a non-fatal error message.
func Error(source string, err error) Message {
	return Message{Kind: KindError, Text: err.Error(), Source: source, Time: time.Now()}
}

// BufferText creates a message appending text to a buffer.
func BufferText(source string, buf buffer.ID, text string) Message {
	return Message{Kind: KindBufferText, Text: text, Buffer: buf, Source: source, Time: time.Now()}
}

// Redraw creates a repaint request.
func Redraw(source string) Message {
	return Message{Kind: KindRedraw, Source: source, Time: time.Now()}
}

// Timeout creates a sequence timeout notification.
func Timeout(source string) Message {
	return Message{Kind: KindTimeout, Source: source, Time: time.Now()}
}
