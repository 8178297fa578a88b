package dispatcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/chordedit/chord/internal/command"
	"github.com/chordedit/chord/internal/editor/buffer"
	"github.com/chordedit/chord/internal/event"
	"github.com/chordedit/chord/internal/input"
	"github.com/chordedit/chord/internal/input/key"
	"github.com/chordedit/chord/internal/input/keymap"
	"github.com/chordedit/chord/internal/input/mode"
	"github.com/chordedit/chord/internal/pane"
)

// State classifies the dispatcher between key events.
type State uint8

const (
	// StateIdle means no sequence is pending.
	StateIdle State = iota

	// StateAwaitingSequence means a prefix has been typed and the next
	// chord continues it.
	StateAwaitingSequence
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSequence:
		return "awaiting-sequence"
	default:
		return "unknown"
	}
}

// NoticeFunc receives non-fatal, user-facing messages.
type NoticeFunc func(text string)

// Dispatcher owns the editor state machine: it feeds key chords through
// the accumulator, applies resolved actions to the focused buffer or the
// pane tree, and drains the background message queue before each key.
// HandleKey and DrainMessages must be called from one goroutine; the
// queue and the command runner may be used from any.
type Dispatcher struct {
	config  Config
	acc     *input.Accumulator
	modes   *mode.Manager
	buffers *buffer.Registry
	tree    *pane.Tree
	queue   *event.Queue
	runner  *command.Runner

	frame    pane.Rect
	noticeFn NoticeFunc
	wakeFn   func()
	done     bool

	// pendingOp is what the open minibuffer will do on confirm.
	pendingOp promptOp

	// searchOrigin is where the cursor was when the search prompt opened;
	// cancelling the search returns there.
	searchOrigin buffer.Position

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a dispatcher with a scratch buffer, a single pane, the
// default keymap and normal mode active.
func New(config Config) (*Dispatcher, error) {
	buffers := buffer.NewRegistry()
	scratch := buffers.NewScratch()
	if err := buffers.Retain(scratch.ID()); err != nil {
		return nil, err
	}

	modes := mode.NewManager()
	modes.Register(mode.NewNormalMode())
	modes.Register(mode.NewMinibufferMode())
	if err := modes.SetInitialMode(mode.ModeNormal); err != nil {
		return nil, err
	}

	inputCfg := input.DefaultConfig()
	if config.Input != nil {
		inputCfg = *config.Input
	}

	return &Dispatcher{
		config:  config,
		acc:     input.NewAccumulator(keymap.DefaultTable(), inputCfg),
		modes:   modes,
		buffers: buffers,
		tree:    pane.NewTree(scratch.ID()),
		queue:   event.NewQueue(),
		runner:  command.NewRunner(),
	}, nil
}

// NewWithDefaults creates a dispatcher with the default configuration.
func NewWithDefaults() (*Dispatcher, error) {
	return New(DefaultConfig())
}

// SetNoticeFunc sets the sink for user-facing notices. Call before the
// event loop starts.
func (d *Dispatcher) SetNoticeFunc(fn NoticeFunc) { d.noticeFn = fn }

// SetWakeFunc sets a callback that interrupts the frontend's blocking
// event wait, so queued messages get drained promptly. Call before the
// event loop starts.
func (d *Dispatcher) SetWakeFunc(fn func()) { d.wakeFn = fn }

// SetTable swaps the active binding table, e.g. after a keymap file
// reload.
func (d *Dispatcher) SetTable(table *keymap.Table) { d.acc.SetTable(table) }

// Queue returns the background message queue.
func (d *Dispatcher) Queue() *event.Queue { return d.queue }

// Buffers returns the buffer registry.
func (d *Dispatcher) Buffers() *buffer.Registry { return d.buffers }

// Tree returns the pane tree.
func (d *Dispatcher) Tree() *pane.Tree { return d.tree }

// Modes returns the mode manager.
func (d *Dispatcher) Modes() *mode.Manager { return d.modes }

// Runner returns the command runner.
func (d *Dispatcher) Runner() *command.Runner { return d.runner }

// Done reports whether an exit action has been applied.
func (d *Dispatcher) Done() bool { return d.done }

// State returns the dispatch state.
func (d *Dispatcher) State() State {
	if d.acc.Pending().IsEmpty() {
		return StateIdle
	}
	return StateAwaitingSequence
}

// PendingSequence returns the chords typed so far, for the status line.
func (d *Dispatcher) PendingSequence() string {
	return d.acc.Pending().String()
}

// SetFrame records the frame geometry and relayouts the pane tree.
func (d *Dispatcher) SetFrame(frame pane.Rect) {
	d.frame = frame
	d.relayout()
}

func (d *Dispatcher) relayout() {
	layout := d.tree.Relayout(d.frame)
	if r, ok := layout[d.tree.Focus()]; ok && r.Height > 1 {
		if h, err := d.focusedBuffer(); err == nil {
			h.SetPageLines(r.Height - 1)
		}
	}
}

// FocusedBuffer returns the buffer shown in the focused pane.
func (d *Dispatcher) FocusedBuffer() (*buffer.Handle, error) {
	return d.focusedBuffer()
}

func (d *Dispatcher) focusedBuffer() (*buffer.Handle, error) {
	id, err := d.tree.BufferOf(d.tree.Focus())
	if err != nil {
		return nil, err
	}
	return d.buffers.Get(id)
}

// HandleKey processes one key chord: pending background messages are
// drained first, then the chord feeds the accumulator and any resolved
// actions are applied.
func (d *Dispatcher) HandleKey(c key.Chord) error {
	d.DrainMessages()
	d.stopTimer()

	state := d.acc.Feed(d.modes.CurrentName(), c)

	if state.HasDeferred {
		d.applyChecked(state.Deferred)
	}

	switch state.Kind {
	case input.StateComplete:
		d.applyChecked(state.Action)

	case input.StateAmbiguous:
		if d.config.ApplyExactOnAmbiguity {
			if act, ok := d.acc.TakePendingExact(); ok {
				d.applyChecked(act)
			}
		} else if d.config.SequenceTimeout > 0 {
			d.armTimer()
		}

	case input.StateNoMatch:
		d.notice(fmt.Sprintf("%s is unbound", state.Sequence))

	case input.StateCancelled:
		d.cancel()
	}
	return nil
}

// DrainMessages applies everything queued by background producers.
func (d *Dispatcher) DrainMessages() {
	for _, msg := range d.queue.Drain() {
		d.handleMessage(msg)
	}
}

func (d *Dispatcher) handleMessage(msg event.Message) {
	switch msg.Kind {
	case event.KindNotice, event.KindError:
		d.notice(msg.Text)

	case event.KindBufferText:
		h, err := d.buffers.Get(msg.Buffer)
		if err != nil {
			d.notice(fmt.Sprintf("%s: %v", msg.Source, err))
			return
		}
		h.Append(msg.Text)

	case event.KindTimeout:
		// Stale once the user kept typing; only act on a live pending
		// exact match.
		if act, ok := d.acc.TakePendingExact(); ok {
			d.applyChecked(act)
		}

	case event.KindRedraw:
		// Nothing to apply; the frontend repaints after every drain.
	}
}

func (d *Dispatcher) armTimer() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.config.SequenceTimeout, func() {
		_ = d.queue.TrySend(event.Timeout("dispatcher"))
		if d.wakeFn != nil {
			d.wakeFn()
		}
	})
}

func (d *Dispatcher) stopTimer() {
	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Dispatcher) notice(text string) {
	if d.noticeFn != nil {
		d.noticeFn(text)
	}
}
