package mode

import (
	"fmt"
	"sync"
)

// ChangeFunc is notified after every completed mode transition.
type ChangeFunc func(from, to Mode)

// Manager tracks the active mode as the top of a mode stack. Switch
// replaces the top, Push layers a transient mode (such as the minibuffer)
// over it and Pop returns to whatever was underneath. The bottom of the
// stack is set once with SetInitialMode and is never popped.
type Manager struct {
	mu       sync.RWMutex
	registry map[string]Mode
	stack    []Mode
	watchers []ChangeFunc
	ctx      *Context
}

// NewManager creates an empty manager. Register the available modes and
// call SetInitialMode before dispatching input.
func NewManager() *Manager {
	return &Manager{
		registry: make(map[string]Mode),
		stack:    make([]Mode, 0, 2),
		ctx:      NewContext(),
	}
}

// Register adds a mode, replacing any previous mode of the same name.
func (m *Manager) Register(md Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry[md.Name()] = md
}

// SetInitialMode enters the named mode as the bottom of the stack. It does
// not exit anything and must run before the first Switch or Push.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	md, ok := m.registry[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	m.ctx.PreviousMode = ""
	m.ctx.NextMode = ""
	if err := md.Enter(m.ctx); err != nil {
		return fmt.Errorf("enter %s: %w", name, err)
	}
	m.stack = append(m.stack[:0], md)
	return nil
}

// Current returns the active mode, or nil before SetInitialMode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.top()
}

// CurrentName returns the active mode's name, or "" before SetInitialMode.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if top := m.top(); top != nil {
		return top.Name()
	}
	return ""
}

// IsMode reports whether the active mode has the given name.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// StackDepth returns the number of modes layered above the initial one.
func (m *Manager) StackDepth() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.stack) == 0 {
		return 0
	}
	return len(m.stack) - 1
}

// Switch replaces the active mode with the named one. The old mode's Exit
// runs before the new mode's Enter; if Enter fails the manager keeps its
// previous state.
func (m *Manager) Switch(name string) error {
	return m.transition(name, nil, false)
}

// Push layers the named mode over the active one. Pop restores it.
func (m *Manager) Push(name string) error {
	return m.transition(name, nil, true)
}

// PushWithContext is Push with transition data for the new mode's Enter,
// such as the minibuffer prompt.
func (m *Manager) PushWithContext(name string, ctx *Context) error {
	return m.transition(name, ctx, true)
}

// Pop exits the active mode and re-enters the one beneath it. The initial
// mode cannot be popped.
func (m *Manager) Pop() error {
	m.mu.Lock()

	if len(m.stack) < 2 {
		m.mu.Unlock()
		return fmt.Errorf("mode stack is empty")
	}
	cur := m.top()
	under := m.stack[len(m.stack)-2]

	ctx := m.ctx
	ctx.NextMode = under.Name()
	if err := cur.Exit(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("exit %s: %w", cur.Name(), err)
	}
	ctx.PreviousMode = cur.Name()
	ctx.NextMode = ""
	if err := under.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", under.Name(), err)
	}
	m.stack = m.stack[:len(m.stack)-1]

	watchers := m.snapshotWatchers()
	m.mu.Unlock()

	notify(watchers, cur, under)
	return nil
}

// OnChange registers a watcher for mode transitions and returns a function
// that unregisters it.
func (m *Manager) OnChange(fn ChangeFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.watchers = append(m.watchers, fn)
	i := len(m.watchers) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if i < len(m.watchers) {
			m.watchers[i] = nil
		}
	}
}

func (m *Manager) transition(name string, ctx *Context, push bool) error {
	m.mu.Lock()

	next, ok := m.registry[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown mode: %s", name)
	}
	if ctx == nil {
		ctx = m.ctx
	}

	cur := m.top()
	if cur != nil {
		ctx.NextMode = name
		if err := cur.Exit(ctx); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", cur.Name(), err)
		}
		ctx.PreviousMode = cur.Name()
	} else {
		ctx.PreviousMode = ""
	}
	ctx.NextMode = ""

	if err := next.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}

	if push || len(m.stack) == 0 {
		m.stack = append(m.stack, next)
	} else {
		m.stack[len(m.stack)-1] = next
	}

	watchers := m.snapshotWatchers()
	m.mu.Unlock()

	notify(watchers, cur, next)
	return nil
}

// top must be called with the lock held.
func (m *Manager) top() Mode {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// snapshotWatchers copies the watcher list so callbacks run unlocked.
func (m *Manager) snapshotWatchers() []ChangeFunc {
	out := make([]ChangeFunc, len(m.watchers))
	copy(out, m.watchers)
	return out
}

func notify(watchers []ChangeFunc, from, to Mode) {
	for _, w := range watchers {
		if w != nil {
			w(from, to)
		}
	}
}
