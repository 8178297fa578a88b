package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/chordedit/chord/internal/editor/buffer"
	"github.com/chordedit/chord/internal/event"
)

// Runner errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrEmptyName      = errors.New("command name is empty")
)

// Context is what a command may touch while running: the focused buffer
// and the message queue for reporting back to the dispatch thread.
type Context struct {
	Buffer *buffer.Handle
	Queue  *event.Queue
}

// Func is a named command implementation.
type Func func(ctx *Context, args []string) error

// Runner holds the named commands reachable through run-command. It is
// safe for concurrent use.
type Runner struct {
	mu   sync.RWMutex
	cmds map[string]Func
}

// NewRunner creates an empty command runner.
func NewRunner() *Runner {
	return &Runner{cmds: make(map[string]Func)}
}

// Register adds a command. An existing command with the same name is
// replaced.
func (r *Runner) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds[name] = fn
	return nil
}

// Run executes the named command.
func (r *Runner) Run(name string, ctx *Context, args ...string) error {
	r.mu.RLock()
	fn, ok := r.cmds[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn(ctx, args)
}

// Has reports whether a command is registered.
func (r *Runner) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cmds[name]
	return ok
}

// Names returns all registered command names, sorted.
func (r *Runner) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
