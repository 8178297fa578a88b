package buffer

import (
	"errors"
	"fmt"
	"sync"
)

// Registry errors.
var (
	ErrNotFound = errors.New("buffer not found")
	ErrInUse    = errors.New("buffer is referenced by a pane")
)

// Registry owns all open buffers and tracks how many panes reference each
// one. A buffer is never removed while its reference count is above zero,
// so a pane's buffer ID always resolves.
type Registry struct {
	mu      sync.RWMutex
	buffers map[ID]*Handle
	refs    map[ID]int
	order   []ID
	scratch int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		buffers: make(map[ID]*Handle),
		refs:    make(map[ID]int),
	}
}

// NewScratch creates and registers an empty scratch buffer.
func (r *Registry) NewScratch() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scratch++
	name := "*scratch*"
	if r.scratch > 1 {
		name = fmt.Sprintf("*scratch-%d*", r.scratch)
	}
	h := NewHandle(name)
	r.addLocked(h)
	return h
}

// Open loads a file into a new buffer and registers it. If a buffer is
// already bound to the path, the existing buffer is returned instead.
func (r *Registry) Open(path string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if h := r.buffers[id]; h.Path() == path {
			return h, nil
		}
	}

	h, err := Open(path)
	if err != nil {
		return nil, err
	}
	r.addLocked(h)
	return h, nil
}

// Add registers an externally created buffer.
func (r *Registry) Add(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(h)
}

func (r *Registry) addLocked(h *Handle) {
	r.buffers[h.ID()] = h
	r.order = append(r.order, h.ID())
}

// Get returns the buffer with the given ID.
func (r *Registry) Get(id ID) (*Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, nil
}

// Retain records one pane reference to the buffer.
func (r *Registry) Retain(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buffers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.refs[id]++
	return nil
}

// Release drops one pane reference. The buffer stays registered; a buffer
// with zero references is merely eligible for Remove.
func (r *Registry) Release(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buffers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if r.refs[id] > 0 {
		r.refs[id]--
	}
	return nil
}

// Refs returns the reference count for the buffer, or zero if unknown.
func (r *Registry) Refs(id ID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refs[id]
}

// Remove unregisters a buffer. Fails with ErrInUse while any pane still
// references it.
func (r *Registry) Remove(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buffers[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if r.refs[id] > 0 {
		return fmt.Errorf("%w: %s", ErrInUse, id)
	}
	delete(r.buffers, id)
	delete(r.refs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of registered buffers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buffers)
}

// List returns all buffers in registration order.
func (r *Registry) List() []*Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Handle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.buffers[id])
	}
	return out
}

// Next returns the buffer registered after id, wrapping around. With one
// buffer it returns that buffer.
func (r *Registry) Next(id ID) (*Handle, error) {
	return r.neighbor(id, 1)
}

// Prev returns the buffer registered before id, wrapping around.
func (r *Registry) Prev(id ID) (*Handle, error) {
	return r.neighbor(id, -1)
}

func (r *Registry) neighbor(id ID, step int) (*Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, oid := range r.order {
		if oid == id {
			n := len(r.order)
			next := r.order[((i+step)%n+n)%n]
			return r.buffers[next], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// FindByName returns the first buffer whose display name matches.
func (r *Registry) FindByName(name string) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if h := r.buffers[id]; h.Name() == name {
			return h, true
		}
	}
	return nil, false
}
