package binder

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrNotRegistered is returned for names without a registered binder.
	ErrNotRegistered = errors.New("binder not registered")
	// ErrAlreadyRegistered is returned when a binder is registered twice.
	ErrAlreadyRegistered = errors.New("binder already registered")
)

// InitFunc initializes a binder registered under a name.
type InitFunc func(name string, b *Binder)

// Registry holds binders by name. Several binders may share a name; typed
// commands executed on the name reach all of them.
type Registry struct {
	mu      sync.Mutex
	binders map[string][]*Binder
	inits   map[string]InitFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		binders: make(map[string][]*Binder),
		inits:   make(map[string]InitFunc),
	}
}

// Register adds b under name and runs the init function of name, if any.
func (r *Registry) Register(name string, b *Binder) error {
	r.mu.Lock()

	if slices.Contains(r.binders[name], b) {
		r.mu.Unlock()
		return fmt.Errorf("register %q: %w", name, ErrAlreadyRegistered)
	}

	r.binders[name] = append(r.binders[name], b)
	fn := r.inits[name]
	r.mu.Unlock()

	if fn != nil {
		fn(name, b)
	}

	return nil
}

// Unregister removes b from name. It reports whether b was registered.
func (r *Registry) Unregister(name string, b *Binder) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.binders[name]

	i := slices.Index(list, b)
	if i < 0 {
		return false
	}

	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(r.binders, name)
	} else {
		r.binders[name] = list
	}

	return true
}

// Get returns the binders registered under name.
func (r *Registry) Get(name string) ([]*Binder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.binders[name]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", name, ErrNotRegistered)
	}

	return slices.Clone(list), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return sortedKeys(r.binders)
}

// OnInit sets the init function of name. It runs at once for the binders
// already registered under name and later for every new one.
func (r *Registry) OnInit(name string, fn InitFunc) {
	r.mu.Lock()
	r.inits[name] = fn
	list := slices.Clone(r.binders[name])
	r.mu.Unlock()

	for _, b := range list {
		fn(name, b)
	}
}

// Execute runs cmd on every binder registered under name, in registration
// order, and stops at the first error.
func (r *Registry) Execute(name string, cmd Command) ([]Result, error) {
	list, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(list))
	for _, b := range list {
		res, err := cmd.apply(b)
		if err != nil {
			return out, fmt.Errorf("execute %T on %q: %w", cmd, name, err)
		}

		out = append(out, res)
	}

	return out, nil
}
