package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/kavyahq/storyeval/errors"
)

// Registry holds named provider instances so the wiring layer can
// resolve backends by name. Providers register under their own Name().
type Registry[T Provider] struct {
	mu        sync.RWMutex
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		instances: make(map[string]T),
	}
}

// Register stores p under its own name. Two providers sharing a name is
// a wiring mistake and fails with CONFIG_ERROR.
func (r *Registry[T]) Register(p T) error {
	name := p.Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[name]; ok {
		return apperrors.Config(fmt.Sprintf("provider %q already registered", name))
	}
	r.instances[name] = p
	return nil
}

// Get returns the provider registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	if !ok {
		var zero T
		return zero, apperrors.Config(fmt.Sprintf("provider %q not registered (have: %s)",
			name, strings.Join(r.namesLocked(), ", ")))
	}
	return inst, nil
}

// Names returns the sorted names of all registered providers.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry[T]) namesLocked() []string {
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
