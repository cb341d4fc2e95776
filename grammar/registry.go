package grammar

import (
	"context"
	"sort"
	"sync"
)

// Action executes a command with the arguments that followed its name.
type Action func(ctx context.Context, args []string) error

// Param describes one declared parameter of a command.
type Param struct {
	Name string
	Help string
}

// Definition is one registered command.
type Definition struct {
	// Name is the first token of a dispatched line.
	Name string
	// Help is the one-line description shown in overviews.
	Help string
	// Params are the declared parameters, in declaration order.
	Params []Param
	// Builtin names a registered builtin action to invoke. Empty means the
	// command carries only ActionText.
	Builtin string
	// ActionText is the raw action body from the definition document,
	// executed by the dispatcher's fallback handler.
	ActionText string
}

// Registry holds the command grammar assembled from definition documents. It
// is safe for concurrent access so documents can be loaded while an overview
// command reads the registry.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition, replacing any previous definition of the same
// name. Later documents in discovery order therefore override earlier ones.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
}

// Lookup returns the definition for name, if registered.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns all registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
