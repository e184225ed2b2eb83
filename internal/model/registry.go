package model

import (
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Registry holds the model definitions known to the process.
// Definitions are registered at start-up and only read afterwards.
type Registry struct {
	mu    sync.RWMutex
	order []*Definition
	names map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]*Definition),
	}
}

// Register adds the definitions to the registry.
// Model names are matched case-insensitively and must be unique.
func (r *Registry) Register(defs ...*Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if def == nil || def.Name == "" {
			return status.Error(codes.InvalidArgument, "model definition must have a name")
		}

		key := strings.ToLower(def.Name)
		if _, ok := r.names[key]; ok {
			return status.Errorf(codes.AlreadyExists, "model %s is already registered", def.Name)
		}

		r.names[key] = def
		r.order = append(r.order, def)
	}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(defs ...*Definition) {
	if err := r.Register(defs...); err != nil {
		panic(err)
	}
}

// BaseModels returns all registered definitions in registration order.
func (r *Registry) BaseModels() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the definition registered under name, ignoring case.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.names[strings.ToLower(name)]
	return def, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
