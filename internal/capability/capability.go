package capability

import (
	"context"

	"disaster-safety-assistant/internal/model"
)

// Capability is a pluggable handler fulfilling one class of user intent.
// Execute must be total: expected failures come back as an error result, and
// implementations manage their own internal timeouts.
type Capability interface {
	// Name returns the registry key the router dispatches on.
	Name() string

	// Execute produces the capability's contribution to the turn.
	Execute(ctx context.Context, state *model.ConversationState) (model.PartialState, error)
}

// Registry manages available capabilities.
type Registry struct {
	capabilities map[string]Capability
}

// NewRegistry creates a new capability registry.
func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]Capability),
	}
}

// Register adds a capability to the registry.
func (r *Registry) Register(c Capability) {
	r.capabilities[c.Name()] = c
}

// Get retrieves a capability by name.
func (r *Registry) Get(name string) (Capability, bool) {
	c, ok := r.capabilities[name]
	return c, ok
}

// Resolve returns the capability for name, or the generic fallback when the
// name is unknown. An unknown name is a classifier bug, not a turn failure.
func (r *Registry) Resolve(name string) Capability {
	if c, ok := r.capabilities[name]; ok {
		return c
	}
	return r.capabilities[NameFallback]
}

// List returns all registered capability names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	return names
}
