package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Descriptor is one tool as declared by the provider: name (unique within a
// session), human description, and input schema. RawSchema keeps the schema
// exactly as received; Schema is its parsed intermediate form. Descriptors
// are immutable for the session's lifetime.
type Descriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	RawSchema   json.RawMessage `json:"inputSchema"`
	Schema      *SchemaNode     `json:"-"`
}

// Registry is the session's tool set, populated once from the session's
// tool-listing capability and read-only afterwards.
type Registry struct {
	descriptors []Descriptor
	byName      map[string]int
}

// NewRegistry queries the session for its tools. A listing failure wraps
// ErrProviderUnavailable; callers must not advertise tools to a model after
// that.
func NewRegistry(ctx context.Context, session Session) (*Registry, error) {
	descriptors, err := session.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return NewStaticRegistry(descriptors), nil
}

// NewStaticRegistry builds a registry from an already-known descriptor set.
// Descriptors without a parsed Schema get one from their RawSchema.
func NewStaticRegistry(descriptors []Descriptor) *Registry {
	byName := make(map[string]int, len(descriptors))
	for i := range descriptors {
		if descriptors[i].Schema == nil {
			descriptors[i].Schema = ParseSchema(descriptors[i].RawSchema)
		}
		byName[descriptors[i].Name] = i
	}
	return &Registry{descriptors: descriptors, byName: byName}
}

// List returns all descriptors in provider order. Callers must not mutate
// the returned slice.
func (r *Registry) List() []Descriptor {
	return r.descriptors
}

// Get returns the descriptor with the given name
func (r *Registry) Get(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// Names returns the tool names in provider order
func (r *Registry) Names() []string {
	names := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		names[i] = d.Name
	}
	return names
}
