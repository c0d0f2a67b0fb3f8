// Package registry provides the central glue between class manifests and Go
// code.
//
// Listener names used in manifests (e.g. `listener = "on_speed"`) are string
// identifiers; the registry stores the mapping from those identifiers to the
// compiled Go callbacks, along with the parsed definitions and the classes
// built from them. At startup the registry is validated so that manifests and
// Go code are in sync before any instance is created.
package registry

import (
	"sort"

	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/model"
)

// Registry holds the registered listeners, the loaded class definitions, and
// the built classes for a single application instance.
type Registry struct {
	listeners   map[string]class.Listener
	definitions map[string]*model.ClassDefinition
	classes     map[string]*class.Class
	order       []string
}

// New creates and initializes an empty Registry.
func New() *Registry {
	return &Registry{
		listeners:   make(map[string]class.Listener),
		definitions: make(map[string]*model.ClassDefinition),
		classes:     make(map[string]*class.Class),
	}
}

// RegisterListener binds a Go change callback under the name manifests use
// to address it.
func (r *Registry) RegisterListener(name string, fn class.Listener) {
	r.listeners[name] = fn
}

// Listeners returns a copy of the listener table.
func (r *Registry) Listeners() map[string]class.Listener {
	out := make(map[string]class.Listener, len(r.listeners))
	for name, fn := range r.listeners {
		out[name] = fn
	}
	return out
}

// PopulateDefinitions copies loaded class definitions into the registry,
// keeping first-seen order for deterministic building.
func (r *Registry) PopulateDefinitions(defs []*model.ClassDefinition) {
	for _, def := range defs {
		if _, seen := r.definitions[def.Name]; !seen {
			r.order = append(r.order, def.Name)
		}
		r.definitions[def.Name] = def
	}
}

// Definitions returns the loaded definitions in first-seen order.
func (r *Registry) Definitions() []*model.ClassDefinition {
	out := make([]*model.ClassDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.definitions[name])
	}
	return out
}

// AddClass indexes a built class by name.
func (r *Registry) AddClass(c *class.Class) { r.classes[c.Name()] = c }

// Class returns the built class with the given name, if any.
func (r *Registry) Class(name string) (*class.Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Classes returns all built classes sorted by name.
func (r *Registry) Classes() []*class.Class {
	out := make([]*class.Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
