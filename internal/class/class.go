package class

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Class is the finalized descriptor produced from a namespace: an immutable
// name, a frozen storage layout, the generated accessor pairs, and the bound
// listeners. Classes are built once at load time and live for the lifetime of
// the program.
type Class struct {
	name      string
	doc       string
	layout    *Layout
	accessors map[string]*Accessor
	listeners map[string]Listener
}

// Finalize consumes a namespace and produces the Class. It fails if any
// transient binding is still present (a leaked builder alias would otherwise
// become a class member), if the layout is missing a slot some accessor needs,
// or if an accessor names a listener that was never bound. All of these are
// caught here, at class-definition time, before any instance exists.
func Finalize(name, doc string, ns *Namespace) (*Class, error) {
	if name == "" {
		return nil, Configf("class declared without a name")
	}
	if len(ns.bindings) > 0 {
		names := make([]string, 0, len(ns.bindings))
		for n := range ns.bindings {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, Configf("class %q: transient binding %q was not released before finalization", name, names[0])
	}

	layout := ns.layout
	if layout == nil {
		layout, _ = NewLayout()
	}
	layout.Freeze()

	accessors := make(map[string]*Accessor, len(ns.accessors))
	for n, acc := range ns.accessors {
		if !layout.Contains(acc.StorageSlot()) {
			return nil, Configf("class %q: field %q has no storage slot %q in the layout", name, n, acc.StorageSlot())
		}
		if acc.AutoDirty() && !layout.Contains(DirtySlot) {
			return nil, Configf("class %q: field %q is auto-dirty but the layout has no %q slot", name, n, DirtySlot)
		}
		if ln := acc.ListenerName(); ln != "" {
			if _, ok := ns.listeners[ln]; !ok {
				return nil, Configf("class %q: field %q names listener %q which is not bound", name, n, ln)
			}
		}
		accessors[n] = acc
	}

	listeners := make(map[string]Listener, len(ns.listeners))
	for n, fn := range ns.listeners {
		listeners[n] = fn
	}

	return &Class{
		name:      name,
		doc:       doc,
		layout:    layout,
		accessors: accessors,
		listeners: listeners,
	}, nil
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Doc returns the class documentation string.
func (c *Class) Doc() string { return c.doc }

// Layout returns the frozen storage layout.
func (c *Class) Layout() *Layout { return c.layout }

// Accessor returns the accessor installed under the public field name.
func (c *Class) Accessor(name string) (*Accessor, bool) {
	acc, ok := c.accessors[name]
	return acc, ok
}

// Accessors returns all accessors sorted by field name.
func (c *Class) Accessors() []*Accessor {
	out := make([]*Accessor, 0, len(c.accessors))
	for _, acc := range c.accessors {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// New allocates an instance with empty storage. Initial values are usually
// assigned through the copier rather than here.
func (c *Class) New() *Instance {
	return &Instance{class: c, slots: make(map[string]cty.Value)}
}
