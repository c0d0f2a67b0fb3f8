package class

// Namespace is the class namespace under construction: the mutable collection
// of members that will become a Class. It is owned by whoever is defining the
// class; the property builder borrows it for the duration of its scope.
//
// Members come in three kinds: installed accessors (the managed fields),
// bound listeners (change callbacks addressable by name), and transient
// bindings (scoped helpers such as the builder's own alias). Transient
// bindings must all be removed before the namespace can be finalized into a
// Class.
type Namespace struct {
	accessors map[string]*Accessor
	listeners map[string]Listener
	bindings  map[string]any
	layout    *Layout
}

// NewNamespace returns an empty namespace with no layout declared.
func NewNamespace() *Namespace {
	return &Namespace{
		accessors: make(map[string]*Accessor),
		listeners: make(map[string]Listener),
		bindings:  make(map[string]any),
	}
}

// Bind attaches a transient member under name. Transient members never
// survive into the finalized class.
func (ns *Namespace) Bind(name string, v any) { ns.bindings[name] = v }

// Bound returns the transient member bound under name, if any.
func (ns *Namespace) Bound(name string) (any, bool) {
	v, ok := ns.bindings[name]
	return v, ok
}

// Unbind removes the transient member bound under name.
func (ns *Namespace) Unbind(name string) { delete(ns.bindings, name) }

// Install places an accessor pair into the namespace under its field's public
// name, replacing whatever was there before.
func (ns *Namespace) Install(acc *Accessor) { ns.accessors[acc.Name()] = acc }

// Accessor returns the accessor installed under name, if any.
func (ns *Namespace) Accessor(name string) (*Accessor, bool) {
	acc, ok := ns.accessors[name]
	return acc, ok
}

// BindListener registers a change callback under name so that fields declared
// with that listener name can invoke it.
func (ns *Namespace) BindListener(name string, fn Listener) { ns.listeners[name] = fn }

// Layout returns the namespace's storage-layout declaration, which is nil
// until a manifest has been merged or a layout set explicitly.
func (ns *Namespace) Layout() *Layout { return ns.layout }

// SetLayout replaces the namespace's storage-layout declaration outright.
func (ns *Namespace) SetLayout(l *Layout) { ns.layout = l }

// MergeLayout folds a builder's manifest into the namespace's storage-layout
// declaration. Three prior states are handled: no layout yet (the manifest
// becomes the layout), a mutable layout (extended in place), and a frozen
// layout (replaced by a fresh layout holding the concatenation). Each slot is
// processed exactly once; a slot already present in the prior layout is a
// ConfigError rather than a silent duplicate.
func (ns *Namespace) MergeLayout(manifest []string) error {
	switch {
	case ns.layout == nil:
		l, err := NewLayout(manifest...)
		if err != nil {
			return err
		}
		ns.layout = l
	case !ns.layout.Frozen():
		for _, slot := range manifest {
			if err := ns.layout.Append(slot); err != nil {
				return err
			}
		}
	default:
		merged, err := NewLayout(append(ns.layout.Slots(), manifest...)...)
		if err != nil {
			return err
		}
		ns.layout = merged
	}
	return nil
}
