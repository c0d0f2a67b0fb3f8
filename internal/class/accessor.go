package class

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// DefaultFunc computes a field's fallback value when its slot has never been
// assigned. It receives the instance so defaults can be "live" and depend on
// other instance state available at read time.
type DefaultFunc func(self *Instance) (cty.Value, error)

// Listener is a change callback. It is invoked strictly after the storage
// write, so reading the field through self observes the new value while old
// still carries the previous one. old is a null value when the slot had
// never been assigned.
type Listener func(self *Instance, slot string, old, new cty.Value) error

// AccessorSpec carries everything needed to generate one accessor pair.
type AccessorSpec struct {
	// Name is the field's public name; the accessor is installed under it.
	Name string

	// Default computes the fallback value on read while the slot is unset.
	// It is re-invoked on every such read, never cached. A nil Default
	// yields a null value.
	Default DefaultFunc

	// Doc is the field's documentation string, carried over from the
	// declaration.
	Doc string

	// Type optionally constrains the field's values; incoming writes are
	// converted to it. cty.NilType means unconstrained.
	Type cty.Type

	// ReadOnly omits the setter entirely.
	ReadOnly bool

	// Listener names the change callback to invoke after a write, or "".
	Listener string

	// AutoDirty marks the class's dirty slot on every effective write.
	AutoDirty bool
}

// Accessor is the generated getter/setter pair for one managed field. It is
// stateless: all per-field data is fixed at declaration time, and all mutable
// state lives in the instance's storage.
type Accessor struct {
	name      string
	slot      string
	doc       string
	def       DefaultFunc
	typ       cty.Type
	readOnly  bool
	listener  string
	autoDirty bool
}

// NewAccessor generates the accessor pair for one field declaration. A field
// cannot be both read-only and observed: a read-only field has no writes to
// listen for, so the combination is a ConfigError at declaration time.
func NewAccessor(spec AccessorSpec) (*Accessor, error) {
	if spec.Name == "" {
		return nil, Configf("field declared without a name")
	}
	if spec.ReadOnly && spec.Listener != "" {
		return nil, Configf("field %q cannot be both read-only and observed by %q", spec.Name, spec.Listener)
	}
	return &Accessor{
		name:      spec.Name,
		slot:      Slot(spec.Name),
		doc:       spec.Doc,
		def:       spec.Default,
		typ:       spec.Type,
		readOnly:  spec.ReadOnly,
		listener:  spec.Listener,
		autoDirty: spec.AutoDirty,
	}, nil
}

// Name returns the field's public name.
func (a *Accessor) Name() string { return a.name }

// StorageSlot returns the private slot identifier backing the field.
func (a *Accessor) StorageSlot() string { return a.slot }

// Doc returns the field's documentation string.
func (a *Accessor) Doc() string { return a.doc }

// ReadOnly reports whether the field has no setter.
func (a *Accessor) ReadOnly() bool { return a.readOnly }

// ListenerName returns the name of the change callback, or "".
func (a *Accessor) ListenerName() string { return a.listener }

// AutoDirty reports whether writes to the field mark the dirty slot.
func (a *Accessor) AutoDirty() bool { return a.autoDirty }

// Get returns the field's value for self: the stored value if the slot has
// been assigned, otherwise the default provider's output, computed fresh on
// every call. The default is deliberately not cached into storage; providers
// may depend on state that changes between reads.
func (a *Accessor) Get(self *Instance) (cty.Value, error) {
	if v, ok := self.slotValue(a.slot); ok {
		return v, nil
	}
	if a.def == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return a.def(self)
}

// Set writes a new value into the field's slot. Writing a value equal to the
// current one (null when unset) is a complete no-op: no storage write, no
// dirty flag, no listener call. A genuine change writes storage first, then
// marks the dirty slot if the field is auto-dirty, then invokes the listener
// with (slot, old, new).
func (a *Accessor) Set(self *Instance, v cty.Value) error {
	if a.readOnly {
		return Usagef("field %q of class %q is read-only", a.name, self.class.name)
	}
	if a.typ != cty.NilType {
		converted, err := convert.Convert(v, a.typ)
		if err != nil {
			return Configf("field %q of class %q: %s", a.name, self.class.name, err)
		}
		v = converted
	}
	old, assigned := self.slotValue(a.slot)
	if !assigned {
		old = cty.NullVal(cty.DynamicPseudoType)
	}
	if old.RawEquals(v) {
		return nil
	}
	if err := self.SetSlot(a.slot, v); err != nil {
		return err
	}
	if a.autoDirty {
		if err := self.SetSlot(DirtySlot, cty.True); err != nil {
			return err
		}
	}
	if a.listener != "" {
		fn, ok := self.class.listeners[a.listener]
		if !ok {
			return Configf("listener %q for field %q is not defined on class %q", a.listener, a.name, self.class.name)
		}
		return fn(self, a.slot, old, v)
	}
	return nil
}
