package class

import "github.com/zclconf/go-cty/cty"

// Instance is one object of a finalized class. Its storage is the fixed set
// of slots named by the class layout, nothing more: assigning any attribute
// outside the declared fields, or writing any slot outside the layout, fails
// rather than growing the instance.
//
// Field access carries no synchronization. Concurrent mutation of the same
// instance from multiple goroutines must be serialized by the caller.
type Instance struct {
	class *Class
	slots map[string]cty.Value
}

// Class returns the instance's class descriptor.
func (in *Instance) Class() *Class { return in.class }

// Get reads a field through its generated getter.
func (in *Instance) Get(name string) (cty.Value, error) {
	acc, ok := in.class.accessors[name]
	if !ok {
		return cty.NilVal, Configf("class %q has no attribute %q", in.class.name, name)
	}
	return acc.Get(in)
}

// Set writes a field through its generated setter. An attribute name outside
// the declared fields is a field-injection attempt and fails naming the
// offender.
func (in *Instance) Set(name string, v cty.Value) error {
	acc, ok := in.class.accessors[name]
	if !ok {
		return Configf("cannot assign undeclared attribute %q on class %q", name, in.class.name)
	}
	return acc.Set(in, v)
}

// SetSlot writes a raw storage slot, bypassing accessors. The layout is the
// injection guard: a slot it does not contain cannot be written.
func (in *Instance) SetSlot(slot string, v cty.Value) error {
	if !in.class.layout.Contains(slot) {
		return Configf("storage slot %q is not declared in the layout of class %q", slot, in.class.name)
	}
	in.slots[slot] = v
	return nil
}

// Slot reads a raw storage slot. The second result is false while the slot
// has never been assigned.
func (in *Instance) Slot(slot string) (cty.Value, bool) {
	return in.slotValue(slot)
}

// Assigned reports whether the field's backing slot has ever been written.
func (in *Instance) Assigned(name string) bool {
	acc, ok := in.class.accessors[name]
	if !ok {
		return false
	}
	_, set := in.slots[acc.StorageSlot()]
	return set
}

// Dirty reports whether the reserved dirty slot has been marked true.
func (in *Instance) Dirty() bool {
	v, ok := in.slots[DirtySlot]
	return ok && v.RawEquals(cty.True)
}

// ResetDirty clears the dirty mark if the class tracks one.
func (in *Instance) ResetDirty() {
	if in.class.layout.Contains(DirtySlot) {
		in.slots[DirtySlot] = cty.False
	}
}

func (in *Instance) slotValue(slot string) (cty.Value, bool) {
	v, ok := in.slots[slot]
	return v, ok
}
