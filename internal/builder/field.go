package builder

import (
	"github.com/vk/propset/internal/class"
	"github.com/zclconf/go-cty/cty"
)

// Field describes one managed attribute to declare through a builder.
type Field struct {
	// Name is the field's public name. Its storage slot derives from it.
	Name string

	// Default computes the fallback value returned by the getter while the
	// field is unset. It is called fresh on every such read.
	Default class.DefaultFunc

	// Doc documents the generated accessor pair.
	Doc string

	// Type optionally constrains values written to the field; cty.NilType
	// leaves it unconstrained.
	Type cty.Type

	// ReadOnly omits the setter entirely.
	ReadOnly bool

	// Listener names the change callback to invoke after writes.
	Listener string

	// Notify requests change notification under the generic callback name
	// when no Listener is named explicitly.
	Notify bool

	// AutoDirty marks the class dirty slot on change, regardless of the
	// builder's session policy.
	AutoDirty bool
}

// Prop declares one field: it validates the declaration, reserves the dirty
// slot once if the field participates in dirty tracking, appends the field's
// own storage slot to the manifest, and installs the generated accessor pair
// into the namespace under the public name.
func (b *Builder) Prop(f Field) error {
	if b.closed || b.ns == nil {
		return class.Usagef("field %q declared outside an open builder scope", f.Name)
	}

	listener := f.Listener
	if listener == "" && f.Notify {
		listener = class.DefaultListener
	}
	autoDirty := b.autoDirty || f.AutoDirty

	acc, err := class.NewAccessor(class.AccessorSpec{
		Name:      f.Name,
		Default:   f.Default,
		Doc:       f.Doc,
		Type:      f.Type,
		ReadOnly:  f.ReadOnly,
		Listener:  listener,
		AutoDirty: autoDirty,
	})
	if err != nil {
		return err
	}

	slot := acc.StorageSlot()
	if _, dup := b.seen[slot]; dup {
		return class.Configf("storage slot %q declared twice in one builder session", slot)
	}

	if autoDirty {
		if _, have := b.seen[class.DirtySlot]; !have {
			b.manifest = append(b.manifest, class.DirtySlot)
			b.seen[class.DirtySlot] = struct{}{}
		}
	}
	b.manifest = append(b.manifest, slot)
	b.seen[slot] = struct{}{}
	b.ns.Install(acc)
	return nil
}
