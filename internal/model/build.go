package model

import (
	"context"

	"github.com/vk/propset/internal/builder"
	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// builderAlias is the transient name the property builder is bound under
// while a manifest-declared class is being built. It never survives into the
// finished class.
const builderAlias = "prop"

// Build turns the definition into a finalized class, driving the same
// builder machinery the programmatic API uses: open a session, declare each
// field in manifest order, close, finalize. listeners provides the change
// callbacks addressable from field declarations.
func (d *ClassDefinition) Build(ctx context.Context, listeners map[string]class.Listener) (*class.Class, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building class from definition.", "class", d.Name, "fields", len(d.Fields))

	ns := class.NewNamespace()
	for name, fn := range listeners {
		ns.BindListener(name, fn)
	}
	if d.SaveArgs {
		if err := ns.MergeLayout([]string{class.ArgsSlot}); err != nil {
			return nil, err
		}
	}

	b, err := builder.Open(ns, builderAlias, builder.WithAutoDirty(d.AutoDirty))
	if err != nil {
		return nil, err
	}

	for _, f := range d.Fields {
		var def class.DefaultFunc
		if f.Default != nil {
			v := *f.Default
			def = func(*class.Instance) (cty.Value, error) { return v, nil }
		}
		if err := b.Prop(builder.Field{
			Name:      f.Name,
			Default:   def,
			Doc:       f.Doc,
			Type:      f.Type,
			ReadOnly:  f.ReadOnly,
			Listener:  f.Listener,
			Notify:    f.Notify,
			AutoDirty: f.AutoDirty,
		}); err != nil {
			// The scope is still released; accessors declared so far stay
			// installed, but the class as a whole is rejected.
			_ = b.Close()
			return nil, err
		}
	}

	if err := b.Close(); err != nil {
		return nil, err
	}

	built, err := class.Finalize(d.Name, d.Description, ns)
	if err != nil {
		return nil, err
	}
	logger.Debug("Class built.", "class", d.Name, "layout", built.Layout().Slots())
	return built, nil
}
