/*
Package builder implements the scoped property builder: the declaration-time
resource through which a class's managed fields are defined.

A declaration session looks like:

	ns := class.NewNamespace()
	b, err := builder.Open(ns, "prop", builder.WithAutoDirty(true))
	if err != nil { ... }
	defer b.Close()

	err = b.Prop(builder.Field{Name: "speed", Default: zero, Listener: "on_speed"})

Each Prop call installs one accessor pair into the namespace immediately and
appends the field's storage slot to the session manifest, so manifest order
always matches declaration order. Close merges the manifest into the
namespace's storage layout (handling a missing, mutable or frozen prior
layout), removes the builder's transient alias, and renders the builder
unusable; later calls fail fast rather than silently doing nothing.
*/
package builder
