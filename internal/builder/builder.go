package builder

import (
	"github.com/vk/propset/internal/class"
)

// Builder is the scoped declaration resource for a class under construction.
// Open binds it into the namespace under a transient alias; each Prop call
// installs one accessor pair and accumulates the field's storage slot in the
// manifest; Close merges the manifest into the namespace's layout, removes
// the alias and poisons the builder. The lifecycle is strictly one-shot:
// any use after Close fails fast with a UsageError.
type Builder struct {
	ns        *class.Namespace
	alias     string
	autoDirty bool
	manifest  []string
	seen      map[string]struct{}
	closed    bool
}

// Option configures a builder at Open time.
type Option func(*Builder)

// WithAutoDirty sets the session-wide auto-dirty policy: every field declared
// through the builder marks the dirty slot on change unless it says otherwise.
func WithAutoDirty(on bool) Option {
	return func(b *Builder) { b.autoDirty = on }
}

// Open starts a declaration scope against ns, binding the builder under
// alias so the surrounding declaration code can reach it. The caller must
// release the scope with Close on every exit path, typically via defer.
func Open(ns *class.Namespace, alias string, opts ...Option) (*Builder, error) {
	if ns == nil {
		return nil, class.Usagef("builder opened without a namespace")
	}
	if alias == "" {
		return nil, class.Configf("builder opened without an alias")
	}
	b := &Builder{
		ns:    ns,
		alias: alias,
		seen:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	ns.Bind(alias, b)
	return b, nil
}

// Manifest returns a copy of the storage slots accumulated so far, in
// declaration order.
func (b *Builder) Manifest() []string {
	out := make([]string, len(b.manifest))
	copy(out, b.manifest)
	return out
}

// Close releases the declaration scope. It always runs the manifest merge —
// every accessor installed by earlier Prop calls stays installed even when a
// later declaration failed — then removes the builder's alias from the
// namespace and clears the internal references. Closing twice is a
// UsageError.
func (b *Builder) Close() error {
	if b.closed {
		return class.Usagef("builder for alias %q already released", b.alias)
	}
	b.closed = true
	err := b.ns.MergeLayout(b.manifest)
	b.ns.Unbind(b.alias)
	b.ns = nil
	b.manifest = nil
	b.seen = nil
	return err
}
