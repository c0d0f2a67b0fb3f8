package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/ctxlog"
)

// Validate performs a strict parity check between the loaded class
// definitions and the registered Go listeners: every callback a manifest
// refers to, by name or via the generic `listener = true` form, must resolve
// to a registered Go function. Registered listeners no manifest refers to are
// reported as warnings only.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	referenced := make(map[string]struct{})

	for _, name := range sortedKeys(r.definitions) {
		def := r.definitions[name]
		for _, f := range def.Fields {
			listener := f.Listener
			if listener == "" && f.Notify {
				listener = class.DefaultListener
			}
			if listener == "" {
				continue
			}
			referenced[listener] = struct{}{}
			if _, ok := r.listeners[listener]; !ok {
				errs = append(errs, fmt.Sprintf("class '%s': field '%s' refers to listener '%s' which has no registered Go function", name, f.Name, listener))
			}
		}
	}

	for name := range r.listeners {
		if _, ok := referenced[name]; !ok {
			logger.Warn("Registered listener is not referenced by any class manifest.", "listener", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// BuildClasses builds every loaded definition in first-seen order and indexes
// the results. Validate should have passed first; a build failure aborts the
// whole pass, so the application either gets a fully valid class set or none.
func (r *Registry) BuildClasses(ctx context.Context) error {
	for _, def := range r.Definitions() {
		built, err := def.Build(ctx, r.listeners)
		if err != nil {
			return fmt.Errorf("building class %q: %w", def.Name, err)
		}
		r.AddClass(built)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
