package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/propset/internal/ctxlog"
)

// Run executes the main application logic: describe every built class on the
// output writer, fields first, storage layout last.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	classes := a.registry.Classes()
	if len(classes) == 0 {
		a.logger.Warn("No classes built, nothing to describe.")
		return nil
	}

	for _, c := range classes {
		fmt.Fprintf(a.outW, "class %s\n", c.Name())
		if c.Doc() != "" {
			fmt.Fprintf(a.outW, "  %s\n", c.Doc())
		}
		for _, acc := range c.Accessors() {
			var notes []string
			if acc.ReadOnly() {
				notes = append(notes, "read-only")
			}
			if ln := acc.ListenerName(); ln != "" {
				notes = append(notes, "listener="+ln)
			}
			if acc.AutoDirty() {
				notes = append(notes, "auto-dirty")
			}
			suffix := ""
			if len(notes) > 0 {
				suffix = " (" + strings.Join(notes, ", ") + ")"
			}
			fmt.Fprintf(a.outW, "  field %s -> %s%s\n", acc.Name(), acc.StorageSlot(), suffix)
		}
		fmt.Fprintf(a.outW, "  layout [%s]\n", strings.Join(c.Layout().Slots(), ", "))
	}

	logger.Debug("App.Run method finished.", "classes_described", len(classes))
	return nil
}
