package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/ctxlog"
	"github.com/vk/propset/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger, a listener registry, and the classes built
// from the loaded manifests.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry;
// listeners maps manifest callback names to Go functions. Loading or
// validating the manifests is a fatal startup error and panics, which the
// entrypoint recovers into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, listeners map[string]class.Listener) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	for name, fn := range listeners {
		reg.RegisterListener(name, fn)
	}
	logger.Debug("Listeners registered.", "count", len(listeners))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
	}

	if err := a.loadClasses(ctx); err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load class manifests: %w", err))
	}

	if err := reg.Validate(ctx); err != nil {
		// Mismatch between manifests and Go code is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	if err := reg.BuildClasses(ctx); err != nil {
		panic(err)
	}
	logger.Debug("All classes built.", "count", len(reg.Classes()))

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
