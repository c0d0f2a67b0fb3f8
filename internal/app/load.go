package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/propset/internal/ctxlog"
	"github.com/vk/propset/internal/fsutil"
	"github.com/vk/propset/internal/model"
)

// loadClasses discovers every .hcl manifest under the configured path, parses
// it, and populates the registry with the class definitions found.
func (a *App) loadClasses(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading class manifests...", "path", a.config.ClassesPath)

	filePaths, err := fsutil.FindFilesByExtension(a.config.ClassesPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk classes path.", "path", a.config.ClassesPath, "error", err)
		return err
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl class manifests found in path.", "path", a.config.ClassesPath)
		return nil
	}
	logger.Debug("Found HCL files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	total := 0
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		defs, err := model.NewClasses(ctx, hclFile, filePath)
		if err != nil {
			return err
		}
		a.registry.PopulateDefinitions(defs)
		total += len(defs)
		logger.Debug("Loaded definitions from HCL file.", "file", filePath, "count", len(defs))
	}

	logger.Info("Class manifests loaded successfully.", "classes_loaded", total)
	return nil
}
