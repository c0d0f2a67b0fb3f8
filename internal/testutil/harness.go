package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/propset/internal/app"
	"github.com/vk/propset/internal/class"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest provides a standardized harness for running the whole
// app against a set of manifest files. The map keys are file names relative
// to a fresh temp directory; startup panics are recovered into Err.
func RunIntegrationTest(t *testing.T, files map[string]string, listeners map[string]class.Listener) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		ClassesPath: tmpDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	out := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup failed: %v", r)
			}
		}()
		a := app.NewApp(out, appConfig, listeners)
		result.App = a
		result.Err = a.Run(context.Background())
	}()

	result.Output = out.String()
	return result
}
