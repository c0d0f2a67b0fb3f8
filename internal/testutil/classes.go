package testutil

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/require"
	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/model"
)

// ParseClasses parses class definitions out of an inline HCL manifest string.
func ParseClasses(t *testing.T, src string) []*model.ClassDefinition {
	t.Helper()

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), "manifest must parse: %s", diags)

	defs, err := model.NewClasses(context.Background(), hclFile, "test.hcl")
	require.NoError(t, err)
	return defs
}

// BuildClasses parses an inline HCL manifest and builds every class in it,
// indexed by name. Tests that expect build failures should use ParseClasses
// and call Build themselves.
func BuildClasses(t *testing.T, src string, listeners map[string]class.Listener) map[string]*class.Class {
	t.Helper()

	defs := ParseClasses(t, src)
	built := make(map[string]*class.Class, len(defs))
	for _, def := range defs {
		c, err := def.Build(context.Background(), listeners)
		require.NoError(t, err, "class %q must build", def.Name)
		built[def.Name] = c
	}
	return built
}
