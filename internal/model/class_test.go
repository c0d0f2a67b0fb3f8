package model_test

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/propset/internal/class"
	"github.com/vk/propset/internal/model"
	"github.com/zclconf/go-cty/cty"
)

func parse(t *testing.T, src string) ([]*model.ClassDefinition, error) {
	t.Helper()
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), "syntax must be valid: %s", diags)
	return model.NewClasses(context.Background(), hclFile, "test.hcl")
}

func TestNewClasses(t *testing.T) {
	t.Run("full manifest", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  description = "A car."
  save_args   = true

  field "brand" {
    read_only = true
    doc       = "Manufacturer name."
  }
  field "speed" {
    type       = number
    default    = 0
    listener   = "on_speed"
    auto_dirty = true
  }
  field "on" {
    listener = true
  }
}
`)
		require.NoError(t, err)
		require.Len(t, defs, 1)

		def := defs[0]
		assert.Equal(t, "car", def.Name)
		assert.Equal(t, "A car.", def.Description)
		assert.True(t, def.SaveArgs)
		require.Len(t, def.Fields, 3)

		brand := def.Fields[0]
		assert.Equal(t, "brand", brand.Name)
		assert.True(t, brand.ReadOnly)
		assert.Equal(t, "Manufacturer name.", brand.Doc)
		assert.Nil(t, brand.Default)

		speed := def.Fields[1]
		assert.Equal(t, "speed", speed.Name)
		assert.Equal(t, cty.Number, speed.Type)
		require.NotNil(t, speed.Default)
		assert.True(t, speed.Default.RawEquals(cty.Zero))
		assert.Equal(t, "on_speed", speed.Listener)
		assert.True(t, speed.AutoDirty)

		on := def.Fields[2]
		assert.Equal(t, "on", on.Name)
		assert.Empty(t, on.Listener)
		assert.True(t, on.Notify)
	})

	t.Run("field order is preserved", func(t *testing.T) {
		defs, err := parse(t, `
class "c" {
  field "z" {}
  field "a" {}
  field "m" {}
}
`)
		require.NoError(t, err)
		require.Len(t, defs[0].Fields, 3)
		assert.Equal(t, "z", defs[0].Fields[0].Name)
		assert.Equal(t, "a", defs[0].Fields[1].Name)
		assert.Equal(t, "m", defs[0].Fields[2].Name)
	})

	t.Run("read-only field with listener is rejected at parse time", func(t *testing.T) {
		_, err := parse(t, `
class "car" {
  field "brand" {
    read_only = true
    listener  = "on_brand"
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Read-only field with listener")
	})

	t.Run("duplicate field is rejected", func(t *testing.T) {
		_, err := parse(t, `
class "car" {
  field "speed" {}
  field "speed" {}
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Duplicate field definition")
	})

	t.Run("duplicate class is rejected", func(t *testing.T) {
		_, err := parse(t, `
class "car" {}
class "car" {}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Duplicate class definition")
	})

	t.Run("invalid type keyword", func(t *testing.T) {
		_, err := parse(t, `
class "car" {
  field "speed" {
    type = velocity
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unsupported type")
	})

	t.Run("invalid listener value", func(t *testing.T) {
		_, err := parse(t, `
class "car" {
  field "speed" {
    listener = 42
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid listener")
	})
}

func TestClassDefinitionBuild(t *testing.T) {
	noop := func(*class.Instance, string, cty.Value, cty.Value) error { return nil }

	t.Run("builds the full layout", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  save_args = true

  field "brand" {
    read_only = true
  }
  field "speed" {
    default    = 0
    listener   = "on_speed"
    auto_dirty = true
  }
}
`)
		require.NoError(t, err)

		c, err := defs[0].Build(context.Background(), map[string]class.Listener{"on_speed": noop})
		require.NoError(t, err)
		assert.Equal(t, []string{"_args", "_brand", "_dirty", "_speed"}, c.Layout().Slots())
		assert.True(t, c.Layout().Frozen())

		brand, ok := c.Accessor("brand")
		require.True(t, ok)
		assert.True(t, brand.ReadOnly())
	})

	t.Run("manifest default feeds the getter", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  field "speed" {
    default = 0
  }
}
`)
		require.NoError(t, err)

		c, err := defs[0].Build(context.Background(), nil)
		require.NoError(t, err)

		in := c.New()
		v, err := in.Get("speed")
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.Zero))
	})

	t.Run("generic listener resolves to on_changed", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  field "on" {
    listener = true
  }
}
`)
		require.NoError(t, err)

		var fired bool
		listeners := map[string]class.Listener{
			class.DefaultListener: func(*class.Instance, string, cty.Value, cty.Value) error {
				fired = true
				return nil
			},
		}
		c, err := defs[0].Build(context.Background(), listeners)
		require.NoError(t, err)

		in := c.New()
		require.NoError(t, in.Set("on", cty.True))
		assert.True(t, fired)
	})

	t.Run("unknown listener fails at build time", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  field "speed" {
    listener = "on_speed"
  }
}
`)
		require.NoError(t, err)

		_, err = defs[0].Build(context.Background(), nil)
		var cfgErr *class.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("class auto_dirty applies to every field", func(t *testing.T) {
		defs, err := parse(t, `
class "car" {
  auto_dirty = true

  field "speed" {}
}
`)
		require.NoError(t, err)

		c, err := defs[0].Build(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"_dirty", "_speed"}, c.Layout().Slots())

		in := c.New()
		require.NoError(t, in.Set("speed", cty.NumberIntVal(3)))
		assert.True(t, in.Dirty())
	})
}
