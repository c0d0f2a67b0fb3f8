package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/propset/internal/builder"
	"github.com/vk/propset/internal/class"
	"github.com/zclconf/go-cty/cty"
)

func TestOpen(t *testing.T) {
	t.Run("binds the alias into the namespace", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		bound, ok := ns.Bound("prop")
		require.True(t, ok)
		assert.Same(t, b, bound)
	})

	t.Run("nil namespace", func(t *testing.T) {
		_, err := builder.Open(nil, "prop")
		var useErr *class.UsageError
		require.ErrorAs(t, err, &useErr)
	})

	t.Run("empty alias", func(t *testing.T) {
		_, err := builder.Open(class.NewNamespace(), "")
		var cfgErr *class.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestProp(t *testing.T) {
	t.Run("manifest follows declaration order", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "brand"}))
		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))
		require.NoError(t, b.Prop(builder.Field{Name: "on"}))

		assert.Equal(t, []string{"_brand", "_speed", "_on"}, b.Manifest())
	})

	t.Run("dirty slot is reserved once, before the first auto-dirty field", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "brand"}))
		require.NoError(t, b.Prop(builder.Field{Name: "speed", AutoDirty: true}))
		require.NoError(t, b.Prop(builder.Field{Name: "on", AutoDirty: true}))

		assert.Equal(t, []string{"_brand", "_dirty", "_speed", "_on"}, b.Manifest())
	})

	t.Run("session-wide auto-dirty policy", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop", builder.WithAutoDirty(true))
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))
		assert.Equal(t, []string{"_dirty", "_speed"}, b.Manifest())
	})

	t.Run("accessor is installed immediately", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "speed", Doc: "km/h"}))
		acc, ok := ns.Accessor("speed")
		require.True(t, ok)
		assert.Equal(t, "_speed", acc.StorageSlot())
		assert.Equal(t, "km/h", acc.Doc())
	})

	t.Run("read-only with listener fails the declaration", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		err = b.Prop(builder.Field{Name: "brand", ReadOnly: true, Listener: "on_brand"})
		var cfgErr *class.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Empty(t, b.Manifest(), "failed declaration must not touch the manifest")
	})

	t.Run("read-only with generic notify fails too", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		err = b.Prop(builder.Field{Name: "brand", ReadOnly: true, Notify: true})
		var cfgErr *class.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("duplicate field in one session", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))
		err = b.Prop(builder.Field{Name: "speed"})
		var cfgErr *class.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("notify resolves to the generic listener name", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)

		require.NoError(t, b.Prop(builder.Field{Name: "speed", Notify: true}))
		acc, ok := ns.Accessor("speed")
		require.True(t, ok)
		assert.Equal(t, class.DefaultListener, acc.ListenerName())
	})

	t.Run("declaring on a zero builder is a usage error", func(t *testing.T) {
		var b builder.Builder
		err := b.Prop(builder.Field{Name: "speed"})
		var useErr *class.UsageError
		require.ErrorAs(t, err, &useErr)
	})
}

func TestClose(t *testing.T) {
	t.Run("merges the manifest and removes the alias", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)
		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))

		require.NoError(t, b.Close())

		_, stillBound := ns.Bound("prop")
		assert.False(t, stillBound, "the transient alias must not survive the scope")
		require.NotNil(t, ns.Layout())
		assert.Equal(t, []string{"_speed"}, ns.Layout().Slots())
	})

	t.Run("extends a mutable prior layout", func(t *testing.T) {
		ns := class.NewNamespace()
		require.NoError(t, ns.MergeLayout([]string{"_args"}))

		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)
		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))
		require.NoError(t, b.Close())

		assert.Equal(t, []string{"_args", "_speed"}, ns.Layout().Slots())
	})

	t.Run("replaces a frozen prior layout with the concatenation", func(t *testing.T) {
		ns := class.NewNamespace()
		prior, err := class.NewLayout("_id")
		require.NoError(t, err)
		prior.Freeze()
		ns.SetLayout(prior)

		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)
		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))
		require.NoError(t, b.Close())

		assert.Equal(t, []string{"_id", "_speed"}, ns.Layout().Slots())
	})

	t.Run("released builder fails fast", func(t *testing.T) {
		ns := class.NewNamespace()
		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)
		require.NoError(t, b.Close())

		var useErr *class.UsageError
		require.ErrorAs(t, b.Prop(builder.Field{Name: "speed"}), &useErr)
		require.ErrorAs(t, b.Close(), &useErr)
	})

	t.Run("alias is removed even when the merge fails", func(t *testing.T) {
		ns := class.NewNamespace()
		require.NoError(t, ns.MergeLayout([]string{"_speed"}))

		b, err := builder.Open(ns, "prop")
		require.NoError(t, err)
		require.NoError(t, b.Prop(builder.Field{Name: "speed"}))

		var cfgErr *class.ConfigError
		require.ErrorAs(t, b.Close(), &cfgErr)
		_, stillBound := ns.Bound("prop")
		assert.False(t, stillBound)
	})
}

// TestCarScenario exercises the full declaration-to-instance flow: a car with
// a read-only brand, an observed speed, and an observed power switch.
func TestCarScenario(t *testing.T) {
	type call struct {
		listener string
		slot     string
		old, new cty.Value
	}
	var calls []call
	record := func(name string) class.Listener {
		return func(self *class.Instance, slot string, old, new cty.Value) error {
			calls = append(calls, call{listener: name, slot: slot, old: old, new: new})
			return nil
		}
	}

	ns := class.NewNamespace()
	ns.BindListener("on_speed", record("on_speed"))
	ns.BindListener("on_power", record("on_power"))

	b, err := builder.Open(ns, "prop")
	require.NoError(t, err)
	require.NoError(t, b.Prop(builder.Field{Name: "brand", ReadOnly: true}))
	require.NoError(t, b.Prop(builder.Field{
		Name:     "speed",
		Listener: "on_speed",
		Default:  func(*class.Instance) (cty.Value, error) { return cty.Zero, nil },
	}))
	require.NoError(t, b.Prop(builder.Field{
		Name:     "on",
		Listener: "on_power",
		Default:  func(*class.Instance) (cty.Value, error) { return cty.False, nil },
	}))
	require.NoError(t, b.Close())

	car, err := class.Finalize("car", "", ns)
	require.NoError(t, err)
	assert.Equal(t, []string{"_brand", "_speed", "_on"}, car.Layout().Slots())

	in := car.New()
	require.NoError(t, in.SetSlot("_brand", cty.StringVal("Ford")))

	// Brand reads back and cannot be reassigned.
	brand, err := in.Get("brand")
	require.NoError(t, err)
	assert.True(t, brand.RawEquals(cty.StringVal("Ford")))
	var useErr *class.UsageError
	require.ErrorAs(t, in.Set("brand", cty.StringVal("Audi")), &useErr)

	// First speed write: old is the unset sentinel, not the default.
	require.NoError(t, in.Set("speed", cty.NumberIntVal(50)))
	require.Len(t, calls, 1)
	assert.Equal(t, "on_speed", calls[0].listener)
	assert.Equal(t, "_speed", calls[0].slot)
	assert.True(t, calls[0].old.IsNull())
	assert.True(t, calls[0].new.RawEquals(cty.NumberIntVal(50)))

	// Power toggle fires its own listener.
	require.NoError(t, in.Set("on", cty.True))
	require.Len(t, calls, 2)
	assert.Equal(t, "on_power", calls[1].listener)
	assert.True(t, calls[1].old.IsNull())
	assert.True(t, calls[1].new.RawEquals(cty.True))

	// Same-value write is a no-op.
	require.NoError(t, in.Set("speed", cty.NumberIntVal(50)))
	assert.Len(t, calls, 2)

	// Undeclared attribute assignment is a field-injection error.
	var cfgErr *class.ConfigError
	err = in.Set("model", cty.NumberIntVal(2020))
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "model")
}
