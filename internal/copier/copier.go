// Package copier assigns constructor arguments into the fixed storage of a
// freshly created instance. It writes raw slots, deliberately bypassing the
// generated setters: construction-time assignment fires no listeners and
// marks nothing dirty.
package copier

import (
	"github.com/vk/propset/internal/class"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Arg is one named constructor argument. A []Arg preserves parameter order,
// which matters when the received arguments are saved on the instance.
type Arg struct {
	Name  string
	Value cty.Value
}

// Options controls what Copy skips and whether it records the arguments.
type Options struct {
	// SelfName is the receiver parameter to skip; it defaults to "self".
	SelfName string

	// Exclude lists further parameter names to leave out.
	Exclude []string

	// SaveArgs additionally stores the ordered tuple of copied values into
	// the reserved arguments slot.
	SaveArgs bool
}

// Copy writes each argument into the storage slot backing the field of the
// same name. The target layout must already declare every slot written; a
// write outside the layout fails with a ConfigError, the same injection
// guard that protects regular field access.
func Copy(inst *class.Instance, args []Arg, opts Options) error {
	selfName := opts.SelfName
	if selfName == "" {
		selfName = "self"
	}
	skip := make(map[string]struct{}, len(opts.Exclude))
	for _, name := range opts.Exclude {
		skip[name] = struct{}{}
	}

	var saved []cty.Value
	for _, a := range args {
		if a.Name == selfName {
			continue
		}
		if _, excluded := skip[a.Name]; excluded {
			continue
		}
		if err := inst.SetSlot(class.Slot(a.Name), a.Value); err != nil {
			return err
		}
		saved = append(saved, a.Value)
	}

	if opts.SaveArgs {
		tuple := cty.EmptyTupleVal
		if len(saved) > 0 {
			tuple = cty.TupleVal(saved)
		}
		if err := inst.SetSlot(class.ArgsSlot, tuple); err != nil {
			return err
		}
	}
	return nil
}

// FromGo builds an Arg from a native Go value, inferring the cty type the
// same way manifest defaults are handled. A nil value becomes a null.
func FromGo(name string, v any) (Arg, error) {
	if v == nil {
		return Arg{Name: name, Value: cty.NullVal(cty.DynamicPseudoType)}, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return Arg{}, class.Configf("argument %q: cannot infer a value type: %s", name, err)
	}
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return Arg{}, class.Configf("argument %q: %s", name, err)
	}
	return Arg{Name: name, Value: val}, nil
}
