package class

// Layout is the storage-layout manifest of a class: the ordered sequence of
// storage-slot identifiers an instance is allowed to hold. A layout starts
// out mutable while the class is being declared and is frozen when the class
// is finalized; a frozen layout can no longer be extended in place, only
// replaced by a merge.
type Layout struct {
	slots  []string
	index  map[string]struct{}
	frozen bool
}

// NewLayout builds a layout from the given slot identifiers. Duplicate
// identifiers are a ConfigError.
func NewLayout(slots ...string) (*Layout, error) {
	l := &Layout{index: make(map[string]struct{}, len(slots))}
	for _, s := range slots {
		if err := l.Append(s); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds one slot identifier at the end of the layout.
func (l *Layout) Append(slot string) error {
	if l.frozen {
		return Usagef("storage layout is frozen; slot %q cannot be added", slot)
	}
	if _, dup := l.index[slot]; dup {
		return Configf("duplicate storage slot %q in layout", slot)
	}
	l.slots = append(l.slots, slot)
	l.index[slot] = struct{}{}
	return nil
}

// Freeze seals the layout against in-place extension.
func (l *Layout) Freeze() { l.frozen = true }

// Frozen reports whether the layout has been sealed.
func (l *Layout) Frozen() bool { return l.frozen }

// Contains reports whether slot is part of the layout.
func (l *Layout) Contains(slot string) bool {
	_, ok := l.index[slot]
	return ok
}

// Slots returns a copy of the slot identifiers in declaration order.
func (l *Layout) Slots() []string {
	out := make([]string, len(l.slots))
	copy(out, l.slots)
	return out
}

// Len returns the number of declared slots.
func (l *Layout) Len() int { return len(l.slots) }
