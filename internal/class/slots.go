package class

// Reserved storage-slot identifiers. DirtySlot backs the auto-dirty flag and
// is declared at most once per class regardless of how many fields opt in.
// ArgsSlot holds the ordered tuple of constructor arguments when a class asks
// for them to be saved.
const (
	DirtySlot = "_dirty"
	ArgsSlot  = "_args"
)

// DefaultListener is the callback name used when a field requests change
// notification without naming a specific callback.
const DefaultListener = "on_changed"

// Slot returns the private storage-slot identifier backing a public field name.
func Slot(name string) string { return "_" + name }
