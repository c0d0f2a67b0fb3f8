package class

import "fmt"

// ConfigError reports an invalid declaration or a storage-layout violation:
// a read-only field declared with a listener, a duplicate storage slot, a
// listener name that resolves to nothing, or an assignment to an attribute
// outside the declared set.
type ConfigError struct {
	msg string
}

// Error implements the error interface.
func (e *ConfigError) Error() string { return e.msg }

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// UsageError reports misuse of the declaration machinery itself: declaring a
// field through a builder that has already been released, releasing a builder
// twice, or assigning to a field that carries no setter.
type UsageError struct {
	msg string
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.msg }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}
