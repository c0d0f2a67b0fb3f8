/*
Package class holds the data model of the managed-field facility: the mutable
Namespace a class is assembled in, the storage Layout manifest, the generated
Accessor pairs, the finalized Class descriptor, and the fixed-storage Instance.

The life of a class runs in one load-time pass:

 1. A Namespace is created and handed to the property builder, which installs
    one Accessor per declared field and, on release, merges its accumulated
    manifest into the namespace's Layout.

 2. Finalize consumes the namespace, freezes the layout and validates that no
    transient bindings leaked, that every accessor is backed by a declared
    slot, and that every named listener is bound. The result is an immutable
    Class.

 3. Class.New allocates instances. An instance's only legal attributes are the
    slots of the frozen layout (the injection guard); everything else fails
    fast with a ConfigError naming the offender.

Field access is synchronous and unsynchronized: concurrent writes to one
instance are the caller's responsibility to serialize.
*/
package class
