// Package controls builds a registry of every controllable property a
// runtime instance exposes.
//
// Build walks the instance's three capability groups — state machines and
// their inputs, the root view model's nested containers and their typed
// fields, and the declared image assets — into a nested lookup keyed by
// control path: namespace, container name, property name. Image slots are
// addressed as imageAssets.{asset}.slot.
//
// A group the runtime rejects (runtime.ErrUnsupported, or any enumeration
// failure) is simply omitted; partial registries are valid and expected.
//
// A registry is immutable once built and therefore safe for concurrent
// lookups. It holds non-owning references into the instance's object graph:
// it must be discarded when the instance is torn down, and a reload requires
// a fresh Build — never a rebuild concurrent with in-flight dispatches.
package controls
