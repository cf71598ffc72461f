// Package unit defines the loaded form of a step file and the glue that
// picks a format-specific loader for it.
//
// A Unit is the result of running a step file's top-level code once. Its
// bindings are read by name; the bridge only ever asks for "config". The
// Registry is the invocation-local table of units by module identity. A
// loader enters its unit there before executing any step code, so a step
// that requires itself (directly or through a cycle) sees the partially
// initialised unit instead of loading a second copy.
package unit
