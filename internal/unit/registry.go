package unit

// Registry maps module identities to units for the lifetime of one
// invocation. Loaders register a unit before running it and remove it on
// failure; the Dispatcher serves registered units without reloading them.
// Lookups made from inside a running script go through the interpreter's
// own module table (package.loaded for Lua), which the registry mirrors
// for the step itself.
//
// It is not safe for concurrent use; a bridge invocation is
// single-threaded.
type Registry struct {
	units map[string]Unit
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]Unit)}
}

// Register stores u under module, replacing any previous entry.
func (r *Registry) Register(module string, u Unit) {
	r.units[module] = u
}

// Get returns the unit registered under module.
func (r *Registry) Get(module string) (Unit, bool) {
	u, ok := r.units[module]
	return u, ok
}

// Remove drops the entry for module. Loaders call it when execution fails
// so a broken unit is never served.
func (r *Registry) Remove(module string) {
	delete(r.units, module)
}

// Len reports the number of registered units.
func (r *Registry) Len() int {
	return len(r.units)
}
