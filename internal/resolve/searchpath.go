package resolve

import "slices"

// SearchPath is the ordered list of lookup roots loaders consult when a
// step refers to another module by name. It belongs to one invocation.
type SearchPath struct {
	roots []string
}

// NewSearchPath returns a search path seeded with roots, in order and
// without duplicates.
func NewSearchPath(roots ...string) *SearchPath {
	sp := &SearchPath{}
	for _, root := range roots {
		if !slices.Contains(sp.roots, root) {
			sp.roots = append(sp.roots, root)
		}
	}
	return sp
}

// Add puts root at the front of the search path unless it is already
// present. It reports whether the path changed.
func (sp *SearchPath) Add(root string) bool {
	if slices.Contains(sp.roots, root) {
		return false
	}
	sp.roots = slices.Insert(sp.roots, 0, root)
	return true
}

// Roots returns a copy of the lookup roots, highest priority first.
func (sp *SearchPath) Roots() []string {
	return slices.Clone(sp.roots)
}
