package resolve

import "strings"

// StepsDirName is the directory name that marks the top of a step tree.
const StepsDirName = "steps"

// Identity is the resolved location and logical name of a step file.
type Identity struct {
	// Path is the canonical absolute path of the step file.
	Path string
	// Ext is the file extension including the leading dot, or "".
	Ext string

	StepsDir      string
	ProjectRoot   string
	ProjectParent string

	// Module is the dotted module identity, e.g. "app.steps.foo.bar".
	Module string
	// Package is Module without its last segment, or "" if Module has no dot.
	Package string
}

// Segments returns the dotted segments of the module identity.
func (id *Identity) Segments() []string {
	return strings.Split(id.Module, ".")
}

// Depth is the number of module segments, which equals the number of path
// components between the project parent and the file.
func (id *Identity) Depth() int {
	return len(id.Segments())
}

// PackageOf drops the last dotted segment of module.
func PackageOf(module string) string {
	if i := strings.LastIndex(module, "."); i >= 0 {
		return module[:i]
	}
	return ""
}
