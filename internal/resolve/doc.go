// Package resolve turns the raw path handed over by the host into the
// identity a step unit is loaded under.
//
// A step file must live below a directory literally named "steps". The
// directory above it is the project root, and the directory above that is
// the project parent: the namespace root every module identity is relative
// to. For /srv/app/steps/foo/bar.lua the module identity is
// "app.steps.foo.bar" and the package identity is "app.steps.foo".
package resolve
