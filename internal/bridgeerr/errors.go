// Package bridgeerr defines the error kinds a bridge invocation can fail
// with. Each stage wraps its underlying cause with exactly one kind, so
// callers classify failures with errors.Is.
package bridgeerr

import "errors"

var (
	// ErrUsage reports a missing command-line argument.
	ErrUsage = errors.New("usage error")
	// ErrResolution reports a target path that cannot be resolved or does
	// not live under a "steps" directory.
	ErrResolution = errors.New("resolution error")
	// ErrLoad reports a step file that could not be parsed or whose
	// top-level code failed.
	ErrLoad = errors.New("load error")
	// ErrConfigMissing reports a loaded step without a config binding.
	ErrConfigMissing = errors.New("config missing")
	// ErrSerialization reports a config value with no JSON form.
	ErrSerialization = errors.New("serialization error")
	// ErrTransportConfig reports a missing or malformed channel descriptor.
	ErrTransportConfig = errors.New("transport config error")
)

var kinds = []error{
	ErrUsage,
	ErrResolution,
	ErrLoad,
	ErrConfigMissing,
	ErrSerialization,
	ErrTransportConfig,
}

// KindOf returns the kind err was wrapped with, or nil if it carries none.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
