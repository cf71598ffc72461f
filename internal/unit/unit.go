package unit

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepconfig/internal/resolve"
)

// Unit is an executed step file.
type Unit interface {
	// Identity returns where the unit was loaded from and under which name.
	Identity() *resolve.Identity
	// Lookup returns the top-level binding called name as a plain Go value.
	Lookup(name string) (any, bool)
}

// Loader executes step files of one or more formats.
type Loader interface {
	// Extensions lists the file extensions, with leading dot, the loader
	// handles.
	Extensions() []string
	// Load parses and executes the file at id.Path exactly once. The
	// returned unit must already be present in reg under id.Module. sp
	// holds the lookup roots for references to other modules.
	Load(ctx context.Context, id *resolve.Identity, reg *Registry, sp *resolve.SearchPath) (Unit, error)
}

// Opaque stands in for a step value that has no JSON form, such as a
// function. It survives extraction but fails serialization.
type Opaque struct {
	Kind string
}

// MarshalJSON always fails.
func (o Opaque) MarshalJSON() ([]byte, error) {
	return nil, fmt.Errorf("value of type %s is not JSON serializable", o.Kind)
}

func (o Opaque) String() string {
	return "<" + o.Kind + ">"
}
