package unit

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/resolve"
)

// Dispatcher routes a resolved step to the loader registered for its file
// extension.
type Dispatcher struct {
	loaders  map[string]Loader
	registry *Registry
	search   *resolve.SearchPath
}

// NewDispatcher builds a dispatcher over loaders. A later loader claiming
// an extension already taken panics, since that is a wiring mistake.
func NewDispatcher(reg *Registry, sp *resolve.SearchPath, loaders ...Loader) *Dispatcher {
	d := &Dispatcher{
		loaders:  make(map[string]Loader),
		registry: reg,
		search:   sp,
	}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			ext = strings.ToLower(ext)
			if _, dup := d.loaders[ext]; dup {
				panic(fmt.Sprintf("unit: extension %q registered twice", ext))
			}
			d.loaders[ext] = l
		}
	}
	return d
}

// Extensions returns the supported extensions in sorted order.
func (d *Dispatcher) Extensions() []string {
	exts := make([]string, 0, len(d.loaders))
	for ext := range d.loaders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load executes the step described by id. A module already in the
// registry is returned as is and not executed again. Errors are wrapped
// with bridgeerr.ErrLoad unless the loader already classified them.
func (d *Dispatcher) Load(ctx context.Context, id *resolve.Identity) (Unit, error) {
	logger := ctxlog.FromContext(ctx)

	if u, ok := d.registry.Get(id.Module); ok {
		logger.Debug("Step unit already loaded.", "module", id.Module)
		return u, nil
	}

	l, ok := d.loaders[strings.ToLower(id.Ext)]
	if !ok {
		return nil, fmt.Errorf("%w: no loader for extension %q of %s (supported: %s)",
			bridgeerr.ErrLoad, id.Ext, id.Path, strings.Join(d.Extensions(), ", "))
	}
	logger.Debug("Loader selected.", "ext", id.Ext, "module", id.Module)

	u, err := l.Load(ctx, id, d.registry, d.search)
	if err != nil {
		if bridgeerr.KindOf(err) == nil {
			err = fmt.Errorf("%w: %s: %w", bridgeerr.ErrLoad, id.Path, err)
		}
		return nil, err
	}
	logger.Debug("Step unit loaded.", "module", id.Module, "registered_units", d.registry.Len())
	return u, nil
}
