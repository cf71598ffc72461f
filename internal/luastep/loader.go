package luastep

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/resolve"
	"github.com/specialistvlad/stepconfig/internal/unit"
)

// envRegistryKey is the Lua registry slot that keeps the step's
// environment table reachable from Go.
const envRegistryKey = "stepconfig.env"

// Loader is the Lua implementation of unit.Loader.
type Loader struct{}

// NewLoader creates a new Lua step loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements unit.Loader.
func (*Loader) Extensions() []string {
	return []string{".lua"}
}

// Unit is an executed Lua step. Bindings are read from its environment
// table without falling back to the shared globals.
type Unit struct {
	id    *resolve.Identity
	state *lua.State
}

// Identity implements unit.Unit.
func (u *Unit) Identity() *resolve.Identity {
	return u.id
}

// Lookup implements unit.Unit. A binding holding nil is reported as
// missing, since Lua cannot tell the two apart.
func (u *Unit) Lookup(name string) (any, bool) {
	l := u.state
	l.Field(lua.RegistryIndex, envRegistryKey)
	defer l.Pop(2)

	l.PushString(name)
	l.RawGet(-2)
	if l.IsNil(-1) {
		return nil, false
	}
	return toGo(l, -1, 0), true
}

// Load implements unit.Loader. It compiles the file, binds the chunk to a
// fresh environment, registers the unit and runs the chunk once.
func (ld *Loader) Load(ctx context.Context, id *resolve.Identity, reg *unit.Registry, sp *resolve.SearchPath) (unit.Unit, error) {
	logger := ctxlog.FromContext(ctx).With("loader", "lua", "module", id.Module)

	l := lua.NewState()
	lua.OpenLibraries(l)
	ld.extendPackagePath(l, sp.Roots())
	installSearcher(l)

	if err := lua.LoadFile(l, id.Path, ""); err != nil {
		msg, _ := l.ToString(-1)
		return nil, fmt.Errorf("%w: could not load module from %s: %w: %s", bridgeerr.ErrLoad, id.Path, err, msg)
	}
	logger.Debug("Lua chunk compiled.")

	newEnvironment(l, id.Module, id.Package)

	// registry[envRegistryKey] = env
	l.PushValue(-1)
	l.SetField(lua.RegistryIndex, envRegistryKey)

	// package.loaded[module] = env
	l.Global("package")
	l.Field(-1, "loaded")
	l.PushValue(-3)
	l.SetField(-2, id.Module)
	l.Pop(2)

	// Pops env and installs it as the chunk's _ENV.
	if _, ok := lua.SetUpValue(l, -2, 1); !ok {
		l.Pop(1)
		return nil, fmt.Errorf("%w: %s: chunk has no environment upvalue", bridgeerr.ErrLoad, id.Path)
	}

	u := &Unit{id: id, state: l}
	reg.Register(id.Module, u)

	if err := l.ProtectedCall(0, 0, 0); err != nil {
		reg.Remove(id.Module)
		return nil, fmt.Errorf("%w: error executing %s: %w", bridgeerr.ErrLoad, id.Path, err)
	}
	logger.Debug("Lua chunk executed.")
	return u, nil
}

// extendPackagePath puts every search root in front of package.path.
func (*Loader) extendPackagePath(l *lua.State, roots []string) {
	l.Global("package")
	l.Field(-1, "path")
	current, _ := l.ToString(-1)
	l.Pop(1)
	l.PushString(packagePath(roots, string(filepath.Separator), current))
	l.SetField(-2, "path")
	l.Pop(1)
}

// newEnvironment pushes a module environment: reads fall through to the
// globals, writes stay local.
func newEnvironment(l *lua.State, module, pkg string) {
	l.NewTable()

	l.NewTable()
	l.PushGlobalTable()
	l.SetField(-2, "__index")
	l.SetMetaTable(-2)

	l.PushString(module)
	l.SetField(-2, "_NAME")
	l.PushString(pkg)
	l.SetField(-2, "_PACKAGE")
	l.PushGoFunction(importFunction(pkg))
	l.SetField(-2, "import")
}

// importFunction returns the import helper bound to pkg. It resolves the
// name and delegates to require, so package.loaded is shared.
func importFunction(pkg string) lua.Function {
	return func(l *lua.State) int {
		name, err := absoluteName(lua.CheckString(l, 1), pkg)
		if err != nil {
			lua.Errorf(l, "%s", err.Error())
			return 0
		}
		l.Global("require")
		l.PushString(name)
		l.Call(1, 1)
		return 1
	}
}
