package luastep

import (
	"path/filepath"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/stepconfig/internal/resolve"
)

// installSearcher replaces the stock package.path searcher, so every
// module reached through require or import runs in its own environment
// with _NAME, _PACKAGE and a bound import.
func installSearcher(l *lua.State) {
	l.Global("package")
	l.Field(-1, "searchers")
	l.PushGoFunction(searchModule)
	l.RawSetInt(-2, 2)
	l.Pop(2)
}

// searchModule finds name on package.path. It returns a loader and the
// file name, or a "no file" message when nothing matches.
func searchModule(l *lua.State) int {
	name := lua.CheckString(l, 1)

	l.Global("package")
	l.Field(-1, "searchpath")
	l.PushString(name)
	l.Field(-3, "path")
	l.Call(2, 2)
	file, ok := l.ToString(-2)
	if !ok || l.IsNil(-2) {
		return 1
	}

	if err := lua.LoadFile(l, file, ""); err != nil {
		msg, _ := l.ToString(-1)
		lua.Errorf(l, "error loading module '%s' from file '%s':\n\t%s", name, file, msg)
		return 0
	}
	newEnvironment(l, name, modulePackage(name, file))
	l.PushValue(-1)
	lua.SetUpValue(l, -3, 1)

	// upvalues: chunk, env
	l.PushGoClosure(runModule, 2)
	l.PushString(file)
	return 2
}

// runModule is the loader handed to require. The environment is stored in
// package.loaded before the chunk runs, so cyclic imports see the partial
// module. A chunk that returns a value replaces it; a failing chunk leaves
// no entry behind.
func runModule(l *lua.State) int {
	name := lua.CheckString(l, 1)

	l.Field(lua.RegistryIndex, "_LOADED")
	l.PushValue(lua.UpValueIndex(2))
	l.SetField(-2, name)
	l.Pop(1)

	l.PushValue(lua.UpValueIndex(1))
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		l.Field(lua.RegistryIndex, "_LOADED")
		l.PushNil()
		l.SetField(-2, name)
		l.Pop(1)
		l.Error()
		return 0
	}
	if l.IsNil(-1) {
		l.Pop(1)
		l.PushValue(lua.UpValueIndex(2))
	}
	return 1
}

// modulePackage is the package a module's relative imports resolve
// against. An init.lua file is the package itself.
func modulePackage(name, file string) string {
	if filepath.Base(file) == "init.lua" {
		return name
	}
	return resolve.PackageOf(name)
}
