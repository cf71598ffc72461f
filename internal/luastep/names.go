package luastep

import (
	"fmt"
	"strings"
)

// absoluteName resolves a possibly relative dotted module name against
// pkg. One leading dot means pkg itself, each further dot climbs one
// level.
func absoluteName(name, pkg string) (string, error) {
	level := len(name) - len(strings.TrimLeft(name, "."))
	if level == 0 {
		if name == "" {
			return "", fmt.Errorf("empty module name")
		}
		return name, nil
	}

	rest := name[level:]
	if pkg == "" {
		return "", fmt.Errorf("relative import %q outside of a package", name)
	}
	parts := strings.Split(pkg, ".")
	if level-1 >= len(parts) {
		return "", fmt.Errorf("relative import %q goes beyond top-level package %q", name, pkg)
	}
	base := strings.Join(parts[:len(parts)-(level-1)], ".")
	if rest == "" {
		return base, nil
	}
	return base + "." + rest, nil
}

// packagePath prepends "<root>/?.lua;<root>/?/init.lua" for every root
// to current, so require maps dotted names onto the search path.
func packagePath(roots []string, sep string, current string) string {
	var b strings.Builder
	for _, root := range roots {
		root = strings.TrimRight(root, sep)
		fmt.Fprintf(&b, "%s%s?.lua;%s%s?%sinit.lua;", root, sep, root, sep, sep)
	}
	b.WriteString(current)
	return b.String()
}
