package resolve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/fsutil"
)

// Resolve canonicalises path, locates its steps directory, registers the
// project parent on sp and derives the module and package identities.
// Every failure is wrapped with bridgeerr.ErrResolution.
func Resolve(ctx context.Context, path string, sp *SearchPath) (*Identity, error) {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", bridgeerr.ErrResolution)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bridgeerr.ErrResolution, path, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bridgeerr.ErrResolution, path, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bridgeerr.ErrResolution, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", bridgeerr.ErrResolution, canonical)
	}
	logger.Debug("Step path canonicalised.", "input", path, "path", canonical)

	stepsDir, ok := fsutil.FindAncestor(canonical, StepsDirName)
	if !ok {
		return nil, fmt.Errorf("%w: could not find %q directory in path %s", bridgeerr.ErrResolution, StepsDirName, canonical)
	}
	projectRoot := filepath.Dir(stepsDir)
	projectParent := filepath.Dir(projectRoot)

	if sp != nil && sp.Add(projectParent) {
		logger.Debug("Project parent added to search path.", "root", projectParent)
	}

	module, err := moduleName(projectParent, canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bridgeerr.ErrResolution, err)
	}

	id := &Identity{
		Path:          canonical,
		Ext:           extension(filepath.Base(canonical)),
		StepsDir:      stepsDir,
		ProjectRoot:   projectRoot,
		ProjectParent: projectParent,
		Module:        module,
		Package:       PackageOf(module),
	}
	logger.Debug("Step identity resolved.", "module", id.Module, "package", id.Package)
	return id, nil
}

// moduleName joins the components of path relative to root with dots,
// after stripping the file's final extension.
func moduleName(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("%s is not under %s: %w", path, root, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s", path, root)
	}

	base := filepath.Base(rel)
	rel = strings.TrimSuffix(rel, extension(base))

	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf("empty module segment in %s", path)
		}
	}
	return strings.Join(parts, "."), nil
}

// extension returns the final suffix of a file name. A leading dot alone
// does not start a suffix, so ".env" has none while "a.step.lua" has ".lua".
func extension(base string) string {
	trimmed := strings.TrimLeft(base, ".")
	return filepath.Ext(trimmed)
}
