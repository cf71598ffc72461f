package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/testutil"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tree := testutil.WriteTree(t, map[string]string{
		"project/steps/foo/bar.lua":        "config = {}",
		"project/steps/top.hcl":            "config = {}",
		"project/steps/send.step.lua":      "config = {}",
		"project/steps/a/b/c/deep.lua":     "config = {}",
		"project/steps/noext":              "config = {}",
		"project/steps/nested/steps/x.lua": "config = {}",
	})

	testCases := []struct {
		name        string
		file        string
		wantModule  string
		wantPackage string
		wantExt     string
		wantRoot    string
	}{
		{
			name:        "nested file",
			file:        "project/steps/foo/bar.lua",
			wantModule:  "project.steps.foo.bar",
			wantPackage: "project.steps.foo",
			wantExt:     ".lua",
			wantRoot:    "project",
		},
		{
			name:        "file directly under steps",
			file:        "project/steps/top.hcl",
			wantModule:  "project.steps.top",
			wantPackage: "project.steps",
			wantExt:     ".hcl",
			wantRoot:    "project",
		},
		{
			name:        "only the last extension is stripped",
			file:        "project/steps/send.step.lua",
			wantModule:  "project.steps.send.step",
			wantPackage: "project.steps.send",
			wantExt:     ".lua",
			wantRoot:    "project",
		},
		{
			name:        "deep file",
			file:        "project/steps/a/b/c/deep.lua",
			wantModule:  "project.steps.a.b.c.deep",
			wantPackage: "project.steps.a.b.c",
			wantExt:     ".lua",
			wantRoot:    "project",
		},
		{
			name:        "no extension",
			file:        "project/steps/noext",
			wantModule:  "project.steps.noext",
			wantPackage: "project.steps",
			wantExt:     "",
			wantRoot:    "project",
		},
		{
			name:        "nearest steps directory wins",
			file:        "project/steps/nested/steps/x.lua",
			wantModule:  "nested.steps.x",
			wantPackage: "nested.steps",
			wantExt:     ".lua",
			wantRoot:    "project/steps/nested",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sp := NewSearchPath()
			id, err := Resolve(context.Background(), tree.Path(tc.file), sp)
			require.NoError(t, err)

			require.Equal(t, tree.Path(tc.file), id.Path)
			require.Equal(t, tc.wantModule, id.Module)
			require.Equal(t, tc.wantPackage, id.Package)
			require.Equal(t, tc.wantExt, id.Ext)
			require.Equal(t, tree.Path(tc.wantRoot), id.ProjectRoot)
			require.Equal(t, filepath.Join(id.ProjectRoot, StepsDirName), id.StepsDir)
			require.Equal(t, filepath.Dir(id.ProjectRoot), id.ProjectParent)
			require.Equal(t, []string{id.ProjectParent}, sp.Roots())
		})
	}
}

func TestResolve_RelativePath(t *testing.T) {
	// Changes the working directory, so it must not run in parallel.
	tree := testutil.WriteTree(t, map[string]string{
		"project/steps/foo/bar.lua": "config = {}",
	})
	t.Chdir(tree.Path("project"))

	id, err := Resolve(context.Background(), filepath.FromSlash("steps/foo/bar.lua"), NewSearchPath())
	require.NoError(t, err)
	require.Equal(t, "project.steps.foo.bar", id.Module)
	require.Equal(t, tree.Path("project/steps/foo/bar.lua"), id.Path)
}

func TestResolve_Symlink(t *testing.T) {
	t.Parallel()

	tree := testutil.WriteTree(t, map[string]string{
		"project/steps/real.lua": "config = {}",
	})
	link := tree.Path("elsewhere/link.lua")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	if err := os.Symlink(tree.Path("project/steps/real.lua"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	id, err := Resolve(context.Background(), link, NewSearchPath())
	require.NoError(t, err)
	require.Equal(t, "project.steps.real", id.Module)
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tree := testutil.WriteTree(t, map[string]string{
		"project/src/handler.lua": "config = {}",
		"project/steps/dir/x.lua": "config = {}",
	})

	testCases := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "empty path", path: "", wantMsg: "empty path"},
		{name: "missing file", path: tree.Path("project/steps/missing.lua"), wantMsg: "missing.lua"},
		{name: "no steps ancestor", path: tree.Path("project/src/handler.lua"), wantMsg: `could not find "steps" directory`},
		{name: "directory", path: tree.Path("project/steps/dir"), wantMsg: "is a directory"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sp := NewSearchPath()
			id, err := Resolve(context.Background(), tc.path, sp)
			require.Nil(t, id)
			require.ErrorIs(t, err, bridgeerr.ErrResolution)
			require.Contains(t, err.Error(), tc.wantMsg)
			require.Empty(t, sp.Roots(), "a failed resolution must not touch the search path")
		})
	}
}

func TestResolve_SearchPathIsIdempotent(t *testing.T) {
	t.Parallel()

	tree := testutil.WriteTree(t, map[string]string{
		"project/steps/a.lua": "config = {}",
		"project/steps/b.lua": "config = {}",
	})

	sp := NewSearchPath("/opt/shared")
	_, err := Resolve(context.Background(), tree.Path("project/steps/a.lua"), sp)
	require.NoError(t, err)
	_, err = Resolve(context.Background(), tree.Path("project/steps/b.lua"), sp)
	require.NoError(t, err)

	require.Equal(t, []string{tree.Root, "/opt/shared"}, sp.Roots())
}

func TestPackageOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a.b", PackageOf("a.b.c"))
	require.Equal(t, "a", PackageOf("a.b"))
	require.Equal(t, "", PackageOf("a"))
}

func TestModuleName_Property(t *testing.T) {
	t.Parallel()

	segment := rapid.StringMatching(`[a-z][a-z0-9_]{0,7}`)

	rapid.Check(t, func(rt *rapid.T) {
		dirs := rapid.SliceOfN(segment, 0, 5).Draw(rt, "dirs")
		file := segment.Draw(rt, "file")
		ext := rapid.SampledFrom([]string{".lua", ".hcl", ".py", ""}).Draw(rt, "ext")

		root := filepath.FromSlash("/srv")
		components := append([]string{"project", StepsDirName}, dirs...)
		components = append(components, file)

		path := filepath.Join(append([]string{root}, components...)...) + ext

		module, err := moduleName(root, path)
		if err != nil {
			rt.Fatalf("moduleName(%q): %v", path, err)
		}
		got := strings.Split(module, ".")
		if len(got) != len(components) {
			rt.Fatalf("module %q has %d segments, want %d", module, len(got), len(components))
		}
		for i := range got {
			if got[i] != components[i] {
				rt.Fatalf("segment %d = %q, want %q", i, got[i], components[i])
			}
		}
	})
}

func TestModuleName_OutsideRoot(t *testing.T) {
	t.Parallel()

	_, err := moduleName(filepath.FromSlash("/srv/a"), filepath.FromSlash("/srv/b/steps/x.lua"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not under")
}
