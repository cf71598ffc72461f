package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Tree is a temporary directory populated with step files.
type Tree struct {
	// Root is the directory every file path is relative to. For layouts
	// like "app/steps/x.lua" it is also the project parent.
	Root string
}

// WriteTree creates a temporary directory and writes files into it. Keys
// are slash-separated paths relative to the root, values are contents.
// Symlinks in the temp location are resolved so paths compare equal to
// what the resolver returns.
func WriteTree(t *testing.T, files map[string]string) *Tree {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	tree := &Tree{Root: root}
	for name, content := range files {
		tree.Write(t, name, content)
	}
	return tree
}

// Write adds or replaces one file in the tree.
func (tr *Tree) Write(t *testing.T, name, content string) {
	t.Helper()

	path := tr.Path(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// Path returns the absolute path of a slash-separated name in the tree.
func (tr *Tree) Path(name string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(name))
}
