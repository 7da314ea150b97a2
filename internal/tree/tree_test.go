package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSortsAndIndents(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"b.go", "a.go", "sub/z.go", "sub/a.go"} {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("package p\n"), 0o644))
	}

	out, err := Render(root, nil)
	require.NoError(t, err)

	// directories are listed (sorted) before nested entries, files sorted
	// within their own directory.
	aIdx := indexOf(out, "a.go")
	bIdx := indexOf(out, "b.go")
	subIdx := indexOf(out, "sub/")
	assert.Less(t, aIdx, bIdx)
	assert.GreaterOrEqual(t, subIdx, 0)
}

func TestRenderHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"keep.go", "vendor/skip.go"} {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	out, err := Render(root, []string{"vendor/**"})
	require.NoError(t, err)
	assert.Contains(t, out, "keep.go")
	assert.NotContains(t, out, "skip.go")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
