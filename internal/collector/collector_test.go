package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeconcat/codeconcat/internal/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestCollectExcludesDefaultPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":              "package main\n",
		"node_modules/pkg.js":  "module.exports = {}\n",
		".git/HEAD":            "ref: refs/heads/main\n",
		"build/output.bin":     "binary",
	})

	cfg := config.Default()
	cfg.TargetPath = root
	c := New(cfg, nil)

	files, err := c.Collect(context.Background())
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "main.go")
	assert.NotContains(t, paths, "node_modules/pkg.js")
	assert.NotContains(t, paths, ".git/HEAD")
}

func TestCollectHonorsConfigExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.js":      "class A {}\n",
		"tests/x.js":      "function shouldSkip(){}\n",
	})

	cfg := config.Default()
	cfg.TargetPath = root
	cfg.ExcludePaths = []string{"**/tests/**"}
	c := New(cfg, nil)

	files, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/app.js", files[0].Path)
}

func TestCollectOrderIsDeterministicAcrossWorkerCounts(t *testing.T) {
	root := t.TempDir()
	tree := map[string]string{}
	for i := 0; i < 20; i++ {
		tree[filepath.Join("pkg", "file"+string(rune('a'+i))+".py")] = "x = 1\n"
	}
	writeTree(t, root, tree)

	var firstOrder []string
	for _, workers := range []int{1, 8} {
		cfg := config.Default()
		cfg.TargetPath = root
		cfg.MaxWorkers = workers
		c := New(cfg, nil)
		files, err := c.Collect(context.Background())
		require.NoError(t, err)

		var order []string
		for _, f := range files {
			order = append(order, f.Path)
		}
		if firstOrder == nil {
			firstOrder = order
		} else {
			assert.Equal(t, firstOrder, order)
		}
	}
}

func TestCollectRejectsMissingTargetPath(t *testing.T) {
	cfg := config.Default()
	cfg.TargetPath = filepath.Join(t.TempDir(), "does-not-exist")
	c := New(cfg, nil)
	_, err := c.Collect(context.Background())
	assert.Error(t, err)
}
