package pipeline

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

// TestRunSingleFileSummary exercises scenario S1 from the spec: a single
// hello.py with one top-level function.
func TestRunSingleFileSummary(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hello.py": "def greet():\n    return \"hi\"\n",
	})

	cfg := config.Default()
	cfg.TargetPath = root
	cfg.Output = filepath.Join(root, "out.md")

	require.NoError(t, Run(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "hello.py")
	assert.Contains(t, out, "Contains 1 function")
}

// TestRunExcludesConfiguredPatterns exercises scenario S2: a sibling
// tests/ directory excluded via exclude_paths must not appear in output.
func TestRunExcludesConfiguredPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.js": "class A {}\nfunction b(){}\n",
		"tests/x.js": "function shouldNotAppear(){}\n",
	})

	cfg := config.Default()
	cfg.TargetPath = root
	cfg.Output = filepath.Join(root, "out.md")
	cfg.ExcludePaths = []string{"**/tests/**"}

	require.NoError(t, Run(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "src/app.js")
	assert.NotContains(t, out, "tests/x.js")
	assert.NotContains(t, out, "shouldNotAppear")
}

// TestRunIsIdempotent exercises spec invariant 7: rerunning the pipeline
// over an unchanged tree yields a byte-identical artifact.
func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go": "package a\n\nfunc F() {}\n",
		"b.go": "package a\n\nfunc G() {}\n",
	})

	cfg := config.Default()
	cfg.TargetPath = root
	cfg.Output = filepath.Join(root, "out.md")

	require.NoError(t, Run(context.Background(), cfg, nil))
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), cfg, nil))
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
