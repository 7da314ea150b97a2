package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfBuiltinExtensions(t *testing.T) {
	assert.Equal(t, "python", Of("a/b.py", nil, nil))
	assert.Equal(t, "javascript", Of("a.jsx", nil, nil))
	assert.Equal(t, "typescript", Of("a.tsx", nil, nil))
	assert.Equal(t, "go", Of("main.go", nil, nil))
	assert.Equal(t, "doc", Of("README.md", nil, nil))
	assert.Equal(t, "unknown", Of("a.bin", nil, nil))
}

func TestOfCustomMapOverridesBuiltin(t *testing.T) {
	custom := map[string]string{"py": "starlark"}
	assert.Equal(t, "starlark", Of("build.py", custom, nil))
}

func TestOfDocExtensionOverride(t *testing.T) {
	assert.Equal(t, "doc", Of("notes.adoc", nil, []string{".adoc"}))
}
