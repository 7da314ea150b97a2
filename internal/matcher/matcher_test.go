package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDirDoubleStarSuffix(t *testing.T) {
	assert.True(t, Match("node_modules/**", "node_modules/foo/bar.js"))
	assert.True(t, Match("node_modules/**", "node_modules"))
	assert.False(t, Match("node_modules/**", "src/node_modules_helper.go"))
}

func TestMatchBarePatternAnywhere(t *testing.T) {
	assert.True(t, Match("*.pyc", "a/b/c.pyc"))
	assert.True(t, Match(".DS_Store", "nested/dir/.DS_Store"))
	assert.False(t, Match(".DS_Store", "nested/dir/.DS_Storex"))
}

func TestMatchIsDirTrailingSlash(t *testing.T) {
	assert.True(t, MatchIsDir("build/", "build", true))
	assert.False(t, MatchIsDir("build/", "build", false))
}

func TestAnyMatch(t *testing.T) {
	patterns := []string{"*.log", "vendor/**"}
	assert.True(t, AnyMatch(patterns, "debug.log"))
	assert.True(t, AnyMatch(patterns, "vendor/pkg/main.go"))
	assert.False(t, AnyMatch(patterns, "main.go"))
}

func TestMatchesAncestor(t *testing.T) {
	patterns := []string{"vendor/**"}
	assert.True(t, MatchesAncestor(patterns, "vendor/pkg/sub/file.go"))
	assert.False(t, MatchesAncestor(patterns, "src/main.go"))
}

func TestNormalizeStripsDotSlash(t *testing.T) {
	assert.Equal(t, "a/b.go", Normalize("./a/b.go"))
	assert.Equal(t, "a/b.go", Normalize("a/b.go"))
}
