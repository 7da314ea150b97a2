package docextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeconcat/codeconcat/internal/model"
)

func TestExtractOnlyDocTaggedFiles(t *testing.T) {
	files := []model.FileRecord{
		{Path: "README.md", Language: "doc", Content: "# Title\n"},
		{Path: "main.go", Language: "go", Content: "package main\n"},
	}
	docs := Extract(files, []string{".md"})
	require.Len(t, docs, 1)
	assert.Equal(t, "README.md", docs[0].Path)
	assert.Equal(t, "md", docs[0].DocType)
}

func TestExtractEmptyWhenNoDocFiles(t *testing.T) {
	files := []model.FileRecord{{Path: "main.go", Language: "go"}}
	assert.Empty(t, Extract(files, nil))
}
