package writer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/model"
)

func sampleInput(format config.Format) Input {
	cfg := config.Default()
	cfg.Format = format
	return Input{
		Config: cfg,
		Files: []model.FileRecord{
			{
				Path:     "src/app.js",
				Language: "javascript",
				Content:  "class A {}\n",
				AnnotatedFile: model.AnnotatedFile{
					Summary: "Contains 1 class",
					Tags:    []string{"has_classes", "javascript"},
				},
			},
		},
		Docs: []model.DocRecord{
			{Path: "README.md", DocType: "md", Content: "# Title\n"},
		},
		TreeText: "src/\n    app.js\n",
	}
}

func TestWriteMarkdownIncludesFileAndDocSections(t *testing.T) {
	out, err := Write(sampleInput(config.FormatMarkdown))
	require.NoError(t, err)
	assert.Contains(t, out, "src/app.js")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "Contains 1 class")
}

func TestWriteJSONRoundTrips(t *testing.T) {
	out, err := Write(sampleInput(config.FormatJSON))
	require.NoError(t, err)

	var decoded jsonOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Code, 1)
	assert.Equal(t, "src/app.js", decoded.Code[0].FilePath)
	require.Len(t, decoded.Docs, 1)
	assert.Equal(t, "README.md", decoded.Docs[0].FilePath)
}

func TestWriteXMLWrapsContentInCDATA(t *testing.T) {
	out, err := Write(sampleInput(config.FormatXML))
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "<![CDATA["))
	assert.Contains(t, out, "<path>src/app.js</path>")
}

func TestProcessContentShowLineNumbersUsesOriginalLineNumbers(t *testing.T) {
	cfg := config.Default()
	cfg.RemoveEmptyLines = true
	cfg.ShowLineNumbers = true
	content := "first\n\nthird\n"
	out := processContent(content, cfg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1   "))
	assert.True(t, strings.HasPrefix(lines[1], "3   "))
}

func TestWriteMarkdownReportsEstimatedTokens(t *testing.T) {
	out, err := Write(sampleInput(config.FormatMarkdown))
	require.NoError(t, err)
	assert.Contains(t, out, "**Estimated Tokens:**")
}

func TestWriteJSONReportsEstimatedTokens(t *testing.T) {
	out, err := Write(sampleInput(config.FormatJSON))
	require.NoError(t, err)
	var decoded jsonOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Greater(t, decoded.EstimatedTokens, 0)
}

func TestWriteMarkdownMergeDocsInterleavesByDirectory(t *testing.T) {
	in := sampleInput(config.FormatMarkdown)
	in.Config.MergeDocs = true
	in.Docs = []model.DocRecord{
		{Path: "src/README.md", DocType: "md", Content: "# src docs\n"},
	}
	out, err := Write(in)
	require.NoError(t, err)
	assert.NotContains(t, out, "## Documentation")
	appIdx := strings.Index(out, "src/app.js")
	docIdx := strings.Index(out, "src/README.md")
	require.NotEqual(t, -1, appIdx)
	require.NotEqual(t, -1, docIdx)
	assert.Less(t, appIdx, docIdx)
}

func TestWriteMarkdownWithoutMergeDocsUsesTrailingSection(t *testing.T) {
	out, err := Write(sampleInput(config.FormatMarkdown))
	require.NoError(t, err)
	assert.Contains(t, out, "## Documentation")
}

func TestProcessContentRemoveComments(t *testing.T) {
	cfg := config.Default()
	cfg.RemoveComments = true
	content := "x = 1\n# a comment\ny = 2\n"
	out := processContent(content, cfg)
	assert.NotContains(t, out, "a comment")
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "y = 2")
}
