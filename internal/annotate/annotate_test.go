package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeconcat/codeconcat/internal/model"
)

func TestAnnotateSummaryOmitsZeroBuckets(t *testing.T) {
	rec := &model.FileRecord{
		Path:     "hello.py",
		Language: "python",
		Content:  "def greet():\n    return \"hi\"\n",
		Declarations: []model.Declaration{
			{Kind: model.KindFunction, Name: "greet", StartLine: 1, EndLine: 2},
		},
	}
	Annotate(rec, false)
	assert.Equal(t, "Contains 1 function", rec.Summary)
	assert.Contains(t, rec.Tags, "has_functions")
	assert.Contains(t, rec.Tags, "python")
	assert.NotContains(t, rec.Tags, "has_classes")
}

func TestAnnotateNoDeclarations(t *testing.T) {
	rec := &model.FileRecord{Path: "empty.py", Language: "python", Content: "\n"}
	Annotate(rec, false)
	assert.Equal(t, "No declarations found", rec.Summary)
}

func TestAnnotateDisabledPassesContentThrough(t *testing.T) {
	rec := &model.FileRecord{Path: "f.py", Language: "python", Content: "x = 1\n"}
	Annotate(rec, true)
	assert.Equal(t, rec.Content, rec.AnnotatedContent)
}

func TestAnnotatePluralization(t *testing.T) {
	rec := &model.FileRecord{
		Language: "go",
		Declarations: []model.Declaration{
			{Kind: model.KindFunction, Name: "a"},
			{Kind: model.KindFunction, Name: "b"},
			{Kind: model.KindClass, Name: "C"},
		},
	}
	Annotate(rec, false)
	assert.Equal(t, "Contains 2 functions, 1 class", rec.Summary)
}
