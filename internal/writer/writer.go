package writer

import (
	"fmt"

	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/model"
)

// Input is everything a writer needs to produce the single output artifact
// (spec 4.9: "all writers consume (annotated_files, docs, config,
// folder_tree_text)").
type Input struct {
	Files     []model.FileRecord
	Docs      []model.DocRecord
	Config    *config.Config
	TreeText  string
}

// Write dispatches to the configured format and returns the rendered
// artifact bytes (UTF-8 text in every format, spec section 6).
func Write(in Input) (string, error) {
	switch in.Config.Format {
	case config.FormatMarkdown:
		return writeMarkdown(in), nil
	case config.FormatXML:
		return writeXML(in)
	case config.FormatJSON:
		return writeJSON(in)
	default:
		return "", fmt.Errorf("writer: unsupported format %q", in.Config.Format)
	}
}

// estimateTokens is the teacher's estimateTokens heuristic (chars/4 over
// the tree text plus every file's path and content, plus every doc's
// path and content), surfaced on the top-level document model of each
// writer per SPEC_FULL.md's supplemented "token estimation" feature. No
// third-party tokenizer is wired — that remains an external collaborator
// per spec section 1 — this is ambient bookkeeping only.
func estimateTokens(in Input) int {
	total := len(in.TreeText)
	for _, f := range in.Files {
		total += len(f.Path) + len(f.Content)
	}
	for _, d := range in.Docs {
		total += len(d.Path) + len(d.Content)
	}
	return total / 4
}
