package writer

import (
	"fmt"
	"path"
	"strings"

	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/model"
)

// writeMarkdown renders the Markdown output: a preamble, an optional
// directory structure block, a per-file section for each annotated file
// (summary, tags, fenced processed content), then a documentation section
// (spec 4.9). When Config.MergeDocs is set, each doc file is rendered
// immediately after the code files in its own directory instead of in a
// trailing section ("merge_docs: emit doc content interleaved with code
// output", spec section 3).
func writeMarkdown(in Input) string {
	var b strings.Builder
	b.WriteString("# Repository Context (codeconcat)\n\n")
	fmt.Fprintf(&b, "**Target path:** `%s`\n\n", in.Config.TargetPath)
	fmt.Fprintf(&b, "**Files:** %d\n\n", len(in.Files))
	fmt.Fprintf(&b, "**Estimated Tokens:** %d\n\n", estimateTokens(in))

	if in.Config.IncludeDirectoryStructure && in.TreeText != "" {
		b.WriteString("## Directory Structure\n\n")
		b.WriteString("```\n")
		b.WriteString(in.TreeText)
		b.WriteString("```\n\n")
	}

	b.WriteString("## Files\n\n")
	lastInDir := map[string]int{}
	for i, f := range in.Files {
		lastInDir[path.Dir(f.Path)] = i
	}
	mergedDirs := map[string]bool{}
	var mergedDocCount int
	for i, f := range in.Files {
		writeMarkdownFile(&b, f, in.Config)
		if in.Config.MergeDocs {
			dir := path.Dir(f.Path)
			if lastInDir[dir] == i {
				mergedDirs[dir] = true
				for _, d := range docsInDir(in.Docs, dir) {
					writeMarkdownDoc(&b, d)
					mergedDocCount++
				}
			}
		}
	}

	if in.Config.MergeDocs {
		// Docs whose directory holds no code file never had a sibling
		// code section to interleave after; emit them in source order
		// without a trailing "Documentation" header so they still read
		// as part of the same file-by-file walk rather than a fourth
		// section.
		if mergedDocCount < len(in.Docs) {
			for _, d := range in.Docs {
				if !mergedDirs[path.Dir(d.Path)] {
					writeMarkdownDoc(&b, d)
				}
			}
		}
	} else if len(in.Docs) > 0 {
		b.WriteString("## Documentation\n\n")
		for _, d := range in.Docs {
			writeMarkdownDoc(&b, d)
		}
	}

	return b.String()
}

// docsInDir returns the doc records whose directory matches dir, in
// their original order.
func docsInDir(docs []model.DocRecord, dir string) []model.DocRecord {
	var out []model.DocRecord
	for _, d := range docs {
		if path.Dir(d.Path) == dir {
			out = append(out, d)
		}
	}
	return out
}

func writeMarkdownFile(b *strings.Builder, f model.FileRecord, cfg *config.Config) {
	fmt.Fprintf(b, "### `%s`\n\n", f.Path)
	fmt.Fprintf(b, "**Language:** %s\n\n", f.Language)
	if cfg.IncludeFileSummary && !cfg.DisableAnnotations {
		fmt.Fprintf(b, "**Summary:** %s\n\n", f.Summary)
	}
	if len(f.Tags) > 0 && !cfg.DisableAnnotations {
		fmt.Fprintf(b, "**Tags:** %s\n\n", strings.Join(f.Tags, ", "))
	}
	if len(f.SecurityIssues) > 0 {
		b.WriteString("**Security findings:**\n\n")
		for _, issue := range f.SecurityIssues {
			fmt.Fprintf(b, "- line %d: %s (%s)\n", issue.LineNumber, issue.IssueType, issue.Severity)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "```%s\n%s\n```\n\n", fenceLang(f.Language), processContent(f.Content, cfg))
}

func writeMarkdownDoc(b *strings.Builder, d model.DocRecord) {
	fmt.Fprintf(b, "### `%s`\n\n", d.Path)
	b.WriteString(d.Content)
	b.WriteString("\n\n")
}

// fenceLang maps the internal language tag to a Markdown code-fence token.
func fenceLang(lang string) string {
	if lang == "unknown" || lang == "doc" {
		return ""
	}
	return lang
}
