// Package writer implements the Writers (C9, spec section 4.9): Markdown,
// Tagged-tree (XML-style), and Key-value (JSON-style) output, sharing a
// common content-processing step.
package writer

import (
	"fmt"
	"strings"

	"github.com/codeconcat/codeconcat/internal/config"
)

// processContent applies remove_empty_lines, remove_comments, and
// show_line_numbers in that order (spec 4.9), numbering lines by their
// ORIGINAL position before any stripping.
func processContent(content string, cfg *config.Config) string {
	lines := strings.Split(content, "\n")
	type numbered struct {
		n    int
		text string
	}
	var kept []numbered
	for i, l := range lines {
		if cfg.RemoveEmptyLines && strings.TrimSpace(l) == "" {
			continue
		}
		if cfg.RemoveComments && isCommentLine(l) {
			continue
		}
		kept = append(kept, numbered{n: i + 1, text: l})
	}
	var b strings.Builder
	for idx, k := range kept {
		if cfg.ShowLineNumbers {
			fmt.Fprintf(&b, "%-4d | %s", k.n, k.text)
		} else {
			b.WriteString(k.text)
		}
		if idx < len(kept)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// isCommentLine reports whether l's trimmed form begins with a
// line-comment marker or ends with a block-comment closer (spec 4.9's
// intentionally conservative, language-agnostic heuristic).
func isCommentLine(l string) bool {
	t := strings.TrimSpace(l)
	if t == "" {
		return false
	}
	for _, prefix := range []string{"#", "//", "/*", "*", `"""`, "'''"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return strings.HasSuffix(t, "*/")
}
