package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// pythonParser implements spec 4.4.3/4.4.4: an indentation-based state
// machine rather than the brace-counting used by the other parsers.
// class/def/async def bodies end at the first subsequent non-blank line
// whose indentation is less than or equal to the declaration's own
// indentation; decorators immediately preceding a def/class are folded
// into its start line implicitly (the declaration itself still starts at
// the def/class line, matching the other parsers' convention of pointing
// at the signature, not the decorator).
type pythonParser struct{}

var (
	pyClassRe   = regexp.MustCompile(`^class\s+(\w+)`)
	pyDefRe     = regexp.MustCompile(`^(?:async\s+)?def\s+(\w+)\s*\(`)
	pyDecoRe    = regexp.MustCompile(`^@\w`)
	pyConstRe   = regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*(?::\s*[\w.\[\], ]+)?=\s*\S`)
	pyVarRe     = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?::\s*[\w.\[\], ]+)?=\s*\S`)
	pyTripleRe  = regexp.MustCompile(`(?:'''|""")`)
)

type pyScope struct {
	indent int
}

func (pythonParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	var stack []pyScope
	inTriple := false
	tripleQuote := ""
	i := 0
	for i < len(lines) {
		raw := lines[i]

		if inTriple {
			if idx := strings.Index(raw, tripleQuote); idx >= 0 {
				inTriple = false
			}
			i++
			continue
		}

		code := stripPyComment(raw)
		trimmed := strings.TrimSpace(code)

		if trimmed == "" {
			i++
			continue
		}

		indent := leadingIndent(raw, 4)

		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		// Detect an opening triple-quote that isn't closed on the same line
		// (module/function/class docstrings and ad-hoc multi-line strings).
		if q := pyTripleRe.FindString(trimmed); q != "" {
			rest := trimmed[strings.Index(trimmed, q)+3:]
			if !strings.Contains(rest, q) {
				inTriple = true
				tripleQuote = q
			}
		}

		if pyDecoRe.MatchString(trimmed) {
			i++
			continue
		}

		if m := pyClassRe.FindStringSubmatch(trimmed); m != nil {
			end := findPyBlockEnd(lines, i, indent)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			stack = append(stack, pyScope{indent: indent})
			i++
			continue
		}

		if m := pyDefRe.FindStringSubmatch(trimmed); m != nil {
			end := findPyBlockEnd(lines, i, indent)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			stack = append(stack, pyScope{indent: indent})
			i++
			continue
		}

		if m := pyConstRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := pyVarRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}

// stripPyComment removes a trailing "#" comment, ignoring "#" characters
// that appear inside a single-line string literal.
func stripPyComment(line string) string {
	code := stripStringsAndChars(line)
	if idx := strings.Index(code, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// findPyBlockEnd scans forward from a class/def header at declIndent,
// returning the index of the last line whose indentation is greater than
// declIndent (i.e. the last line still inside the body). If the body is
// empty (e.g. a "..." stub) or the file ends immediately, the header line
// itself is returned.
func findPyBlockEnd(lines []string, headerIdx, declIndent int) int {
	last := headerIdx
	inTriple := false
	tripleQuote := ""
	for i := headerIdx + 1; i < len(lines); i++ {
		raw := lines[i]

		if inTriple {
			last = i
			if idx := strings.Index(raw, tripleQuote); idx >= 0 {
				inTriple = false
			}
			continue
		}

		trimmed := strings.TrimSpace(stripPyComment(raw))
		if trimmed == "" {
			continue
		}
		indent := leadingIndent(raw, 4)
		if indent <= declIndent {
			break
		}
		last = i
		if q := pyTripleRe.FindString(trimmed); q != "" {
			rest := trimmed[strings.Index(trimmed, q)+3:]
			if !strings.Contains(rest, q) {
				inTriple = true
				tripleQuote = q
			}
		}
	}
	return last
}
