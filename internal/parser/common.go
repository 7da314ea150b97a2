package parser

import "strings"

// splitLines splits content on "\n" and trims a trailing "\r" from each
// line, tolerating CRLF input without requiring every pattern to account
// for it (spec 4.4.1).
func splitLines(content string) []string {
	raw := strings.Split(content, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// stripStringsAndChars blanks out the contents of "..." and '...' string
// and char literals on a single line (best effort, backslash-escape
// aware), so brace/paren counting on the remainder of the line ignores
// braces that merely appear inside a string. It does not attempt to
// understand raw strings, triple-quoted strings, or template literals —
// those are handled by the specific parsers that need them (e.g. the
// JS/TS template-literal tracker).
func stripStringsAndChars(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inStr := byte(0)
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inStr != 0 {
			b.WriteByte(' ')
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == inStr {
				inStr = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			inStr = c
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripLineComment removes a trailing "//"-style comment from a
// comment-and-string-stripped line (call stripStringsAndChars first so a
// "//" inside a string literal isn't mistaken for a comment start — the
// caller passes the already-stripped line back in via codeOnly, and the
// returned index is applied to the ORIGINAL line).
func stripLineComment(original, codeOnly, marker string) string {
	if idx := strings.Index(codeOnly, marker); idx >= 0 {
		return original[:idx]
	}
	return original
}

// braceScanner carries the cross-line lexical state of the brace-based
// parsers: inBlockComment tracks /* */ state across calls (one call per
// line, in order), and inTemplate tracks a JS/TS template literal that
// spans lines.
type braceScanner struct {
	inBlockComment bool
	inTemplate     bool // JS/TS backtick template literal spanning lines
}

// stripTemplateLiterals blanks out backtick-delimited template literal
// content, tracking whether a literal begun on an earlier line is still
// open (spec 4.4.12: "Template-literal state is tracked so backtick-
// delimited strings do not disturb comment/brace accounting"). Nested
// "${...}" interpolation is not specially handled — braces inside an
// interpolation are simply treated as outside the literal once a backtick
// toggles state, which is a conservative approximation line-scanning can't
// avoid without a real lexer.
func (s *braceScanner) stripTemplateLiterals(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	i := 0
	for i < len(line) {
		if s.inTemplate {
			if line[i] == '`' {
				s.inTemplate = false
				b.WriteByte(' ')
				i++
				continue
			}
			b.WriteByte(' ')
			i++
			continue
		}
		if line[i] == '`' {
			s.inTemplate = true
			b.WriteByte(' ')
			i++
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}

// codeOnly strips block comments (tracking multi-line state), then line
// comments, then string/char literals, returning the residual line that's
// safe to run brace-counting or declaration regexes against. Callers that
// need to know whether the line began inside a block comment read
// s.inBlockComment before calling.
func (s *braceScanner) codeOnly(line string, lineCommentMarkers ...string) string {
	out := s.stripBlockComments(line)
	for _, marker := range lineCommentMarkers {
		if idx := strings.Index(out, marker); idx >= 0 {
			out = out[:idx]
		}
	}
	return stripStringsAndChars(out)
}

// stripBlockComments removes /* ... */ spans from line, correctly
// continuing (or ending) a block comment that began on an earlier line.
func (s *braceScanner) stripBlockComments(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	i := 0
	for i < len(line) {
		if s.inBlockComment {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				// whole rest of line consumed by the comment
				return b.String()
			}
			i += end + 2
			s.inBlockComment = false
			continue
		}
		if i+1 < len(line) && line[i] == '/' && line[i+1] == '*' {
			s.inBlockComment = true
			i += 2
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}

// countBraces returns the net change in depth contributed by open/close,
// scanning left to right (so "}...{" nets to 0 but is still order-correct
// for nested same-line blocks).
func countBraces(codeLine string, open, close byte) int {
	delta := 0
	for i := 0; i < len(codeLine); i++ {
		switch codeLine[i] {
		case open:
			delta++
		case close:
			delta--
		}
	}
	return delta
}

// findBlockEnd scans forward from startIdx (the line containing the
// opening brace, already accounted for via initialDepth) until the running
// depth returns to 0, tracking block comments across lines via scanner.
// Returns the 0-based index of the closing line, or the last line index if
// the source ends before closing (spec 4.4.2 step 6, ParseRecoverable on
// unterminated blocks).
func findBlockEnd(lines []string, startIdx int, initialDepth int, scanner *braceScanner) int {
	depth := initialDepth
	if depth <= 0 {
		return startIdx
	}
	for i := startIdx + 1; i < len(lines); i++ {
		code := scanner.codeOnly(lines[i], "//")
		depth += countBraces(code, '{', '}')
		if depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

// leadingIndent returns the number of leading spaces, expanding tabs to
// tabWidth columns (spec 4.3).
func leadingIndent(line string, tabWidth int) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += tabWidth
		default:
			return n
		}
	}
	return n
}

// isBlank reports whether line is empty once trimmed.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func lastLine(lines []string) int {
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}
