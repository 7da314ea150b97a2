package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// cParser implements the C-specific rules of spec 4.4.5 on top of the
// shared brace-based state machine (4.4.2): functions, struct/union/enum,
// typedef one-liners, and #define (including backslash-continued
// multi-line macros, which suppress matching until the continuation ends).
type cParser struct{}

var (
	cFuncRe     = regexp.MustCompile(`^\s*(?:static\s+|inline\s+|extern\s+)*[A-Za-z_][\w]*(?:\s*\*+\s*|\s+)(\w+)\s*\(([^;{)]*)\)\s*\{?\s*$`)
	cStructRe   = regexp.MustCompile(`^\s*(typedef\s+)?(struct|union|enum)\s+(\w+)?`)
	cTypedefRe  = regexp.MustCompile(`^\s*typedef\b.*;\s*$`)
	cDefineRe   = regexp.MustCompile(`^\s*#\s*define\s+(\w+)`)
	cPreprocRe  = regexp.MustCompile(`^\s*#\s*(include|ifdef|ifndef|if|else|elif|endif|pragma|undef|error|warning)\b`)
)

func (cParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	i := 0
	for i < len(lines) {
		raw := lines[i]
		wasInComment := sc.inBlockComment
		code := sc.codeOnly(raw, "//")
		if wasInComment && sc.inBlockComment {
			i++
			continue
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			i++
			continue
		}

		// Multi-line macro: consume continuation lines first.
		if m := cDefineRe.FindStringSubmatch(trimmed); m != nil {
			end := i
			for strings.HasSuffix(strings.TrimRight(lines[end], " \t"), "\\") {
				end++
				if end >= len(lines) {
					end = len(lines) - 1
					break
				}
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if cPreprocRe.MatchString(trimmed) {
			i++
			continue
		}

		if cTypedefRe.MatchString(trimmed) {
			name := lastIdentBeforeSemicolon(trimmed)
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: name, StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := cStructRe.FindStringSubmatch(trimmed); m != nil && strings.Contains(trimmed, "{") {
			name := m[3]
			if name == "" {
				name = "anonymous"
			}
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindStruct, Name: name, StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := cFuncRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(trimmed, "{") {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		i++
	}
	return decls
}

// lastIdentBeforeSemicolon extracts the trailing identifier of a
// "typedef ... NAME;" line — the alias name, which is the last word before
// the semicolon.
func lastIdentBeforeSemicolon(line string) string {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	line = strings.TrimRight(line, "[]0123456789")
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '*'
	})
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[len(fields)-1]
}
