package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// phpParser implements spec 4.4.10: namespace/use statements, class/
// interface/trait containers, methods (with visibility/modifiers),
// property declarations, and const.
type phpParser struct{}

var (
	phpNamespaceRe = regexp.MustCompile(`^\s*namespace\s+([\w\\]+)\s*;`)
	phpUseRe       = regexp.MustCompile(`^\s*use\s+([\w\\]+)(?:\s+as\s+(\w+))?\s*;`)
	phpClassRe     = regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)*(?:class|interface|trait)\s+(\w+)`)
	phpMethodRe    = regexp.MustCompile(`^\s*(?:public|private|protected|static|final|abstract|\s)*function\s+&?(\w+)\s*\(`)
	phpPropertyRe  = regexp.MustCompile(`^\s*(?:public|private|protected|static|readonly|\s)+\$(\w+)\s*(?:=.*)?;\s*$`)
	phpConstRe     = regexp.MustCompile(`^\s*(?:public|private|protected|\s)*const\s+(\w+)\s*=`)
)

func (phpParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	i := 0
	for i < len(lines) {
		raw := lines[i]
		wasInComment := sc.inBlockComment
		code := sc.codeOnly(raw, "//", "#")
		if wasInComment && sc.inBlockComment {
			i++
			continue
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			i++
			continue
		}

		if m := phpNamespaceRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := phpUseRe.FindStringSubmatch(trimmed); m != nil {
			name := m[1]
			if m[2] != "" {
				name = m[1] + " as " + m[2]
			}
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: name, StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := phpClassRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i++ // keep scanning the body so its methods, properties and constants are found
			continue
		}

		if m := phpMethodRe.FindStringSubmatch(trimmed); m != nil {
			if strings.Contains(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end := findBlockEnd(lines, i, depth, sc)
				decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
			if strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
				// interface method signature
				decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: i + 1})
				i++
				continue
			}
			end := findOpenerThenEnd(lines, i, sc)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := phpConstRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := phpPropertyRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}
