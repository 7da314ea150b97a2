package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// csharpParser implements spec 4.4.7: namespace/class/interface/struct/
// enum containers, delegate one-liners, methods (including properties
// whose body is "{ get ... }"/"{ set ... }"). Attribute lines ("[...]") are
// skipped and not emitted, since the external kind vocabulary has no
// "attribute" bucket.
type csharpParser struct{}

var (
	csNamespaceRe = regexp.MustCompile(`^\s*namespace\s+([\w.]+)`)
	csClassRe     = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|sealed|abstract|partial|\s)*\b(?:class|interface|struct)\s+(\w+)`)
	csEnumRe      = regexp.MustCompile(`^\s*(?:public|private|protected|internal|\s)*enum\s+(\w+)`)
	csDelegateRe  = regexp.MustCompile(`^\s*(?:public|private|protected|internal|\s)*delegate\s+[\w<>\[\],\s]+\s+(\w+)\s*\(`)
	csEventRe     = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|\s)*event\s+[\w<>\[\],\.]+\s+(\w+)`)
	csAttrRe      = regexp.MustCompile(`^\s*\[[\w.]+(?:\([^)]*\))?\]\s*$`)
	csMethodRe    = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|virtual|override|async|sealed|abstract|partial|\s)*[\w<>\[\],\.]+\??\s+(\w+)\s*\(([^;{)]*)\)\s*\{?\s*$`)
	csPropertyRe  = regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|virtual|override|\s)*[\w<>\[\],\.]+\??\s+(\w+)\s*\{\s*(?:get|set)`)
)

func (csharpParser) Parse(path, content string) []model.Declaration {
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
		if csAttrRe.MatchString(trimmed) {
			i++
			continue
		}

		if m := csNamespaceRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i++ // keep scanning the body so nested types and members are found
			continue
		}
		if m := csClassRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i++ // keep scanning the body so methods, properties and events are found
			continue
		}
		if m := csEnumRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := csDelegateRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := csEventRe.FindStringSubmatch(trimmed); m != nil {
			end := i
			if !strings.HasSuffix(strings.TrimSpace(trimmed), ";") && strings.Contains(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end = findBlockEnd(lines, i, depth, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := csPropertyRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := csMethodRe.FindStringSubmatch(trimmed); m != nil {
			if strings.HasSuffix(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end := findBlockEnd(lines, i, depth, sc)
				decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
			if strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
				decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: i + 1})
				i++
				continue
			}
		}

		i++
	}
	return decls
}
