package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// cppParser implements spec 4.4.6: class/struct/namespace/enum (including
// enum class), typedef/using one-liners, and free functions, all on top of
// the shared brace state machine. A leading "template<...>" is stripped
// before matching, so a templated class/function is still recognized by
// its underlying declaration pattern.
type cppParser struct{}

var (
	cppTemplateRe = regexp.MustCompile(`^\s*template\s*<[^>]*>\s*`)
	cppClassRe    = regexp.MustCompile(`^\s*(?:class|struct)\s+(\w+)`)
	cppNamespaceRe = regexp.MustCompile(`^\s*namespace\s+(\w+)`)
	cppEnumRe     = regexp.MustCompile(`^\s*enum\s+(?:class\s+|struct\s+)?(\w+)`)
	cppUsingRe    = regexp.MustCompile(`^\s*using\s+(\w+)\s*=`)
	cppTypedefRe  = regexp.MustCompile(`^\s*typedef\b.*;\s*$`)
	cppFuncRe     = regexp.MustCompile(`^\s*(?:virtual\s+|static\s+|inline\s+|explicit\s+|constexpr\s+)*[\w:<>,\s\*&]+?(\w+)\s*\(([^;{)]*)\)\s*(?:const\s*)?(?:override\s*)?\{?\s*$`)
)

func (cppParser) Parse(path, content string) []model.Declaration {
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
		trimmed = cppTemplateRe.ReplaceAllString(trimmed, "")
		if trimmed == "" {
			i++
			continue
		}

		if cppTypedefRe.MatchString(trimmed) {
			name := lastIdentBeforeSemicolon(trimmed)
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: name, StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := cppUsingRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := cppClassRe.FindStringSubmatch(trimmed); m != nil {
			if strings.HasSuffix(strings.TrimRight(trimmed, " "), ";") && !strings.Contains(trimmed, "{") {
				// forward declaration "class Foo;" — declaration-only.
				decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
				i++
				continue
			}
			end := i
			depth := countBraces(code, '{', '}')
			if depth == 0 {
				end = findOpenerThenEnd(lines, i, sc)
			} else {
				end = findBlockEnd(lines, i, depth, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := cppNamespaceRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := cppEnumRe.FindStringSubmatch(trimmed); m != nil {
			if strings.Contains(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end := findBlockEnd(lines, i, depth, sc)
				decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
		}

		if m := cppFuncRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(trimmed, "{") {
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

// findOpenerThenEnd handles a class/struct header that doesn't open its
// brace on the same line (e.g. inheritance lists spanning lines); it scans
// forward for the opening "{" before delegating to findBlockEnd.
func findOpenerThenEnd(lines []string, startIdx int, sc *braceScanner) int {
	for j := startIdx + 1; j < len(lines); j++ {
		code := sc.codeOnly(lines[j], "//")
		if strings.Contains(code, "{") {
			depth := countBraces(code, '{', '}')
			return findBlockEnd(lines, j, depth, sc)
		}
		if strings.HasSuffix(strings.TrimSpace(code), ";") {
			return j
		}
	}
	return len(lines) - 1
}
