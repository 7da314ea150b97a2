package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// jsParser implements spec 4.4.12 for both JavaScript and TypeScript; the
// typescript field gates patterns (interface, type alias, enum) that only
// apply when language == "typescript". Decorators ("@X") are skipped like
// attributes elsewhere; template literals are tracked via
// braceScanner.stripTemplateLiterals so backtick strings never perturb
// brace counting. Class bodies are scanned line-by-line (not skipped as a
// single block) so methods inside them are emitted as their own
// declarations, following the shared scope-stack idiom used by the
// Java/Rust parsers.
type jsParser struct {
	typescript bool
}

var (
	jsClassRe    = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?class\s+(\w+)`)
	jsFunctionRe = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s*\*?\s+(\w+)\s*\(`)
	jsArrowFnRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\(([^)]*)\)\s*(?::\s*[\w<>\[\],\s|&]+)?\s*=>`)
	jsMethodRe   = regexp.MustCompile(`^\s*(?:static\s+|async\s+|get\s+|set\s+|public\s+|private\s+|protected\s+|readonly\s+)*\*?\s*(\w+)\s*\(([^)]*)\)\s*(?::\s*[\w<>\[\],\s|&]+)?\s*\{?\s*$`)
	jsDecoratorRe = regexp.MustCompile(`^\s*@\w+(?:\([^)]*\))?\s*$`)
	tsInterfaceRe = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+(\w+)`)
	tsTypeAliasRe = regexp.MustCompile(`^\s*(?:export\s+)?type\s+(\w+)\s*=`)
	tsEnumRe      = regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+)?enum\s+(\w+)`)
)

type jsScope struct {
	endLine int
}

func (p jsParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	var stack []jsScope
	i := 0
	for i < len(lines) {
		raw := lines[i]
		wasInComment := sc.inBlockComment
		stripped := sc.stripBlockComments(raw)
		if wasInComment && sc.inBlockComment {
			i++
			continue
		}
		if idx := strings.Index(stripped, "//"); idx >= 0 {
			stripped = stripped[:idx]
		}
		codeNoTemplate := sc.stripTemplateLiterals(stripped)
		code := stripStringsAndChars(codeNoTemplate)
		trimmed := strings.TrimSpace(code)

		for len(stack) > 0 && i+1 > stack[len(stack)-1].endLine {
			stack = stack[:len(stack)-1]
		}
		inClass := len(stack) > 0

		if trimmed == "" || jsDecoratorRe.MatchString(strings.TrimSpace(stripped)) {
			i++
			continue
		}

		if p.typescript && !inClass {
			if m := tsInterfaceRe.FindStringSubmatch(trimmed); m != nil {
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
			if m := tsEnumRe.FindStringSubmatch(trimmed); m != nil {
				depth := countBraces(code, '{', '}')
				end := findBlockEnd(lines, i, depth, sc)
				decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
			if m := tsTypeAliasRe.FindStringSubmatch(trimmed); m != nil {
				end := i
				decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
		}

		if !inClass {
			if m := jsClassRe.FindStringSubmatch(trimmed); m != nil {
				depth := countBraces(code, '{', '}')
				end := i
				if depth > 0 {
					end = findBlockEnd(lines, i, depth, sc)
				} else {
					end = findOpenerThenEnd(lines, i, sc)
				}
				decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				stack = append(stack, jsScope{endLine: end + 1})
				i++
				continue
			}
		}

		if m := jsFunctionRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := jsArrowFnRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if strings.Contains(trimmed, "=>") && depth == 0 {
				end = i // concise-body arrow function: "const foo = (x) => x"
			} else if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if inClass {
			if m := jsMethodRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end := findBlockEnd(lines, i, depth, sc)
				decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				i = end + 1
				continue
			}
		}

		i++
	}
	return decls
}
