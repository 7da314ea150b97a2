package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// rParser implements spec 4.4.14: function assignment via "<-" or "=",
// setClass/setMethod S4 declarations, and UPPER_CASE constant assignment.
// R has only "#" line comments (no block-comment syntax), and blocks are
// brace-delimited like the C family, so findBlockEnd/braceScanner are
// reused directly.
type rParser struct{}

var (
	rFuncRe       = regexp.MustCompile(`^` + "`" + `?([\w.]+)` + "`" + `?\s*(?:<-|=)\s*function\s*\(`)
	rSetClassRe   = regexp.MustCompile(`^setClass\s*\(\s*["']([\w.]+)["']`)
	rSetMethodRe  = regexp.MustCompile(`^setMethod\s*\(\s*["']([\w.]+)["']`)
	rSetGenericRe = regexp.MustCompile(`^setGeneric\s*\(\s*["']([\w.]+)["']`)
	rConstRe      = regexp.MustCompile(`^([A-Z][A-Z0-9_.]*)\s*(?:<-|=)\s*\S`)
)

func (rParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	i := 0
	for i < len(lines) {
		raw := lines[i]
		code := stripStringsAndChars(raw)
		if idx := strings.Index(code, "#"); idx >= 0 {
			code = code[:idx]
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			i++
			continue
		}

		if m := rSetClassRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '(', ')')
			end := i
			if depth > 0 {
				end = findParenEnd(lines, i, depth)
			}
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := rSetMethodRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '(', ')')
			end := i
			if depth > 0 {
				end = findParenEnd(lines, i, depth)
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := rSetGenericRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '(', ')')
			end := i
			if depth > 0 {
				end = findParenEnd(lines, i, depth)
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := rFuncRe.FindStringSubmatch(trimmed); m != nil {
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

		if m := rConstRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}

// findParenEnd scans forward counting parentheses until depth returns to
// zero, used for multi-line setClass/setMethod/setGeneric calls.
func findParenEnd(lines []string, startIdx, initialDepth int) int {
	depth := initialDepth
	for i := startIdx + 1; i < len(lines); i++ {
		code := stripStringsAndChars(lines[i])
		if idx := strings.Index(code, "#"); idx >= 0 {
			code = code[:idx]
		}
		depth += countBraces(code, '(', ')')
		if depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}
