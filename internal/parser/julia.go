package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// juliaParser implements spec 4.4.13: module/function/struct/abstract
// type/const/macro declarations, terminated by the "end" keyword. Unlike
// the brace-based languages, the block-start counter increments on any of
// several keywords (function, struct, module, macro, begin, if, for,
// while, try), not just the declaration keywords themselves, since an
// "end" inside a function body that opens its own nested "if" must not be
// mistaken for the function's own terminator.
type juliaParser struct{}

var (
	juliaModuleRe    = regexp.MustCompile(`^\s*module\s+(\w+)`)
	juliaFunctionRe  = regexp.MustCompile(`^\s*function\s+([\w.!]+)\s*\(`)
	juliaShortFuncRe = regexp.MustCompile(`^\s*([\w.!]+)\s*\(([^)]*)\)\s*=\s*\S`)
	juliaStructRe    = regexp.MustCompile(`^\s*(?:mutable\s+)?struct\s+(\w+)`)
	juliaAbstractRe  = regexp.MustCompile(`^\s*abstract\s+type\s+(\w+)`)
	juliaConstRe     = regexp.MustCompile(`^\s*const\s+(\w+)\s*=`)
	juliaMacroRe     = regexp.MustCompile(`^\s*macro\s+(\w+)`)
	juliaVarRe       = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*=\s*(\S.*)$`)
	juliaDefRHSRe    = regexp.MustCompile(`^(?:function|struct)\b`)
	juliaBlockOpenRe = regexp.MustCompile(`^(function|struct|module|macro|begin|if|for|while|try)\b`)
	juliaEndRe       = regexp.MustCompile(`(^|\s)end\b`)
)

type juliaScope struct {
	endLine int
}

func (juliaParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	var stack []juliaScope
	inBlockComment := false
	i := 0
	for i < len(lines) {
		raw := lines[i]
		line := raw

		// #= ... =# block comments, possibly spanning lines.
		if inBlockComment {
			if idx := strings.Index(line, "=#"); idx >= 0 {
				inBlockComment = false
				line = line[idx+2:]
			} else {
				i++
				continue
			}
		}
		if idx := strings.Index(line, "#="); idx >= 0 {
			closeIdx := strings.Index(line[idx:], "=#")
			if closeIdx >= 0 {
				line = line[:idx] + line[idx+closeIdx+2:]
			} else {
				line = line[:idx]
				inBlockComment = true
			}
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)

		for len(stack) > 0 && i+1 > stack[len(stack)-1].endLine {
			stack = stack[:len(stack)-1]
		}

		if trimmed == "" {
			i++
			continue
		}

		if m := juliaModuleRe.FindStringSubmatch(trimmed); m != nil {
			end := findJuliaEnd(lines, i)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			stack = append(stack, juliaScope{endLine: end + 1})
			i++
			continue
		}
		if m := juliaFunctionRe.FindStringSubmatch(trimmed); m != nil {
			end := findJuliaEnd(lines, i)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := juliaStructRe.FindStringSubmatch(trimmed); m != nil {
			end := findJuliaEnd(lines, i)
			decls = append(decls, model.Declaration{Kind: model.KindStruct, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := juliaAbstractRe.FindStringSubmatch(trimmed); m != nil {
			end := findJuliaEnd(lines, i)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := juliaMacroRe.FindStringSubmatch(trimmed); m != nil {
			end := findJuliaEnd(lines, i)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := juliaConstRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := juliaShortFuncRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := juliaVarRe.FindStringSubmatch(trimmed); m != nil && !juliaDefRHSRe.MatchString(m[2]) {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}

// findJuliaEnd scans forward from startIdx (a block-opening line) counting
// nested block-opening keywords against "end" keywords until the count
// returns to zero, returning that line's index. If the source ends first,
// the last line is returned (ParseRecoverable, spec section 7).
func findJuliaEnd(lines []string, startIdx int) int {
	depth := 1
	inBlockComment := false
	for i := startIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if inBlockComment {
			if idx := strings.Index(line, "=#"); idx >= 0 {
				inBlockComment = false
				line = line[idx+2:]
			} else {
				continue
			}
		}
		if idx := strings.Index(line, "#="); idx >= 0 {
			closeIdx := strings.Index(line[idx:], "=#")
			if closeIdx >= 0 {
				line = line[:idx] + line[idx+closeIdx+2:]
			} else {
				line = line[:idx]
				inBlockComment = true
			}
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if juliaBlockOpenRe.MatchString(trimmed) {
			depth++
		}
		if juliaEndRe.MatchString(" " + trimmed) {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(lines) - 1
}
