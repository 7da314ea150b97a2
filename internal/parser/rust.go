package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// rustParser implements spec 4.4.11: fn/struct/enum/trait/const/static/
// type/macro_rules!/mod, with impl blocks pushed onto a scope stack so fn
// declarations inside them are qualified as Type::fn_name. Attribute
// lines ("#[...]") are skipped (their only effect in the external kind
// model is to precede the next declaration); `///`, `//!`, `//`, and
// `/* */` are all comments.
type rustParser struct{}

var (
	rustAttrRe   = regexp.MustCompile(`^\s*#!?\[.*\]\s*$`)
	rustFnRe     = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+|unsafe\s+|extern\s+"[^"]*"\s+)*fn\s+(\w+)`)
	rustStructRe = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?struct\s+(\w+)`)
	rustEnumRe   = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?enum\s+(\w+)`)
	rustTraitRe  = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:unsafe\s+)?trait\s+(\w+)`)
	rustImplRe   = regexp.MustCompile(`^\s*impl(?:\s*<[^>]*>)?\s+(?:([\w:]+)(?:<[^>]*>)?\s+for\s+)?([\w:]+)`)
	rustConstRe  = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?const\s+(\w+)`)
	rustStaticRe = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?static\s+(?:mut\s+)?(\w+)`)
	rustTypeRe   = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?type\s+(\w+)`)
	rustMacroRe  = regexp.MustCompile(`^\s*macro_rules!\s*(\w+)`)
	rustModRe    = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+(\w+)`)
)

type rustScope struct {
	typeName string
	endLine  int
}

func (rustParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	var stack []rustScope
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

		for len(stack) > 0 && i+1 > stack[len(stack)-1].endLine {
			stack = stack[:len(stack)-1]
		}

		if trimmed == "" || rustAttrRe.MatchString(trimmed) {
			i++
			continue
		}

		if m := rustImplRe.FindStringSubmatch(trimmed); m != nil {
			typeName := m[2]
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			label := typeName
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: label, StartLine: i + 1, EndLine: end + 1})
			stack = append(stack, rustScope{typeName: typeName, endLine: end + 1})
			i++
			continue
		}

		if m := rustStructRe.FindStringSubmatch(trimmed); m != nil {
			end := i
			if strings.Contains(trimmed, "{") && !strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
				depth := countBraces(code, '{', '}')
				end = findBlockEnd(lines, i, depth, sc)
			}
			// tuple structs and unit structs end with ";" on the same line.
			decls = append(decls, model.Declaration{Kind: model.KindStruct, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := rustEnumRe.FindStringSubmatch(trimmed); m != nil {
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

		if m := rustTraitRe.FindStringSubmatch(trimmed); m != nil {
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

		if m := rustFnRe.FindStringSubmatch(trimmed); m != nil {
			name := m[1]
			if len(stack) > 0 {
				name = stack[len(stack)-1].typeName + "::" + name
			}
			end := i
			if strings.Contains(trimmed, "{") {
				depth := countBraces(code, '{', '}')
				end = findBlockEnd(lines, i, depth, sc)
			} else if strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
				end = i
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: name, StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := rustMacroRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := rustModRe.FindStringSubmatch(trimmed); m != nil {
			if strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
				decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
				i++
				continue
			}
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := rustConstRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := rustStaticRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := rustTypeRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(strings.TrimSpace(trimmed), ";") {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}
