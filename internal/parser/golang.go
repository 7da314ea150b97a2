package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// goParser implements spec 4.4.9: package, imports (single and block
// forms), func (qualifying methods as Receiver.Method), type ... struct /
// interface, and var/const declarations.
type goParser struct{}

var (
	goPackageRe     = regexp.MustCompile(`^\s*package\s+(\w+)`)
	goImportSingleRe = regexp.MustCompile(`^\s*import\s+(?:(\w+)\s+)?"([^"]+)"`)
	goImportBlockRe  = regexp.MustCompile(`^\s*import\s*\(\s*$`)
	goImportLineRe   = regexp.MustCompile(`^\s*(?:(\w+)\s+)?"([^"]+)"`)
	goFuncRe        = regexp.MustCompile(`^\s*func\s+(?:\(\s*\w*\s+\*?(\w+)\s*\)\s+)?(\w+)\s*\(`)
	goTypeStructRe  = regexp.MustCompile(`^\s*type\s+(\w+)\s+struct\s*\{`)
	goTypeIfaceRe   = regexp.MustCompile(`^\s*type\s+(\w+)\s+interface\s*\{`)
	goTypeAliasRe   = regexp.MustCompile(`^\s*type\s+(\w+)\s+\S+`)
	goVarConstRe    = regexp.MustCompile(`^\s*(var|const)\s+(\w+)`)
	goVarConstBlockRe = regexp.MustCompile(`^\s*(var|const)\s*\(\s*$`)
	goBlockItemRe   = regexp.MustCompile(`^\s*(\w+)\b`)
)

func (goParser) Parse(path, content string) []model.Declaration {
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

		if m := goPackageRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if goImportBlockRe.MatchString(trimmed) {
			end := i
			for j := i + 1; j < len(lines); j++ {
				c2 := sc.codeOnly(lines[j], "//")
				t2 := strings.TrimSpace(c2)
				if t2 == ")" {
					end = j
					break
				}
				if m := goImportLineRe.FindStringSubmatch(t2); m != nil {
					decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[2], StartLine: j + 1, EndLine: j + 1})
				}
				end = j
			}
			i = end + 1
			continue
		}
		if m := goImportSingleRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[2], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := goTypeStructRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindStruct, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}
		if m := goTypeIfaceRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := goFuncRe.FindStringSubmatch(trimmed); m != nil {
			name := m[2]
			if m[1] != "" {
				name = m[1] + "." + m[2]
			}
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else if strings.HasSuffix(strings.TrimSpace(trimmed), ";") || !strings.Contains(trimmed, "{") {
				// declaration-only (e.g. an interface method signature or a
				// forward-style signature without a body)
				end = i
			}
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: name, StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if goVarConstBlockRe.MatchString(trimmed) {
			kw := strings.Fields(trimmed)[0]
			_ = kw
			end := i
			for j := i + 1; j < len(lines); j++ {
				c2 := sc.codeOnly(lines[j], "//")
				t2 := strings.TrimSpace(c2)
				if t2 == ")" {
					end = j
					break
				}
				if m := goBlockItemRe.FindStringSubmatch(t2); m != nil && t2 != "" {
					decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: j + 1, EndLine: j + 1})
				}
				end = j
			}
			i = end + 1
			continue
		}
		if m := goVarConstRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[2], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := goTypeAliasRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}
