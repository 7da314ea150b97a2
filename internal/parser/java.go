package parser

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// javaParser implements spec 4.4.8: package/import symbols, class/
// interface/enum containers, methods (including constructors), and
// fields, qualified as package.Class.method using the accumulated scope
// stack.
type javaParser struct{}

var (
	javaPackageRe = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	javaImportRe  = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+\*?)\s*;`)
	javaClassRe   = regexp.MustCompile(`^\s*(?:@\w+(?:\([^)]*\))?\s*)*(?:public|private|protected|static|final|abstract|\s)*(?:class|interface|enum)\s+(\w+)`)
	javaMethodRe  = regexp.MustCompile(`^\s*(?:@\w+(?:\([^)]*\))?\s*)*(?:public|private|protected|static|final|synchronized|abstract|native|\s)*[\w<>\[\],\.]+\s+(\w+)\s*\(([^;{)]*)\)\s*(?:throws\s+[\w.,\s]+)?\{?\s*$`)
	javaCtorRe    = regexp.MustCompile(`^\s*(?:public|private|protected|\s)*(\w+)\s*\(([^;{)]*)\)\s*(?:throws\s+[\w.,\s]+)?\{\s*$`)
	javaFieldRe   = regexp.MustCompile(`^\s*(?:public|private|protected|static|final|volatile|transient|\s)*[\w<>\[\],\.]+\s+(\w+)\s*(?:=.*)?;\s*$`)
)

type javaScope struct {
	name    string
	endLine int
}

func (javaParser) Parse(path, content string) []model.Declaration {
	lines := splitLines(content)
	var decls []model.Declaration
	sc := &braceScanner{}
	var pkg string
	var stack []javaScope
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

		if trimmed == "" {
			i++
			continue
		}

		if m := javaPackageRe.FindStringSubmatch(trimmed); m != nil {
			pkg = m[1]
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}
		if m := javaImportRe.FindStringSubmatch(trimmed); m != nil {
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: m[1], StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		if m := javaClassRe.FindStringSubmatch(trimmed); m != nil {
			depth := countBraces(code, '{', '}')
			end := i
			if depth > 0 {
				end = findBlockEnd(lines, i, depth, sc)
			} else {
				end = findOpenerThenEnd(lines, i, sc)
			}
			qualified := qualify(pkg, stack, m[1])
			decls = append(decls, model.Declaration{Kind: model.KindClass, Name: qualified, StartLine: i + 1, EndLine: end + 1})
			stack = append(stack, javaScope{name: m[1], endLine: end + 1})
			i++
			continue
		}

		if m := javaCtorRe.FindStringSubmatch(trimmed); m != nil && len(stack) > 0 && m[1] == stack[len(stack)-1].name {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			qualified := qualify(pkg, stack, m[1])
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: qualified, StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := javaMethodRe.FindStringSubmatch(trimmed); m != nil && strings.HasSuffix(trimmed, "{") {
			depth := countBraces(code, '{', '}')
			end := findBlockEnd(lines, i, depth, sc)
			qualified := qualify(pkg, stack, m[1])
			decls = append(decls, model.Declaration{Kind: model.KindFunction, Name: qualified, StartLine: i + 1, EndLine: end + 1})
			i = end + 1
			continue
		}

		if m := javaFieldRe.FindStringSubmatch(trimmed); m != nil && len(stack) > 0 {
			qualified := qualify(pkg, stack, m[1])
			decls = append(decls, model.Declaration{Kind: model.KindSymbol, Name: qualified, StartLine: i + 1, EndLine: i + 1})
			i++
			continue
		}

		i++
	}
	return decls
}

func qualify(pkg string, stack []javaScope, name string) string {
	parts := []string{}
	if pkg != "" {
		parts = append(parts, pkg)
	}
	for _, s := range stack {
		parts = append(parts, s.name)
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}
