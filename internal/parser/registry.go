// Package parser implements the Parser Registry and per-language
// declaration extractors (C4, spec section 4.4). Every parser satisfies
// the same contract: given a path and its content, return declarations in
// source order, never throwing on ill-formed input.
package parser

import "github.com/codeconcat/codeconcat/internal/model"

// Parser extracts declarations from one file's content. path is passed so
// parsers can use it for diagnostics; content drives all matching.
type Parser interface {
	Parse(path, content string) []model.Declaration
}

// registry maps a language tag to its parser. It is populated once at
// package init and never mutated afterward (spec section 9: "the parser
// registry and built-in pattern tables are immutable after initialization").
var registry = map[string]Parser{
	"python":     pythonParser{},
	"c":          cParser{},
	"cpp":        cppParser{},
	"csharp":     csharpParser{},
	"java":       javaParser{},
	"go":         goParser{},
	"php":        phpParser{},
	"rust":       rustParser{},
	"javascript": jsParser{typescript: false},
	"typescript": jsParser{typescript: true},
	"julia":      juliaParser{},
	"r":          rParser{},
}

// Lookup returns the parser registered for language, and whether one
// exists. Unregistered languages (doc, unknown, or anything else) simply
// have no parser: callers should treat that as "zero declarations", not an
// error.
func Lookup(language string) (Parser, bool) {
	p, ok := registry[language]
	return p, ok
}

// Parse dispatches to the registered parser for language, returning an
// empty (never nil-panicking) declaration slice for any language without a
// registered parser, or when the parser itself fails internally — a
// ParseRecoverable condition per spec section 7 is always absorbed here.
func Parse(language, path, content string) (decls []model.Declaration) {
	p, ok := registry[language]
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			// A per-language parser's internal state machine transitioned
			// somewhere it shouldn't have (e.g. negative brace depth on
			// adversarial input). Recovered (spec section 7
			// ParseRecoverable): the file is treated as having no
			// declarations; anything the parser built before the panic
			// is discarded.
			decls = nil
		}
	}()
	return p.Parse(path, content)
}
