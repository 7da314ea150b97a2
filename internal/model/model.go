// Package model holds the data types shared by every stage of the
// collect -> parse -> annotate -> write pipeline.
package model

// DeclKind is the externally visible kind of a declaration. Parsers may
// track richer internal distinctions, but every Declaration emitted from a
// parser is normalized to one of these four kinds.
type DeclKind string

const (
	KindFunction DeclKind = "function"
	KindClass    DeclKind = "class"
	KindStruct   DeclKind = "struct"
	KindSymbol   DeclKind = "symbol"
)

// Declaration is a named top-level or nested construct extracted from a
// source file by a language parser. Declarations are created once by the
// parser and never mutated afterward.
type Declaration struct {
	Kind      DeclKind
	Name      string
	StartLine int
	EndLine   int
}

// SecurityIssue is a single credential/secret finding inside a file's
// content. LineContent always has the secret portion masked; Content on the
// owning FileRecord is never modified.
type SecurityIssue struct {
	LineNumber  int
	LineContent string
	IssueType   string
	Severity    string
	Description string
}

// FileRecord is one source file as it flows through the pipeline.
type FileRecord struct {
	Path            string
	Language        string
	Content         string
	Declarations    []Declaration
	SecurityIssues  []SecurityIssue
	AnnotatedFile             // zero value until Annotate runs
}

// AnnotatedFile holds the C7 annotator's output for a FileRecord. It is
// embedded directly in FileRecord rather than wrapping it, since every
// FileRecord flows through annotation exactly once before reaching a
// writer.
type AnnotatedFile struct {
	Summary           string
	Tags              []string
	AnnotatedContent  string
}

// DocRecord is an opaque documentation file (.md, .rst, .txt, .rmd, ...)
// that bypasses declaration parsing entirely.
type DocRecord struct {
	Path    string
	DocType string
	Content string
}

// IsDoc reports whether f is a doc-typed file. Doc files never carry
// declarations (spec invariant: language == "doc" => declarations empty).
func (f *FileRecord) IsDoc() bool {
	return f.Language == "doc"
}
