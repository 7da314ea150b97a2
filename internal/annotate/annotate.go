// Package annotate implements the Annotator (C7, spec section 4.7): it
// derives a human-readable summary, a tag set, and an annotated rendering
// of each parsed file's content.
package annotate

import (
	"fmt"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// Annotate fills in rec.AnnotatedFile in place. When disableAnnotations is
// true, annotated_content is simply the original content (spec 4.7).
func Annotate(rec *model.FileRecord, disableAnnotations bool) {
	if disableAnnotations {
		rec.Summary = summarize(rec.Declarations)
		rec.Tags = tags(rec)
		rec.AnnotatedContent = rec.Content
		return
	}
	rec.Summary = summarize(rec.Declarations)
	rec.Tags = tags(rec)
	rec.AnnotatedContent = render(rec)
}

// summarize produces "Contains N functions, M classes, P structs, Q
// symbols", omitting zero buckets, or "No declarations found" if none.
func summarize(decls []model.Declaration) string {
	var functions, classes, structs, symbols int
	for _, d := range decls {
		switch d.Kind {
		case model.KindFunction:
			functions++
		case model.KindClass:
			classes++
		case model.KindStruct:
			structs++
		case model.KindSymbol:
			symbols++
		}
	}
	var parts []string
	if functions > 0 {
		parts = append(parts, pluralize(functions, "function"))
	}
	if classes > 0 {
		parts = append(parts, pluralize(classes, "class"))
	}
	if structs > 0 {
		parts = append(parts, pluralize(structs, "struct"))
	}
	if symbols > 0 {
		parts = append(parts, pluralize(symbols, "symbol"))
	}
	if len(parts) == 0 {
		return "No declarations found"
	}
	return "Contains " + strings.Join(parts, ", ")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "s") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// tags derives the has_functions/has_classes/has_structs/has_symbols set
// plus the file's own language tag.
func tags(rec *model.FileRecord) []string {
	set := map[string]bool{}
	for _, d := range rec.Declarations {
		switch d.Kind {
		case model.KindFunction:
			set["has_functions"] = true
		case model.KindClass:
			set["has_classes"] = true
		case model.KindStruct:
			set["has_structs"] = true
		case model.KindSymbol:
			set["has_symbols"] = true
		}
	}
	var out []string
	for _, k := range []string{"has_functions", "has_classes", "has_structs", "has_symbols"} {
		if set[k] {
			out = append(out, k)
		}
	}
	out = append(out, rec.Language)
	return out
}

// render builds the annotated_content text: a file header, per-kind
// sub-headers listing declaration names in source order, and a fenced code
// block with the original content under the file's language tag.
func render(rec *model.FileRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## File: %s\n\n", rec.Path)
	fmt.Fprintf(&b, "%s\n\n", summarize(rec.Declarations))

	for _, group := range []struct {
		header string
		kind   model.DeclKind
	}{
		{"### Functions", model.KindFunction},
		{"### Classes", model.KindClass},
		{"### Structs", model.KindStruct},
		{"### Symbols", model.KindSymbol},
	} {
		var names []string
		for _, d := range rec.Declarations {
			if d.Kind == group.kind {
				names = append(names, d.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", group.header)
		for _, n := range names {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "```%s\n%s\n```\n", fenceLang(rec.Language), rec.Content)
	return b.String()
}

// fenceLang maps the internal language tag to the token a Markdown code
// fence expects; most tags already match.
func fenceLang(lang string) string {
	if lang == "unknown" || lang == "doc" {
		return ""
	}
	return lang
}
