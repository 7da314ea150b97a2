// Package langdetect maps a file extension to a short language tag (spec
// section 4.3, C3). The built-in table is process-global, immutable build
// data (spec section 9); a per-run custom_extension_map always takes
// precedence over it.
package langdetect

import (
	"path/filepath"
	"strings"
)

// builtin is the fixed extension -> language table from spec section 4.3.
// It is a package-level constant-in-spirit map: never mutated after init.
var builtin = map[string]string{
	"py": "python",

	"js":  "javascript",
	"jsx": "javascript",
	"ts":  "typescript",
	"tsx": "typescript",

	"r":  "r",
	"jl": "julia",

	"cpp": "cpp",
	"cxx": "cpp",
	"hpp": "cpp",
	"hxx": "cpp",
	"cc":  "cpp",

	"c": "c",
	"h": "c",

	"cs":   "csharp",
	"java": "java",
	"go":   "go",
	"php":  "php",
	"rs":   "rust",

	"md":  "doc",
	"rst": "doc",
	"txt": "doc",
	"rmd": "doc",
}

// DocExtensions lists the extensions (without a leading dot) that builtin
// classifies as documentation.
func DocExtensions() []string {
	return []string{"md", "rst", "txt", "rmd"}
}

// Of returns the language tag for path. custom, if non-nil, is the config's
// custom_extension_map (keys with or without a leading dot are accepted)
// and takes precedence over everything else. docExts (lowercase, leading
// dot, e.g. ".md") reclassifies a matching extension as "doc" ahead of the
// built-in table; a custom mapping for the same extension still wins.
func Of(path string, custom map[string]string, docExts []string) string {
	ext := extOf(path)
	if lang, ok := lookupCustom(custom, ext); ok {
		return lang
	}
	if isDocExt(ext, docExts) {
		return "doc"
	}
	if lang, ok := builtin[ext]; ok {
		return lang
	}
	if ext == "" {
		return "unknown"
	}
	return "unknown"
}

// RawExtension returns the lowercase extension (no leading dot) of path,
// exposed for collectors/writers that key off the raw extension rather
// than the resolved language (e.g. the doc extractor's doc_type field).
func RawExtension(path string) string {
	return extOf(path)
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

func lookupCustom(custom map[string]string, ext string) (string, bool) {
	if custom == nil {
		return "", false
	}
	if lang, ok := custom[ext]; ok {
		return lang, true
	}
	if lang, ok := custom["."+ext]; ok {
		return lang, true
	}
	return "", false
}

func isDocExt(ext string, docExts []string) bool {
	for _, d := range docExts {
		d = strings.TrimPrefix(strings.ToLower(d), ".")
		if d == ext {
			return true
		}
	}
	return false
}
