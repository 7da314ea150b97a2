// Package matcher implements the glob matching semantics of spec section
// 4.1 (Path Matcher, C1): POSIX-normalized paths, "**" segment spans,
// trailing-slash directory matching, and a never-throws contract for
// malformed patterns.
//
// Matching itself is delegated to doublestar, exactly as the teacher
// (Contextify) and the sibling repoconcat tool in the retrieval pack both
// do; this package owns normalization, the trailing "/**"
// directory-descendant rule that doublestar does not apply on its own,
// trailing-slash directory handling, and a match-anywhere fallback for
// bare patterns that contain no "/".
package matcher

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Normalize converts p to a forward-slash path with any leading "./"
// stripped, per spec 4.1 ("all operating on forward-slash-normalized
// paths with any leading ./ removed from both sides").
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// Match reports whether path matches pattern under the rules in spec 4.1.
// It never panics: a malformed pattern simply yields false (doublestar's
// Match already returns an error instead of panicking; Match here swallows
// it, matching the "never throws on malformed patterns" contract).
func Match(pattern, path string) bool {
	return MatchIsDir(pattern, path, false)
}

// MatchIsDir is Match with an explicit hint that path is known to be a
// directory. When isDir is true and pattern has no trailing slash, a
// trailing slash is appended to both sides before matching, so
// directory-only patterns like "build/" still match a directory named
// "build" passed in without a trailing slash.
func MatchIsDir(pattern, path string, isDir bool) bool {
	pattern = Normalize(pattern)
	path = Normalize(path)
	if pattern == "" {
		return false
	}

	// Directory-suffix matching: "X/**" matches X itself and any descendant.
	// X may itself be a glob (e.g. "**/tests/**"), so doublestar is tried
	// when the literal prefix test fails.
	if rest, ok := strings.CutSuffix(pattern, "/**"); ok {
		if path == rest || strings.HasPrefix(path, rest+"/") {
			return true
		}
		if m, err := doublestar.Match(rest, path); err == nil && m {
			return true
		}
		m, err := doublestar.Match(pattern, path)
		return err == nil && m
	}

	// Pattern ending in "/" matches directories only.
	if strings.HasSuffix(pattern, "/") {
		if isDir && !strings.HasSuffix(path, "/") {
			path += "/"
		}
		if !strings.HasSuffix(path, "/") {
			return false
		}
	} else if isDir {
		pattern += "/"
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
	}

	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		return false
	}
	if ok {
		return true
	}

	// A bare pattern with no directory separator is also allowed to match
	// anywhere in the tree, mirroring the teacher's basename fallback
	// (shouldExclude) and repoconcat's "**/" prefix rewrite for unanchored
	// patterns: "node_modules" should exclude "node_modules" at any depth,
	// not just at the root.
	if !strings.Contains(pattern, "/") {
		base := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			base = path[i+1:]
		}
		ok, err = doublestar.Match(pattern, base)
		if err == nil && ok {
			return true
		}
		deep, err := doublestar.Match("**/"+pattern, path)
		if err == nil && deep {
			return true
		}
	}

	return false
}

// AnyMatch reports whether path matches any of patterns.
func AnyMatch(patterns []string, path string) bool {
	for _, p := range patterns {
		if Match(p, path) {
			return true
		}
	}
	return false
}

// MatchesAncestor reports whether any ancestor directory of path (every
// prefix up to but excluding path itself) matches any pattern in patterns.
// Used by the collector to prune files under an already-excluded directory
// even when the directory itself wasn't pruned during the walk (e.g. a
// pattern supplied after the walk already began, or symlinked trees).
func MatchesAncestor(patterns []string, path string) bool {
	path = Normalize(path)
	dir := path
	for {
		idx := strings.LastIndex(dir, "/")
		if idx < 0 {
			return false
		}
		dir = dir[:idx]
		if dir == "" {
			return false
		}
		for _, p := range patterns {
			if MatchIsDir(p, dir, true) {
				return true
			}
		}
	}
}
