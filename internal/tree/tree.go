// Package tree implements the Folder Tree Renderer (C10, spec section
// 4.10): a depth-first walk of the scan root honoring the same exclude
// rules as the collector, producing an indented text rendering.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codeconcat/codeconcat/internal/matcher"
)

// Render walks root and returns the indented tree text. exclude is the same
// pattern set the collector builds (built-ins + config excludes +
// .gitignore + self-output), so the tree and the collected file list always
// agree on what's visible.
func Render(root string, exclude []string) (string, error) {
	var b strings.Builder
	if err := renderDir(&b, root, "", exclude); err != nil {
		return "", fmt.Errorf("tree: %w", err)
	}
	return b.String(), nil
}

func renderDir(b *strings.Builder, absDir, relDir string, exclude []string) error {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return err
	}

	var dirs, files []os.DirEntry
	for _, e := range entries {
		rel := e.Name()
		if relDir != "" {
			rel = relDir + "/" + e.Name()
		}
		rel = matcher.Normalize(rel)
		if matcher.AnyMatch(exclude, rel) {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	depth := 0
	if relDir != "" {
		depth = strings.Count(relDir, "/") + 1
	}
	indent := strings.Repeat("    ", depth)

	for _, d := range dirs {
		fmt.Fprintf(b, "%s%s/\n", indent, d.Name())
		childRel := d.Name()
		if relDir != "" {
			childRel = relDir + "/" + d.Name()
		}
		if err := renderDir(b, filepath.Join(absDir, d.Name()), childRel, exclude); err != nil {
			return err
		}
	}
	for _, f := range files {
		fmt.Fprintf(b, "%s    %s\n", indent, f.Name())
	}
	return nil
}
