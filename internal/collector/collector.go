// Package collector implements the File Collector (C2): a depth-first walk
// of the scan root that prunes excluded directories, rejects excluded or
// binary files, and reads the rest into model.FileRecord values with
// declarations left empty. Per-file reads are farmed out to a bounded
// worker pool (spec section 5) but results are reordered back to the
// deterministic walk order before being handed to later stages.
package collector

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/langdetect"
	"github.com/codeconcat/codeconcat/internal/matcher"
	"github.com/codeconcat/codeconcat/internal/model"
)

// DefaultExcludes is the built-in exclude set (spec section 4.2). It is
// process-global, build-time data — never mutated after init — and is
// normalized (no "./" prefixes, no duplicate "**/"-qualified variants) per
// the source's near-duplicate entries being treated as one semantic set
// (spec section 9).
var DefaultExcludes = []string{
	// VCS metadata
	".git/**", ".svn/**", ".hg/**",
	// editor / IDE metadata
	".idea/**", ".vscode/**", ".vs/**", ".DS_Store",
	// compiled artifact / dependency directories
	"build/**", "dist/**", "out/**",
	"__pycache__/**", ".pytest_cache/**",
	"node_modules/**", "vendor/**",
	"venv/**", ".venv/**", "env/**",
	"target/**", "bin/**", "obj/**",
	// byte-compiled / object files
	"*.pyc", "*.pyo", "*.pyd", "*.class", "*.o", "*.obj",
	// logs
	"*.log", "*.tmp", "*.temp",
	// the tool's own config directory and default output
	".codeconcat/**", "codeconcat-output.*",
}

// MaxFileBytes bounds the size of a single file read into memory (spec
// section 5 recommends >= 20 MB).
const MaxFileBytes = 20 << 20

// Collector walks a root directory and yields FileRecords.
type Collector struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New builds a Collector for cfg. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{cfg: cfg, logger: logger}
}

// candidate is a file discovered by the walk, before content is read.
type candidate struct {
	absPath string
	relPath string
	index   int // walk order, used to restore order after parallel reads
}

// Collect walks cfg.TargetPath and returns FileRecords in deterministic
// directory-walk order, regardless of cfg.MaxWorkers (spec invariant 6).
func (c *Collector) Collect(ctx context.Context) ([]model.FileRecord, error) {
	root := c.cfg.TargetPath
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("collector: target path not found: %w", err)
	}

	exclude := c.buildExcludePatterns()

	var candidates []candidate
	idx := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			c.logger.Debug("walk error", "path", path, "error", walkErr)
			return nil
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil || relPath == "." {
			return nil
		}
		relPath = matcher.Normalize(relPath)

		if info.IsDir() {
			if matcher.AnyMatch(exclude, relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fileExcluded(relPath, exclude, c.cfg.IncludePaths) {
			return nil
		}
		if len(c.cfg.IncludeLanguages) > 0 {
			lang := langdetect.Of(relPath, c.cfg.CustomExtensionMap, c.cfg.DocExtensions)
			if !containsStr(c.cfg.IncludeLanguages, lang) {
				return nil
			}
		}
		if len(c.cfg.ExcludeLanguages) > 0 {
			lang := langdetect.Of(relPath, c.cfg.CustomExtensionMap, c.cfg.DocExtensions)
			if containsStr(c.cfg.ExcludeLanguages, lang) {
				return nil
			}
		}
		if info.Size() > MaxFileBytes {
			c.logger.Warn("skipping oversized file", "path", relPath, "size", info.Size())
			return nil
		}

		candidates = append(candidates, candidate{absPath: path, relPath: relPath, index: idx})
		idx++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collector: walk failed: %w", err)
	}

	return c.readAll(ctx, candidates), nil
}

// buildExcludePatterns merges DEFAULT_EXCLUDES, config excludes, a
// .gitignore at the target root (supplemental feature, SPEC_FULL.md), and
// self-output exclusion.
func (c *Collector) buildExcludePatterns() []string {
	return BuildExcludePatterns(c.cfg)
}

// BuildExcludePatterns is the exported form of the collector's exclude-set
// assembly, reused by the folder tree renderer (C10) so the tree and the
// collected file list always agree on what's excluded.
func BuildExcludePatterns(cfg *config.Config) []string {
	out := append([]string{}, DefaultExcludes...)
	out = append(out, cfg.ExcludePaths...)
	out = append(out, readGitignore(cfg.TargetPath)...)
	out = append(out, selfOutputPatterns(cfg.Output)...)
	return out
}

// selfOutputPatterns prevents a rerun from ingesting its own prior output
// (spec SPEC_FULL.md supplement 2, grounded on the teacher's executable
// self-exclusion).
func selfOutputPatterns(output string) []string {
	if output == "" {
		return nil
	}
	base := filepath.Base(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return []string{base, stem + "-*" + ext, stem + "_*" + ext}
}

// fileExcluded reports whether relPath should be dropped: an exclude
// pattern matches it or one of its ancestors, or an include whitelist is
// present and none of its patterns match (spec 4.2 step 3).
func fileExcluded(relPath string, exclude []string, include []string) bool {
	if matcher.AnyMatch(exclude, relPath) || matcher.MatchesAncestor(exclude, relPath) {
		return true
	}
	if len(include) > 0 && !matcher.AnyMatch(include, relPath) {
		return true
	}
	return false
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// readAll reads candidates with a bounded worker pool and returns
// FileRecords reordered to walk order.
func (c *Collector) readAll(ctx context.Context, candidates []candidate) []model.FileRecord {
	workers := c.cfg.MaxWorkers
	if workers < 1 {
		workers = 4
	}

	type result struct {
		index int
		rec    *model.FileRecord
	}

	jobs := make(chan candidate)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				rec := c.readOne(cand)
				results <- result{index: cand.index, rec: rec}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, cand := range candidates {
			select {
			case <-ctx.Done():
				return
			case jobs <- cand:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*model.FileRecord, len(candidates))
	for res := range results {
		ordered[res.index] = res.rec
	}

	out := make([]model.FileRecord, 0, len(ordered))
	for _, rec := range ordered {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

func (c *Collector) readOne(cand candidate) *model.FileRecord {
	f, err := os.Open(cand.absPath)
	if err != nil {
		c.logger.Debug("file unreadable", "path", cand.relPath, "error", err)
		return nil
	}
	defer f.Close()

	if isBinaryFile(f) {
		c.logger.Debug("skipping binary file", "path", cand.relPath)
		return nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil
	}

	data, err := os.ReadFile(cand.absPath)
	if err != nil {
		c.logger.Debug("file unreadable", "path", cand.relPath, "error", err)
		return nil
	}

	content := toUTF8Lossy(data)
	lang := langdetect.Of(cand.relPath, c.cfg.CustomExtensionMap, c.cfg.DocExtensions)

	return &model.FileRecord{
		Path:     cand.relPath,
		Language: lang,
		Content:  content,
	}
}

// isBinaryFile peeks at up to the first 512 bytes of f and reports whether
// they contain a NUL byte or fail to decode as UTF-8 (a multi-byte rune cut
// off at the end of the sample is tolerated). This is the collector's
// binary-file test (spec 4.2).
func isBinaryFile(f *os.File) bool {
	r := bufio.NewReaderSize(f, 512)
	sample, _ := r.Peek(512)
	if len(sample) == 0 {
		return false
	}
	for _, b := range sample {
		if b == 0 {
			return true
		}
	}
	return !utf8.Valid(sample) && !validUTF8Prefix(sample)
}

// validUTF8Prefix tolerates a sample that was simply truncated mid
// multi-byte rune (the common case for a 512-byte Peek on valid UTF-8
// text), rather than flagging it as binary.
func validUTF8Prefix(sample []byte) bool {
	for i := len(sample); i > 0 && i > len(sample)-4; i-- {
		if utf8.Valid(sample[:i]) {
			return true
		}
	}
	return false
}

// toUTF8Lossy decodes data as UTF-8, replacing invalid sequences with the
// replacement character (spec 3: "lossy decode allowed").
func toUTF8Lossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

// readGitignore absorbs a .gitignore at root into exclude-style patterns,
// anchoring patterns that contain a "/" and widening unanchored ones to
// "**/pattern" (SPEC_FULL.md supplement 1, grounded on the repoconcat
// reference's parseGitignore).
func readGitignore(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		neg := strings.HasPrefix(line, "!")
		pat := strings.TrimPrefix(line, "!")
		anchored := strings.HasPrefix(pat, "/")
		pat = strings.TrimPrefix(pat, "/")
		trimmed := strings.TrimSuffix(pat, "/")
		if strings.Contains(trimmed, "/") {
			anchored = true
		}
		if !anchored {
			pat = "**/" + pat
		}
		if neg {
			continue // negation re-inclusion is out of scope for the core exclude set
		}
		out = append(out, pat)
	}
	return out
}

func init() {
	sort.Strings(DefaultExcludes) // deterministic iteration for tests/log output
}
