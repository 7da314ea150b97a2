// Package pipeline implements the Pipeline Orchestrator (C8, spec section
// 4.8): collect, tree-render, parse, doc-extract, then a per-file security
// scan followed by annotation, then write — with parsing fanned out over a
// bounded worker pool per spec section 5.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/codeconcat/codeconcat/internal/annotate"
	"github.com/codeconcat/codeconcat/internal/collector"
	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/docextract"
	"github.com/codeconcat/codeconcat/internal/model"
	"github.com/codeconcat/codeconcat/internal/parser"
	"github.com/codeconcat/codeconcat/internal/security"
	"github.com/codeconcat/codeconcat/internal/tree"
	"github.com/codeconcat/codeconcat/internal/writer"
)

// Run executes the full pipeline for cfg and writes the result to
// cfg.Output. It returns a non-fatal-free error only for the fatal kinds
// in spec section 7 (PathNotFound, WriteFailure); everything else is
// absorbed locally with a log entry.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	col := collector.New(cfg, logger)
	files, err := col.Collect(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: collect: %w", err)
	}
	logger.Info("collected files", "count", len(files))

	var treeText string
	if !cfg.DisableTree {
		exclude := collector.BuildExcludePatterns(cfg)
		treeText, err = tree.Render(cfg.TargetPath, exclude)
		if err != nil {
			logger.Debug("tree render failed", "error", err)
		}
	}

	codeFiles := make([]model.FileRecord, 0, len(files))
	var docInputs []model.FileRecord
	for _, f := range files {
		if f.IsDoc() {
			docInputs = append(docInputs, f)
			continue
		}
		codeFiles = append(codeFiles, f)
	}

	parseFiles(ctx, codeFiles, cfg.MaxWorkers)

	var docs []model.DocRecord
	if cfg.ExtractDocs {
		docs = docextract.Extract(docInputs, cfg.DocExtensions)
	}

	for i := range codeFiles {
		security.Scan(&codeFiles[i])
		annotate.Annotate(&codeFiles[i], cfg.DisableAnnotations)
	}

	out, err := writer.Write(writer.Input{
		Files:    codeFiles,
		Docs:     docs,
		Config:   cfg,
		TreeText: treeText,
	})
	if err != nil {
		return fmt.Errorf("pipeline: write: %w", err)
	}

	if err := os.WriteFile(cfg.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("pipeline: write output: %w", err)
	}
	logger.Info("wrote output", "path", cfg.Output, "files", len(codeFiles), "docs", len(docs))
	return nil
}

// parseFiles fans declaration extraction out over a bounded worker pool,
// mutating each FileRecord's Declarations in place. Worker count never
// affects the result (spec invariant 6): every worker writes only to the
// index it was handed.
func parseFiles(ctx context.Context, files []model.FileRecord, workers int) {
	if workers < 1 {
		workers = 4
	}
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				files[i].Declarations = parser.Parse(files[i].Language, files[i].Path, files[i].Content)
			}
		}()
	}

sendLoop:
	for i := range files {
		select {
		case <-ctx.Done():
			break sendLoop
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
}
