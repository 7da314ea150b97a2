// Package cli wires the cobra command tree: "codeconcat extract" runs the
// pipeline, "codeconcat init" writes a default .codeconcat.yml and exits.
// Flag layout follows the teacher's extractCmd (path/output/format/
// exclude/include/workers), extended with the rest of spec section 3.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codeconcat/codeconcat/internal/config"
	"github.com/codeconcat/codeconcat/internal/logging"
	"github.com/codeconcat/codeconcat/internal/pipeline"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "codeconcat",
	Short:   "codeconcat — multi-language source aggregator",
	Long:    `codeconcat walks a project tree, extracts per-language declarations and documentation, scans for leaked secrets, and emits a single annotated artifact.`,
	Version: version,
}

var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Collect, parse, and write a project's context",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExtract,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default .codeconcat.yml and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var (
	flagOutput             string
	flagFormat             string
	flagExclude            []string
	flagInclude            []string
	flagExcludeLanguages   []string
	flagIncludeLanguages   []string
	flagWorkers            int
	flagExtractDocs        bool
	flagDisableTree        bool
	flagDisableAnnotations bool
	flagRemoveComments     bool
	flagRemoveEmptyLines   bool
	flagShowLineNumbers    bool
	flagVerbose            bool
)

func init() {
	extractCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path (default: codeconcat-output.<ext>)")
	extractCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: markdown, json, xml")
	extractCmd.Flags().StringSliceVarP(&flagExclude, "exclude", "e", nil, "glob patterns to exclude")
	extractCmd.Flags().StringSliceVarP(&flagInclude, "include", "i", nil, "glob patterns to whitelist")
	extractCmd.Flags().StringSliceVar(&flagExcludeLanguages, "exclude-languages", nil, "language tags to exclude")
	extractCmd.Flags().StringSliceVar(&flagIncludeLanguages, "include-languages", nil, "language tags to whitelist")
	extractCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "number of concurrent parse workers")
	extractCmd.Flags().BoolVar(&flagExtractDocs, "extract-docs", false, "extract documentation files")
	extractCmd.Flags().BoolVar(&flagDisableTree, "no-tree", false, "omit the directory structure section")
	extractCmd.Flags().BoolVar(&flagDisableAnnotations, "no-annotations", false, "omit generated summaries/tags")
	extractCmd.Flags().BoolVar(&flagRemoveComments, "remove-comments", false, "strip comment lines from output content")
	extractCmd.Flags().BoolVar(&flagRemoveEmptyLines, "remove-empty-lines", false, "strip blank lines from output content")
	extractCmd.Flags().BoolVar(&flagShowLineNumbers, "line-numbers", false, "prefix output content with original line numbers")
	extractCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug-level logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(initCmd)
}

// Execute runs the command tree; the caller is responsible for the process
// exit code (spec section 6: exit 0 on success, 1 on an uncaught error).
func Execute() error {
	return rootCmd.Execute()
}

func runExtract(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	cfg := config.Default()
	cfg.TargetPath = target
	if flagFormat != "" {
		cfg.Format = config.Format(flagFormat)
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	} else if cfg.Format == config.FormatJSON || cfg.Format == config.FormatXML {
		cfg.Output = "codeconcat-output." + string(cfg.Format)
	}
	cfg.ExcludePaths = flagExclude
	cfg.IncludePaths = flagInclude
	cfg.ExcludeLanguages = flagExcludeLanguages
	cfg.IncludeLanguages = flagIncludeLanguages
	if flagWorkers > 0 {
		cfg.MaxWorkers = flagWorkers
	}
	cfg.ExtractDocs = flagExtractDocs
	cfg.DisableTree = flagDisableTree
	cfg.DisableAnnotations = flagDisableAnnotations
	cfg.RemoveComments = flagRemoveComments
	cfg.RemoveEmptyLines = flagRemoveEmptyLines
	cfg.ShowLineNumbers = flagShowLineNumbers

	if _, err := os.Stat(cfg.TargetPath); err != nil {
		return fmt.Errorf("codeconcat: path not found: %s", cfg.TargetPath)
	}

	configFile := filepath.Join(cfg.TargetPath, ".codeconcat.yml")
	if data, err := os.ReadFile(configFile); err == nil {
		merged, err := config.Load(data, cfg)
		if err != nil {
			return fmt.Errorf("codeconcat: %w", err)
		}
		cfg = merged
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("codeconcat: %w", err)
	}

	logger := logging.New(flagVerbose)
	return pipeline.Run(context.Background(), cfg, logger)
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path := filepath.Join(target, ".codeconcat.yml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("codeconcat: %s already exists", path)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("codeconcat: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("codeconcat: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
