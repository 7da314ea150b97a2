// Package config defines the pipeline's Config type, its defaults, and
// strict loading from a .codeconcat.yml file. Unlike the teacher's loose
// field merge, unknown keys in the config file are a fatal ConfigInvalid
// error (spec section 7): codeconcat would rather fail loudly on a typo
// than silently ignore a misconfigured option.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format is the writer output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatXML      Format = "xml"
)

// Config is the full set of options recognized by the core pipeline. Field
// names mirror the YAML keys one-for-one (spec section 6).
type Config struct {
	TargetPath  string   `yaml:"target_path"`
	IncludePaths []string `yaml:"include_paths"`
	ExcludePaths []string `yaml:"exclude_paths"`

	IncludeLanguages []string `yaml:"include_languages"`
	ExcludeLanguages []string `yaml:"exclude_languages"`

	ExtractDocs    bool     `yaml:"extract_docs"`
	MergeDocs      bool     `yaml:"merge_docs"`
	DocExtensions  []string `yaml:"doc_extensions"`

	CustomExtensionMap map[string]string `yaml:"custom_extension_map"`

	MaxWorkers int `yaml:"max_workers"`

	DisableTree       bool `yaml:"disable_tree"`
	DisableAnnotations bool `yaml:"disable_annotations"`

	RemoveComments   bool `yaml:"remove_comments"`
	RemoveEmptyLines bool `yaml:"remove_empty_lines"`
	ShowLineNumbers  bool `yaml:"show_line_numbers"`

	IncludeFileSummary      bool `yaml:"include_file_summary"`
	IncludeDirectoryStructure bool `yaml:"include_directory_structure"`

	Output string `yaml:"output"`
	Format Format `yaml:"format"`
}

// Default returns a Config populated with the built-in defaults (spec
// section 3/5): markdown output, 4 workers, tree/annotations enabled.
func Default() *Config {
	return &Config{
		TargetPath:                ".",
		DocExtensions:             []string{".md", ".rst", ".txt", ".rmd"},
		MaxWorkers:                4,
		DisableTree:               false,
		DisableAnnotations:        false,
		IncludeFileSummary:        true,
		IncludeDirectoryStructure: true,
		Output:                    "codeconcat-output.md",
		Format:                    FormatMarkdown,
	}
}

// knownKeys mirrors the yaml tags above; used to reject unrecognized
// top-level keys in a loaded config file (ConfigInvalid, spec section 7).
var knownKeys = map[string]bool{
	"target_path": true, "include_paths": true, "exclude_paths": true,
	"include_languages": true, "exclude_languages": true,
	"extract_docs": true, "merge_docs": true, "doc_extensions": true,
	"custom_extension_map": true, "max_workers": true,
	"disable_tree": true, "disable_annotations": true,
	"remove_comments": true, "remove_empty_lines": true, "show_line_numbers": true,
	"include_file_summary": true, "include_directory_structure": true,
	"output": true, "format": true,
}

// Load decodes a .codeconcat.yml document into a copy of base, returning a
// ConfigInvalid-flavored error (wrapped with the offending field name) on
// any unrecognized key, conflicting format value, or type mismatch.
// CLI-provided values in base take precedence over non-zero file values,
// matching the teacher's merge contract (loadConfigFile).
func Load(data []byte, base *Config) (*Config, error) {
	var raw yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid yaml: %w", err)
	}
	if len(raw.Content) == 0 {
		return base, nil
	}
	doc := raw.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: top-level document must be a mapping")
	}
	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		if !knownKeys[key] {
			return nil, fmt.Errorf("config: unknown option %q", key)
		}
	}

	var fileCfg Config
	if err := doc.Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	merged := mergeOverFile(base, &fileCfg)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeOverFile applies file-provided values under CLI precedence: any
// field left at its zero value on cli is filled in from file.
func mergeOverFile(cli *Config, file *Config) *Config {
	out := *cli
	if out.TargetPath == "" || out.TargetPath == "." {
		if file.TargetPath != "" {
			out.TargetPath = file.TargetPath
		}
	}
	if len(out.IncludePaths) == 0 {
		out.IncludePaths = file.IncludePaths
	}
	out.ExcludePaths = append(append([]string{}, out.ExcludePaths...), file.ExcludePaths...)
	if len(out.IncludeLanguages) == 0 {
		out.IncludeLanguages = file.IncludeLanguages
	}
	if len(out.ExcludeLanguages) == 0 {
		out.ExcludeLanguages = file.ExcludeLanguages
	}
	if !out.ExtractDocs {
		out.ExtractDocs = file.ExtractDocs
	}
	if !out.MergeDocs {
		out.MergeDocs = file.MergeDocs
	}
	if len(file.DocExtensions) > 0 {
		out.DocExtensions = file.DocExtensions
	}
	if len(file.CustomExtensionMap) > 0 {
		if out.CustomExtensionMap == nil {
			out.CustomExtensionMap = map[string]string{}
		}
		for k, v := range file.CustomExtensionMap {
			out.CustomExtensionMap[k] = v
		}
	}
	if out.MaxWorkers == 0 {
		out.MaxWorkers = file.MaxWorkers
	}
	if !out.DisableTree {
		out.DisableTree = file.DisableTree
	}
	if !out.DisableAnnotations {
		out.DisableAnnotations = file.DisableAnnotations
	}
	if !out.RemoveComments {
		out.RemoveComments = file.RemoveComments
	}
	if !out.RemoveEmptyLines {
		out.RemoveEmptyLines = file.RemoveEmptyLines
	}
	if !out.ShowLineNumbers {
		out.ShowLineNumbers = file.ShowLineNumbers
	}
	if out.Output == "" {
		out.Output = file.Output
	}
	if out.Format == "" {
		out.Format = file.Format
	}
	return &out
}

// Validate enforces the invariants spec'd in section 3: max_workers >= 1
// and a recognized format.
func Validate(c *Config) error {
	if c.MaxWorkers < 1 {
		return fmt.Errorf("config: max_workers must be >= 1, got %d", c.MaxWorkers)
	}
	switch c.Format {
	case FormatMarkdown, FormatJSON, FormatXML:
	default:
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
	return nil
}
