package writer

import (
	"encoding/json"
	"fmt"
)

// jsonOutput is the key-value schema: optional folder_tree, code, docs
// (spec 4.9). Sections whose slice/string is empty are omitted via
// omitempty, matching "unused sections are omitted".
type jsonOutput struct {
	EstimatedTokens int            `json:"estimated_tokens"`
	FolderTree      string         `json:"folder_tree,omitempty"`
	Code            []jsonCodeFile `json:"code,omitempty"`
	Docs            []jsonDocFile  `json:"docs,omitempty"`
}

type jsonCodeFile struct {
	FilePath         string   `json:"file_path"`
	Language         string   `json:"language"`
	Content          string   `json:"content"`
	AnnotatedContent string   `json:"annotated_content,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

type jsonDocFile struct {
	FilePath string `json:"file_path"`
	DocType  string `json:"doc_type"`
	Content  string `json:"content"`
}

// writeJSON renders the key-value output, indented with 2 spaces (spec
// section 6).
func writeJSON(in Input) (string, error) {
	out := jsonOutput{EstimatedTokens: estimateTokens(in)}
	if in.Config.IncludeDirectoryStructure {
		out.FolderTree = in.TreeText
	}
	for _, f := range in.Files {
		cf := jsonCodeFile{
			FilePath: f.Path,
			Language: f.Language,
			Content:  processContent(f.Content, in.Config),
		}
		if !in.Config.DisableAnnotations {
			cf.AnnotatedContent = f.AnnotatedContent
			cf.Summary = f.Summary
			cf.Tags = f.Tags
		}
		out.Code = append(out.Code, cf)
	}
	for _, d := range in.Docs {
		out.Docs = append(out.Docs, jsonDocFile{FilePath: d.Path, DocType: d.DocType, Content: d.Content})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("writer: json encode: %w", err)
	}
	return string(b) + "\n", nil
}
