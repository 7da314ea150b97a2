package writer

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlRepo is the single root element: metadata, optional folder_tree,
// code_files, doc_files (spec 4.9's tagged-tree schema).
type xmlRepo struct {
	XMLName    xml.Name     `xml:"codeconcat"`
	Metadata   xmlMetadata  `xml:"metadata"`
	FolderTree *xmlVerbatim `xml:"folder_tree,omitempty"`
	CodeFiles  []xmlFile    `xml:"code_files>file"`
	DocFiles   []xmlDoc     `xml:"doc_files>doc"`
}

type xmlMetadata struct {
	TargetPath      string `xml:"target_path"`
	FileCount       int    `xml:"file_count"`
	EstimatedTokens int    `xml:"estimated_tokens"`
}

type xmlVerbatim struct {
	Text string `xml:",cdata"`
}

type xmlAnnotations struct {
	Summary string `xml:"summary"`
	Tags    string `xml:"tags"`
}

type xmlFile struct {
	Path        string          `xml:"path"`
	Language    string          `xml:"language"`
	Annotations *xmlAnnotations `xml:"annotations,omitempty"`
	Content     xmlVerbatim     `xml:"content"`
}

type xmlDoc struct {
	Path    string      `xml:"path"`
	DocType string      `xml:"doc_type"`
	Content xmlVerbatim `xml:"content"`
}

// writeXML renders the tagged-tree output. Content is wrapped in a CDATA
// section so nested "<"/">" never need escaping (spec section 6).
func writeXML(in Input) (string, error) {
	repo := xmlRepo{
		Metadata: xmlMetadata{
			TargetPath:      in.Config.TargetPath,
			FileCount:       len(in.Files),
			EstimatedTokens: estimateTokens(in),
		},
	}
	if in.Config.IncludeDirectoryStructure && in.TreeText != "" {
		repo.FolderTree = &xmlVerbatim{Text: in.TreeText}
	}
	for _, f := range in.Files {
		var ann *xmlAnnotations
		if !in.Config.DisableAnnotations {
			ann = &xmlAnnotations{Summary: f.Summary, Tags: strings.Join(f.Tags, ",")}
		}
		repo.CodeFiles = append(repo.CodeFiles, xmlFile{
			Path:        f.Path,
			Language:    f.Language,
			Annotations: ann,
			Content:     xmlVerbatim{Text: processContent(f.Content, in.Config)},
		})
	}
	for _, d := range in.Docs {
		repo.DocFiles = append(repo.DocFiles, xmlDoc{
			Path:    d.Path,
			DocType: d.DocType,
			Content: xmlVerbatim{Text: d.Content},
		})
	}

	out, err := xml.MarshalIndent(repo, "", "  ")
	if err != nil {
		return "", fmt.Errorf("writer: xml encode: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
