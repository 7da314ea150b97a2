// Package docextract implements the Doc Extractor (C5, spec section 4.5):
// given the collected file list and config.doc_extensions, produce a
// DocRecord for every file whose language tag resolved to "doc".
package docextract

import (
	"github.com/codeconcat/codeconcat/internal/langdetect"
	"github.com/codeconcat/codeconcat/internal/model"
)

// Extract returns one DocRecord per FileRecord already tagged as a
// documentation file by the collector/langdetect stage, carrying the
// content the collector read. Files the collector could not read are
// dropped there and never reach Extract, so no DocRecord is produced for
// them.
func Extract(files []model.FileRecord, docExtensions []string) []model.DocRecord {
	var docs []model.DocRecord
	for _, f := range files {
		if f.Language != "doc" {
			continue
		}
		docs = append(docs, model.DocRecord{
			Path:    f.Path,
			DocType: langdetect.RawExtension(f.Path),
			Content: f.Content,
		})
	}
	return docs
}
