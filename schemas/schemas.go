// Package schemas holds the JSON Schema documents describing the extractor's output.
package schemas

import "embed"

// ExtractionResult is the file name of the output schema.
const ExtractionResult = "extraction_result.schema.json"

// FS contains every schema file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Read returns the raw content of a schema file.
func Read(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
