// Package dataset loads batch configuration: a list of (label, schema,
// pdf_path) entries from a YAML or JSON file. Schema field order is
// preserved from the file.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/pdf-extract/internal/common"
	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// Entry is one document to extract.
type Entry struct {
	Label   string
	Schema  *schema.Schema
	PDFPath string
}

// Load reads a dataset file; the format is chosen by extension
// (.yaml/.yml or .json).
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".json":
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

// NormalizePath puts a document path into the form used for entry lookup,
// so a watcher event path matches the entry no matter how pdf_path was
// written (relative, with ".." segments, or absolute).
func NormalizePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// IndexByPath keys entries by their normalized document path.
func IndexByPath(entries []Entry) map[string]Entry {
	idx := make(map[string]Entry, len(entries))
	for _, e := range entries {
		idx[NormalizePath(e.PDFPath)] = e
	}
	return idx
}

type yamlEntry struct {
	Label            string    `yaml:"label"`
	ExtractionSchema yaml.Node `yaml:"extraction_schema"`
	PDFPath          string    `yaml:"pdf_path"`
}

func parseYAML(data []byte) ([]Entry, error) {
	var raw []yamlEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset yaml: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for i, ye := range raw {
		s, err := schemaFromYAML(&ye.ExtractionSchema)
		if err != nil {
			return nil, fmt.Errorf("dataset entry %d (%s): %w", i, ye.Label, err)
		}
		entries = append(entries, Entry{Label: ye.Label, Schema: s, PDFPath: ye.PDFPath})
	}
	return entries, nil
}

// schemaFromYAML walks a mapping node so declaration order survives.
func schemaFromYAML(node *yaml.Node) (*schema.Schema, error) {
	if node.Kind != yaml.MappingNode {
		return nil, common.WrapError(common.ErrSchemaInvalid, "extraction_schema must be a mapping")
	}
	var fields []schema.Field
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag != "!!str" {
			return nil, fmt.Errorf("description of field %q is not a string: %w", k.Value, common.ErrSchemaInvalid)
		}
		fields = append(fields, schema.Field{Name: k.Value, Description: v.Value})
	}
	return schema.New(fields)
}

type jsonEntry struct {
	Label            string          `json:"label"`
	ExtractionSchema json.RawMessage `json:"extraction_schema"`
	PDFPath          string          `json:"pdf_path"`
}

func parseJSON(data []byte) ([]Entry, error) {
	var raw []jsonEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset json: %w", err)
	}
	entries := make([]Entry, 0, len(raw))
	for i, je := range raw {
		s, err := schema.ParseJSON(je.ExtractionSchema)
		if err != nil {
			return nil, fmt.Errorf("dataset entry %d (%s): %w", i, je.Label, err)
		}
		entries = append(entries, Entry{Label: je.Label, Schema: s, PDFPath: je.PDFPath})
	}
	return entries, nil
}
