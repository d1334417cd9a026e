package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is the schema version written by Encode.
const DocumentVersion = 1

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (expected json or yaml)", s)
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Document is the top-level structure of an export file.
type Document struct {
	Version    int           `json:"version" yaml:"version"`
	ExportedAt string        `json:"exported_at,omitempty" yaml:"exported_at,omitempty"`
	Events     []EventRecord `json:"events" yaml:"events"`
	Todos      []TodoRecord  `json:"todos,omitempty" yaml:"todos,omitempty"`
}

// EventRecord is a work event in the export file. Times are RFC3339 and
// Accumulated is a Go duration string such as "1h5m0s".
type EventRecord struct {
	ID            string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string  `json:"title" yaml:"title"`
	Notes         string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Type          string  `json:"type,omitempty" yaml:"type,omitempty"`
	StartTime     string  `json:"start_time" yaml:"start_time"`
	EndTime       string  `json:"end_time" yaml:"end_time"`
	IsPaused      bool    `json:"is_paused" yaml:"is_paused"`
	Accumulated   string  `json:"accumulated,omitempty" yaml:"accumulated,omitempty"`
	LastStartTime *string `json:"last_start_time,omitempty" yaml:"last_start_time,omitempty"`
}

// TodoRecord is a todo item in the export file. TargetDate is YYYY-MM-DD.
type TodoRecord struct {
	ID           string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string  `json:"title" yaml:"title"`
	Notes        string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	TargetDate   string  `json:"target_date" yaml:"target_date"`
	Completed    bool    `json:"completed" yaml:"completed"`
	Type         string  `json:"type,omitempty" yaml:"type,omitempty"`
	PlannedStart *string `json:"planned_start,omitempty" yaml:"planned_start,omitempty"`
	PlannedEnd   *string `json:"planned_end,omitempty" yaml:"planned_end,omitempty"`
}

// LoadDocument reads and parses an export file, picking the format from
// the file extension.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data), FormatFromPath(path))
}

// Decode parses a document in the given format. Unknown fields are errors.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return &doc, nil
			}
			return nil, fmt.Errorf("parsing yaml document: %w", err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing json document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return &doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml document: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json document: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", format)
}
