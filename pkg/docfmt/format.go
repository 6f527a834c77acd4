// Package docfmt converts save documents to and from their structured text
// forms.
//
// JSON is the interchange format. Input JSON may carry // and /* */ comments
// and trailing commas, so a decoded save can be annotated by hand before it
// is encoded again. YAML is offered as an alternative with the same field
// names.
package docfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/cm3d2save/pkg/save"
)

// Format names a structured document encoding
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// DefaultIndent is the indentation width used when none is configured
const DefaultIndent = 2

var ErrUnknownFormat = errors.New("unknown document format")

// ParseFormat accepts a format name as used in configuration and flags
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "jsonc":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Ext returns the file extension for f, including the dot
func (f Format) Ext() string {
	if f == YAML {
		return ".yaml"
	}
	return ".json"
}

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	if f == YAML {
		return "application/yaml"
	}
	return "application/json"
}

// SiblingPath returns path with its extension replaced by ext, in the same
// directory. "saves/slot01.save" with ".json" gives "saves/slot01.json".
func SiblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Marshal renders doc in format f. indent <= 0 uses DefaultIndent.
func Marshal(doc *save.Document, f Format, indent int) ([]byte, error) {
	if indent <= 0 {
		indent = DefaultIndent
	}
	var buf bytes.Buffer
	switch f {
	case JSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indent))
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a structured document in format f
func Unmarshal(data []byte, f Format) (*save.Document, error) {
	var doc save.Document
	switch f {
	case JSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return &doc, nil
}
