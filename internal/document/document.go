// Package document reads and writes the structured form of opening_hours
// values: YAML or JSON documents listing rules field by field, with time
// literals as scalars. It is the boundary between files or stdin and the
// model; canonical tag text is the render package's job.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Anastasialos/osmoh/internal/model"
)

// ─── Formats ──────────────────────────────────────────────────────────────────

// Format selects the document encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// ParseFormat reads a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatYAML, fmt.Errorf("unknown format %q: expected yaml or json", s)
}

// DetectFormat picks a format from a file extension; anything but .json
// reads as YAML, which accepts JSON input too.
func DetectFormat(path string) Format {
	if filepath.Ext(path) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// ─── Decoding ─────────────────────────────────────────────────────────────────

// DecodeDocument parses a document without converting it, keeping
// metadata such as the top-level name. Unknown fields are rejected.
func DecodeDocument(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("parsing document: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return Document{}, fmt.Errorf("empty document (is stdin empty?)")
			}
			return Document{}, fmt.Errorf("parsing document: %w", err)
		}
	}
	return doc, nil
}

// Decode parses a document and converts it to model rules. Every
// conversion problem is reported in one error.
func Decode(data []byte, format Format) (model.Rules, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return doc.ToRules()
}

// EncodeDocument marshals a document as written. YAML output is the
// default pipe format; JSON is indented for readability.
func EncodeDocument(doc Document, format Format) ([]byte, error) {
	if format == FormatJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(doc)
}

// Encode converts rules back to their normalized document form.
func Encode(rules model.Rules, format Format) ([]byte, error) {
	return EncodeDocument(FromRules(rules), format)
}

// ─── Input plumbing ───────────────────────────────────────────────────────────

// ReadInput reads a document from path, or from stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return data, nil
}

// LoadDocument reads and parses a document in one step. Stdin decodes as
// YAML, which accepts JSON input too.
func LoadDocument(path string) (Document, error) {
	data, err := ReadInput(path)
	if err != nil {
		return Document{}, err
	}
	format := FormatYAML
	if path != "-" {
		format = DetectFormat(path)
	}
	return DecodeDocument(data, format)
}

// Load reads a document and converts it to model rules in one step.
func Load(path string) (model.Rules, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.ToRules()
}

// IsTTY returns true if stdout is a terminal (not a pipe).
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
