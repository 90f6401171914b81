// Package load reads IR documents from serialized files and GraphQL sources.
//
// Serialized documents are selected by file extension:
//
//	.json          JSON
//	.yaml, .yml    YAML
//	.msgpack, .mpk MessagePack
//
// GraphQL schema and operation files are lowered with LoadGraphQL.
// Every loader returns a linked document.
package load

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/gqlgo/compiler/ir"
)

// Format is a serialization format of IR documents.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatOf returns the format of the file at path, derived from its
// extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return "", ir.NewInputError("file", path, "unsupported extension "+filepath.Ext(path), nil)
}

// IsGraphQL reports whether path names a GraphQL source file.
func IsGraphQL(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphql", ".gql", ".graphqls":
		return true
	}
	return false
}

// Load reads and links the IR document at path.
func Load(path string) (*ir.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gqlgo: read IR: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes and links an IR document.
func Decode(data []byte, format Format) (*ir.Document, error) {
	var w Document
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&w)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&w)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		err = dec.Decode(&w)
	default:
		return nil, ir.NewInputError("document", "", fmt.Sprintf("unknown format %q", format), nil)
	}
	if err != nil {
		return nil, ir.NewInputError("document", "", "decode "+string(format), err)
	}
	doc, err := w.IR()
	if err != nil {
		return nil, err
	}
	if err := ir.Link(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode serializes doc in the given format.
func Encode(doc *ir.Document, format Format) ([]byte, error) {
	w := NewDocument(doc)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(w, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(w); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(w); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("gqlgo: unknown format %q", format)
}

// Save writes doc to path in the format of its extension.
func Save(doc *ir.Document, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return fmt.Errorf("gqlgo: encode IR: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gqlgo: write IR: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gqlgo: write IR: %w", err)
	}
	return nil
}
