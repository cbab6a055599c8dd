package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a Document to indented JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ReadDocumentFile reads a JSON file and returns the decoded Document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// WriteDocumentFile writes a Document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encodeTo(f, d)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout converts a Layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout deserializes JSON bytes to a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	return encodeTo(w, l)
}

// ReadLayout decodes a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encodeTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
