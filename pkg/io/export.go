package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/featureviewer/pkg/record"
)

// WriteJSON encodes rec as indented JSON.
func WriteJSON(rec record.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes rec as TOML.
func WriteTOML(rec record.Record, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes rec to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rec record.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(rec, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
