package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// ReadJSON decodes one JSON record from r. Unknown fields are rejected so
// typos in field names surface instead of silently dropping data.
func ReadJSON(r io.Reader) (record.Record, error) {
	var rec record.Record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return record.Record{}, fmt.Errorf("decode: %w", err)
	}
	return rec, nil
}

// ReadTOML decodes one TOML record from r.
func ReadTOML(r io.Reader) (record.Record, error) {
	var rec record.Record
	md, err := toml.NewDecoder(r).Decode(&rec)
	if err != nil {
		return record.Record{}, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return record.Record{}, fmt.Errorf("decode: unknown field %q", undecoded[0].String())
	}
	return rec, nil
}

// ImportRecords reads every record in the file at path. The format is
// chosen by extension.
func ImportRecords(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rec record.Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		rec, err = ReadJSON(f)
	case ".toml":
		rec, err = ReadTOML(f)
	case ".gff", ".gff3":
		recs, err := ReadGFF(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", path)
		}
		return recs, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported record format %q (want .json, .toml, .gff or .gff3)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", path)
	}
	if rec.Name == "" {
		rec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return []record.Record{rec}, nil
}

// ImportRecord reads the file at path and returns its first record.
func ImportRecord(path string) (record.Record, error) {
	recs, err := ImportRecords(path)
	if err != nil {
		return record.Record{}, err
	}
	if len(recs) == 0 {
		return record.Record{}, errors.New(errors.ErrCodeInvalidInput, "%s contains no records", path)
	}
	return recs[0], nil
}
