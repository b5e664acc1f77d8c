package interactive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Row is one record of a column source: field name to value.
type Row = map[string]any

// TableBuilder converts rows into a column source.
type TableBuilder func(rows []Row) *ColumnSource

// ColumnSource is a set of named, equal-length columns.
type ColumnSource struct {
	names   []string
	columns map[string][]any
	n       int
}

// FromRecords builds a column source from rows. Column names are the union
// of row keys; keys of the first row come first in sorted order, later keys
// follow as they are first seen. Rows lacking a key get nil in that column.
func FromRecords(rows []Row) *ColumnSource {
	cs := &ColumnSource{columns: make(map[string][]any), n: len(rows)}
	for i, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			col, ok := cs.columns[k]
			if !ok {
				cs.names = append(cs.names, k)
				col = make([]any, len(rows))
			}
			col[i] = row[k]
			cs.columns[k] = col
		}
	}
	return cs
}

// Len returns the number of rows.
func (cs *ColumnSource) Len() int { return cs.n }

// Names returns the column names in order.
func (cs *ColumnSource) Names() []string { return slices.Clone(cs.names) }

// Column returns the named column, or nil when it does not exist.
func (cs *ColumnSource) Column(name string) []any { return cs.columns[name] }

// Row returns row i as a map. Nil cells are omitted.
func (cs *ColumnSource) Row(i int) Row {
	row := make(Row, len(cs.names))
	for _, name := range cs.names {
		if v := cs.columns[name][i]; v != nil {
			row[name] = v
		}
	}
	return row
}

// MarshalJSON encodes the columns as an object whose keys follow Names.
func (cs *ColumnSource) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range cs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		col, err := json.Marshal(cs.columns[name])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(col)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of equal-length arrays, keeping key order.
func (cs *ColumnSource) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("column source: expected object")
	}

	out := ColumnSource{columns: make(map[string][]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("column source: expected key, got %v", tok)
		}
		var col []any
		if err := dec.Decode(&col); err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		if len(out.names) > 0 && len(col) != out.n {
			return fmt.Errorf("column %s has %d rows, want %d", name, len(col), out.n)
		}
		out.n = len(col)
		out.names = append(out.names, name)
		out.columns[name] = col
	}
	*cs = out
	return nil
}
