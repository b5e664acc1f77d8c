package interactive

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestFromRecords(t *testing.T) {
	cs := FromRecords([]Row{
		{"x": 1.0, "text": "a"},
		{"x": 2.0, "color": "#fff"},
		{"text": "c"},
	})

	if cs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cs.Len())
	}
	if got, want := cs.Names(), []string{"text", "x", "color"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	tests := []struct {
		column string
		want   []any
	}{
		{"x", []any{1.0, 2.0, nil}},
		{"text", []any{"a", nil, "c"}},
		{"color", []any{nil, "#fff", nil}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := cs.Column(tt.column); !slices.Equal(got, tt.want) {
				t.Errorf("Column(%s) = %v, want %v", tt.column, got, tt.want)
			}
		})
	}

	if cs.Column("missing") != nil {
		t.Error("unknown column should be nil")
	}
	if row := cs.Row(1); len(row) != 2 || row["color"] != "#fff" {
		t.Errorf("Row(1) = %v", row)
	}
}

func TestFromRecordsEmpty(t *testing.T) {
	cs := FromRecords(nil)
	if cs.Len() != 0 || len(cs.Names()) != 0 {
		t.Errorf("empty source = %d rows, %v", cs.Len(), cs.Names())
	}
	data, err := json.Marshal(cs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Marshal() = %s, want {}", data)
	}
}

func TestColumnSourceJSON(t *testing.T) {
	cs := FromRecords([]Row{{"y": 1, "x": "a"}, {"x": "b", "z": true}})

	data, err := json.Marshal(cs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"x":["a","b"],"y":[1,null],"z":[null,true]}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back ColumnSource
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !slices.Equal(back.Names(), cs.Names()) || back.Len() != 2 {
		t.Errorf("round trip = %v (%d rows)", back.Names(), back.Len())
	}

	if err := json.Unmarshal([]byte(`{"a":[1],"b":[1,2]}`), &back); err == nil {
		t.Error("ragged columns should fail")
	}
}
