package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/record"
)

func sample() record.Record {
	return record.Record{
		Name:           "pUC19",
		SequenceLength: 2686,
		Features: []record.Feature{
			{ID: "lacZ", Start: 146, End: 470, Strand: record.Reverse, Label: "lacZα", Color: "#ffcccc"},
			{ID: "bla", Start: 1626, End: 2486, Strand: record.Reverse, Label: "AmpR", HTML: "<b>bla</b>"},
			{ID: "ori", Start: 867, End: 1456, Strand: record.Unstranded},
		},
	}
}

func equalRecords(t *testing.T, got, want record.Record) {
	t.Helper()
	if got.Name != want.Name || got.SequenceLength != want.SequenceLength {
		t.Fatalf("header = (%q, %g), want (%q, %g)", got.Name, got.SequenceLength, want.Name, want.SequenceLength)
	}
	if len(got.Features) != len(want.Features) {
		t.Fatalf("features = %d, want %d", len(got.Features), len(want.Features))
	}
	for i := range want.Features {
		if got.Features[i] != want.Features[i] {
			t.Errorf("feature %d = %+v, want %+v", i, got.Features[i], want.Features[i])
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	equalRecords(t, got, sample())
}

func TestTOMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTOML(sample(), &buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML: %v\n%s", err, buf.String())
	}
	equalRecords(t, got, sample())
}

func TestReadRejectsUnknownFields(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"sequence_length": 10, "featurs": []}`)); err == nil {
		t.Error("ReadJSON should reject unknown fields")
	}
	if _, err := ReadTOML(strings.NewReader("sequence_length = 10\nlenght = 3\n")); err == nil {
		t.Error("ReadTOML should reject unknown fields")
	}
}

const gffSample = "##gff-version 3\n" +
	"##sequence-region ctg1 1 5000\n" +
	"ctg1\tsrc\tregion\t1\t5000\t.\t+\t.\tID=ctg1\n" +
	"ctg1\tsrc\tgene\t101\t400\t.\t+\t.\tID=gene1;Name=abc%3B1\n" +
	"ctg1\tsrc\tCDS\t101\t200\t.\t+\t0\tID=cds1;Parent=gene1;product=Abc protein\n" +
	"ctg1\tsrc\tCDS\t301\t400\t.\t+\t0\tID=cds1;Parent=gene1\n" +
	"ctg1\tsrc\tgene\t900\t1200\t.\t-\t.\tlocus_tag=T_002;color=#ff0000;Note=putative%20kinase,ignored\n" +
	"# comment\n" +
	"ctg2\tsrc\tgene\t5\t50\t.\t.\t.\t.\n" +
	"##FASTA\n" +
	">ctg1\nACGT\n"

func TestReadGFF(t *testing.T) {
	recs, err := ReadGFF(strings.NewReader(gffSample))
	if err != nil {
		t.Fatalf("ReadGFF: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}

	ctg1 := recs[0]
	if ctg1.Name != "ctg1" || ctg1.SequenceLength != 5000 {
		t.Errorf("ctg1 header = (%q, %g)", ctg1.Name, ctg1.SequenceLength)
	}
	want := []record.Feature{
		{ID: "gene1", Start: 100, End: 400, Strand: record.Forward, Label: "abc;1"},
		{ID: "cds1", Start: 100, End: 200, Strand: record.Forward, Label: "Abc protein"},
		{ID: "cds1.1", Start: 300, End: 400, Strand: record.Forward},
		{Start: 899, End: 1200, Strand: record.Reverse, Label: "T_002", Color: "#ff0000", HTML: "<b>T_002</b><br>putative kinase"},
	}
	if len(ctg1.Features) != len(want) {
		t.Fatalf("ctg1 features = %d, want %d", len(ctg1.Features), len(want))
	}
	for i := range want {
		if ctg1.Features[i] != want[i] {
			t.Errorf("feature %d = %+v, want %+v", i, ctg1.Features[i], want[i])
		}
	}

	ctg2 := recs[1]
	if ctg2.SequenceLength != 50 || len(ctg2.Features) != 1 || ctg2.Features[0].Strand != record.Unstranded {
		t.Errorf("ctg2 = %+v", ctg2)
	}

	if err := ctg1.Normalize().Validate(); err != nil {
		t.Errorf("imported record should validate: %v", err)
	}
}

func TestReadGFFGeneratedIDs(t *testing.T) {
	input := "ctg1\tsrc\tCDS\t1\t10\t.\t+\t0\tID=cds1\n" +
		"ctg1\tsrc\tCDS\t21\t30\t.\t+\t0\tID=cds1\n" +
		"ctg1\tsrc\tgene\t41\t50\t.\t+\t.\tID=cds1.1\n"
	recs, err := ReadGFF(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGFF: %v", err)
	}
	var ids []string
	for _, f := range recs[0].Features {
		ids = append(ids, f.ID)
	}
	want := []string{"cds1", "cds1.2", "cds1.1"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("IDs = %v, want %v", ids, want)
	}
	if err := recs[0].Normalize().Validate(); err != nil {
		t.Errorf("imported record should validate: %v", err)
	}
}

func TestReadGFFEscapedSequenceRegion(t *testing.T) {
	input := "##sequence-region ctg%201 1 5000\n" +
		"ctg%201\tsrc\tgene\t1\t10\t.\t+\t.\tID=a\n"
	recs, err := ReadGFF(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGFF: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].Name != "ctg 1" || recs[0].SequenceLength != 5000 {
		t.Errorf("header = (%q, %g), want (\"ctg 1\", 5000)", recs[0].Name, recs[0].SequenceLength)
	}
}

func TestReadNonFiniteRejected(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"nan start", "sequence_length = 100\n[[features]]\nid = \"a\"\nstart = nan\nend = 10\n"},
		{"infinite length", "sequence_length = inf\n[[features]]\nid = \"a\"\nstart = 0\nend = 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ReadTOML(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadTOML: %v", err)
			}
			if err := rec.Normalize().Validate(); !errors.IsConfiguration(err) {
				t.Errorf("Validate() error = %v, want CONFIGURATION", err)
			}
		})
	}
}

func TestReadGFFErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"columns", "ctg1\tsrc\tgene\t1\t10\n"},
		{"start", "ctg1\tsrc\tgene\tx\t10\t.\t+\t.\t.\n"},
		{"attribute", "ctg1\tsrc\tgene\t1\t10\t.\t+\t.\tNoValue\n"},
		{"region", "##sequence-region ctg1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadGFF(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadGFF should fail")
			}
		})
	}
}

func TestImportRecords(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "plasmid.json")
	rec := sample()
	rec.Name = ""
	if err := ExportJSON(rec, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportRecord(jsonPath)
	if err != nil {
		t.Fatalf("ImportRecord: %v", err)
	}
	if got.Name != "plasmid" {
		t.Errorf("Name = %q, want file stem", got.Name)
	}

	gffPath := filepath.Join(dir, "genome.gff3")
	if err := os.WriteFile(gffPath, []byte(gffSample), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ImportRecords(gffPath)
	if err != nil || len(recs) != 2 {
		t.Fatalf("ImportRecords(gff) = %d records, %v", len(recs), err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.json"), errors.ErrCodeFileNotFound},
		{"extension", gffPath + ".txt", errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportRecords(tt.path); !errors.Is(err, tt.code) {
				t.Errorf("ImportRecords() error = %v, want %s", err, tt.code)
			}
		})
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportRecords(txt); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ImportRecords(.txt) error = %v, want UNSUPPORTED", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportRecords(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ImportRecords(bad) error = %v, want INVALID_FORMAT", err)
	}
}
