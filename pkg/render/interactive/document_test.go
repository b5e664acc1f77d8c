package interactive

import (
	"math"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

func testInput() Input {
	rec := record.Record{
		Name:           "demo",
		SequenceLength: 1000,
		Features: []record.Feature{
			{ID: "a", Start: 100, End: 200, Strand: record.Forward, Color: "#ff0000", Label: "lacZ", HTML: "<b>lacZ</b>"},
			{ID: "b", Start: 150, End: 300, Strand: record.Reverse, Color: "#00ff00", Label: "lacY"},
			{ID: "c", Start: 600, End: 700, Strand: record.Forward, Color: "#0000ff"},
		},
	}
	l := layout.Layout{
		SequenceLength: 1000,
		WidthInches:    8,
		HeightInches:   2,
		Levels:         map[string]int{"a": 0, "b": 1, "c": 0},
		PlotData: map[string]layout.PlotData{
			"a": {AnnotationY: 2, FeatureY: 0},
			"b": {AnnotationY: 2.5, FeatureY: 1},
		},
	}
	return Input{Record: rec, Layout: l, WidthPx: 800, HeightPx: 200}
}

func TestBuild(t *testing.T) {
	doc, err := New().Build(testInput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if doc.Width != 800 || doc.Height != 200 {
		t.Errorf("size = %dx%d, want 800x200", doc.Width, doc.Height)
	}
	if doc.XRange != (Range{0, 1000}) {
		t.Errorf("XRange = %v", doc.XRange)
	}
	if doc.YRange != (Range{-1, 3.5}) {
		t.Errorf("YRange = %v, want [-1, 3.5]", doc.YRange)
	}
	if doc.Hover.Tooltips != "@hover_html" {
		t.Errorf("Hover = %q", doc.Hover.Tooltips)
	}
	if !slices.Equal(doc.Tools, []string{"xpan", "xwheel_zoom", "reset", "tap"}) {
		t.Errorf("Tools = %v", doc.Tools)
	}
	if doc.Chrome != (Chrome{}) {
		t.Errorf("Chrome = %+v, want all off", doc.Chrome)
	}
	if doc.Patches.LineColor != "#000000" {
		t.Errorf("LineColor = %q", doc.Patches.LineColor)
	}

	src := doc.Patches.Source
	if src.Len() != 3 {
		t.Fatalf("patches = %d, want 3", src.Len())
	}
	if got := src.Column("hover_html"); !slices.Equal(got, []any{"<b>lacZ</b>", "lacY", ""}) {
		t.Errorf("hover_html = %v", got)
	}
	if got := src.Column("color"); !slices.Equal(got, []any{"#ff0000", "#00ff00", "#0000ff"}) {
		t.Errorf("color = %v", got)
	}

	// Reverse feature b at level 1: tip at start, tail at end.
	xs := src.Column("xs")[1].([]float64)
	ys := src.Column("ys")[1].([]float64)
	if xs[0] != 300 || xs[3] != 150 {
		t.Errorf("reverse xs = %v", xs)
	}
	if ys[3] != 1 || math.Abs(ys[1]-1.15) > 1e-9 {
		t.Errorf("level 1 ys = %v", ys)
	}

	if doc.Labels == nil || doc.Leaders == nil {
		t.Fatal("label layers missing")
	}
	if got := doc.Labels.Source.Column("text"); !slices.Equal(got, []any{"lacZ", "lacY"}) {
		t.Errorf("text = %v", got)
	}
	if got := doc.Labels.Source.Column("x"); !slices.Equal(got, []any{150.0, 225.0}) {
		t.Errorf("text x = %v", got)
	}
	if got := doc.Leaders.Source.Column("y1"); !slices.Equal(got, []any{0.0, 1.0}) {
		t.Errorf("segment y1 = %v", got)
	}
	if got := doc.Leaders.Source.Column("y0"); !slices.Equal(got, []any{2.0, 2.5}) {
		t.Errorf("segment y0 = %v", got)
	}
	if doc.Leaders.LineWidth != 0.5 || doc.Labels.FontSize != "12px" || doc.Labels.Font != "arial" {
		t.Errorf("layer styles = %+v %+v", doc.Leaders, doc.Labels)
	}
}

func TestBuildWithoutLabels(t *testing.T) {
	in := testInput()
	for i := range in.Record.Features {
		in.Record.Features[i].Label = ""
		in.Record.Features[i].HTML = ""
	}
	in.Layout.PlotData = map[string]layout.PlotData{}

	doc, err := New().Build(in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if doc.Labels != nil || doc.Leaders != nil {
		t.Error("no text or segment layer expected without plot data")
	}
	if doc.YRange != (Range{-1, 2}) {
		t.Errorf("YRange = %v, want [-1, 2]", doc.YRange)
	}
	if doc.Patches.Source.Len() != 3 {
		t.Errorf("patches = %d, want 3", doc.Patches.Source.Len())
	}
}

func TestBuildEmptyRecord(t *testing.T) {
	in := Input{
		Record:   record.Record{SequenceLength: 10},
		Layout:   layout.Layout{SequenceLength: 10, Levels: map[string]int{}},
		WidthPx:  500,
		HeightPx: 100,
	}
	doc, err := New().Build(in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if doc.YRange != (Range{-1, 1}) {
		t.Errorf("YRange = %v, want [-1, 1]", doc.YRange)
	}
	if doc.Patches.Source.Len() != 0 {
		t.Errorf("patches = %d, want 0", doc.Patches.Source.Len())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		code   errors.Code
	}{
		{"layout mismatch", func(in *Input) { delete(in.Layout.Levels, "c") }, errors.ErrCodeInvalidInput},
		{"zero canvas", func(in *Input) { in.WidthPx = 0 }, errors.ErrCodeConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInput()
			tt.mutate(&in)
			if _, err := New().Build(in); !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRequirements(t *testing.T) {
	if err := capability.Probe(New().Requirements()...); err != nil {
		t.Fatalf("default backend should be available: %v", err)
	}

	tests := []struct {
		name string
		opts []Option
	}{
		{"no runtime", []Option{WithRuntime(fstest.MapFS{})}},
		{"empty runtime", []Option{WithRuntime(fstest.MapFS{RuntimePath: {Data: nil}})}},
		{"no tables", []Option{WithTables(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := capability.Probe(New(tt.opts...).Requirements()...)
			if !errors.IsMissingDependency(err) {
				t.Errorf("Probe() error = %v, want MISSING_DEPENDENCY", err)
			}
		})
	}

	if _, err := New(WithTables(nil)).Build(testInput()); !errors.IsMissingDependency(err) {
		t.Errorf("Build() error = %v, want MISSING_DEPENDENCY", err)
	}
}
