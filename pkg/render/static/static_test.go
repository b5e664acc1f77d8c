package static

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

func testRecord() record.Record {
	return record.Record{
		Name:           "plasmid <1>",
		SequenceLength: 1000,
		Features: []record.Feature{
			{ID: "gene", Start: 200, End: 800, Strand: record.Forward, Color: "#ff0000", Label: "gene"},
			{ID: "prom", Start: 100, End: 110, Strand: record.Reverse, Label: "promoter region"},
			{ID: "site", Start: 900, End: 950, Strand: record.Unstranded},
		},
	}.Normalize()
}

func plot(t *testing.T, rec record.Record) layout.Layout {
	t.Helper()
	ax, l, err := New(layout.DefaultOptions()).Plot(rec, 10)
	if err != nil {
		t.Fatalf("Plot() error = %v", err)
	}
	if err := ax.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return l
}

func TestPlot(t *testing.T) {
	rec := testRecord()
	ax, l, err := New(layout.DefaultOptions()).Plot(rec, 10)
	if err != nil {
		t.Fatalf("Plot() error = %v", err)
	}

	w, h := ax.SizeInches()
	if w != 10 || h != l.HeightInches {
		t.Errorf("SizeInches() = (%g, %g), want (10, %g)", w, h, l.HeightInches)
	}
	if err := l.Covers(rec); err != nil {
		t.Errorf("Covers() error = %v", err)
	}
	if !l.Inline["gene"] {
		t.Error("gene label should fit inline")
	}
	if _, ok := l.PlotData["prom"]; !ok {
		t.Error("promoter label should be placed externally")
	}

	if err := ax.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := ax.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestPlotRejectsWidth(t *testing.T) {
	_, _, err := New(layout.DefaultOptions()).Plot(testRecord(), 0)
	if !errors.IsConfiguration(err) {
		t.Errorf("Plot(width 0) error = %v, want CONFIGURATION", err)
	}
}

func TestRenderSVG(t *testing.T) {
	rec := testRecord()
	l := plot(t, rec)

	out, err := RenderSVG(rec, l, WithTitle(rec.Name))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output is not a complete svg element")
	}
	if got := strings.Count(svg, "<polygon "); got != len(rec.Features) {
		t.Errorf("polygons = %d, want %d", got, len(rec.Features))
	}
	if got := strings.Count(svg, `<line class="leader"`); got != 1 {
		t.Errorf("leaders = %d, want 1", got)
	}
	if got := strings.Count(svg, `<text class="label"`); got != 2 {
		t.Errorf("labels = %d, want 2", got)
	}
	if !strings.Contains(svg, "plasmid &lt;1&gt;") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("feature color missing")
	}
	if !strings.Contains(svg, `class="tick"`) {
		t.Error("ruler ticks missing")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	rec := record.Record{
		SequenceLength: 100,
		Features:       []record.Feature{{Start: 10, End: 20, Strand: record.Forward}},
	}.Normalize()
	l := plot(t, rec)

	out, err := RenderSVG(rec, l, WithoutRuler())
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)
	for _, absent := range []string{`class="ruler"`, `class="leaders"`, `class="labels"`, `class="title"`} {
		if strings.Contains(svg, absent) {
			t.Errorf("output should not contain %s", absent)
		}
	}
}

func TestRenderSVGMismatchedLayout(t *testing.T) {
	rec := testRecord()
	l := plot(t, rec)
	rec.Features = append(rec.Features, record.Feature{ID: "extra", Start: 1, End: 2, Color: "#000"})

	if _, err := RenderSVG(rec, l); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderSVG() error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderPNG(t *testing.T) {
	rec := testRecord()
	l := plot(t, rec)

	out, err := RenderPNG(rec, l)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	wantH := int(math.Round(l.HeightInches * layout.PixelsPerInch))
	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != wantH {
		t.Fatalf("bounds = %v, want 1000x%d", b, wantH)
	}

	// A quarter of the way into the gene glyph, away from its label.
	fr := newFrame(l)
	r, g, b, _ := img.At(int(fr.x(300)), int(fr.y(0))).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("glyph pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}

	r, g, b, _ = img.At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("corner pixel = (%d, %d, %d), want white", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGNamedColor(t *testing.T) {
	rec := testRecord()
	rec.Features[0].Color = "steelblue"
	l := plot(t, rec)

	out, err := RenderPNG(rec, l, WithoutPNGRuler())
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	fr := newFrame(l)
	got := color.NRGBAModel.Convert(img.At(int(fr.x(300)), int(fr.y(0)))).(color.NRGBA)
	want := color.NRGBA{70, 130, 180, 255}
	near := func(a, b uint8) bool { return a >= b-4 && a <= b+4 }
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) {
		t.Errorf("glyph pixel = %v, want %v", got, want)
	}
}

func TestRenderPNGScale(t *testing.T) {
	rec := testRecord()
	l := plot(t, rec)

	out, err := RenderPNG(rec, l, WithScale(0.5), WithoutPNGRuler())
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 500 {
		t.Errorf("width = %d, want 500", cfg.Width)
	}

	if _, err := RenderPNG(rec, l, WithScale(0)); !errors.IsConfiguration(err) {
		t.Errorf("RenderPNG(scale 0) error = %v, want CONFIGURATION", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"#0f0", color.NRGBA{0, 255, 0, 255}},
		{"#0000ff80", color.NRGBA{0, 0, 255, 128}},
		{" #CCCCFF ", color.NRGBA{204, 204, 255, 255}},
		{"orange", color.NRGBA{255, 165, 0, 255}},
		{"SteelBlue", color.NRGBA{70, 130, 180, 255}},
		{"nonsense", color.NRGBA{204, 204, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := color.NRGBAModel.Convert(parseColor(tt.in)).(color.NRGBA)
			if got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		seqLen float64
		want   []float64
	}{
		{1000, []float64{0, 200, 400, 600, 800, 1000}},
		{50, []float64{0, 10, 20, 30, 40, 50}},
		{7, []float64{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		got := ticks(tt.seqLen)
		if len(got) != len(tt.want) {
			t.Errorf("ticks(%g) = %v, want %v", tt.seqLen, got, tt.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("ticks(%g)[%d] = %g, want %g", tt.seqLen, i, got[i], tt.want[i])
			}
		}
	}
}
