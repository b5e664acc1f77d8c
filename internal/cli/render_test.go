package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/featureviewer/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,html,png", []string{"svg", "html", "png"}},
		{" SVG , json ,", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name                       string
		outDir, input, rec, format string
		want                       string
	}{
		{"next to input", "", "data/puc19.json", "pUC19", "svg", filepath.Join("data", "pUC19.svg")},
		{"output dir", "out", "data/puc19.json", "pUC19", "html", filepath.Join("out", "pUC19.html")},
		{"unsafe name", "out", "a.gff3", "chr 1/plasmid", "png", filepath.Join("out", "chr_1_plasmid.png")},
		{"traversal name", "out", "a.json", "..", "svg", filepath.Join("out", "record.svg")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.outDir, tt.input, tt.rec, tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDefaultsFromConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	inline := true
	c.Config.Render.Width = 9
	c.Config.Render.Formats = []string{"html"}
	c.Config.Render.InlineLabels = &inline

	opts := c.renderDefaults()
	if opts.Width != 9 || !opts.InlineLabels || !slices.Equal(opts.Formats, []string{"html"}) {
		t.Errorf("renderDefaults() = %+v", opts)
	}
}

func TestRenderCommand(t *testing.T) {
	status := hermetic(t)
	input := writeRecord(t)
	out := filepath.Join(t.TempDir(), "figures")

	err := execute(t, "render", "--no-cache", "-f", "svg,png,html,json", "--title", "pUC19 map", "-o", out, input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, format := range []string{"svg", "png", "html", "json"} {
		info, err := os.Stat(filepath.Join(out, "pUC19."+format))
		if err != nil {
			t.Errorf("missing %s output: %v", format, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", format)
		}
	}

	svg, _ := os.ReadFile(filepath.Join(out, "pUC19.svg"))
	if !strings.Contains(string(svg), "pUC19 map") {
		t.Error("svg output is missing the title")
	}
	if !strings.Contains(status.String(), "3 features") {
		t.Errorf("status output = %q, want feature count", status.String())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	hermetic(t)
	input := writeRecord(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "--no-cache", "-f", "gif", input}},
		{"negative width", []string{"render", "--no-cache", "--width", "-1", input}},
		{"missing file", []string{"render", "--no-cache", filepath.Join(t.TempDir(), "nope.json")}},
		{"unsupported extension", []string{"render", "--no-cache", "notes.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderCommandCached(t *testing.T) {
	status := hermetic(t)
	input := writeRecord(t)

	if err := execute(t, "render", "-f", pipeline.FormatSVG, input); err != nil {
		t.Fatalf("first render: %v", err)
	}
	status.Reset()
	if err := execute(t, "render", "-f", pipeline.FormatSVG, input); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(status.String(), "cached") {
		t.Errorf("second run output = %q, want cached", status.String())
	}
}
