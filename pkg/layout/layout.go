package layout

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// PixelsPerInch converts figure inches to canvas pixels. The interactive
// canvas is sized from the static figure with this factor.
const PixelsPerInch = 100

// Options configures the static layout pass.
type Options struct {
	// GlyphWidth is the glyph thickness in level units.
	GlyphWidth float64 `json:"glyph_width"`
	// LevelHeight is the height of one level in inches.
	LevelHeight float64 `json:"level_height"`
	// AnnotationHeight is the spacing between label rows in level units.
	AnnotationHeight float64 `json:"annotation_height"`
	// FontSize is the label size in pixels.
	FontSize float64 `json:"font_size"`
	// DPI is the static figure resolution used to convert label widths.
	DPI float64 `json:"dpi"`
	// LabelPadding is the horizontal gap kept around each label, in pixels.
	LabelPadding float64 `json:"label_padding"`
	// InlineLabels draws labels inside glyphs when they fit.
	InlineLabels bool `json:"inline_labels"`
}

// DefaultOptions returns the layout defaults.
func DefaultOptions() Options {
	return Options{
		GlyphWidth:       0.3,
		LevelHeight:      0.5,
		AnnotationHeight: 0.5,
		FontSize:         12,
		DPI:              PixelsPerInch,
		LabelPadding:     4,
		InlineLabels:     true,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GlyphWidth == 0 {
		o.GlyphWidth = d.GlyphWidth
	}
	if o.LevelHeight == 0 {
		o.LevelHeight = d.LevelHeight
	}
	if o.AnnotationHeight == 0 {
		o.AnnotationHeight = d.AnnotationHeight
	}
	if o.FontSize == 0 {
		o.FontSize = d.FontSize
	}
	if o.DPI == 0 {
		o.DPI = d.DPI
	}
	return o
}

// Measurer measures label widths in pixels.
type Measurer interface {
	TextWidth(s string) float64
}

// PlotData anchors an external label and the glyph it belongs to.
type PlotData struct {
	AnnotationY float64 `json:"annotation_y"`
	FeatureY    float64 `json:"feature_y"`
}

// Layout is the result of the static pass.
type Layout struct {
	SequenceLength float64             `json:"sequence_length"`
	WidthInches    float64             `json:"width_inches"`
	HeightInches   float64             `json:"height_inches"`
	Levels         map[string]int      `json:"levels"`
	PlotData       map[string]PlotData `json:"plot_data"`
	Inline         map[string]bool     `json:"inline,omitempty"`
	Options        Options             `json:"options"`
}

// MaxLevel returns the highest feature level, or 0 without features.
func (l Layout) MaxLevel() int {
	m := 0
	for _, lv := range l.Levels {
		m = max(m, lv)
	}
	return m
}

// LevelCount returns the number of stacking levels in use: MaxLevel()+1,
// or 0 without features.
func (l Layout) LevelCount() int {
	if len(l.Levels) == 0 {
		return 0
	}
	return l.MaxLevel() + 1
}

// MaxY returns the highest vertical anchor: the maximum over all feature
// levels and all label annotation heights, or 0 when there are neither.
func (l Layout) MaxY() float64 {
	m := 0.0
	for _, lv := range l.Levels {
		m = max(m, float64(lv))
	}
	for _, pd := range l.PlotData {
		m = max(m, pd.AnnotationY)
	}
	return m
}

// PixelSize returns the figure size in canvas pixels.
func (l Layout) PixelSize() (width, height int) {
	return int(PixelsPerInch * l.WidthInches), int(PixelsPerInch * l.HeightInches)
}

// LabeledIDs returns the IDs with plot data, sorted.
func (l Layout) LabeledIDs() []string {
	return slices.Sorted(maps.Keys(l.PlotData))
}

// Covers checks that the layout assigns exactly one level to every feature
// of rec and nothing else.
func (l Layout) Covers(rec record.Record) error {
	if len(l.Levels) != len(rec.Features) {
		return fmt.Errorf("layout has %d levels for %d features", len(l.Levels), len(rec.Features))
	}
	for _, f := range rec.Features {
		if _, ok := l.Levels[f.ID]; !ok {
			return fmt.Errorf("feature %q has no level", f.ID)
		}
	}
	for id := range l.PlotData {
		if _, ok := l.Levels[id]; !ok {
			return fmt.Errorf("plot data for unknown feature %q", id)
		}
	}
	return nil
}

// Compute runs the static layout for rec on a figure widthInches wide.
// rec must be normalized and valid.
func Compute(rec record.Record, m Measurer, widthInches float64, opts Options) (Layout, error) {
	if widthInches <= 0 {
		return Layout{}, errors.Configuration("figure width must be positive, got %g", widthInches)
	}
	opts = opts.withDefaults()

	spans := make([]Interval, len(rec.Features))
	for i, f := range rec.Features {
		spans[i] = Interval{ID: f.ID, Start: f.Start, End: f.End}
	}

	l := Layout{
		SequenceLength: rec.SequenceLength,
		WidthInches:    widthInches,
		Levels:         ComputeLevels(spans),
		PlotData:       make(map[string]PlotData),
		Inline:         make(map[string]bool),
		Options:        opts,
	}

	unitsPerPx := rec.SequenceLength / (widthInches * opts.DPI)
	pad := opts.LabelPadding * unitsPerPx

	var boxes []Interval
	for _, f := range rec.Features {
		if !f.Labeled() {
			continue
		}
		w := m.TextWidth(f.Label) * unitsPerPx
		if opts.InlineLabels && w+2*pad <= f.Length() {
			l.Inline[f.ID] = true
			continue
		}
		xc := f.XCenter()
		boxes = append(boxes, Interval{ID: f.ID, Start: xc - w/2 - pad, End: xc + w/2 + pad})
	}

	base := float64(l.MaxLevel()) + 1
	for id, row := range ComputeLevels(boxes) {
		l.PlotData[id] = PlotData{
			AnnotationY: base + float64(row)*opts.AnnotationHeight,
			FeatureY:    float64(l.Levels[id]),
		}
	}

	l.HeightInches = (l.MaxY() + 2) * opts.LevelHeight
	return l, nil
}
