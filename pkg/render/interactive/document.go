package interactive

import (
	"github.com/google/uuid"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/glyph"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// Fixed presentation of the interactive view.
const (
	GlyphWidth   = 0.3
	LineColor    = "#000000"
	HoverTooltip = "@hover_html"
	LabelFont    = "arial"
	LabelSize    = "12px"
	LeaderWidth  = 0.5
)

// DefaultTools are the interactions enabled on every document.
var DefaultTools = []string{"xpan", "xwheel_zoom", "reset", "tap"}

// Range is a closed axis interval.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// PatchLayer draws one polygon per row from the xs and ys columns, filled
// with the color column.
type PatchLayer struct {
	Source    *ColumnSource `json:"source"`
	LineColor string        `json:"line_color"`
}

// TextLayer draws the text column at (x, y).
type TextLayer struct {
	Source    *ColumnSource `json:"source"`
	Align     string        `json:"text_align"`
	FontSize  string        `json:"text_font_size"`
	Font      string        `json:"text_font"`
	FontStyle string        `json:"text_font_style"`
}

// SegmentLayer draws segments from (x0, y0) to (x1, y1).
type SegmentLayer struct {
	Source    *ColumnSource `json:"source"`
	LineWidth float64       `json:"line_width"`
	Color     string        `json:"color"`
}

// HoverTool shows a tooltip over patches. Fields starting with @ name a
// column of the patch source.
type HoverTool struct {
	Tooltips string `json:"tooltips"`
}

// Chrome toggles the decoration around the plot area.
type Chrome struct {
	YAxis   bool `json:"y_axis"`
	Outline bool `json:"outline"`
	Grid    bool `json:"grid"`
	Logo    bool `json:"logo"`
}

// Document is a complete interactive plot.
type Document struct {
	ID      uuid.UUID     `json:"id"`
	Title   string        `json:"title,omitempty"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	XRange  Range         `json:"x_range"`
	YRange  Range         `json:"y_range"`
	Patches PatchLayer    `json:"patches"`
	Labels  *TextLayer    `json:"labels,omitempty"`
	Leaders *SegmentLayer `json:"leaders,omitempty"`
	Hover   HoverTool     `json:"hover"`
	Tools   []string      `json:"tools"`
	Chrome  Chrome        `json:"chrome"`
}

// Input is what Build needs from the static pass.
type Input struct {
	Record   record.Record
	Layout   layout.Layout
	WidthPx  int
	HeightPx int
}

// Build assembles the interactive document for in.Record using the levels
// and label anchors of in.Layout.
func (b *Backend) Build(in Input) (*Document, error) {
	if b.tables == nil {
		return nil, errors.MissingDependency("column source builder not configured")
	}
	rec, l := in.Record, in.Layout
	if err := l.Covers(rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout does not match record %q", rec.Name)
	}
	if in.WidthPx <= 0 || in.HeightPx <= 0 {
		return nil, errors.Configuration("canvas size must be positive, got %dx%d", in.WidthPx, in.HeightPx)
	}

	gen := glyph.NewGenerator(rec.SequenceLength)
	patches := make([]Row, 0, len(rec.Features))
	var texts, segments []Row

	for _, f := range rec.Features {
		level := float64(l.Levels[f.ID])
		p, err := gen.Feature(f, GlyphWidth, level, glyph.Style{
			"color":      f.Color,
			"label":      f.Label,
			"hover_html": f.Tooltip(),
		})
		if err != nil {
			return nil, err
		}
		patches = append(patches, p.Row())

		pd, ok := l.PlotData[f.ID]
		if !ok {
			continue
		}
		xc := f.XCenter()
		texts = append(texts, Row{"x": xc, "y": pd.AnnotationY, "text": f.Label, "color": f.Color})
		segments = append(segments, Row{"x0": xc, "x1": xc, "y0": pd.AnnotationY, "y1": pd.FeatureY})
	}

	doc := &Document{
		ID:      uuid.New(),
		Title:   rec.Name,
		Width:   in.WidthPx,
		Height:  in.HeightPx,
		XRange:  Range{Start: 0, End: rec.SequenceLength},
		YRange:  Range{Start: -1, End: l.MaxY() + 1},
		Patches: PatchLayer{Source: b.tables(patches), LineColor: LineColor},
		Hover:   HoverTool{Tooltips: HoverTooltip},
		Tools:   append([]string(nil), DefaultTools...),
	}

	if len(l.PlotData) > 0 {
		doc.Labels = &TextLayer{
			Source:    b.tables(texts),
			Align:     "center",
			FontSize:  LabelSize,
			Font:      LabelFont,
			FontStyle: "normal",
		}
		doc.Leaders = &SegmentLayer{
			Source:    b.tables(segments),
			LineWidth: LeaderWidth,
			Color:     LineColor,
		}
	}

	b.logger.Debug("interactive document built",
		"id", doc.ID, "patches", len(patches), "labels", len(texts))
	return doc, nil
}

// DOMID returns the element id of the document canvas.
func (d *Document) DOMID() string { return "fv-" + d.ID.String() }
