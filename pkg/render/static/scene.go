package static

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/glyph"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// scene is a layout resolved to figure pixels, shared by the SVG and PNG
// sinks.
type scene struct {
	width, height float64
	fontSize      float64
	title         string

	glyphs  []shape
	ruler   []segment
	ticks   []text
	leaders []segment
	labels  []text
}

type shape struct {
	id      string
	points  []glyph.Point
	fill    string
	tooltip string
}

type segment struct {
	x1, y1, x2, y2 float64
}

type text struct {
	id    string
	x, y  float64
	value string
}

type sceneOptions struct {
	title   string
	noRuler bool
}

func buildScene(rec record.Record, l layout.Layout, opts sceneOptions) (scene, error) {
	if err := l.Covers(rec); err != nil {
		return scene{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout does not match record %q", rec.Name)
	}

	fr := newFrame(l)
	s := scene{
		width:    fr.width,
		height:   fr.height,
		fontSize: fr.fontSize,
		title:    opts.title,
	}

	gen := glyph.NewGenerator(l.SequenceLength)
	width := l.Options.GlyphWidth
	if width == 0 {
		width = glyph.DefaultWidth
	}
	// Text baselines sit a third of the font size below the anchor so the
	// label is vertically centred on it.
	baseline := fr.fontSize / 3

	for _, f := range rec.Features {
		level := float64(l.Levels[f.ID])
		p, err := gen.Feature(f, width, level, nil)
		if err != nil {
			return scene{}, err
		}
		pts := make([]glyph.Point, p.Len())
		for i, pt := range p.Points() {
			pts[i] = glyph.Point{X: fr.x(pt.X), Y: fr.y(pt.Y)}
		}
		s.glyphs = append(s.glyphs, shape{id: f.ID, points: pts, fill: f.Color, tooltip: f.Tooltip()})

		if !f.Labeled() {
			continue
		}
		xc := fr.x(f.XCenter())
		if l.Inline[f.ID] {
			s.labels = append(s.labels, text{id: f.ID, x: xc, y: fr.y(level) + baseline, value: f.Label})
			continue
		}
		pd, ok := l.PlotData[f.ID]
		if !ok {
			continue
		}
		top := fr.y(pd.AnnotationY)
		s.labels = append(s.labels, text{id: f.ID, x: xc, y: top + baseline, value: f.Label})
		s.leaders = append(s.leaders, segment{
			x1: xc, y1: top + fr.fontSize/2,
			x2: xc, y2: fr.y(pd.FeatureY + width/2),
		})
	}

	if !opts.noRuler {
		y := fr.y(rulerY)
		s.ruler = append(s.ruler, segment{x1: 0, y1: y, x2: s.width, y2: y})
		for _, v := range ticks(l.SequenceLength) {
			x := fr.x(v)
			s.ruler = append(s.ruler, segment{x1: x, y1: y, x2: x, y2: y + 4})
			s.ticks = append(s.ticks, text{x: x, y: y + 6 + fr.fontSize, value: formatTick(v)})
		}
	}

	return s, nil
}

func formatTick(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%g", v)
}
