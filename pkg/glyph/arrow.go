package glyph

import (
	"maps"
	"math"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// HeadLengthFraction is the fraction of the sequence length (and of the
// feature length) used as the minimum arrow head length.
const HeadLengthFraction = 0.025

// DefaultWidth is the glyph thickness used by the interactive backend, in
// level units.
const DefaultWidth = 0.3

// Generator builds glyphs for one sequence.
type Generator struct {
	SequenceLength float64
}

// NewGenerator returns a generator for a sequence of the given length.
func NewGenerator(sequenceLength float64) Generator {
	return Generator{SequenceLength: sequenceLength}
}

// Arrow returns the six-vertex arrow for the span [start, end).
//
// The tip sits at end for strand >= 0 (unstranded features point forward)
// and at start for strand < 0. The vertical extent is level ± width/2.
// Arrow returns a CONFIGURATION error when start >= end, width <= 0 or any
// of them is NaN or infinite.
func (g Generator) Arrow(start, end float64, strand record.Strand, width, level float64, style Style) (Patch, error) {
	if err := checkSpan(start, end, width); err != nil {
		return Patch{}, err
	}

	hw := width / 2
	x1, x2 := start, end
	if strand < 0 {
		x1, x2 = end, start
	}

	head := math.Max(HeadLengthFraction*g.SequenceLength, HeadLengthFraction*math.Abs(x2-x1))
	var headBase float64
	if strand >= 0 {
		headBase = math.Max(x1, x2-head)
	} else {
		headBase = math.Min(x1, x2+head)
	}

	return Patch{
		Xs:    []float64{x1, x1, headBase, x2, headBase, x1},
		Ys:    offsets(level, -hw, hw, hw, 0, -hw, -hw),
		Style: cloneStyle(style),
	}, nil
}

// Box returns a headless rectangle for the span [start, end).
func (g Generator) Box(start, end, width, level float64, style Style) (Patch, error) {
	if err := checkSpan(start, end, width); err != nil {
		return Patch{}, err
	}
	hw := width / 2
	return Patch{
		Xs:    []float64{start, start, end, end, start},
		Ys:    offsets(level, -hw, hw, hw, -hw, -hw),
		Style: cloneStyle(style),
	}, nil
}

// Feature is a convenience wrapper around Arrow for a record feature.
func (g Generator) Feature(f record.Feature, width, level float64, style Style) (Patch, error) {
	p, err := g.Arrow(f.Start, f.End, f.Strand, width, level, style)
	if err != nil {
		return Patch{}, errors.Wrap(errors.ErrCodeConfiguration, err, "feature %q", f.ID)
	}
	return p, nil
}

func checkSpan(start, end, width float64) error {
	if !(start < end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return errors.Configuration("glyph span [%g, %g) is empty or non-finite", start, end)
	}
	if !(width > 0) || math.IsInf(width, 0) {
		return errors.Configuration("glyph width must be positive and finite, got %g", width)
	}
	return nil
}

func offsets(level float64, dys ...float64) []float64 {
	ys := make([]float64, len(dys))
	for i, dy := range dys {
		ys[i] = level + dy
	}
	return ys
}

func cloneStyle(s Style) Style {
	if s == nil {
		return Style{}
	}
	return maps.Clone(s)
}
