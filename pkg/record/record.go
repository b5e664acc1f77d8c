package record

import (
	"fmt"
	"math"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

// DefaultColor is the fill used for features that do not specify one.
const DefaultColor = "#ccccff"

// Strand is the direction a feature reads in.
type Strand int

const (
	Reverse    Strand = -1
	Unstranded Strand = 0
	Forward    Strand = 1
)

// Valid reports whether s is one of Reverse, Unstranded or Forward.
func (s Strand) Valid() bool { return s >= Reverse && s <= Forward }

// String returns the GFF-style symbol for the strand.
func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// Feature is a directional annotated interval on the sequence axis.
type Feature struct {
	ID     string  `json:"id,omitempty" toml:"id"`
	Start  float64 `json:"start" toml:"start"`
	End    float64 `json:"end" toml:"end"`
	Strand Strand  `json:"strand" toml:"strand"`
	Color  string  `json:"color,omitempty" toml:"color"`
	Label  string  `json:"label,omitempty" toml:"label"`
	HTML   string  `json:"html,omitempty" toml:"html"`
}

// Length returns End - Start.
func (f Feature) Length() float64 { return f.End - f.Start }

// XCenter returns the horizontal midpoint of the feature.
func (f Feature) XCenter() float64 { return (f.Start + f.End) / 2 }

// Labeled reports whether the feature carries a label.
func (f Feature) Labeled() bool { return f.Label != "" }

// Tooltip returns the rich tooltip content, falling back to the label.
func (f Feature) Tooltip() string {
	if f.HTML != "" {
		return f.HTML
	}
	return f.Label
}

// Record is a sequence of a given length with its features.
type Record struct {
	Name           string    `json:"name,omitempty" toml:"name"`
	SequenceLength float64   `json:"sequence_length" toml:"sequence_length"`
	Features       []Feature `json:"features" toml:"features"`
}

// Feature returns the feature with the given ID.
func (r Record) Feature(id string) (Feature, bool) {
	for _, f := range r.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// LabeledCount returns the number of features with a label.
func (r Record) LabeledCount() int {
	n := 0
	for _, f := range r.Features {
		if f.Labeled() {
			n++
		}
	}
	return n
}

// Normalize returns a copy of r with missing feature IDs set to "f<index>"
// and missing colors set to DefaultColor. A generated ID that another
// feature already uses gets a "_<n>" suffix. The receiver is not modified.
func (r Record) Normalize() Record {
	taken := make(map[string]bool, len(r.Features))
	for _, f := range r.Features {
		if f.ID != "" {
			taken[f.ID] = true
		}
	}

	out := r
	out.Features = make([]Feature, len(r.Features))
	for i, f := range r.Features {
		if f.ID == "" {
			id := fmt.Sprintf("f%d", i)
			for n := 1; taken[id]; n++ {
				id = fmt.Sprintf("f%d_%d", i, n)
			}
			taken[id] = true
			f.ID = id
		}
		if f.Color == "" {
			f.Color = DefaultColor
		}
		out.Features[i] = f
	}
	return out
}

// Validate checks that every feature can be drawn.
// Features must satisfy 0 <= Start < End <= SequenceLength, carry a valid
// strand and a unique (non-empty) ID. Call Normalize first to fill IDs.
func (r Record) Validate() error {
	if !finite(r.SequenceLength) || r.SequenceLength <= 0 {
		return errors.Configuration("sequence length must be positive and finite, got %g", r.SequenceLength)
	}

	seen := make(map[string]struct{}, len(r.Features))
	for i, f := range r.Features {
		if f.ID == "" {
			return errors.Configuration("feature %d has no id", i)
		}
		if _, dup := seen[f.ID]; dup {
			return errors.Configuration("duplicate feature id %q", f.ID)
		}
		seen[f.ID] = struct{}{}

		if !finite(f.Start) || !finite(f.End) {
			return errors.Configuration("feature %q has non-finite bounds [%g, %g)", f.ID, f.Start, f.End)
		}
		if f.Start >= f.End {
			return errors.Configuration("feature %q has zero or negative length [%g, %g)", f.ID, f.Start, f.End)
		}
		if f.Start < 0 || f.End > r.SequenceLength {
			return errors.Configuration("feature %q [%g, %g) lies outside [0, %g]", f.ID, f.Start, f.End, r.SequenceLength)
		}
		if !f.Strand.Valid() {
			return errors.Configuration("feature %q has invalid strand %d", f.ID, f.Strand)
		}
		if err := errors.ValidateLabel(f.Label); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "feature %q", f.ID)
		}
		if err := errors.ValidateColor(f.Color); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "feature %q", f.ID)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
