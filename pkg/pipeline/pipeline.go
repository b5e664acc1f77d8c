// Package pipeline runs the two render passes of featureviewer.
//
// # Architecture
//
// Every render goes through the same stages:
//
//  1. Probe: check once, before any work, that every capability the
//     requested outputs need is available (MISSING_DEPENDENCY otherwise)
//  2. Static pass: compute feature levels, label anchors and figure size
//     with the static backend; the static surface is released immediately
//  3. Output: re-project that single layout into the requested formats, the
//     interactive document included, so static and interactive views never
//     disagree
//
// The [Coordinator] implements stages 1-2 plus the interactive build; the
// [Runner] adds caching and the static sinks on top of it.
//
// # Usage
//
// Build an interactive document:
//
//	doc, err := pipeline.RenderInteractive(ctx, rec, 8)
//
// Render several formats with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, rec, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/featureviewer/pkg/cache"
	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/glyph"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/render/interactive"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the figure width in inches used when no width is given.
	DefaultWidth = 5.0

	// DefaultScale is the PNG output scale.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatHTML, FormatJSON}

// =============================================================================
// Options
// =============================================================================

// Options configures a Runner execution.
type Options struct {
	Formats      []string `json:"formats,omitempty"`
	Width        float64  `json:"width,omitempty"`
	GlyphWidth   float64  `json:"glyph_width,omitempty"`
	InlineLabels bool     `json:"inline_labels,omitempty"`
	Title        string   `json:"title,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	NoRuler      bool     `json:"no_ruler,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.GlyphWidth == 0 {
		o.GlyphWidth = glyph.DefaultWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks formats and numeric ranges.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width <= 0 {
		return errors.Configuration("width must be positive, got %g", o.Width)
	}
	if o.GlyphWidth <= 0 {
		return errors.Configuration("glyph width must be positive, got %g", o.GlyphWidth)
	}
	if o.Scale <= 0 {
		return errors.Configuration("scale must be positive, got %g", o.Scale)
	}
	return errors.ValidateLabel(o.Title)
}

// Has reports whether format was requested.
func (o *Options) Has(format string) bool {
	return slices.Contains(o.Formats, format)
}

// LayoutOptions returns the static layout options for o.
func (o *Options) LayoutOptions() layout.Options {
	l := layout.DefaultOptions()
	l.GlyphWidth = o.GlyphWidth
	l.InlineLabels = o.InlineLabels
	return l
}

// LayoutKeyOpts returns cache key options for the static pass.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        o.Width,
		GlyphWidth:   o.GlyphWidth,
		InlineLabels: o.InlineLabels,
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Title: o.Title}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.NoRuler = o.NoRuler
	case FormatSVG, FormatPDF:
		k.NoRuler = o.NoRuler
	}
	return k
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a runner execution.
type Result struct {
	// RecordHash is the content hash of the normalized record.
	RecordHash string

	// Layout is the static pass result every output was drawn from.
	Layout layout.Layout

	// Document is the interactive document, when html was requested and
	// not served from cache.
	Document *interactive.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	Features   int
	Levels     int
	Labels     int
	StaticTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d features on %d levels, %d external labels", s.Features, s.Levels, s.Labels)
}
