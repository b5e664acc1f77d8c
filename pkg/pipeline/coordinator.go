package pipeline

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/observability"
	"github.com/matzehuels/featureviewer/pkg/record"
	"github.com/matzehuels/featureviewer/pkg/render/interactive"
	"github.com/matzehuels/featureviewer/pkg/render/static"
)

// =============================================================================
// Backends
// =============================================================================

// Axis is the open static surface returned by a layout pass.
type Axis interface {
	SizeInches() (width, height float64)
	Close() error
}

// StaticBackend computes the authoritative layout.
type StaticBackend interface {
	Requirements() []capability.Requirement
	Plot(rec record.Record, widthInches float64) (Axis, layout.Layout, error)
}

// InteractiveBackend turns a layout into an interactive document.
type InteractiveBackend interface {
	Requirements() []capability.Requirement
	Build(in interactive.Input) (*interactive.Document, error)
}

// Static adapts a static.Backend to StaticBackend.
func Static(b *static.Backend) StaticBackend { return staticAdapter{b} }

type staticAdapter struct{ b *static.Backend }

func (a staticAdapter) Requirements() []capability.Requirement { return a.b.Requirements() }

func (a staticAdapter) Plot(rec record.Record, widthInches float64) (Axis, layout.Layout, error) {
	ax, l, err := a.b.Plot(rec, widthInches)
	if err != nil {
		return nil, l, err
	}
	return ax, l, nil
}

// =============================================================================
// Coordinator
// =============================================================================

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStatic sets the static backend.
func WithStatic(b StaticBackend) Option { return func(c *Coordinator) { c.static = b } }

// WithInteractive sets the interactive backend.
func WithInteractive(b InteractiveBackend) Option { return func(c *Coordinator) { c.interactive = b } }

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option { return func(c *Coordinator) { c.logger = l } }

// WithRequirements adds capabilities to the construction-time probe.
func WithRequirements(reqs ...capability.Requirement) Option {
	return func(c *Coordinator) { c.extra = append(c.extra, reqs...) }
}

// Coordinator runs the static pass and the interactive build over one
// shared layout.
type Coordinator struct {
	static      StaticBackend
	interactive InteractiveBackend
	logger      *log.Logger
	extra       []capability.Requirement
}

// DefaultLayoutOptions are the layout options of the default static
// backend. Labels are never drawn inline so every labeled feature gets
// plot data and therefore a visible label in the interactive view.
func DefaultLayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.InlineLabels = false
	return opts
}

// NewCoordinator builds a coordinator and probes every capability it needs.
// A missing capability fails here with MISSING_DEPENDENCY, before any
// layout work is done.
func NewCoordinator(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.static == nil {
		c.static = Static(static.New(DefaultLayoutOptions()))
	}
	if c.interactive == nil {
		c.interactive = interactive.New(interactive.WithLogger(c.logger))
	}

	var reqs []capability.Requirement
	reqs = append(reqs, c.static.Requirements()...)
	reqs = append(reqs, c.interactive.Requirements()...)
	reqs = append(reqs, c.extra...)

	err := capability.Probe(reqs...)
	observability.Pipeline().OnProbe(context.Background(), len(reqs), err)
	if err != nil {
		c.logger.Debug("capability probe failed", "requirements", len(reqs), "err", err)
		return nil, err
	}
	return c, nil
}

// StaticResult is what the interactive stage keeps from the static pass.
type StaticResult struct {
	Layout   layout.Layout
	WidthPx  int
	HeightPx int
	MaxY     float64
}

// NewStaticResult derives the pixel size and max_y from figure inches.
func NewStaticResult(l layout.Layout, widthInches, heightInches float64) StaticResult {
	return StaticResult{
		Layout:   l,
		WidthPx:  int(layout.PixelsPerInch * widthInches),
		HeightPx: int(layout.PixelsPerInch * heightInches),
		MaxY:     l.MaxY(),
	}
}

// RenderInteractive validates rec, runs the static pass once at widthHint
// inches (DefaultWidth when zero) and builds the interactive document from
// its layout.
func (c *Coordinator) RenderInteractive(ctx context.Context, rec record.Record, widthHint float64) (*interactive.Document, error) {
	rec, err := PrepareRecord(rec)
	if err != nil {
		return nil, err
	}
	sr, err := c.StaticPass(ctx, rec, widthHint)
	if err != nil {
		return nil, err
	}
	return c.Build(ctx, rec, sr)
}

// StaticPass runs the static layout for a prepared record. The static
// surface is closed before StaticPass returns, whether or not it succeeds.
func (c *Coordinator) StaticPass(ctx context.Context, rec record.Record, widthHint float64) (StaticResult, error) {
	if err := ctx.Err(); err != nil {
		return StaticResult{}, err
	}
	width, err := resolveWidth(widthHint)
	if err != nil {
		return StaticResult{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnStaticStart(ctx, len(rec.Features))
	start := time.Now()

	sr, err := c.plot(rec, width)
	hooks.OnStaticComplete(ctx, sr.Layout.LevelCount(), time.Since(start), err)
	if err != nil {
		return StaticResult{}, err
	}

	c.logger.Debug("static pass complete",
		"features", len(rec.Features),
		"levels", sr.Layout.LevelCount(),
		"labels", len(sr.Layout.PlotData),
		"size", [2]int{sr.WidthPx, sr.HeightPx},
		"duration", time.Since(start))
	return sr, nil
}

func (c *Coordinator) plot(rec record.Record, width float64) (sr StaticResult, err error) {
	ax, l, err := c.static.Plot(rec, width)
	if err != nil {
		return StaticResult{}, err
	}
	defer func() {
		if cerr := ax.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeInternal, cerr, "close static surface")
		}
	}()

	if err := l.Covers(rec); err != nil {
		return StaticResult{}, errors.Wrap(errors.ErrCodeInternal, err, "static layout")
	}
	w, h := ax.SizeInches()
	return NewStaticResult(l, w, h), nil
}

// Build re-projects a static result into an interactive document.
func (c *Coordinator) Build(ctx context.Context, rec record.Record, sr StaticResult) (*interactive.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(rec.Features))
	start := time.Now()

	doc, err := c.interactive.Build(interactive.Input{
		Record:   rec,
		Layout:   sr.Layout,
		WidthPx:  sr.WidthPx,
		HeightPx: sr.HeightPx,
	})
	patches := 0
	if doc != nil {
		patches = doc.Patches.Source.Len()
	}
	hooks.OnBuildComplete(ctx, patches, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("interactive document built", "id", doc.ID, "patches", patches)
	return doc, nil
}

// RenderInteractive is a one-shot Coordinator: it probes, runs the static
// pass and builds the document.
func RenderInteractive(ctx context.Context, rec record.Record, widthHint float64, opts ...Option) (*interactive.Document, error) {
	c, err := NewCoordinator(opts...)
	if err != nil {
		return nil, err
	}
	return c.RenderInteractive(ctx, rec, widthHint)
}

// PrepareRecord normalizes rec and validates it for drawing.
func PrepareRecord(rec record.Record) (record.Record, error) {
	rec = rec.Normalize()
	if err := rec.Validate(); err != nil {
		return record.Record{}, err
	}
	return rec, nil
}

func resolveWidth(w float64) (float64, error) {
	switch {
	case w == 0:
		return DefaultWidth, nil
	case !(w > 0) || math.IsInf(w, 0):
		return 0, errors.Configuration("canvas width must be positive and finite, got %g", w)
	}
	return w, nil
}
