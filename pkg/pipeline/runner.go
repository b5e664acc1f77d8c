package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featureviewer/pkg/cache"
	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/observability"
	"github.com/matzehuels/featureviewer/pkg/record"
	"github.com/matzehuels/featureviewer/pkg/render"
	"github.com/matzehuels/featureviewer/pkg/render/interactive"
	"github.com/matzehuels/featureviewer/pkg/render/static"
)

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different records and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// FormatRequirements returns the capabilities the given formats add on top
// of the backends'.
func FormatRequirements(formats []string) []capability.Requirement {
	for _, f := range formats {
		if f == FormatPDF {
			return []capability.Requirement{render.RSVGRequirement()}
		}
	}
	return nil
}

// Execute probes, runs the static pass once and renders every requested
// format from that layout.
func (r *Runner) Execute(ctx context.Context, rec record.Record, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	rec, err := PrepareRecord(rec)
	if err != nil {
		return nil, err
	}

	ib := interactive.New(interactive.WithLogger(r.Logger))
	coord, err := NewCoordinator(
		WithStatic(Static(static.New(opts.LayoutOptions()))),
		WithInteractive(ib),
		WithLogger(r.Logger),
		WithRequirements(FormatRequirements(opts.Formats)...),
	)
	if err != nil {
		return nil, err
	}

	recordHash, err := cache.HashJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("hash record: %w", err)
	}
	result := &Result{
		RecordHash: recordHash,
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1: static pass
	staticStart := time.Now()
	sr, layoutHit, err := r.staticPass(ctx, coord, rec, recordHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = sr.Layout
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats = Stats{
		Features:   len(rec.Features),
		Levels:     sr.Layout.LevelCount(),
		Labels:     len(sr.Layout.PlotData),
		StaticTime: time.Since(staticStart),
	}

	r.Logger.Info("computed layout",
		"record", rec.Name,
		"features", result.Stats.Features,
		"levels", result.Stats.Levels,
		"cached", layoutHit,
		"duration", result.Stats.StaticTime)

	// Stage 2: outputs
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderHit, err := r.render(ctx, coord, ib, rec, sr, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) staticPass(ctx context.Context, coord *Coordinator, rec record.Record, recordHash string, opts Options) (StaticResult, bool, error) {
	key := r.Keyer.LayoutKey(recordHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var l layout.Layout
			if err := json.Unmarshal(data, &l); err == nil && l.Covers(rec) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return NewStaticResult(l, l.WidthInches, l.HeightInches), true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", "layout", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	sr, err := coord.StaticPass(ctx, rec, opts.Width)
	if err != nil {
		return StaticResult{}, false, err
	}

	if data, err := json.Marshal(sr.Layout); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", "layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return sr, false, nil
}

func (r *Runner) render(ctx context.Context, coord *Coordinator, ib *interactive.Backend, rec record.Record, sr StaticResult, opts Options, result *Result) (bool, error) {
	layoutHash, err := cache.HashJSON(sr.Layout)
	if err != nil {
		return false, fmt.Errorf("hash layout: %w", err)
	}

	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, err := r.renderFormat(ctx, format, coord, ib, rec, sr, opts, result)
		if err != nil {
			return false, fmt.Errorf("%s: %w", format, err)
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", "artifact", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		r.Logger.Debug("rendered", "format", format, "bytes", len(data))
	}
	return allHit, nil
}

func (r *Runner) renderFormat(ctx context.Context, format string, coord *Coordinator, ib *interactive.Backend, rec record.Record, sr StaticResult, opts Options, result *Result) ([]byte, error) {
	switch format {
	case FormatSVG:
		return static.RenderSVG(rec, sr.Layout, svgOptions(opts)...)
	case FormatPNG:
		return static.RenderPNG(rec, sr.Layout, pngOptions(opts)...)
	case FormatPDF:
		return static.RenderPDF(rec, sr.Layout, svgOptions(opts)...)
	case FormatHTML:
		doc, err := coord.Build(ctx, rec, sr)
		if err != nil {
			return nil, err
		}
		if opts.Title != "" {
			doc.Title = opts.Title
		}
		result.Document = doc
		runtime, err := ib.Runtime()
		if err != nil {
			return nil, err
		}
		return interactive.RenderHTML(doc, runtime)
	case FormatJSON:
		return json.MarshalIndent(sr.Layout, "", "  ")
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []static.SVGOption {
	var out []static.SVGOption
	if opts.Title != "" {
		out = append(out, static.WithTitle(opts.Title))
	}
	if opts.NoRuler {
		out = append(out, static.WithoutRuler())
	}
	return out
}

func pngOptions(opts Options) []static.PNGOption {
	out := []static.PNGOption{static.WithScale(opts.Scale)}
	if opts.Title != "" {
		out = append(out, static.WithPNGTitle(opts.Title))
	}
	if opts.NoRuler {
		out = append(out, static.WithoutPNGRuler())
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
