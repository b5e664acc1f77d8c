// Package pkg provides the libraries behind featureviewer, a viewer for
// annotated DNA feature maps.
//
// # Overview
//
// A record is a sequence of known length carrying features: directional
// intervals with an optional label, colour and tooltip. featureviewer draws
// each feature as a strand-aware arrow, stacks overlapping features on
// separate levels and places labels that do not fit inside their glyph on
// annotation rows above the map, joined to it by leader lines.
//
// # Architecture
//
// Every render runs one static layout pass and re-projects its result:
//
//	record file (JSON, TOML, GFF3)
//	         ↓
//	    [io] package (decode records)
//	         ↓
//	    [layout] package (levels, label rows, figure size) via [render/static]
//	         ↓
//	    [render/static] SVG, PNG, PDF    [render/interactive] HTML, JSON
//
// The [pipeline] package coordinates the passes: it probes capabilities up
// front, runs the static pass once and hands the same layout to every
// output, so the static and interactive views cannot disagree.
//
// # Quick Start
//
//	rec, _ := io.ImportRecord("puc19.json")
//	doc, err := pipeline.RenderInteractive(ctx, rec, 8)
//	if err != nil {
//	    return err
//	}
//	page, _ := interactive.RenderHTML(doc, runtime)
//
// # Main Packages
//
//   - [record]: feature and record types, normalisation and validation
//   - [glyph]: arrow and box polygon generation
//   - [io]: JSON, TOML and GFF3 record import and export
//   - [layout]: the static layout engine
//   - [render/static]: static backend and SVG, PNG and PDF sinks
//   - [render/interactive]: column sources and the interactive document
//   - [pipeline]: coordinator and caching runner
//   - [cache]: file, redis and null artefact caches
//   - [config]: the TOML configuration file
//   - [capability]: dependency probing
//   - [observability]: pipeline, cache and HTTP hooks
//
// [record]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/record
// [glyph]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/glyph
// [io]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/layout
// [render/static]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/render/static
// [render/interactive]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/render/interactive
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/config
// [capability]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/capability
// [observability]: https://pkg.go.dev/github.com/matzehuels/featureviewer/pkg/observability
package pkg
