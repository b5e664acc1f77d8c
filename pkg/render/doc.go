// Package render provides the rendering backends for annotated sequences.
//
// # Overview
//
// Rendering is a two-pass pipeline. The static backend computes the layout
// once (levels, label anchors, figure size) and can draw it as SVG, PNG or
// PDF. The interactive backend re-projects the very same layout into a
// pan/zoom canvas document with hover tooltips.
//
//   - [static]: layout pass and SVG / PNG / PDF sinks
//   - [interactive]: column data sources, canvas document, HTML / JSON sinks
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool (from
// librsvg). Because the tool is optional, its presence is exposed as a
// capability requirement ([RSVGRequirement]) so pipelines asking for PDF
// output fail before layout starts.
//
//	svg := static.RenderSVG(rec, l)
//	pdf, err := render.ToPDF(svg)
//
// [static]: github.com/matzehuels/featureviewer/pkg/render/static
// [interactive]: github.com/matzehuels/featureviewer/pkg/render/interactive
package render
