// Package static is the static render backend.
//
// # Layout Pass
//
// [Backend.Plot] is the authoritative layout pass of the pipeline. It opens a
// [Figure] (which holds the font face used to measure labels), runs
// [layout.Compute] and hands back the open [Axis] together with the
// [layout.Layout]. The caller reads what it needs from the axis and must
// Close it; the layout value stays valid afterwards.
//
//	ax, l, err := static.New(layout.DefaultOptions()).Plot(rec, 8)
//	if err != nil {
//	    return err
//	}
//	w, h := ax.SizeInches()
//	ax.Close()
//
// # Sinks
//
// A computed layout can be drawn with [RenderSVG], [RenderPNG] (native
// rasterisation, no external tools) or [RenderPDF] (SVG through
// rsvg-convert). All sinks draw glyphs with [glyph.Generator.Arrow] at the
// levels recorded in the layout, inline labels centred in their glyph, and
// external labels at their annotation anchor with a leader line down to the
// feature.
//
// [layout.Compute]: github.com/matzehuels/featureviewer/pkg/layout.Compute
// [layout.Layout]: github.com/matzehuels/featureviewer/pkg/layout.Layout
// [glyph.Generator.Arrow]: github.com/matzehuels/featureviewer/pkg/glyph.Generator.Arrow
package static
