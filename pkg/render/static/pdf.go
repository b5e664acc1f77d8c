package static

import (
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
	"github.com/matzehuels/featureviewer/pkg/render"
)

// RenderPDF renders the SVG form of rec and converts it with rsvg-convert.
func RenderPDF(rec record.Record, l layout.Layout, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(rec, l, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
