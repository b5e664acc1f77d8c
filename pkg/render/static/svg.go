package static

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/featureviewer/pkg/fonts"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

const svgCSS = `
    .feature { stroke: #000; stroke-width: 0.8; stroke-linejoin: round; }
    .leader { stroke: #000; stroke-width: 0.6; }
    .ruler { stroke: #333; stroke-width: 1; }
    .label, .tick { font-family: %s; fill: #000; text-anchor: middle; }
    .tick { fill: #333; }
    .title { font-family: %s; font-weight: bold; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	sceneOptions
}

// WithTitle draws a title in the top-left corner.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// WithoutRuler omits the sequence ruler.
func WithoutRuler() SVGOption {
	return func(r *svgRenderer) { r.noRuler = true }
}

// RenderSVG draws rec with the levels and anchors held by l.
func RenderSVG(rec record.Record, l layout.Layout, opts ...SVGOption) ([]byte, error) {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	s, err := buildScene(rec, l, r.sceneOptions)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&buf, "  <style>"+svgCSS+"\n  </style>\n", fonts.FallbackFontFamily, fonts.FallbackFontFamily)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	if s.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="4" y="%.1f" font-size="%.1f">%s</text>`+"\n",
			s.fontSize+2, s.fontSize, escapeXML(s.title))
	}

	renderRuler(&buf, s)
	renderGlyphs(&buf, s)
	renderLeaders(&buf, s)
	renderLabels(&buf, s)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderRuler(buf *bytes.Buffer, s scene) {
	if len(s.ruler) == 0 {
		return
	}
	buf.WriteString(`  <g class="ruler">` + "\n")
	for _, seg := range s.ruler {
		writeLine(buf, "ruler", seg)
	}
	for _, t := range s.ticks {
		fmt.Fprintf(buf, `    <text class="tick" x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n",
			t.x, t.y, s.fontSize*0.85, escapeXML(t.value))
	}
	buf.WriteString("  </g>\n")
}

func renderGlyphs(buf *bytes.Buffer, s scene) {
	buf.WriteString(`  <g class="features">` + "\n")
	for _, g := range s.glyphs {
		points := make([]string, len(g.points))
		for i, p := range g.points {
			points[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `    <polygon id="feature-%s" class="feature" points="%s" fill="%s">`,
			escapeXML(g.id), strings.Join(points, " "), escapeXML(g.fill))
		fmt.Fprintf(buf, "<title>%s</title></polygon>\n", escapeXML(g.tooltip))
	}
	buf.WriteString("  </g>\n")
}

func renderLeaders(buf *bytes.Buffer, s scene) {
	if len(s.leaders) == 0 {
		return
	}
	buf.WriteString(`  <g class="leaders">` + "\n")
	for _, seg := range s.leaders {
		writeLine(buf, "leader", seg)
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, s scene) {
	if len(s.labels) == 0 {
		return
	}
	buf.WriteString(`  <g class="labels">` + "\n")
	for _, t := range s.labels {
		fmt.Fprintf(buf, `    <text class="label" data-feature="%s" x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n",
			escapeXML(t.id), t.x, t.y, s.fontSize, escapeXML(t.value))
	}
	buf.WriteString("  </g>\n")
}

func writeLine(buf *bytes.Buffer, class string, seg segment) {
	fmt.Fprintf(buf, `    <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
		class, seg.x1, seg.y1, seg.x2, seg.y2)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
