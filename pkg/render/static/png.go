package static

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/featureviewer/pkg/errors"
	"github.com/matzehuels/featureviewer/pkg/fonts"
	"github.com/matzehuels/featureviewer/pkg/glyph"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	sceneOptions
	scale float64
}

// WithScale sets the output scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTitle draws a title in the top-left corner.
func WithPNGTitle(title string) PNGOption {
	return func(r *pngRenderer) { r.title = title }
}

// WithoutPNGRuler omits the sequence ruler.
func WithoutPNGRuler() PNGOption {
	return func(r *pngRenderer) { r.noRuler = true }
}

// supersample is the factor the scene is drawn at before downscaling.
const supersample = 2

var (
	colorBlack = color.RGBA{0, 0, 0, 255}
	colorRuler = color.RGBA{0x33, 0x33, 0x33, 255}
)

// RenderPNG rasterises rec natively. No external tools are required.
func RenderPNG(rec record.Record, l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.Configuration("png scale must be positive, got %g", r.scale)
	}

	s, err := buildScene(rec, l, r.sceneOptions)
	if err != nil {
		return nil, err
	}

	outW := max(1, int(math.Round(s.width*r.scale)))
	outH := max(1, int(math.Round(s.height*r.scale)))
	k := r.scale * supersample

	large := image.NewRGBA(image.Rect(0, 0, outW*supersample, outH*supersample))
	draw.Draw(large, large.Bounds(), image.White, image.Point{}, draw.Src)

	c := canvas{img: large, k: k, z: vector.NewRasterizer(0, 0)}
	for _, g := range s.glyphs {
		c.fillPolygon(g.points, parseColor(g.fill))
		c.strokePolygon(g.points, 0.8, colorBlack)
	}
	for _, seg := range s.ruler {
		c.line(seg, 1, colorRuler)
	}
	for _, seg := range s.leaders {
		c.line(seg, 0.6, colorBlack)
	}

	if err := c.texts(s, colorBlack); err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// canvas draws figure-pixel geometry onto an image scaled by k.
type canvas struct {
	img *image.RGBA
	k   float64
	z   *vector.Rasterizer
}

// fillPolygon rasterises pts within their bounding box only.
func (c canvas) fillPolygon(pts []glyph.Point, fill color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = min(minX, p.X*c.k), max(maxX, p.X*c.k)
		minY, maxY = min(minY, p.Y*c.k), max(maxY, p.Y*c.k)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1).
		Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	// The mask origin is box.Min; paths outside the box are clipped.
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.z.Reset(box.Dx(), box.Dy())
	c.z.MoveTo(float32(pts[0].X*c.k-ox), float32(pts[0].Y*c.k-oy))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X*c.k-ox), float32(p.Y*c.k-oy))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, box, image.NewUniform(fill), image.Point{})
}

func (c canvas) strokePolygon(pts []glyph.Point, width float64, stroke color.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		c.line(segment{x1: a.X, y1: a.Y, x2: b.X, y2: b.Y}, width, stroke)
	}
}

// line draws seg as a filled quad of the given width.
func (c canvas) line(seg segment, width float64, stroke color.Color) {
	dx, dy := seg.x2-seg.x1, seg.y2-seg.y1
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	hw := width / 2
	nx, ny := -dy/n*hw, dx/n*hw
	c.fillPolygon([]glyph.Point{
		{X: seg.x1 + nx, Y: seg.y1 + ny},
		{X: seg.x2 + nx, Y: seg.y2 + ny},
		{X: seg.x2 - nx, Y: seg.y2 - ny},
		{X: seg.x1 - nx, Y: seg.y1 - ny},
	}, stroke)
}

func (c canvas) texts(s scene, fg color.Color) error {
	face, err := fonts.NewFace(s.fontSize * c.k)
	if err != nil {
		return err
	}
	defer face.Close()

	tickFace, err := fonts.NewFace(s.fontSize * 0.85 * c.k)
	if err != nil {
		return err
	}
	defer tickFace.Close()

	for _, t := range s.labels {
		c.centered(face, t, fg)
	}
	for _, t := range s.ticks {
		c.centered(tickFace, t, colorRuler)
	}
	if s.title != "" {
		d := &font.Drawer{Dst: c.img, Src: image.NewUniform(fg), Face: face,
			Dot: fixed.P(int(4*c.k), int((s.fontSize+2)*c.k))}
		d.DrawString(s.title)
	}
	return nil
}

func (c canvas) centered(face font.Face, t text, fg color.Color) {
	w := font.MeasureString(face, t.value)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(t.x*c.k*64) - w/2,
			Y: fixed.Int26_6(t.y * c.k * 64),
		},
	}
	d.DrawString(t.value)
}

// parseColor accepts #rgb, #rrggbb, #rrggbbaa and SVG colour keywords.
// Anything else falls back to record.DefaultColor.
func parseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return parseColor(record.DefaultColor)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		if s == record.DefaultColor {
			return colorBlack
		}
		return parseColor(record.DefaultColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
