// Package fonts provides the embedded font used to measure and draw labels.
//
// The Go Regular face ships with golang.org/x/image, so label metrics are the
// same on every machine and no system font lookup is needed. The static
// layout pass measures label widths with a [Measurer]; the PNG sink draws with
// a face from [NewFace].
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family used by the SVG and HTML sinks.
const FontFamily = "Go"

// FallbackFontFamily provides fallbacks for viewers without the Go font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font. It is parsed once.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// NewFace returns a face rendering sizePx pixel glyphs. The caller must Close it.
func NewFace(sizePx float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// Measurer measures label extents in pixels.
type Measurer struct {
	face   font.Face
	sizePx float64
}

// NewMeasurer opens a face at sizePx for measurement.
func NewMeasurer(sizePx float64) (*Measurer, error) {
	face, err := NewFace(sizePx)
	if err != nil {
		return nil, err
	}
	return &Measurer{face: face, sizePx: sizePx}, nil
}

// TextWidth returns the advance width of s in pixels.
func (m *Measurer) TextWidth(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face, s))
}

// Ascent returns the face ascent in pixels.
func (m *Measurer) Ascent() float64 {
	return fixedToFloat(m.face.Metrics().Ascent)
}

// Size returns the font size in pixels.
func (m *Measurer) Size() float64 { return m.sizePx }

// Close releases the face.
func (m *Measurer) Close() error {
	return m.face.Close()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
