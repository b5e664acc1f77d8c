package static

import (
	"math"

	"github.com/matzehuels/featureviewer/pkg/layout"
)

// frame maps data coordinates to figure pixels. The y range [-1, MaxY+1]
// covers the full figure height with y growing upwards.
type frame struct {
	width, height float64
	seqLen        float64
	yMin, yMax    float64
	fontSize      float64
}

func newFrame(l layout.Layout) frame {
	dpi := l.Options.DPI
	if dpi == 0 {
		dpi = layout.PixelsPerInch
	}
	fontSize := l.Options.FontSize
	if fontSize == 0 {
		fontSize = layout.DefaultOptions().FontSize
	}
	return frame{
		width:    l.WidthInches * dpi,
		height:   l.HeightInches * dpi,
		seqLen:   l.SequenceLength,
		yMin:     -1,
		yMax:     l.MaxY() + 1,
		fontSize: fontSize,
	}
}

func (f frame) x(v float64) float64 { return v / f.seqLen * f.width }

func (f frame) y(v float64) float64 {
	return (f.yMax - v) / (f.yMax - f.yMin) * f.height
}

// rulerY is the data y of the sequence ruler, half a level below level 0.
const rulerY = -0.5

// ticks returns round tick positions along [0, seqLen].
func ticks(seqLen float64) []float64 {
	step := niceStep(seqLen / 8)
	if step <= 0 {
		return nil
	}
	var out []float64
	for v := 0.0; v <= seqLen+step/1e6; v += step {
		out = append(out, v)
	}
	return out
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}
