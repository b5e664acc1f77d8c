package glyph

import (
	"maps"
	"math"
)

// Style carries opaque per-glyph fields (color, label, tooltip, ...) that are
// copied onto a patch without interpretation.
type Style map[string]any

// Point is a vertex in data coordinates.
type Point struct {
	X, Y float64
}

// Patch is one closed polygon plus its pass-through style.
type Patch struct {
	Xs    []float64
	Ys    []float64
	Style Style
}

// Len returns the number of vertices.
func (p Patch) Len() int { return len(p.Xs) }

// Points returns the vertices as points.
func (p Patch) Points() []Point {
	pts := make([]Point, len(p.Xs))
	for i := range p.Xs {
		pts[i] = Point{X: p.Xs[i], Y: p.Ys[i]}
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of the patch.
func (p Patch) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range p.Xs {
		minX, maxX = math.Min(minX, p.Xs[i]), math.Max(maxX, p.Xs[i])
		minY, maxY = math.Min(minY, p.Ys[i]), math.Max(maxY, p.Ys[i])
	}
	return minX, minY, maxX, maxY
}

// Tip returns the arrow tip. Only meaningful for arrow patches.
func (p Patch) Tip() Point { return Point{X: p.Xs[3], Y: p.Ys[3]} }

// HeadBase returns the x coordinate where the head meets the shaft.
// Only meaningful for arrow patches.
func (p Patch) HeadBase() float64 { return p.Xs[2] }

// Row flattens the patch into a column-source row: "xs", "ys" and every
// style field. Style keys named xs or ys are shadowed by the geometry.
func (p Patch) Row() map[string]any {
	row := make(map[string]any, len(p.Style)+2)
	maps.Copy(row, p.Style)
	row["xs"] = append([]float64(nil), p.Xs...)
	row["ys"] = append([]float64(nil), p.Ys...)
	return row
}
