// Package glyph computes the polygons used to draw features.
//
// The central shape is the arrow: a rectangular shaft followed by a triangular
// head pointing in the direction of the feature's strand. [Generator.Arrow]
// returns the six vertices of that hexagon in data coordinates (x along the
// sequence, y in level units), so the same patch can be handed to any backend.
//
// # Head Length
//
// The head is max(2.5% of the sequence length, 2.5% of the feature length)
// long and never extends past the feature's tail. Using the larger of the two
// keeps heads visible on short features and in proportion on long ones.
//
// # Vertex Order
//
// Vertices trace tail-bottom, tail-top, head-base-top, tip, head-base-bottom
// and back to tail-bottom:
//
//	(x1, -hw) (x1, +hw) (hb, +hw) (x2, 0) (hb, -hw) (x1, -hw)
//
// with every y offset added to the level.
package glyph
