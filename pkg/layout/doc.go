// Package layout computes the static layout shared by every renderer.
//
// # Overview
//
// Layout is the authoritative, one-time pass of the render pipeline. Given a
// record and a figure width it decides:
//
//   - the vertical level of every feature, so overlapping features never
//     share a lane ([ComputeLevels]);
//   - where each label goes: inline inside its glyph when it fits, otherwise
//     stacked above the features with a [PlotData] anchor pair used to draw
//     a leader line back to the glyph;
//   - the size of the figure in inches.
//
// The result is a plain [Layout] value. Both the static and the interactive
// backends draw from the same Layout and never recompute levels or label
// positions themselves, which keeps the two views spatially identical.
//
// # Coordinates
//
// X is in sequence units. Y is in level units: a feature on level k is drawn
// centred on y = k, and label rows sit above the highest feature level at
// AnnotationHeight spacing. The figure maps the y range [-1, MaxY()+1] onto
// its height, so each level is LevelHeight inches tall.
package layout
