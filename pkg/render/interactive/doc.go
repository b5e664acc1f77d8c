// Package interactive builds pannable, zoomable feature-map documents.
//
// A [Document] is a plain data description of one interactive plot: a
// patch layer of glyph polygons, an optional text layer of external labels
// with a matching layer of leader segments, axis ranges, the hover tooltip
// and the enabled tools. Layers carry their data as [ColumnSource] values
// (named, equal-length columns) built from per-glyph rows.
//
// Documents are produced by [Backend.Build] from a record and the result of
// the static layout pass, and serialised with [RenderHTML] (a self-contained
// page with the canvas runtime inlined) or [RenderJSON].
//
// The backend declares what it needs through [Backend.Requirements]: the
// canvas runtime asset and a table builder. Both are present by default;
// [WithRuntime] and [WithTables] replace them.
package interactive
