// Package record defines the annotated sequence model rendered by
// featureviewer.
//
// A [Record] is a linear sequence of length SequenceLength carrying a list of
// directional [Feature] intervals (genes, promoters, primers, ...). Features
// span the half-open interval [Start, End) on the sequence axis and point in
// the direction of their [Strand].
//
// Records are plain values: renderers receive them by value and never modify
// them, so one record can be rendered by several backends concurrently.
//
// # Validation
//
// [Record.Validate] rejects inputs that cannot be drawn faithfully, most
// notably zero-length features. All validation failures carry the
// CONFIGURATION code from [github.com/matzehuels/featureviewer/pkg/errors].
package record
