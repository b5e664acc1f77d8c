// Package io reads and writes feature records.
//
// # Formats
//
// Three input formats are recognised by file extension in [ImportRecords]:
//
//   - .json: a record object (see [ReadJSON])
//   - .toml: the same fields as TOML, one [[features]] table per feature
//   - .gff, .gff3: GFF3 annotations, one record per sequence id
//
// The JSON form is also the export format:
//
//	{
//	  "name": "pUC19",
//	  "sequence_length": 2686,
//	  "features": [
//	    {"id": "lacZ", "start": 146, "end": 470, "strand": -1, "label": "lacZα", "color": "#ffcccc"}
//	  ]
//	}
//
// Strands are -1 (reverse), 0 (unstranded) and 1 (forward). Coordinates are
// zero-based and half-open; the GFF3 reader converts from GFF's one-based,
// closed intervals.
//
// Readers return records as decoded. Missing IDs and colours are filled by
// record.Record.Normalize, which the render pipeline calls before
// validation.
//
// # Export
//
// Use [ExportJSON] to write a record to a file, or [WriteJSON] to write to
// any io.Writer. The output re-imports identically with [ReadJSON].
package io
