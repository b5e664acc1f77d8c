package io

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/featureviewer/pkg/record"
)

// gffSkipTypes are feature types that describe the sequence itself.
var gffSkipTypes = map[string]bool{
	"region":     true,
	"chromosome": true,
	"source":     true,
}

// gffLabelKeys are tried in order to find a feature label.
var gffLabelKeys = []string{"Name", "gene", "locus_tag", "label", "product"}

// ReadGFF parses GFF3 annotations into one record per sequence id, in order
// of first appearance. The sequence length comes from ##sequence-region or
// a region feature, falling back to the largest feature end. A Note
// attribute becomes the tooltip, headed by the label.
func ReadGFF(r io.Reader) ([]record.Record, error) {
	var (
		order   []string
		records = map[string]*record.Record{}
		lengths = map[string]float64{}
	)
	get := func(seqid string) *record.Record {
		rec, ok := records[seqid]
		if !ok {
			rec = &record.Record{Name: seqid}
			records[seqid] = rec
			order = append(order, seqid)
		}
		return rec
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		switch {
		case text == "" || strings.HasPrefix(text, "#!"):
			continue
		case strings.HasPrefix(text, "##FASTA"):
			return collect(order, records, lengths), nil
		case strings.HasPrefix(text, "##sequence-region"):
			fields := strings.Fields(text)
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed sequence-region", line)
			}
			end, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: sequence-region end: %w", line, err)
			}
			seqid, err := url.PathUnescape(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: sequence-region seqid: %w", line, err)
			}
			get(seqid)
			lengths[seqid] = end
			continue
		case strings.HasPrefix(text, "#"):
			continue
		}

		cols := strings.Split(text, "\t")
		if len(cols) != 9 {
			return nil, fmt.Errorf("line %d: want 9 tab-separated columns, got %d", line, len(cols))
		}
		start, err := strconv.ParseFloat(cols[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: start: %w", line, err)
		}
		end, err := strconv.ParseFloat(cols[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: end: %w", line, err)
		}
		seqid, err := url.PathUnescape(cols[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: seqid: %w", line, err)
		}
		rec := get(seqid)

		if gffSkipTypes[cols[2]] {
			lengths[seqid] = max(lengths[seqid], end)
			continue
		}

		attrs, err := parseAttributes(cols[8])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		f := record.Feature{
			ID:     attrs["ID"],
			Start:  start - 1,
			End:    end,
			Strand: gffStrand(cols[6]),
			Color:  attrs["color"],
		}
		for _, k := range gffLabelKeys {
			if v := attrs[k]; v != "" {
				f.Label = v
				break
			}
		}
		if note := attrs["Note"]; note != "" {
			f.HTML = html.EscapeString(note)
			if f.Label != "" {
				f.HTML = "<b>" + html.EscapeString(f.Label) + "</b><br>" + f.HTML
			}
		}
		rec.Features = append(rec.Features, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return collect(order, records, lengths), nil
}

func collect(order []string, records map[string]*record.Record, lengths map[string]float64) []record.Record {
	out := make([]record.Record, 0, len(order))
	for _, seqid := range order {
		rec := *records[seqid]
		rec.SequenceLength = lengths[seqid]
		dedupeIDs(rec.Features)
		for _, f := range rec.Features {
			rec.SequenceLength = max(rec.SequenceLength, f.End)
		}
		out = append(out, rec)
	}
	return out
}

// dedupeIDs renames repeated IDs (multi-line features such as split CDS) to
// "<id>.<n>", skipping any name another feature already carries.
func dedupeIDs(features []record.Feature) {
	taken := make(map[string]bool, len(features))
	for _, f := range features {
		if f.ID != "" {
			taken[f.ID] = true
		}
	}
	seen := make(map[string]bool, len(features))
	for i, f := range features {
		if f.ID == "" {
			continue
		}
		if !seen[f.ID] {
			seen[f.ID] = true
			continue
		}
		id := f.ID
		for n := 1; taken[id]; n++ {
			id = fmt.Sprintf("%s.%d", f.ID, n)
		}
		taken[id] = true
		seen[id] = true
		features[i].ID = id
	}
}

func gffStrand(s string) record.Strand {
	switch s {
	case "+":
		return record.Forward
	case "-":
		return record.Reverse
	default:
		return record.Unstranded
	}
}

// parseAttributes decodes column 9. Multi-valued attributes keep their
// first value.
func parseAttributes(s string) (map[string]string, error) {
	attrs := map[string]string{}
	if s == "." || s == "" {
		return attrs, nil
	}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("attribute %q has no value", pair)
		}
		v, _, _ = strings.Cut(v, ",")
		dv, err := url.PathUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		attrs[k] = dv
	}
	return attrs, nil
}
