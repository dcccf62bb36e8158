package store

// CleanInvalidRanges clamps tagged ranges to the buffer and drops the ones
// left empty or starting at or past the end of the buffer. Edits call this
// once after reconciliation; it never runs mid-edit.
func (d *Document) CleanInvalidRanges() {
	max := len(d.Buffer)
	kept := d.TaggedRanges[:0]
	for _, r := range d.TaggedRanges {
		if r.Span.End > max {
			r.Span.End = max
		}
		if r.Span.Start > max {
			r.Span.Start = max
		}
		if r.Span.Start >= r.Span.End || r.Span.Start >= max {
			continue
		}
		kept = append(kept, r)
	}
	d.TaggedRanges = kept
}
