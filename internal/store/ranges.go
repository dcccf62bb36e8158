package store

// ApplyTagToSelection marks sel with the named tag. Selections already
// enclosed by a range of the same tag are no-ops, so re-tagging is
// idempotent. Otherwise the first same-tag range overlapping sel, in stored
// order, absorbs it; with no overlap a new range is appended.
func (d *Document) ApplyTagToSelection(name string, sel Span) bool {
	if sel.Empty() {
		return false
	}
	for _, r := range d.TaggedRanges {
		if r.TagName == name && r.Span.Contains(sel) {
			return false
		}
	}
	for i, r := range d.TaggedRanges {
		if r.TagName == name && r.Span.Intersects(sel) {
			d.TaggedRanges[i].Span = r.Span.Union(sel)
			return true
		}
	}
	d.TaggedRanges = append(d.TaggedRanges, TaggedRange{TagName: name, Span: sel})
	return true
}

// RemoveRange deletes the first stored range equal to r, comparing both tag
// and span. Later duplicates stay.
func (d *Document) RemoveRange(r TaggedRange) bool {
	for i, x := range d.TaggedRanges {
		if x.TagName == r.TagName && x.Span == r.Span {
			d.TaggedRanges = append(d.TaggedRanges[:i], d.TaggedRanges[i+1:]...)
			return true
		}
	}
	return false
}

// ReorderRange moves the range at index from to index to. Stored order is
// what the merge in ApplyTagToSelection walks, so reordering changes which
// range absorbs future overlapping selections.
func (d *Document) ReorderRange(from, to int) bool {
	n := len(d.TaggedRanges)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	r := d.TaggedRanges[from]
	rest := append(d.TaggedRanges[:from], d.TaggedRanges[from+1:]...)
	rest = append(rest, TaggedRange{})
	copy(rest[to+1:], rest[to:])
	rest[to] = r
	d.TaggedRanges = rest
	return true
}
