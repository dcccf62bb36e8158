package store

// editEvent describes one text edit: caret is the byte offset the edit
// happened at, delta the net change in buffer length, selLen the length of
// the selection that was replaced (0 for plain typing and deletes).
type editEvent struct {
	caret  int
	delta  int
	selLen int
}

// shiftSpan moves one span past an edit at caret. A span holding the caret
// strictly inside grows or shrinks at its end; spans past the caret
// translate. A boundary sitting exactly on the caret stays put, so typing
// immediately before a range extends it and typing immediately after does
// not.
func shiftSpan(s Span, caret, delta int) Span {
	if s.Start < caret && caret < s.End {
		s.End += delta
	} else {
		if s.Start > caret {
			s.Start += delta
		}
		if s.End > caret {
			s.End += delta
		}
	}
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End < 0 {
		s.End = 0
	}
	return s
}

// reconcileEdit rewrites every tagged range after one edit. Ranges are
// adjusted independently; overlaps produced here are kept as they are and
// cleanup happens afterwards in CleanInvalidRanges.
func (d *Document) reconcileEdit(ev editEvent) {
	if ev.selLen <= 0 {
		for i, r := range d.TaggedRanges {
			d.TaggedRanges[i].Span = shiftSpan(r.Span, ev.caret, ev.delta)
		}
		return
	}

	// A selection was replaced. Ranges matching the selection exactly now
	// cover the replacement, ranges strictly containing it shrink or grow by
	// the length difference, everything else shifts as for a plain edit at
	// the selection start.
	selStart := ev.caret
	selEnd := ev.caret + ev.selLen
	insLen := ev.selLen + ev.delta
	for i, r := range d.TaggedRanges {
		s := r.Span
		switch {
		case s.Start == selStart && s.End == selEnd:
			s = Span{Start: selStart, End: selStart + insLen}
		case s.Start < selStart && selEnd < s.End:
			s.End += ev.delta
			if s.End < 0 {
				s.End = 0
			}
		default:
			s = shiftSpan(s, selStart, ev.delta)
		}
		d.TaggedRanges[i].Span = s
	}
}

// editInsert splices text into the buffer at the caret. A selLen > 0 means
// the text replaces the selection [at, at+selLen). Callers validate bounds.
func (d *Document) editInsert(at int, text string, selLen int) {
	end := at + selLen
	d.Buffer = d.Buffer[:at] + text + d.Buffer[end:]
	d.reconcileEdit(editEvent{caret: at, delta: len(text) - selLen, selLen: selLen})
}

// editDelete removes count bytes starting at the caret. fromSelection marks
// the delete as replacing a selection of that length with nothing, which
// empties exactly matching ranges instead of shifting them.
func (d *Document) editDelete(at, count int, fromSelection bool) {
	d.Buffer = d.Buffer[:at] + d.Buffer[at+count:]
	selLen := 0
	if fromSelection {
		selLen = count
	}
	d.reconcileEdit(editEvent{caret: at, delta: -count, selLen: selLen})
}
