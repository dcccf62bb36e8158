package store

// Span is a half-open [Start, End) interval of byte offsets into the buffer.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func NewSpan(a, b int) Span {
	if b < a {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Intersects reports whether the two half-open intervals overlap.
// Touching endpoints do not count as overlap.
func (s Span) Intersects(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Union is the convex hull of the two intervals, not a set union:
// a tag's extent is modeled as one contiguous span.
func (s Span) Union(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// Contains reports whether o is fully enclosed by s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}
