package store

import "testing"

func TestNewSpanSwapsReversedBounds(t *testing.T) {
	s := NewSpan(9, 3)
	if s.Start != 3 || s.End != 9 {
		t.Fatalf("expected 3..9, got %d..%d", s.Start, s.End)
	}
	if s.Len() != 6 {
		t.Fatalf("expected length 6, got %d", s.Len())
	}
}

func TestSpanIntersectsIsSymmetric(t *testing.T) {
	cases := []struct {
		a, b Span
		want bool
	}{
		{Span{0, 5}, Span{3, 8}, true},
		{Span{3, 8}, Span{0, 5}, true},
		{Span{0, 5}, Span{5, 8}, false}, // touching endpoints do not overlap
		{Span{5, 8}, Span{0, 5}, false},
		{Span{0, 10}, Span{3, 4}, true},
		{Span{0, 0}, Span{0, 5}, false}, // empty span overlaps nothing
	}
	for _, c := range cases {
		if got := c.a.Intersects(c.b); got != c.want {
			t.Fatalf("expected %v..%v intersects %v..%v to be %t", c.a.Start, c.a.End, c.b.Start, c.b.End, c.want)
		}
		if got := c.b.Intersects(c.a); got != c.want {
			t.Fatalf("expected intersects to be symmetric for %v and %v", c.a, c.b)
		}
	}
}

func TestSpanUnionIsConvexHull(t *testing.T) {
	got := Span{2, 5}.Union(Span{8, 12})
	if got.Start != 2 || got.End != 12 {
		t.Fatalf("expected 2..12, got %d..%d", got.Start, got.End)
	}
	got = Span{8, 12}.Union(Span{2, 5})
	if got.Start != 2 || got.End != 12 {
		t.Fatalf("expected union to be commutative, got %d..%d", got.Start, got.End)
	}
	got = Span{2, 12}.Union(Span{4, 6})
	if got.Start != 2 || got.End != 12 {
		t.Fatalf("expected enclosing span unchanged, got %d..%d", got.Start, got.End)
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{2, 10}
	if !outer.Contains(Span{2, 10}) {
		t.Fatalf("expected span to contain itself")
	}
	if !outer.Contains(Span{4, 6}) {
		t.Fatalf("expected 2..10 to contain 4..6")
	}
	if outer.Contains(Span{1, 6}) || outer.Contains(Span{4, 11}) {
		t.Fatalf("expected partial overlaps to not be contained")
	}
}
