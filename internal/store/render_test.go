package store

import (
	"strings"
	"testing"
)

func TestRangeRowsSortedKeepsStoredIndices(t *testing.T) {
	d := testDoc("hello world wide", tr("urgent", 8, 12), tr("note", 0, 5))

	stored := d.RangeRows(false)
	if stored[0].TagName != "urgent" || stored[0].Index != 0 || stored[1].Index != 1 {
		t.Fatalf("expected stored order, got %#v", stored)
	}

	sorted := d.RangeRows(true)
	if sorted[0].TagName != "note" || sorted[1].TagName != "urgent" {
		t.Fatalf("expected sort by start, got %#v", sorted)
	}
	if sorted[0].Index != 1 || sorted[1].Index != 0 {
		t.Fatalf("expected indices to keep stored positions, got %#v", sorted)
	}
}

func TestRenderRangesTruncatesPreview(t *testing.T) {
	d := testDoc("hello world", tr("note", 0, 11))
	opts := RenderOptions{PreviewWidth: 8, ASCII: true}

	got := RenderRanges(d, d.RangeRows(false), opts)
	want := "  0      0..11    hello ..  note\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderRangesEmpty(t *testing.T) {
	d := testDoc("hello")
	if got := RenderRanges(d, d.RangeRows(false), RenderOptions{}); got != "no ranges\n" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestRenderTagsCountsRanges(t *testing.T) {
	d := testDoc("hello world", tr("note", 0, 5))
	got := RenderTags(d, RenderOptions{})
	if !strings.Contains(got, TagColor(0).Hex()) {
		t.Fatalf("expected swatch hex, got %q", got)
	}
	if !strings.Contains(got, "note") || !strings.Contains(got, " 1 range\n") {
		t.Fatalf("expected note with 1 range, got %q", got)
	}
	if !strings.Contains(got, "urgent") || !strings.Contains(got, " 0 ranges\n") {
		t.Fatalf("expected urgent with 0 ranges, got %q", got)
	}
}

func TestRenderTagsEmpty(t *testing.T) {
	d := DefaultDocument()
	if got := RenderTags(d, RenderOptions{}); got != "no tags\n" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestRenderDocumentHeader(t *testing.T) {
	d := testDoc("hello world\nsecond line", tr("note", 0, 5))
	d.Settings.DarkMode = true
	got := RenderDocument(d, RenderOptions{})
	want := "23 bytes, 2 lines, 2 tags, 1 ranges\n" +
		"settings: dark_mode=true markdown_view_enabled=false mark_as_background=false\n\n" +
		"hello world\nsecond line\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRowColorBlendsOverlappingTags(t *testing.T) {
	d := testDoc("hello world", tr("note", 0, 8), tr("urgent", 5, 11))
	rows := d.RangeRows(false)

	if got := rowColor(d, rows[0]); got != MixColors(TagColor(0), TagColor(1)) {
		t.Fatalf("expected blended color, got %v", got)
	}

	single := testDoc("hello world", tr("note", 0, 5))
	if got := rowColor(single, single.RangeRows(false)[0]); got != TagColor(0) {
		t.Fatalf("expected plain tag color, got %v", got)
	}

	ghost := testDoc("hello", tr("ghost", 0, 5))
	if got := rowColor(ghost, ghost.RangeRows(false)[0]); got != (RGB{128, 128, 128}) {
		t.Fatalf("expected gray for unknown tag, got %v", got)
	}
}

func TestSwatchWithoutColorIsHex(t *testing.T) {
	if got := Swatch(RGB{255, 0, 128}, RenderOptions{}); got != "#ff0080" {
		t.Fatalf("expected bare hex, got %q", got)
	}
	if got := TagChip("note", RGB{255, 0, 128}, RenderOptions{}); got != "note" {
		t.Fatalf("expected bare name, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		n     int
		ascii bool
		want  string
	}{
		{"hello world", 8, true, "hello .."},
		{"abcdefgh", 5, false, "abcd…"},
		{"abcdefgh", 5, true, "abc.."},
		{"abcdefgh", 2, false, "ab"},
		{"short", 10, false, "short"},
		{"  padded  ", 10, false, "padded"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n, c.ascii); got != c.want {
			t.Fatalf("truncate(%q, %d, %v): expected %q, got %q", c.in, c.n, c.ascii, got, c.want)
		}
	}
}
