package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderOptions control the human-readable views. PreviewWidth caps range
// excerpts; zero means the default.
type RenderOptions struct {
	Color        bool
	PreviewWidth int
	ASCII        bool
}

// RangeRow pairs a tagged range with its stored index, which is the index
// the move and delete commands address.
type RangeRow struct {
	Index int `json:"index"`
	TaggedRange
}

// RangeRows lists the ranges as rows. With sorted set the rows are ordered
// by start offset; the indices always refer to stored order.
func (d *Document) RangeRows(sorted bool) []RangeRow {
	rows := make([]RangeRow, 0, len(d.TaggedRanges))
	for i, r := range d.TaggedRanges {
		rows = append(rows, RangeRow{Index: i, TaggedRange: r})
	}
	if sorted {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Span, rows[j].Span
			if a.Start != b.Start {
				return a.Start < b.Start
			}
			if a.End != b.End {
				return a.End < b.End
			}
			return rows[i].TagName < rows[j].TagName
		})
	}
	return rows
}

// Swatch renders a color sample followed by its hex value.
func Swatch(c RGB, opts RenderOptions) string {
	if !opts.Color {
		return c.Hex()
	}
	block := "■"
	if opts.ASCII {
		block = "#"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(block) + " " + c.Hex()
}

// TagChip renders the tag name over its color.
func TagChip(name string, c RGB, opts RenderOptions) string {
	if !opts.Color {
		return name
	}
	fg := ReadableTextColor(c)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(0, 1).
		Render(name)
}

// rowColor is the highlight color for one range: its tag color, blended with
// the colors of overlapping ranges carrying other tags.
func rowColor(d *Document, row RangeRow) RGB {
	colors := d.Colors()
	c, ok := colors[row.TagName]
	if !ok {
		return RGB{128, 128, 128}
	}
	for _, other := range d.TaggedRanges {
		if other.TagName == row.TagName || !other.Span.Intersects(row.Span) {
			continue
		}
		if oc, ok := colors[other.TagName]; ok {
			c = MixColors(c, oc)
		}
	}
	return c
}

func RenderTags(d *Document, opts RenderOptions) string {
	if len(d.Tags) == 0 {
		return "no tags\n"
	}
	counts := map[string]int{}
	for _, r := range d.TaggedRanges {
		counts[r.TagName]++
	}
	var b strings.Builder
	for _, t := range d.Tags {
		n := counts[t.Name]
		noun := "ranges"
		if n == 1 {
			noun = "range"
		}
		fmt.Fprintf(&b, "%s  %-16s %d %s\n", Swatch(t.Color, opts), t.Name, n, noun)
	}
	return b.String()
}

func RenderRanges(d *Document, rows []RangeRow, opts RenderOptions) string {
	if len(rows) == 0 {
		return "no ranges\n"
	}
	width := opts.PreviewWidth
	if width <= 0 {
		width = defaultPreviewWidth
	}
	var b strings.Builder
	for _, row := range rows {
		preview := truncate(firstLine(d.RangeText(row.TaggedRange)), width, opts.ASCII)
		chip := TagChip(row.TagName, rowColor(d, row), opts)
		fmt.Fprintf(&b, "%3d  %5d..%-5d %-*s  %s\n", row.Index, row.Span.Start, row.Span.End, width, preview, chip)
	}
	return b.String()
}

// RenderDocument renders the buffer for the show command, with tagged
// segments highlighted when color is on.
func RenderDocument(d *Document, opts RenderOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d bytes, %d lines, %d tags, %d ranges\n", len(d.Buffer), d.LineCount(), len(d.Tags), len(d.TaggedRanges))
	fmt.Fprintf(&b, "settings: dark_mode=%t markdown_view_enabled=%t mark_as_background=%t\n\n",
		d.Settings.DarkMode, d.Settings.MarkdownViewEnabled, d.Settings.MarkAsBackground)
	b.WriteString(renderHighlighted(d, opts))
	if !strings.HasSuffix(d.Buffer, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// renderHighlighted colors every tagged segment of the buffer with its tag
// color, blending where ranges of different tags overlap.
func renderHighlighted(d *Document, opts RenderOptions) string {
	if !opts.Color || len(d.TaggedRanges) == 0 {
		return d.Buffer
	}
	cuts := map[int]bool{0: true, len(d.Buffer): true}
	for _, r := range d.TaggedRanges {
		if r.Span.Start >= 0 && r.Span.Start <= len(d.Buffer) {
			cuts[r.Span.Start] = true
		}
		if r.Span.End >= 0 && r.Span.End <= len(d.Buffer) {
			cuts[r.Span.End] = true
		}
	}
	offsets := make([]int, 0, len(cuts))
	for o := range cuts {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)

	colors := d.Colors()
	var b strings.Builder
	for i := 0; i+1 < len(offsets); i++ {
		lo, hi := offsets[i], offsets[i+1]
		seg := d.Buffer[lo:hi]
		var mixed *RGB
		for _, r := range d.TaggedRanges {
			if r.Span.Start > lo || hi > r.Span.End {
				continue
			}
			c, ok := colors[r.TagName]
			if !ok {
				continue
			}
			if mixed == nil {
				cc := c
				mixed = &cc
			} else {
				cc := MixColors(*mixed, c)
				mixed = &cc
			}
		}
		if mixed == nil {
			b.WriteString(seg)
			continue
		}
		fg := ReadableTextColor(*mixed)
		b.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(mixed.Hex())).
			Foreground(lipgloss.Color(fg.Hex())).
			Render(seg))
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
