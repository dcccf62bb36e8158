package store

import "strings"

// Tag is a named display color. The name is the identity: ranges reference
// tags by name only.
type Tag struct {
	Name  string `json:"name"`
	Color RGB    `json:"color"`
}

// TaggedRange marks one contiguous span of the buffer with a tag. TagName is
// a weak reference: it may dangle briefly mid-operation but is cascade-deleted
// with its tag.
type TaggedRange struct {
	TagName string `json:"tag_name"`
	Span    Span   `json:"range"`
}

type Settings struct {
	DarkMode            bool `yaml:"dark_mode" json:"dark_mode"`
	MarkdownViewEnabled bool `yaml:"markdown_view_enabled" json:"markdown_view_enabled"`
	MarkAsBackground    bool `yaml:"mark_as_background" json:"mark_as_background"`
}

// Document is the whole persisted state: the text buffer, the tag registry,
// the tagged ranges in stored (insertion/reorder) order, and the settings.
// All mutation goes through Workspace.Apply.
type Document struct {
	Schema       int           `json:"schema"`
	Buffer       string        `json:"buffer"`
	Tags         []Tag         `json:"tags"`
	TaggedRanges []TaggedRange `json:"tagged_ranges"`
	Settings     Settings      `json:"settings"`
}

const welcomeText = "Welcome to taskmonger!\n\nJust start typing here and tag your things."

func DefaultDocument() *Document {
	return &Document{
		Schema:       1,
		Buffer:       welcomeText,
		Tags:         []Tag{},
		TaggedRanges: []TaggedRange{},
	}
}

func (d *Document) FindTag(name string) (Tag, bool) {
	for _, t := range d.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Colors returns the tag name to color mapping consumed by renderers.
func (d *Document) Colors() map[string]RGB {
	out := make(map[string]RGB, len(d.Tags))
	for _, t := range d.Tags {
		out[t.Name] = t.Color
	}
	return out
}

// RangeText returns the buffer text covered by r, clamped to the buffer.
// Momentarily empty or out-of-bounds ranges yield "".
func (d *Document) RangeText(r TaggedRange) string {
	start, end := r.Span.Start, r.Span.End
	if start < 0 {
		start = 0
	}
	if end > len(d.Buffer) {
		end = len(d.Buffer)
	}
	if start >= end {
		return ""
	}
	return d.Buffer[start:end]
}

func (d *Document) LineCount() int {
	if d.Buffer == "" {
		return 0
	}
	return strings.Count(d.Buffer, "\n") + 1
}
