package store

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type exportFrontmatter struct {
	Schema     int         `yaml:"schema"`
	ExportedAt time.Time   `yaml:"exported_at"`
	Settings   Settings    `yaml:"settings"`
	Tags       []exportTag `yaml:"tags"`
}

type exportTag struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// MarkdownExport renders the document as markdown: a YAML frontmatter block
// with the tag registry and settings, the buffer verbatim, then one card per
// tagged range in stored order.
func MarkdownExport(doc *Document) ([]byte, error) {
	fm := exportFrontmatter{
		Schema:     doc.Schema,
		ExportedAt: timeNow(),
		Settings:   doc.Settings,
		Tags:       make([]exportTag, 0, len(doc.Tags)),
	}
	for _, t := range doc.Tags {
		fm.Tags = append(fm.Tags, exportTag{Name: t.Name, Color: t.Color.Hex()})
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")
	b.WriteString(doc.Buffer)
	if !strings.HasSuffix(doc.Buffer, "\n") {
		b.WriteString("\n")
	}
	if len(doc.TaggedRanges) > 0 {
		b.WriteString("\n## Tagged ranges\n")
		for _, r := range doc.TaggedRanges {
			fmt.Fprintf(&b, "\n### %s (%d-%d)\n\n", r.TagName, r.Span.Start, r.Span.End)
			text := doc.RangeText(r)
			b.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String()), nil
}
