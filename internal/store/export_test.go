package store

import (
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestMarkdownExportStructure(t *testing.T) {
	old := timeNow
	defer func() { timeNow = old }()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }

	doc := testDoc("hello world", tr("note", 0, 5), tr("urgent", 6, 11))
	out, err := MarkdownExport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.SplitN(string(out), "---\n", 3)
	if len(parts) != 3 || parts[0] != "" {
		t.Fatalf("expected frontmatter fences, got %q", string(out))
	}

	var fm exportFrontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter does not parse: %v", err)
	}
	if fm.Schema != 1 {
		t.Fatalf("expected schema 1, got %d", fm.Schema)
	}
	if !fm.ExportedAt.Equal(fixed) {
		t.Fatalf("expected exported_at %v, got %v", fixed, fm.ExportedAt)
	}
	if len(fm.Tags) != 2 || fm.Tags[0].Name != "note" || fm.Tags[0].Color != TagColor(0).Hex() {
		t.Fatalf("expected tag registry in frontmatter, got %#v", fm.Tags)
	}

	body := parts[2]
	if !strings.Contains(body, "hello world\n") {
		t.Fatalf("expected buffer in body, got %q", body)
	}
	if !strings.Contains(body, "## Tagged ranges") {
		t.Fatalf("expected ranges section, got %q", body)
	}
	if !strings.Contains(body, "### note (0-5)\n\nhello\n") {
		t.Fatalf("expected note card with excerpt, got %q", body)
	}
	if !strings.Contains(body, "### urgent (6-11)\n\nworld\n") {
		t.Fatalf("expected urgent card with excerpt, got %q", body)
	}
}

func TestMarkdownExportWithoutRangesOmitsSection(t *testing.T) {
	doc := testDoc("just text")
	out, err := MarkdownExport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "## Tagged ranges") {
		t.Fatalf("expected no ranges section, got %q", string(out))
	}
	if !strings.HasSuffix(string(out), "just text\n") {
		t.Fatalf("expected body to end with buffer, got %q", string(out))
	}
}
