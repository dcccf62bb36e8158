package store

import "testing"

func TestAddTagTrimsAndAssignsPaletteColor(t *testing.T) {
	d := DefaultDocument()
	if !d.AddTag("  urgent  ") {
		t.Fatalf("expected tag to be added")
	}
	if len(d.Tags) != 1 || d.Tags[0].Name != "urgent" {
		t.Fatalf("expected trimmed tag name, got %v", d.Tags)
	}
	if d.Tags[0].Color != TagColor(0) {
		t.Fatalf("expected first palette color, got %v", d.Tags[0].Color)
	}
	if !d.AddTag("note") {
		t.Fatalf("expected second tag to be added")
	}
	if d.Tags[1].Color != TagColor(1) {
		t.Fatalf("expected second palette color, got %v", d.Tags[1].Color)
	}
}

func TestAddTagRejectsEmptyAndDuplicate(t *testing.T) {
	d := DefaultDocument()
	if d.AddTag("") || d.AddTag("   ") {
		t.Fatalf("expected empty names to be no-ops")
	}
	if !d.AddTag("urgent") {
		t.Fatalf("expected tag to be added")
	}
	if d.AddTag("urgent") || d.AddTag(" urgent ") {
		t.Fatalf("expected duplicate names to be no-ops")
	}
	if len(d.Tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(d.Tags))
	}
}

func TestRemoveTagCascadesToItsRanges(t *testing.T) {
	d := testDoc("hello world",
		tr("note", 0, 5),
		tr("urgent", 6, 11),
		tr("note", 6, 9),
	)
	if !d.RemoveTag("note") {
		t.Fatalf("expected removal")
	}
	if _, ok := d.FindTag("note"); ok {
		t.Fatalf("expected tag gone")
	}
	if len(d.TaggedRanges) != 1 {
		t.Fatalf("expected only the urgent range to survive, got %d", len(d.TaggedRanges))
	}
	if d.TaggedRanges[0].TagName != "urgent" {
		t.Fatalf("expected urgent range, got %s", d.TaggedRanges[0].TagName)
	}
	if d.RemoveTag("note") {
		t.Fatalf("expected second removal to be a no-op")
	}
}

func TestRecolorTag(t *testing.T) {
	d := testDoc("hello world")
	want := RGB{1, 2, 3}
	if !d.RecolorTag("note", want) {
		t.Fatalf("expected recolor")
	}
	tag, ok := d.FindTag("note")
	if !ok || tag.Color != want {
		t.Fatalf("expected color %v, got %v", want, tag.Color)
	}
	if d.RecolorTag("missing", want) {
		t.Fatalf("expected unknown tag to be a no-op")
	}
}
