package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestInitSeedsWelcomeDocument(t *testing.T) {
	ws := testWorkspace(t)

	for _, name := range []string{"taskmonger.json", "backup.txt", "config.json"} {
		if _, err := os.Stat(filepath.Join(ws.Root, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}
	if fi, err := os.Stat(filepath.Join(ws.Root, "snapshots")); err != nil || !fi.IsDir() {
		t.Fatalf("expected snapshots dir, err=%v", err)
	}

	doc := ws.Load()
	if doc.Schema != 1 {
		t.Fatalf("expected schema 1, got %d", doc.Schema)
	}
	if !strings.Contains(doc.Buffer, "Welcome to taskmonger") {
		t.Fatalf("expected welcome text, got %q", doc.Buffer)
	}
}

func TestInitKeepsExistingState(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Load()
	if _, err := ws.Apply(doc, InsertText{At: 0, Text: "mine", SelectionLen: len(doc.Buffer)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ws.Init(); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if got := ws.Load(); got.Buffer != "mine" {
		t.Fatalf("expected state untouched by init, got %q", got.Buffer)
	}
}

func TestLoadFallsBackToBackupText(t *testing.T) {
	ws := testWorkspace(t)
	if err := os.WriteFile(filepath.Join(ws.Root, "taskmonger.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ws.Root, "backup.txt"), []byte("Recovered text"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := ws.Load()
	if doc.Buffer != "Recovered text" {
		t.Fatalf("expected backup buffer, got %q", doc.Buffer)
	}
	if len(doc.Tags) != 0 || len(doc.TaggedRanges) != 0 {
		t.Fatalf("expected tags and ranges to reset on recovery, got %v %v", doc.Tags, doc.TaggedRanges)
	}
}

func TestLoadFallsBackToDefaultWhenNothingReadable(t *testing.T) {
	ws, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := ws.Load()
	if !strings.Contains(doc.Buffer, "Welcome to taskmonger") {
		t.Fatalf("expected default document, got %q", doc.Buffer)
	}

	if err := os.MkdirAll(ws.Root, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ws.Root, "taskmonger.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc = ws.Load()
	if !strings.Contains(doc.Buffer, "Welcome to taskmonger") {
		t.Fatalf("expected default document after corrupt state, got %q", doc.Buffer)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Load()
	doc.Buffer = "hello world"
	doc.AddTag("note")
	doc.AddTag("urgent")
	doc.ApplyTagToSelection("note", Span{0, 5})
	doc.ApplyTagToSelection("urgent", Span{6, 11})
	doc.Settings.DarkMode = true
	ws.Save(doc)

	got := ws.Load()
	if got.Buffer != doc.Buffer {
		t.Fatalf("expected buffer %q, got %q", doc.Buffer, got.Buffer)
	}
	if !reflect.DeepEqual(got.Tags, doc.Tags) {
		t.Fatalf("expected tags %v, got %v", doc.Tags, got.Tags)
	}
	if !reflect.DeepEqual(got.TaggedRanges, doc.TaggedRanges) {
		t.Fatalf("expected ranges %v, got %v", doc.TaggedRanges, got.TaggedRanges)
	}
	if got.Settings != doc.Settings {
		t.Fatalf("expected settings %+v, got %+v", doc.Settings, got.Settings)
	}
}

func TestLoadClampsHandEditedRanges(t *testing.T) {
	ws := testWorkspace(t)
	state := `{
  "schema": 1,
  "buffer": "short",
  "tags": [{"name": "a", "color": [1, 2, 3]}],
  "tagged_ranges": [
    {"tag_name": "a", "range": {"start": 0, "end": 99}},
    {"tag_name": "a", "range": {"start": 40, "end": 50}}
  ],
  "settings": {"dark_mode": false, "markdown_view_enabled": false, "mark_as_background": false}
}`
	if err := os.WriteFile(filepath.Join(ws.Root, "taskmonger.json"), []byte(state), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := ws.Load()
	if len(doc.TaggedRanges) != 1 {
		t.Fatalf("expected out-of-bounds range dropped, got %v", doc.TaggedRanges)
	}
	if got := doc.TaggedRanges[0].Span; got != (Span{0, 5}) {
		t.Fatalf("expected range clamped to 0..5, got %d..%d", got.Start, got.End)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Load()
	if _, err := ws.Apply(doc, CreateTag{Name: "keep"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := ws.Snapshot(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(info.ID, "snap_") {
		t.Fatalf("expected snap_ id, got %q", info.ID)
	}
	if _, err := os.Stat(info.Path); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}

	if _, err := ws.Apply(doc, DeleteTag{Name: "keep"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, rinfo, err := ws.Restore(info.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rinfo.ID != info.ID {
		t.Fatalf("expected restore of %s, got %s", info.ID, rinfo.ID)
	}
	if _, ok := restored.FindTag("keep"); !ok {
		t.Fatalf("expected restored tag, got %v", restored.Tags)
	}
	current := ws.Load()
	if _, ok := current.FindTag("keep"); !ok {
		t.Fatalf("expected restore to become the current state")
	}
}

func TestSnapshotsListNewestFirst(t *testing.T) {
	old := timeNow
	defer func() { timeNow = old }()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return base }

	ws := testWorkspace(t)
	doc := ws.Load()
	first, err := ws.Snapshot(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	timeNow = func() time.Time { return base.Add(time.Minute) }
	second, err := ws.Snapshot(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := ws.Snapshots()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
	if !list[0].CreatedAt.Equal(base.Add(time.Minute)) || !list[1].CreatedAt.Equal(base) {
		t.Fatalf("expected timestamps from ids, got %v and %v", list[0].CreatedAt, list[1].CreatedAt)
	}
}

func TestRestoreResolvesPrefixes(t *testing.T) {
	ws := testWorkspace(t)
	doc := ws.Load()
	first, err := ws.Snapshot(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ws.Snapshot(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A bare ULID without the snap_ marker resolves too.
	bare := strings.TrimPrefix(first.ID, "snap_")
	if _, rinfo, err := ws.Restore(bare); err != nil || rinfo.ID != first.ID {
		t.Fatalf("expected bare id to resolve to %s, got %v err=%v", first.ID, rinfo, err)
	}

	_, _, err = ws.Restore("snap_")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for ambiguous prefix, got %v", err)
	}
	var conflict *SnapshotConflictError
	if !errors.As(err, &conflict) || len(conflict.Matches) != 2 {
		t.Fatalf("expected 2 matches in conflict, got %v", err)
	}

	if _, _, err := ws.Restore("zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := ws.Restore(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected invalid for empty id, got %v", err)
	}
}
