package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// SnapshotConflictError reports an ambiguous snapshot prefix. It still
// satisfies errors.Is(err, ErrConflict).
type SnapshotConflictError struct {
	Prefix  string
	Matches []SnapshotInfo
}

func (e *SnapshotConflictError) Error() string {
	if e == nil || strings.TrimSpace(e.Prefix) == "" {
		return "conflict"
	}
	return "conflict: snapshot prefix " + e.Prefix + " is ambiguous"
}

func (e *SnapshotConflictError) Is(target error) bool {
	return target == ErrConflict
}

type SnapshotInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
}

// Load reads the current document. When the state file is missing or
// unreadable it falls back to the plain-text backup, keeping the text but
// losing tags, and finally to the default welcome document. Load always
// yields a usable document.
func (w *Workspace) Load() *Document {
	b, err := os.ReadFile(w.statePath())
	if err == nil {
		var doc Document
		jerr := json.Unmarshal(b, &doc)
		if jerr == nil {
			normalizeDocument(&doc)
			return &doc
		}
		slog.Warn("state file unreadable, trying backup", "path", w.statePath(), "err", jerr)
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("state file unreadable, trying backup", "path", w.statePath(), "err", err)
	}
	if t, terr := os.ReadFile(w.backupPath()); terr == nil {
		doc := DefaultDocument()
		doc.Buffer = string(t)
		return doc
	}
	return DefaultDocument()
}

// Save writes the state file and the plain-text backup. Each write is
// atomic on its own; failures are logged and do not stop the caller.
func (w *Workspace) Save(doc *Document) {
	if err := w.writeState(doc); err != nil {
		slog.Warn("save state", "path", w.statePath(), "err", err)
	}
	if err := w.writeBackup(doc); err != nil {
		slog.Warn("save backup", "path", w.backupPath(), "err", err)
	}
}

func (w *Workspace) writeState(doc *Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(w.statePath(), b, 0o644)
}

func (w *Workspace) writeBackup(doc *Document) error {
	return atomicWriteFile(w.backupPath(), []byte(doc.Buffer), 0o644)
}

func normalizeDocument(doc *Document) {
	if doc.Schema == 0 {
		doc.Schema = 1
	}
	if doc.Tags == nil {
		doc.Tags = []Tag{}
	}
	if doc.TaggedRanges == nil {
		doc.TaggedRanges = []TaggedRange{}
	}
	doc.CleanInvalidRanges()
}

// Snapshot writes the document to snapshots/<id>.json and returns the new
// entry.
func (w *Workspace) Snapshot(doc *Document) (*SnapshotInfo, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	id := "snap_" + newULID()
	path := filepath.Join(w.snapshotsDir(), id+".json")
	if err := atomicWriteFile(path, b, 0o644); err != nil {
		return nil, err
	}
	return &SnapshotInfo{
		ID:        id,
		CreatedAt: timeNow(),
		Path:      path,
		Size:      int64(len(b)),
	}, nil
}

// Snapshots lists stored snapshots, newest first.
func (w *Workspace) Snapshots() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(w.snapshotsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []SnapshotInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		if !strings.HasPrefix(id, "snap_") {
			continue
		}
		info := SnapshotInfo{ID: id, Path: filepath.Join(w.snapshotsDir(), e.Name())}
		if fi, ferr := e.Info(); ferr == nil {
			info.Size = fi.Size()
			info.CreatedAt = fi.ModTime().UTC()
		}
		if u, perr := ulid.Parse(strings.TrimPrefix(id, "snap_")); perr == nil {
			info.CreatedAt = ulid.Time(u.Time()).UTC()
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Restore loads the snapshot whose ID matches id, which may be a unique
// prefix with or without the snap_ marker, and saves it as the current
// state.
func (w *Workspace) Restore(id string) (*Document, *SnapshotInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, fmt.Errorf("%w: snapshot id is required", ErrInvalid)
	}
	snaps, err := w.Snapshots()
	if err != nil {
		return nil, nil, err
	}
	var matches []SnapshotInfo
	for _, s := range snaps {
		if s.ID == id {
			matches = []SnapshotInfo{s}
			break
		}
		if strings.HasPrefix(s.ID, id) || strings.HasPrefix(s.ID, "snap_"+id) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%w: snapshot %q", ErrNotFound, id)
	}
	if len(matches) > 1 {
		return nil, nil, &SnapshotConflictError{Prefix: id, Matches: matches}
	}
	b, err := os.ReadFile(matches[0].Path)
	if err != nil {
		return nil, nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: snapshot %s: %v", ErrInvalid, matches[0].ID, err)
	}
	normalizeDocument(&doc)
	w.Save(&doc)
	return &doc, &matches[0], nil
}
