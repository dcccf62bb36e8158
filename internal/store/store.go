package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	timeNow     = func() time.Time { return time.Now().UTC() }
)

const defaultPreviewWidth = 30

// Workspace is a directory holding one document plus its config, backup and
// snapshots. Open does not create files until Init is called.
type Workspace struct {
	Root string
	cfg  Config
}

type Config struct {
	Schema int           `json:"schema"`
	Files  FilesConfig   `json:"files"`
	Render *RenderConfig `json:"render,omitempty"`
}

type FilesConfig struct {
	State  string `json:"state"`
	Backup string `json:"backup"`
}

type RenderConfig struct {
	PreviewWidth int  `json:"preview_width"`
	Color        bool `json:"color"`
}

func Open(root string) (*Workspace, error) {
	ws := &Workspace{Root: expandHome(root)}
	if err := ws.loadOrDefaultConfig(); err != nil {
		// If config doesn't exist, that's ok until Init.
	}
	return ws, nil
}

func (w *Workspace) Init() error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(w.snapshotsDir(), 0o755); err != nil {
		return err
	}
	if err := w.ensureConfig(); err != nil {
		return err
	}
	// Seed the welcome document unless state already exists.
	if _, err := os.Stat(w.statePath()); err == nil {
		return nil
	}
	doc := DefaultDocument()
	if err := w.writeState(doc); err != nil {
		return err
	}
	return w.writeBackup(doc)
}

func (w *Workspace) ensureConfig() error {
	cfgPath := filepath.Join(w.Root, "config.json")
	if _, err := os.Stat(cfgPath); err == nil {
		return w.loadOrDefaultConfig()
	}
	w.cfg = defaultConfig()
	b, _ := json.MarshalIndent(w.cfg, "", "  ")
	return atomicWriteFile(cfgPath, b, 0o644)
}

func defaultConfig() Config {
	return Config{
		Schema: 1,
		Files: FilesConfig{
			State:  "taskmonger.json",
			Backup: "backup.txt",
		},
		Render: &RenderConfig{
			PreviewWidth: defaultPreviewWidth,
			Color:        true,
		},
	}
}

func (w *Workspace) loadOrDefaultConfig() error {
	cfgPath := filepath.Join(w.Root, "config.json")
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		w.cfg = defaultConfig()
		return err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		w.cfg = defaultConfig()
		return err
	}
	w.cfg = normalizeConfig(cfg)
	return nil
}

func normalizeConfig(cfg Config) Config {
	def := defaultConfig()
	if cfg.Schema == 0 {
		cfg.Schema = 1
	}
	if strings.TrimSpace(cfg.Files.State) == "" {
		cfg.Files.State = def.Files.State
	}
	if strings.TrimSpace(cfg.Files.Backup) == "" {
		cfg.Files.Backup = def.Files.Backup
	}
	if cfg.Render != nil && cfg.Render.PreviewWidth <= 0 {
		cfg.Render.PreviewWidth = defaultPreviewWidth
	}
	return cfg
}

func (w *Workspace) Config() Config {
	return w.cfg
}

func (w *Workspace) SaveConfig(cfg Config) error {
	cfg = normalizeConfig(cfg)
	w.cfg = cfg
	b, _ := json.MarshalIndent(cfg, "", "  ")
	cfgPath := filepath.Join(w.Root, "config.json")
	return atomicWriteFile(cfgPath, b, 0o644)
}

func (w *Workspace) statePath() string {
	return filepath.Join(w.Root, w.cfg.Files.State)
}

func (w *Workspace) backupPath() string {
	return filepath.Join(w.Root, w.cfg.Files.Backup)
}

func (w *Workspace) snapshotsDir() string {
	return filepath.Join(w.Root, "snapshots")
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}

func truncate(s string, n int, ascii bool) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	if ascii {
		return string(r[:n-2]) + ".."
	}
	// unicode ellipsis
	return string(r[:n-1]) + "…"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
