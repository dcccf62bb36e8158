package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/woelper/taskmonger/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
	ExitInternal = 10
)

type GlobalFlags struct {
	Root         string
	JSON         bool
	NDJSON       bool
	Plain        bool
	ASCII        bool
	Quiet        bool
	Verbose      bool
	StdoutJSON   bool
	StdoutNDJSON bool
	ExportDir    string
}

func reorderFlags(args []string, takesValue map[string]bool) []string {
	if len(args) == 0 {
		return args
	}
	var flags []string
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			if i+1 < len(args) {
				rest = append(rest, args[i+1:]...)
			}
			break
		}
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
			if takesValue[a] && !strings.Contains(a, "=") {
				if i+1 < len(args) {
					flags = append(flags, args[i+1])
					i++
				}
			}
			continue
		}
		rest = append(rest, a)
	}
	return append(flags, rest...)
}

func resolveColor(ws *store.Workspace, gf GlobalFlags) bool {
	if gf.Plain {
		return false
	}
	if rc := ws.Config().Render; rc != nil {
		return rc.Color
	}
	return false
}

func resolvePreviewWidth(ws *store.Workspace) int {
	if rc := ws.Config().Render; rc != nil && rc.PreviewWidth > 0 {
		return rc.PreviewWidth
	}
	return 0
}

func renderOptions(ws *store.Workspace, gf GlobalFlags) store.RenderOptions {
	return store.RenderOptions{
		Color:        resolveColor(ws, gf),
		PreviewWidth: resolvePreviewWidth(ws),
		ASCII:        gf.ASCII,
	}
}

func Run(args []string) int {
	gf, rest, err := extractGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return ExitUsage
	}

	if len(rest) == 0 {
		printHelp()
		return ExitUsage
	}

	cmd := rest[0]
	cmdArgs := rest[1:]

	ws, err := store.Open(gf.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "taskmonger:", err)
		return ExitInternal
	}

	switch cmd {
	case "help", "--help", "-h":
		printHelp()
		return ExitOK
	case "init":
		return cmdInit(ws, gf, cmdArgs)
	case "onboarding":
		return cmdOnboarding(ws, gf, cmdArgs)
	case "config", "cfg":
		return cmdConfig(ws, gf, cmdArgs)
	case "show":
		return cmdShow(ws, gf, cmdArgs)
	case "text":
		return cmdText(ws, gf, cmdArgs)
	case "insert":
		return cmdInsert(ws, gf, cmdArgs)
	case "delete", "del":
		return cmdDelete(ws, gf, cmdArgs)
	case "tag":
		return cmdTag(ws, gf, cmdArgs)
	case "tags":
		return cmdTags(ws, gf, cmdArgs)
	case "apply":
		return cmdApply(ws, gf, cmdArgs)
	case "ranges":
		return cmdRanges(ws, gf, cmdArgs)
	case "range":
		return cmdRange(ws, gf, cmdArgs)
	case "settings":
		return cmdSettings(ws, gf, cmdArgs)
	case "export":
		return cmdExport(ws, gf, cmdArgs)
	case "snapshot":
		return cmdSnapshot(ws, gf, cmdArgs)
	case "snapshots":
		return cmdSnapshots(ws, gf, cmdArgs)
	case "restore":
		return cmdRestore(ws, gf, cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printHelp()
		return ExitUsage
	}
}

func printHelp() {
	fmt.Print(`taskmonger — tag ranges of a plain-text buffer (no DB)

Usage:
  taskmonger [global flags] <command> [args]

Global flags:
  --root <path>    Workspace root (default: ~/.taskmonger or TASKMONGER_ROOT)
  --json           Write JSON output to <root>/exports (no stdout JSON)
  --ndjson         Write NDJSON output to <root>/exports (no stdout NDJSON)
  --stdout-json    Allow JSON to stdout (debug only)
  --stdout-ndjson  Allow NDJSON to stdout (debug only)
  --export-dir     Override export directory (default: <root>/exports)
  --plain          TSV output, no color
  --ascii          ASCII rendering for previews
  --quiet
  --verbose

Commands:
  init
  onboarding
  config show
  config set <key> <value>
  show
  text
  insert --at <offset> --text "<text>" [--sel-len <n>]
  delete --at <offset> [--count <n>] [--selection]
  tag add "<name>"
  tag rm "<name>"
  tag color "<name>" <#rrggbb>
  tag ls
  tags
  apply "<name>" --start <offset> --end <offset>
  ranges [--tag <name>] [--stored]
  range rm --tag <name> --start <offset> --end <offset>
  range mv --from <index> --to <index>
  settings [--dark-mode on|off] [--markdown-view on|off] [--background on|off]
  export [--out <path>|-]
  snapshot
  snapshots
  restore <id-or-prefix>

Offsets are byte offsets into the buffer; ranges are half-open start..end.
`)
}

func extractGlobalFlags(args []string) (GlobalFlags, []string, error) {
	// Allow flags anywhere by scanning and stripping known globals.
	gf := GlobalFlags{}

	// Default root from env or home.
	if env := os.Getenv("TASKMONGER_ROOT"); env != "" {
		gf.Root = env
	} else {
		home, _ := os.UserHomeDir()
		if home != "" {
			gf.Root = filepath.Join(home, ".taskmonger")
		} else {
			gf.Root = ".taskmonger"
		}
	}

	out := make([]string, 0, len(args))
	skip := 0

	for i := 0; i < len(args); i++ {
		if skip > 0 {
			skip--
			continue
		}
		a := args[i]
		switch a {
		case "--root":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--root requires a value")
			}
			gf.Root = args[i+1]
			skip = 1
		case "--json":
			gf.JSON = true
		case "--ndjson":
			gf.NDJSON = true
		case "--stdout-json":
			gf.StdoutJSON = true
		case "--stdout-ndjson":
			gf.StdoutNDJSON = true
		case "--export-dir":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--export-dir requires a value")
			}
			gf.ExportDir = args[i+1]
			skip = 1
		case "--plain":
			gf.Plain = true
		case "--ascii":
			gf.ASCII = true
		case "--quiet":
			gf.Quiet = true
		case "--verbose":
			gf.Verbose = true
		default:
			out = append(out, a)
		}
	}

	if gf.JSON && gf.NDJSON {
		return gf, nil, errors.New("--json and --ndjson are mutually exclusive")
	}
	if gf.StdoutJSON && !gf.JSON {
		return gf, nil, errors.New("--stdout-json requires --json")
	}
	if gf.StdoutNDJSON && !gf.NDJSON {
		return gf, nil, errors.New("--stdout-ndjson requires --ndjson")
	}
	if gf.ExportDir == "" {
		gf.ExportDir = filepath.Join(gf.Root, "exports")
	}
	return gf, out, nil
}

func cmdOnboarding(ws *store.Workspace, gf GlobalFlags, args []string) int {
	fmt.Println("Welcome to taskmonger — a tagged text buffer on plain files.")
	fmt.Println()
	fmt.Println("Workspace root:")
	fmt.Println(" ", ws.Root)
	fmt.Println()
	fmt.Println("Quickstart:")
	fmt.Println("  taskmonger init")
	fmt.Println("  taskmonger tag add urgent")
	fmt.Println("  taskmonger apply urgent --start 0 --end 7")
	fmt.Println("  taskmonger ranges")
	fmt.Println("  taskmonger export")
	fmt.Println()
	fmt.Println("Tip: Use --root or TASKMONGER_ROOT to point to a specific workspace.")
	fmt.Println("Edits keep tagged ranges in place: insert and delete shift them for you.")
	fmt.Println("See current config: taskmonger config show")
	return ExitOK
}

func cmdInit(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if err := ws.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "init:", err)
		return ExitInternal
	}
	if !gf.Quiet {
		fmt.Println("Initialized taskmonger workspace at:", ws.Root)
	}
	return ExitOK
}

func cmdConfig(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger config <show|set> ...")
		return ExitUsage
	}
	sub := args[0]
	switch sub {
	case "show":
		// handled below
	case "set":
		return cmdConfigSet(ws, gf, args[1:])
	default:
		fmt.Fprintln(os.Stderr, "Usage: taskmonger config <show|set> ...")
		return ExitUsage
	}

	cfg := ws.Config()
	cfgPath := filepath.Join(ws.Root, "config.json")
	_, err := os.Stat(cfgPath)
	exists := err == nil

	payload := map[string]any{
		"root":        ws.Root,
		"config_path": cfgPath,
		"exists":      exists,
		"config":      cfg,
	}

	if gf.NDJSON {
		if gf.StdoutNDJSON {
			b, _ := json.Marshal(payload)
			fmt.Println(string(b))
		} else {
			path, err := writeNDJSONExport(gf, "config", []any{payload})
			if err != nil {
				fmt.Fprintln(os.Stderr, "config show:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote NDJSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(payload)
		} else {
			path, err := writeJSONExport(gf, "config", payload)
			if err != nil {
				fmt.Fprintln(os.Stderr, "config show:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.Plain {
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintf(w, "root\t%s\n", ws.Root)
		fmt.Fprintf(w, "config_path\t%s\n", cfgPath)
		fmt.Fprintf(w, "exists\t%t\n", exists)
		fmt.Fprintf(w, "files.state\t%s\n", cfg.Files.State)
		fmt.Fprintf(w, "files.backup\t%s\n", cfg.Files.Backup)
		if cfg.Render != nil {
			fmt.Fprintf(w, "render.preview_width\t%d\n", cfg.Render.PreviewWidth)
			fmt.Fprintf(w, "render.color\t%t\n", cfg.Render.Color)
		} else {
			fmt.Fprintf(w, "render\t(none)\n")
		}
		_ = w.Flush()
		return ExitOK
	}

	fmt.Println("Config")
	fmt.Println("  Root:", ws.Root)
	if exists {
		fmt.Println("  Config file:", cfgPath)
	} else {
		fmt.Println("  Config file:", cfgPath, "(not found; defaults shown)")
	}
	fmt.Println()
	fmt.Println("Files:")
	fmt.Printf("  state: %s\n", cfg.Files.State)
	fmt.Printf("  backup: %s\n", cfg.Files.Backup)
	fmt.Println()
	if cfg.Render == nil {
		fmt.Println("Render: (not set)")
		fmt.Println("  Add a render block to config.json to set preview width and color.")
	} else {
		fmt.Println("Render:")
		fmt.Printf("  preview_width: %d\n", cfg.Render.PreviewWidth)
		fmt.Printf("  color: %t\n", cfg.Render.Color)
	}
	return ExitOK
}

func cmdConfigSet(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger config set <key> <value>")
		return ExitUsage
	}
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(strings.Join(args[1:], " "))
	cfg := ws.Config()
	if cfg.Render == nil {
		cfg.Render = &store.RenderConfig{}
	}

	switch key {
	case "render.preview_width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return configSetInvalid("render.preview_width", value)
		}
		cfg.Render.PreviewWidth = n
	case "render.color":
		v, ok := parseBool(value)
		if !ok {
			return configSetInvalid("render.color", value)
		}
		cfg.Render.Color = v
	case "files.state":
		if value == "" || strings.ContainsAny(value, "/\\") {
			return configSetInvalid("files.state", value)
		}
		cfg.Files.State = value
	case "files.backup":
		if value == "" || strings.ContainsAny(value, "/\\") {
			return configSetInvalid("files.backup", value)
		}
		cfg.Files.Backup = value
	default:
		fmt.Fprintln(os.Stderr, "Unknown config key:", key)
		fmt.Fprintln(os.Stderr, "Allowed keys: render.preview_width, render.color, files.state, files.backup")
		return ExitUsage
	}

	if err := ws.SaveConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config set:", err)
		return ExitInternal
	}
	if !gf.Quiet {
		fmt.Printf("Updated %s\n", key)
	}
	return ExitOK
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func configSetInvalid(key, value string) int {
	fmt.Fprintf(os.Stderr, "Invalid value for %s: %q\n", key, value)
	return ExitUsage
}

func cmdShow(ws *store.Workspace, gf GlobalFlags, args []string) int {
	doc := ws.Load()

	if gf.NDJSON {
		if gf.StdoutNDJSON {
			b, _ := json.Marshal(doc)
			fmt.Println(string(b))
		} else {
			path, err := writeNDJSONExport(gf, "document", []any{doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "show:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote NDJSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"document": doc})
		} else {
			path, err := writeJSONExport(gf, "document", map[string]any{"document": doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "show:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.Plain {
		fmt.Print(doc.Buffer)
		if !strings.HasSuffix(doc.Buffer, "\n") {
			fmt.Println()
		}
		return ExitOK
	}

	fmt.Print(store.RenderDocument(doc, renderOptions(ws, gf)))
	return ExitOK
}

func cmdText(ws *store.Workspace, gf GlobalFlags, args []string) int {
	doc := ws.Load()
	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"text": doc.Buffer})
		} else {
			path, err := writeJSONExport(gf, "text", map[string]any{"text": doc.Buffer})
			if err != nil {
				fmt.Fprintln(os.Stderr, "text:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	fmt.Print(doc.Buffer)
	if !strings.HasSuffix(doc.Buffer, "\n") {
		fmt.Println()
	}
	return ExitOK
}

type tagRow struct {
	store.Tag
	Ranges int `json:"ranges"`
}

func tagRows(doc *store.Document) []tagRow {
	counts := map[string]int{}
	for _, r := range doc.TaggedRanges {
		counts[r.TagName]++
	}
	rows := make([]tagRow, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		rows = append(rows, tagRow{Tag: t, Ranges: counts[t.Name]})
	}
	return rows
}

func cmdTags(ws *store.Workspace, gf GlobalFlags, args []string) int {
	doc := ws.Load()
	rows := tagRows(doc)

	if gf.NDJSON {
		if gf.StdoutNDJSON {
			for _, r := range rows {
				b, _ := json.Marshal(r)
				fmt.Println(string(b))
			}
		} else {
			items := make([]any, 0, len(rows))
			for i := range rows {
				items = append(items, rows[i])
			}
			path, err := writeNDJSONExport(gf, "tags", items)
			if err != nil {
				fmt.Fprintln(os.Stderr, "tags:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote NDJSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.Plain {
		fmt.Fprintln(os.Stdout, "NAME\tCOLOR\tRANGES")
		for _, r := range rows {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%d\n", r.Name, r.Color.Hex(), r.Ranges)
		}
		return ExitOK
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"tags": rows})
		} else {
			path, err := writeJSONExport(gf, "tags", map[string]any{"tags": rows})
			if err != nil {
				fmt.Fprintln(os.Stderr, "tags:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}

	fmt.Print(store.RenderTags(doc, renderOptions(ws, gf)))
	return ExitOK
}

func cmdRanges(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--tag":    true,
		"--stored": false,
	})
	fs := flag.NewFlagSet("ranges", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	tag := fs.String("tag", "", "Filter by tag name")
	stored := fs.Bool("stored", false, "Stored order instead of by start offset")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	doc := ws.Load()
	rows := doc.RangeRows(!*stored)
	if name := strings.TrimSpace(*tag); name != "" {
		kept := rows[:0]
		for _, r := range rows {
			if r.TagName == name {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	if gf.NDJSON {
		if gf.StdoutNDJSON {
			for _, r := range rows {
				b, _ := json.Marshal(r)
				fmt.Println(string(b))
			}
		} else {
			items := make([]any, 0, len(rows))
			for i := range rows {
				items = append(items, rows[i])
			}
			path, err := writeNDJSONExport(gf, "ranges", items)
			if err != nil {
				fmt.Fprintln(os.Stderr, "ranges:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote NDJSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.Plain {
		fmt.Fprintln(os.Stdout, "INDEX\tTAG\tSTART\tEND\tTEXT")
		for _, r := range rows {
			fmt.Fprintf(os.Stdout, "%d\t%s\t%d\t%d\t%s\n",
				r.Index, r.TagName, r.Span.Start, r.Span.End, firstLinePlain(doc.RangeText(r.TaggedRange)))
		}
		return ExitOK
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"ranges": rows})
		} else {
			path, err := writeJSONExport(gf, "ranges", map[string]any{"ranges": rows})
			if err != nil {
				fmt.Fprintln(os.Stderr, "ranges:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}

	fmt.Print(store.RenderRanges(doc, rows, renderOptions(ws, gf)))
	return ExitOK
}

func firstLinePlain(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func writeJSONExport(gf GlobalFlags, base string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return writeExportFile(gf.ExportDir, base, "json", data)
}

func writeNDJSONExport(gf GlobalFlags, base string, items []any) (string, error) {
	var b strings.Builder
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return writeExportFile(gf.ExportDir, base, "ndjson", []byte(b.String()))
}

func writeExportFile(dir, base, ext string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	t := time.Now().UTC()
	ts := t.Format("20060102-150405")
	name := fmt.Sprintf("%s-%s.%s", base, ts, ext)
	path := filepath.Join(dir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			break
		}
		name = fmt.Sprintf("%s-%s-%d.%s", base, ts, i, ext)
		path = filepath.Join(dir, name)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UTC().UnixNano()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}
