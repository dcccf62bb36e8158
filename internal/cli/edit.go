package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/woelper/taskmonger/internal/store"
)

func cmdInsert(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--at":      true,
		"--text":    true,
		"--sel-len": true,
	})
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	at := fs.Int("at", -1, "Byte offset of the caret")
	text := fs.String("text", "", "Text to insert")
	selLen := fs.Int("sel-len", 0, "Length of the selection the text replaces")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *at < 0 || (*text == "" && *selLen <= 0) {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger insert --at <offset> --text \"<text>\" [--sel-len <n>]")
		return ExitUsage
	}

	doc := ws.Load()
	_, err := ws.Apply(doc, store.InsertText{At: *at, Text: *text, SelectionLen: *selLen})
	if err != nil {
		fmt.Fprintln(os.Stderr, "insert:", err)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ExitNotFound
		case errors.Is(err, store.ErrInvalid):
			return ExitUsage
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"document": doc})
		} else {
			path, err := writeJSONExport(gf, "document", map[string]any{"document": doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "insert:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		if *selLen > 0 {
			fmt.Printf("Replaced %d bytes at %d with %d bytes\n", *selLen, *at, len(*text))
		} else {
			fmt.Printf("Inserted %d bytes at %d\n", len(*text), *at)
		}
	}
	return ExitOK
}

func cmdDelete(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--at":        true,
		"--count":     true,
		"--selection": false,
	})
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	at := fs.Int("at", -1, "Byte offset of the caret")
	count := fs.Int("count", 1, "Bytes to delete")
	selection := fs.Bool("selection", false, "Treat the deleted bytes as a selection")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *at < 0 || *count < 1 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger delete --at <offset> [--count <n>] [--selection]")
		return ExitUsage
	}

	doc := ws.Load()
	_, err := ws.Apply(doc, store.DeleteText{At: *at, Count: *count, FromSelection: *selection})
	if err != nil {
		fmt.Fprintln(os.Stderr, "delete:", err)
		if errors.Is(err, store.ErrInvalid) {
			return ExitUsage
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"document": doc})
		} else {
			path, err := writeJSONExport(gf, "document", map[string]any{"document": doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "delete:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		fmt.Printf("Deleted %d bytes at %d\n", *count, *at)
	}
	return ExitOK
}

func cmdApply(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--start": true,
		"--end":   true,
	})
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	start := fs.Int("start", -1, "Selection start offset")
	end := fs.Int("end", -1, "Selection end offset")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" || *start < 0 || *end < 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger apply \"<name>\" --start <offset> --end <offset>")
		return ExitUsage
	}

	doc := ws.Load()
	changed, err := ws.Apply(doc, store.ApplyTag{Name: name, Selection: store.NewSpan(*start, *end)})
	if err != nil {
		fmt.Fprintln(os.Stderr, "apply:", err)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ExitNotFound
		case errors.Is(err, store.ErrInvalid):
			return ExitUsage
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"changed": changed, "document": doc})
		} else {
			path, err := writeJSONExport(gf, "document", map[string]any{"changed": changed, "document": doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "apply:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		if changed {
			fmt.Printf("Tagged %d..%d with %s\n", *start, *end, name)
		} else {
			fmt.Println("No change")
		}
	}
	return ExitOK
}

func cmdTag(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger tag <add|rm|color|ls> ...")
		return ExitUsage
	}
	sub := args[0]
	rest := args[1:]
	switch sub {
	case "add":
		return cmdTagAdd(ws, gf, rest)
	case "rm", "remove":
		return cmdTagRm(ws, gf, rest)
	case "color":
		return cmdTagColor(ws, gf, rest)
	case "ls", "list":
		return cmdTags(ws, gf, rest)
	default:
		fmt.Fprintln(os.Stderr, "Usage: taskmonger tag <add|rm|color|ls> ...")
		return ExitUsage
	}
}

func cmdTagAdd(ws *store.Workspace, gf GlobalFlags, args []string) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger tag add \"<name>\"")
		return ExitUsage
	}
	doc := ws.Load()
	changed, err := ws.Apply(doc, store.CreateTag{Name: name})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tag add:", err)
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"changed": changed, "tags": doc.Tags})
		} else {
			path, err := writeJSONExport(gf, "tags", map[string]any{"changed": changed, "tags": doc.Tags})
			if err != nil {
				fmt.Fprintln(os.Stderr, "tag add:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		if changed {
			t, _ := doc.FindTag(name)
			fmt.Printf("Added tag %s (%s)\n", t.Name, t.Color.Hex())
		} else {
			fmt.Printf("Tag %s already exists\n", name)
		}
	}
	return ExitOK
}

func cmdTagRm(ws *store.Workspace, gf GlobalFlags, args []string) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger tag rm \"<name>\"")
		return ExitUsage
	}
	doc := ws.Load()
	_, err := ws.Apply(doc, store.DeleteTag{Name: name})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tag rm:", err)
		if errors.Is(err, store.ErrNotFound) {
			return ExitNotFound
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"tags": doc.Tags})
		} else {
			path, err := writeJSONExport(gf, "tags", map[string]any{"tags": doc.Tags})
			if err != nil {
				fmt.Fprintln(os.Stderr, "tag rm:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		fmt.Printf("Removed tag %s and its ranges\n", name)
	}
	return ExitOK
}

func cmdTagColor(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger tag color \"<name>\" <#rrggbb>")
		return ExitUsage
	}
	name := strings.TrimSpace(args[0])
	color, err := store.ParseHexColor(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "tag color:", err)
		return ExitUsage
	}
	doc := ws.Load()
	changed, err := ws.Apply(doc, store.SetColor{Name: name, Color: color})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tag color:", err)
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"changed": changed, "tags": doc.Tags})
		} else {
			path, err := writeJSONExport(gf, "tags", map[string]any{"changed": changed, "tags": doc.Tags})
			if err != nil {
				fmt.Fprintln(os.Stderr, "tag color:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		if changed {
			fmt.Printf("Set %s to %s\n", name, color.Hex())
		} else {
			fmt.Println("No change")
		}
	}
	return ExitOK
}

func cmdRange(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger range <rm|mv> ...")
		return ExitUsage
	}
	sub := args[0]
	rest := args[1:]
	switch sub {
	case "rm", "remove":
		return cmdRangeRm(ws, gf, rest)
	case "mv", "move":
		return cmdRangeMv(ws, gf, rest)
	default:
		fmt.Fprintln(os.Stderr, "Usage: taskmonger range <rm|mv> ...")
		return ExitUsage
	}
}

func cmdRangeRm(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--tag":   true,
		"--start": true,
		"--end":   true,
	})
	fs := flag.NewFlagSet("range rm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	tag := fs.String("tag", "", "Tag name")
	start := fs.Int("start", -1, "Range start offset")
	end := fs.Int("end", -1, "Range end offset")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	name := strings.TrimSpace(*tag)
	if name == "" || *start < 0 || *end < 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger range rm --tag <name> --start <offset> --end <offset>")
		return ExitUsage
	}

	doc := ws.Load()
	target := store.TaggedRange{TagName: name, Span: store.Span{Start: *start, End: *end}}
	_, err := ws.Apply(doc, store.DeleteRange{Range: target})
	if err != nil {
		fmt.Fprintln(os.Stderr, "range rm:", err)
		if errors.Is(err, store.ErrNotFound) {
			return ExitNotFound
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"ranges": doc.RangeRows(false)})
		} else {
			path, err := writeJSONExport(gf, "ranges", map[string]any{"ranges": doc.RangeRows(false)})
			if err != nil {
				fmt.Fprintln(os.Stderr, "range rm:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		fmt.Printf("Removed %d..%d (%s)\n", *start, *end, name)
	}
	return ExitOK
}

func cmdRangeMv(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--from": true,
		"--to":   true,
	})
	fs := flag.NewFlagSet("range mv", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	from := fs.Int("from", -1, "Stored index to move")
	to := fs.Int("to", -1, "Destination index")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *from < 0 || *to < 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger range mv --from <index> --to <index>")
		return ExitUsage
	}

	doc := ws.Load()
	changed, err := ws.Apply(doc, store.MoveRange{From: *from, To: *to})
	if err != nil {
		fmt.Fprintln(os.Stderr, "range mv:", err)
		if errors.Is(err, store.ErrInvalid) {
			return ExitUsage
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"changed": changed, "ranges": doc.RangeRows(false)})
		} else {
			path, err := writeJSONExport(gf, "ranges", map[string]any{"changed": changed, "ranges": doc.RangeRows(false)})
			if err != nil {
				fmt.Fprintln(os.Stderr, "range mv:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		if changed {
			fmt.Printf("Moved range %d to %d\n", *from, *to)
		} else {
			fmt.Println("No change")
		}
	}
	return ExitOK
}

func cmdSettings(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--dark-mode":     true,
		"--markdown-view": true,
		"--background":    true,
	})
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	darkMode := fs.String("dark-mode", "", "Dark mode (on|off)")
	markdownView := fs.String("markdown-view", "", "Markdown view (on|off)")
	background := fs.String("background", "", "Mark as background instead of text color (on|off)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	doc := ws.Load()
	s := doc.Settings
	set := false
	if *darkMode != "" {
		v, ok := parseBool(*darkMode)
		if !ok {
			return configSetInvalid("--dark-mode", *darkMode)
		}
		s.DarkMode = v
		set = true
	}
	if *markdownView != "" {
		v, ok := parseBool(*markdownView)
		if !ok {
			return configSetInvalid("--markdown-view", *markdownView)
		}
		s.MarkdownViewEnabled = v
		set = true
	}
	if *background != "" {
		v, ok := parseBool(*background)
		if !ok {
			return configSetInvalid("--background", *background)
		}
		s.MarkAsBackground = v
		set = true
	}

	if set {
		changed, err := ws.Apply(doc, store.UpdateSettings{Settings: s})
		if err != nil {
			fmt.Fprintln(os.Stderr, "settings:", err)
			return ExitInternal
		}
		if !gf.JSON && !gf.Quiet {
			if changed {
				fmt.Println("Updated settings")
			} else {
				fmt.Println("No change")
			}
		}
		if !gf.JSON {
			return ExitOK
		}
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"settings": doc.Settings})
		} else {
			path, err := writeJSONExport(gf, "settings", map[string]any{"settings": doc.Settings})
			if err != nil {
				fmt.Fprintln(os.Stderr, "settings:", err)
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
		fmt.Fprintf(w, "dark_mode\t%t\n", doc.Settings.DarkMode)
		fmt.Fprintf(w, "markdown_view_enabled\t%t\n", doc.Settings.MarkdownViewEnabled)
		fmt.Fprintf(w, "mark_as_background\t%t\n", doc.Settings.MarkAsBackground)
		_ = w.Flush()
		return ExitOK
	}

	fmt.Println("Settings:")
	fmt.Printf("  dark_mode: %t\n", doc.Settings.DarkMode)
	fmt.Printf("  markdown_view_enabled: %t\n", doc.Settings.MarkdownViewEnabled)
	fmt.Printf("  mark_as_background: %t\n", doc.Settings.MarkAsBackground)
	return ExitOK
}

func cmdExport(ws *store.Workspace, gf GlobalFlags, args []string) int {
	args = reorderFlags(args, map[string]bool{
		"--out": true,
	})
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", "", "Write to this path instead of the export dir (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	doc := ws.Load()
	data, err := store.MarkdownExport(doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		return ExitInternal
	}

	switch {
	case *out == "-":
		_, _ = os.Stdout.Write(data)
		return ExitOK
	case *out != "":
		dir := filepath.Dir(*out)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			return ExitInternal
		}
		tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UTC().UnixNano()))
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			_ = os.Remove(tmp)
			fmt.Fprintln(os.Stderr, "export:", err)
			return ExitInternal
		}
		if err := os.Rename(tmp, *out); err != nil {
			_ = os.Remove(tmp)
			fmt.Fprintln(os.Stderr, "export:", err)
			return ExitInternal
		}
		if !gf.Quiet {
			fmt.Println("Wrote markdown to:", *out)
		}
		return ExitOK
	}
	path, err := writeExportFile(gf.ExportDir, "document", "md", data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		return ExitInternal
	}
	if !gf.Quiet {
		fmt.Println("Wrote markdown to:", path)
	}
	return ExitOK
}

func cmdSnapshot(ws *store.Workspace, gf GlobalFlags, args []string) int {
	doc := ws.Load()
	info, err := ws.Snapshot(doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"snapshot": info})
		} else {
			path, err := writeJSONExport(gf, "snapshot", map[string]any{"snapshot": info})
			if err != nil {
				fmt.Fprintln(os.Stderr, "snapshot:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		fmt.Printf("Snapshot %s (%d bytes)\n", info.ID, info.Size)
	}
	return ExitOK
}

func cmdSnapshots(ws *store.Workspace, gf GlobalFlags, args []string) int {
	snaps, err := ws.Snapshots()
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapshots:", err)
		return ExitInternal
	}

	if gf.NDJSON {
		if gf.StdoutNDJSON {
			for _, s := range snaps {
				b, _ := json.Marshal(s)
				fmt.Println(string(b))
			}
		} else {
			items := make([]any, 0, len(snaps))
			for i := range snaps {
				items = append(items, snaps[i])
			}
			path, err := writeNDJSONExport(gf, "snapshots", items)
			if err != nil {
				fmt.Fprintln(os.Stderr, "snapshots:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote NDJSON to:", path)
			}
		}
		return ExitOK
	}

	if gf.Plain {
		fmt.Fprintln(os.Stdout, "ID\tCREATED\tSIZE")
		for _, s := range snaps {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%d\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Size)
		}
		return ExitOK
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"snapshots": snaps})
		} else {
			path, err := writeJSONExport(gf, "snapshots", map[string]any{"snapshots": snaps})
			if err != nil {
				fmt.Fprintln(os.Stderr, "snapshots:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots")
		return ExitOK
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSIZE")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Size)
	}
	_ = w.Flush()
	return ExitOK
}

func cmdRestore(ws *store.Workspace, gf GlobalFlags, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: taskmonger restore <id-or-prefix>")
		return ExitUsage
	}
	doc, info, err := ws.Restore(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "restore:", err)
		var conflict *store.SnapshotConflictError
		if errors.As(err, &conflict) {
			for _, m := range conflict.Matches {
				fmt.Fprintln(os.Stderr, " ", m.ID)
			}
			return ExitConflict
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ExitNotFound
		case errors.Is(err, store.ErrConflict):
			return ExitConflict
		case errors.Is(err, store.ErrInvalid):
			return ExitUsage
		}
		return ExitInternal
	}

	if gf.JSON {
		if gf.StdoutJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(map[string]any{"snapshot": info, "document": doc})
		} else {
			path, err := writeJSONExport(gf, "restore", map[string]any{"snapshot": info, "document": doc})
			if err != nil {
				fmt.Fprintln(os.Stderr, "restore:", err)
				return ExitInternal
			}
			if !gf.Quiet {
				fmt.Println("Wrote JSON to:", path)
			}
		}
		return ExitOK
	}
	if !gf.Quiet {
		fmt.Printf("Restored %s (%d bytes)\n", info.ID, len(doc.Buffer))
	}
	return ExitOK
}
