package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"taskswitch/internal/platform"
	"taskswitch/internal/wm"
)

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fresh := fs.Bool("fresh", false, "bypass the snapshot cache")
	asJSON := fs.Bool("json", false, "output JSON")
	fs.Parse(args)

	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	if *fresh {
		manager.InvalidateCache()
	}
	windows, err := manager.EnumerateWindows()
	if err != nil {
		return fail(err)
	}
	return printWindows(windows, *asJSON)
}

func runFind(args []string) int {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	mode := fs.String("mode", "substring", "title match mode: exact, substring or regexp")
	process := fs.Bool("process", false, "match by process name or PID instead of title")
	asJSON := fs.Bool("json", false, "output JSON")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: taskswitch find [--mode m] [--process] <pattern>")
		return 2
	}
	pattern := fs.Arg(0)

	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	var windows []platform.Window
	if *process {
		windows, err = manager.FindWindowsByProcess(pattern)
	} else {
		var m wm.MatchMode
		m, err = wm.ParseMatchMode(*mode)
		if err != nil {
			return fail(err)
		}
		windows, err = manager.FindWindowsByTitle(pattern, m)
	}
	if err != nil {
		return fail(err)
	}
	return printWindows(windows, *asJSON)
}

func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "output JSON")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: taskswitch info <handle>")
		return 2
	}
	id, err := parseHandle(fs.Arg(0))
	if err != nil {
		return fail(err)
	}

	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	w, ok := manager.WindowInfo(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Window %d no longer exists\n", id)
		return 1
	}
	return printWindows([]platform.Window{w}, *asJSON)
}

func runActive(args []string) int {
	fs := flag.NewFlagSet("active", flag.ExitOnError)
	limit := fs.Int("limit", 0, "maximum windows to show (0 = configured default)")
	asJSON := fs.Bool("json", false, "output JSON")
	fs.Parse(args)

	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	windows, err := manager.ActiveWindows(*limit)
	if err != nil {
		return fail(err)
	}
	return printWindows(windows, *asJSON)
}

func runForeground(args []string) int {
	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	fg, ok := manager.ForegroundWindow()
	if !ok {
		fmt.Println("No foreground window")
		return 0
	}
	if w, ok := manager.WindowInfo(fg); ok {
		fmt.Printf("%d\t%s\t%s\n", w.ID, w.ProcessName, w.Title)
	} else {
		fmt.Printf("%d\n", fg)
	}
	return 0
}

func runSummary(args []string) int {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "output JSON")
	fs.Parse(args)

	manager, _, _, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	summary, err := manager.Summary()
	if err != nil {
		return fail(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(summary)
		return 0
	}

	fmt.Printf("%d windows\n", summary.Total)
	processes := make([]string, 0, len(summary.ByProcess))
	for p := range summary.ByProcess {
		processes = append(processes, p)
	}
	sort.Slice(processes, func(i, j int) bool {
		if summary.ByProcess[processes[i]] != summary.ByProcess[processes[j]] {
			return summary.ByProcess[processes[i]] > summary.ByProcess[processes[j]]
		}
		return processes[i] < processes[j]
	})
	for _, p := range processes {
		fmt.Printf("  %4d  %s\n", summary.ByProcess[p], p)
	}
	return 0
}

func printWindows(windows []platform.Window, asJSON bool) int {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(windows)
		return 0
	}
	for _, w := range windows {
		fmt.Printf("%d\t%s\t%s\t%s\n", w.ID, w.ProcessName, w.Class, w.Title)
	}
	return 0
}

func parseHandle(s string) (platform.WindowID, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q: %w", s, err)
	}
	return platform.WindowID(v), nil
}
