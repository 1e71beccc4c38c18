package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"taskswitch/internal/config"
	"taskswitch/internal/platform"
	"taskswitch/internal/wm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "find":
		os.Exit(runFind(os.Args[2:]))
	case "info":
		os.Exit(runInfo(os.Args[2:]))
	case "activate":
		os.Exit(runActivate(os.Args[2:]))
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "active":
		os.Exit(runActive(os.Args[2:]))
	case "foreground":
		os.Exit(runForeground(os.Args[2:]))
	case "summary":
		os.Exit(runSummary(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "taskswitch - window inventory and task switching")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: taskswitch <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list        List top-level windows")
	fmt.Fprintln(w, "  find        Find windows by title or process")
	fmt.Fprintln(w, "  info        Show one window's current metadata")
	fmt.Fprintln(w, "  activate    Bring one window to the foreground")
	fmt.Fprintln(w, "  switch      Activate several windows in order")
	fmt.Fprintln(w, "  active      Show windows ranked by likely user activity")
	fmt.Fprintln(w, "  foreground  Show the current foreground window")
	fmt.Fprintln(w, "  summary     Summarize the inventory per process")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  mcp         Run the MCP stdio server")
	fmt.Fprintln(w, "  help        Show this help")
}

// setup loads config, builds the logger and connects the window system.
// The returned cleanup must be called before exit.
func setup() (*wm.Manager, *config.Config, zerolog.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), nil, err
	}

	log := newLogger(cfg)

	sys, err := platform.Connect()
	if err != nil {
		return nil, nil, log, nil, fmt.Errorf("failed to connect to the window system: %w", err)
	}
	cleanup := func() {
		if closer, ok := sys.(interface{ Close() }); ok {
			closer.Close()
		}
	}

	return wm.NewManager(sys, cfg, log), cfg, log, cleanup, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
