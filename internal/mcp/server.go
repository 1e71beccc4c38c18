package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
	"taskswitch/internal/wm"
)

const (
	ServerName    = "taskswitch"
	ServerVersion = "0.1.0"
)

// Server exposes the window engine as MCP tools over stdio, so agents can
// inspect and switch desktop windows.
type Server struct {
	mcpServer *mcpsdk.Server
	manager   *wm.Manager
	log       zerolog.Logger
}

// NewServer creates an MCP server over the given window manager.
func NewServer(manager *wm.Manager, log zerolog.Logger) *Server {
	s := &Server{
		manager: manager,
		log:     log,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the current top-level windows with their handles, titles, classes and owning processes. Shell and system windows are excluded. Handles may become stale at any time; re-list before acting on old ones.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "find_windows",
		Description: "Search windows by title (exact, substring or regexp, case-insensitive) or by owning process name/PID.",
	}, s.handleFindWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "activate_window",
		Description: "Bring one window to the foreground using a chain of fallback strategies. Returns activated=false when the platform denied every strategy or the window is gone; this is expected and recoverable, not an error.",
	}, s.handleActivateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_windows",
		Description: "Activate a list of windows in order with a short pause between them, e.g. to bring up all windows of one task. Stale windows are skipped, the rest still activate. Fails fast when another switch is already running.",
	}, s.handleSwitchWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "active_windows",
		Description: "Rank windows by how likely the user is currently working with them: the foreground window first, then recently focused ones, then the rest in stacking order.",
	}, s.handleActiveWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_summary",
		Description: "Summarize the window inventory: total count and per-process counts.",
	}, s.handleWindowSummary)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	if args.Fresh {
		s.manager.InvalidateCache()
	}
	windows, err := s.manager.EnumerateWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}
	return nil, ListWindowsOutput{Windows: toItems(windows)}, nil
}

func (s *Server) handleFindWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args FindWindowsInput) (*mcpsdk.CallToolResult, FindWindowsOutput, error) {
	if args.Title == "" && args.Process == "" {
		return nil, FindWindowsOutput{}, fmt.Errorf("either title or process is required")
	}
	if args.Process != "" {
		windows, err := s.manager.FindWindowsByProcess(args.Process)
		if err != nil {
			return nil, FindWindowsOutput{}, err
		}
		return nil, FindWindowsOutput{Windows: toItems(windows)}, nil
	}

	mode, err := wm.ParseMatchMode(args.Mode)
	if err != nil {
		return nil, FindWindowsOutput{}, err
	}
	windows, err := s.manager.FindWindowsByTitle(args.Title, mode)
	if err != nil {
		return nil, FindWindowsOutput{}, err
	}
	return nil, FindWindowsOutput{Windows: toItems(windows)}, nil
}

func (s *Server) handleActivateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ActivateWindowInput) (*mcpsdk.CallToolResult, ActivateWindowOutput, error) {
	activated := s.manager.ActivateWindow(platform.WindowID(args.Handle))
	s.log.Info().Uint64("window", args.Handle).Bool("activated", activated).Msg("mcp activate_window")
	return nil, ActivateWindowOutput{Activated: activated}, nil
}

func (s *Server) handleSwitchWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchWindowsInput) (*mcpsdk.CallToolResult, SwitchWindowsOutput, error) {
	if len(args.Handles) == 0 {
		return nil, SwitchWindowsOutput{}, fmt.Errorf("handles must not be empty")
	}

	ids := make([]platform.WindowID, len(args.Handles))
	for i, h := range args.Handles {
		ids[i] = platform.WindowID(h)
	}
	outcomes, err := s.manager.ActivateWindows(ids, batchDelay(args.DelayMS), nil)
	if err != nil {
		return nil, SwitchWindowsOutput{}, err
	}

	out := SwitchWindowsOutput{Outcomes: make([]SwitchOutcome, len(outcomes))}
	for i, o := range outcomes {
		out.Outcomes[i] = SwitchOutcome{
			Handle:    uint64(o.Window),
			Activated: o.Activated,
			Strategy:  o.Strategy,
			Reason:    o.Reason,
		}
		if o.Activated {
			out.Activated++
		}
	}
	return nil, out, nil
}

func (s *Server) handleActiveWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ActiveWindowsInput) (*mcpsdk.CallToolResult, ActiveWindowsOutput, error) {
	windows, err := s.manager.ActiveWindows(args.Limit)
	if err != nil {
		return nil, ActiveWindowsOutput{}, err
	}
	out := ActiveWindowsOutput{Windows: toItems(windows)}
	if fg, ok := s.manager.ForegroundWindow(); ok {
		out.Foreground = uint64(fg)
	}
	return nil, out, nil
}

func (s *Server) handleWindowSummary(_ context.Context, _ *mcpsdk.CallToolRequest, _ WindowSummaryInput) (*mcpsdk.CallToolResult, WindowSummaryOutput, error) {
	summary, err := s.manager.Summary()
	if err != nil {
		return nil, WindowSummaryOutput{}, err
	}
	return nil, WindowSummaryOutput{Total: summary.Total, ByProcess: summary.ByProcess}, nil
}

// batchDelay maps the wire delay to the manager's contract: absent means
// the configured default, an explicit zero means no pause at all.
func batchDelay(ms *int) time.Duration {
	if ms == nil || *ms < 0 {
		return -1
	}
	return time.Duration(*ms) * time.Millisecond
}

func toItems(windows []platform.Window) []WindowItem {
	items := make([]WindowItem, len(windows))
	for i, w := range windows {
		items[i] = WindowItem{
			Handle:  uint64(w.ID),
			Title:   w.Title,
			Class:   w.Class,
			PID:     w.PID,
			Process: w.ProcessName,
		}
	}
	return items
}
