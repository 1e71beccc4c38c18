package platform

import "errors"

// WindowID is a platform-neutral window identifier. On X11 it holds an
// xproto.Window; on Windows it holds an HWND. The OS may reuse an ID after
// the window it referred to is destroyed.
type WindowID uintptr

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Window is a point-in-time snapshot of one top-level window. Nothing in it
// is guaranteed to stay accurate after the call that produced it returns.
type Window struct {
	ID          WindowID
	Title       string
	Class       string
	PID         int
	ProcessName string
	Visible     bool
	Enabled     bool
	Bounds      Rect
}

var (
	// ErrWindowGone reports that a window ID no longer refers to a live window.
	ErrWindowGone = errors.New("window no longer exists")
	// ErrUnsupported reports that the backend cannot perform an operation.
	// Callers treat it as "skip", not as a failure.
	ErrUnsupported = errors.New("operation not supported on this platform")
)

// WindowSystem abstracts the host window system. Implementations exist for
// X11 (xgbutil) and Windows (user32); tests use the in-memory Fake.
type WindowSystem interface {
	// ListWindows returns all top-level windows in front-to-back Z order.
	// Windows whose metadata cannot be fetched are skipped, not fatal.
	ListWindows() ([]Window, error)
	// QueryWindow re-reads metadata for a single window. Returns
	// ErrWindowGone if the ID is stale.
	QueryWindow(id WindowID) (Window, error)
	// WindowExists is a cheap liveness check without metadata retrieval.
	WindowExists(id WindowID) bool
	// ForegroundWindow returns the window currently holding input focus,
	// or 0 if none.
	ForegroundWindow() (WindowID, error)
	// RaiseWindow asks the platform to bring the window to the foreground.
	// The request may be silently denied; callers verify via
	// ForegroundWindow afterwards.
	RaiseWindow(id WindowID) error
	// IsMinimized reports whether the window is iconified.
	IsMinimized(id WindowID) (bool, error)
	// RestoreWindow returns a minimized window to its normal state.
	RestoreWindow(id WindowID) error
	// AttachInput temporarily associates the calling thread's input state
	// with the window's owning thread so a foreground change is permitted.
	// The returned detach func must be called regardless of outcome.
	// Returns ErrUnsupported where the platform has no such notion.
	AttachInput(id WindowID) (detach func(), err error)
	// NudgeInput synthesizes a harmless modifier key tap so the platform's
	// "foreground change follows user input" heuristic is satisfied.
	NudgeInput() error
}
