//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"taskswitch/internal/x11"
)

// X11Backend implements WindowSystem over an X11 connection.
type X11Backend struct {
	conn *x11.Connection
}

var _ WindowSystem = (*X11Backend)(nil)

// Connect opens the platform's native window system. On Linux this is X11.
func Connect() (WindowSystem, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Backend{conn: conn}, nil
}

// Close disconnects from the X server.
func (b *X11Backend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *X11Backend) ListWindows() ([]Window, error) {
	clients, err := b.conn.StackingList()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(clients))
	for _, win := range clients {
		w, err := b.queryX(win)
		if err != nil {
			// Windows can vanish mid-enumeration; skip and continue.
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (b *X11Backend) QueryWindow(id WindowID) (Window, error) {
	win := xproto.Window(id)
	if !b.conn.WindowExists(win) {
		return Window{}, ErrWindowGone
	}
	return b.queryX(win)
}

func (b *X11Backend) WindowExists(id WindowID) bool {
	return b.conn.WindowExists(xproto.Window(id))
}

func (b *X11Backend) ForegroundWindow() (WindowID, error) {
	win, err := b.conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

func (b *X11Backend) RaiseWindow(id WindowID) error {
	return b.conn.ActivateWindow(xproto.Window(id))
}

func (b *X11Backend) IsMinimized(id WindowID) (bool, error) {
	min, err := b.conn.IsIconified(xproto.Window(id))
	if err != nil {
		return false, ErrWindowGone
	}
	return min, nil
}

func (b *X11Backend) RestoreWindow(id WindowID) error {
	return b.conn.RestoreWindow(xproto.Window(id))
}

// AttachInput has no X11 equivalent; the activator skips this strategy.
func (b *X11Backend) AttachInput(WindowID) (func(), error) {
	return nil, ErrUnsupported
}

func (b *X11Backend) NudgeInput() error {
	return b.conn.NudgeModifierKey()
}

func (b *X11Backend) queryX(win xproto.Window) (Window, error) {
	left, top, right, bottom, err := b.conn.WindowGeometry(win)
	if err != nil {
		return Window{}, err
	}

	pid := b.conn.WindowPID(win)

	return Window{
		ID:          WindowID(win),
		Title:       b.conn.WindowTitle(win),
		Class:       b.conn.WindowClass(win),
		PID:         pid,
		ProcessName: x11.ProcessName(pid),
		Visible:     b.conn.IsViewable(win),
		// Managed clients on X11 have no per-window enabled flag.
		Enabled: true,
		Bounds:  Rect{Left: left, Top: top, Right: right, Bottom: bottom},
	}, nil
}
