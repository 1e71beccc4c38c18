package x11

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
)

// StackingList returns managed client windows in front-to-back order.
// EWMH reports _NET_CLIENT_LIST_STACKING bottom-to-top, so we reverse it.
func (c *Connection) StackingList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		// Some window managers only maintain _NET_CLIENT_LIST.
		clients, err = ewmh.ClientListGet(c.XUtil)
		if err != nil {
			return nil, fmt.Errorf("failed to get client list: %w", err)
		}
	}
	reversed := make([]xproto.Window, len(clients))
	for i, w := range clients {
		reversed[len(clients)-1-i] = w
	}
	return reversed, nil
}

// WindowTitle returns the window's title, preferring _NET_WM_NAME over the
// legacy ICCCM WM_NAME.
func (c *Connection) WindowTitle(win xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, win)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, win)
	if err == nil {
		return strings.TrimSpace(title)
	}

	return ""
}

// WindowClass returns the WM_CLASS class string.
func (c *Connection) WindowClass(win xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowPID returns the owning process ID via _NET_WM_PID, or 0 if unset.
func (c *Connection) WindowPID(win xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, win)
	if err != nil {
		return 0
	}
	return int(pid)
}

// ProcessName resolves a PID to its executable name via /proc.
func ProcessName(pid int) string {
	if pid <= 0 {
		return "Unknown"
	}
	comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return "Unknown"
	}
	name := strings.TrimSpace(string(comm))
	if name == "" {
		return "Unknown"
	}
	return name
}

// WindowGeometry returns the window's bounds in root coordinates.
func (c *Connection) WindowGeometry(win xproto.Window) (left, top, right, bottom int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		win,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	left = int(translate.DstX)
	top = int(translate.DstY)
	return left, top, left + int(geom.Width), top + int(geom.Height), nil
}

// IsViewable reports whether the window is mapped and viewable.
func (c *Connection) IsViewable(win xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

// WindowExists reports whether the window ID still refers to a live window.
func (c *Connection) WindowExists(win xproto.Window) bool {
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	return err == nil
}

// ActiveWindow returns the currently focused window per _NET_ACTIVE_WINDOW.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ActivateWindow raises and focuses a window using _NET_ACTIVE_WINDOW.
// We build the client message manually because the xgbutil ewmh helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) ActivateWindow(win xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// IsIconified reports whether the window carries _NET_WM_STATE_HIDDEN.
func (c *Connection) IsIconified(win xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false, err
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true, nil
		}
	}
	return false, nil
}

// RestoreWindow maps an iconified window back to its normal state.
func (c *Connection) RestoreWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), win).Check()
}

// NudgeModifierKey synthesizes a Control press+release via XTEST. A bare
// modifier tap is invisible to applications but counts as user input for
// focus-stealing heuristics.
func (c *Connection) NudgeModifierKey() error {
	codes := keybind.StrToKeycodes(c.XUtil, "Control_L")
	if len(codes) == 0 {
		return fmt.Errorf("no keycode mapped for Control_L")
	}
	code := byte(codes[0])

	if err := xtest.FakeInputChecked(c.XUtil.Conn(),
		xproto.KeyPress, code, xproto.TimeCurrentTime, c.Root, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("failed to synthesize key press: %w", err)
	}
	return xtest.FakeInputChecked(c.XUtil.Conn(),
		xproto.KeyRelease, code, xproto.TimeCurrentTime, c.Root, 0, 0, 0).Check()
}
