//go:build windows

package platform

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsWindowEnabled          = user32.NewProc("IsWindowEnabled")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procShowWindow               = user32.NewProc("ShowWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procKeybdEvent               = user32.NewProc("keybd_event")
)

const (
	swRestore      = 9
	vkMenu         = 0x12 // ALT
	keyeventfKeyUp = 0x0002
	maxTextLength  = 512
	maxClassLength = 256
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// Win32Backend implements WindowSystem over the user32 API.
type Win32Backend struct{}

var _ WindowSystem = (*Win32Backend)(nil)

// Connect opens the platform's native window system. On Windows this is
// the user32 desktop API; no persistent connection is held.
func Connect() (WindowSystem, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("failed to load user32: %w", err)
	}
	return &Win32Backend{}, nil
}

// Close is a no-op on Windows.
func (b *Win32Backend) Close() {}

type enumState struct {
	backend *Win32Backend
	windows []Window
}

// enumProc is created once at init. The runtime never releases callbacks
// made with NewCallback, so creating one per enumeration would exhaust the
// callback table in a long-running process. State travels through lParam.
var enumProc = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	state := (*enumState)(unsafe.Pointer(lparam))
	w, err := state.backend.query(WindowID(hwnd))
	if err == nil {
		state.windows = append(state.windows, w)
	}
	return 1 // continue enumeration
})

func (b *Win32Backend) ListWindows() ([]Window, error) {
	state := enumState{backend: b}
	ret, _, err := procEnumWindows.Call(enumProc, uintptr(unsafe.Pointer(&state)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return state.windows, nil
}

func (b *Win32Backend) QueryWindow(id WindowID) (Window, error) {
	if !b.WindowExists(id) {
		return Window{}, ErrWindowGone
	}
	return b.query(id)
}

func (b *Win32Backend) WindowExists(id WindowID) bool {
	ret, _, _ := procIsWindow.Call(uintptr(id))
	return ret != 0
}

func (b *Win32Backend) ForegroundWindow() (WindowID, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return WindowID(hwnd), nil
}

func (b *Win32Backend) RaiseWindow(id WindowID) error {
	if !b.WindowExists(id) {
		return ErrWindowGone
	}
	// SetForegroundWindow may be denied without error detail; the caller
	// verifies via ForegroundWindow.
	procSetForegroundWindow.Call(uintptr(id))
	return nil
}

func (b *Win32Backend) IsMinimized(id WindowID) (bool, error) {
	if !b.WindowExists(id) {
		return false, ErrWindowGone
	}
	ret, _, _ := procIsIconic.Call(uintptr(id))
	return ret != 0, nil
}

func (b *Win32Backend) RestoreWindow(id WindowID) error {
	if !b.WindowExists(id) {
		return ErrWindowGone
	}
	procShowWindow.Call(uintptr(id), swRestore)
	return nil
}

func (b *Win32Backend) AttachInput(id WindowID) (func(), error) {
	var pid uint32
	targetThread, _, _ := procGetWindowThreadProcessId.Call(uintptr(id), uintptr(unsafe.Pointer(&pid)))
	if targetThread == 0 {
		return nil, ErrWindowGone
	}
	current := uintptr(windows.GetCurrentThreadId())
	if current == targetThread {
		return func() {}, nil
	}

	ret, _, err := procAttachThreadInput.Call(current, targetThread, 1)
	if ret == 0 {
		return nil, fmt.Errorf("AttachThreadInput failed: %w", err)
	}
	return func() {
		procAttachThreadInput.Call(current, targetThread, 0)
	}, nil
}

// NudgeInput taps ALT. An unaccompanied modifier keypress is harmless but
// counts as recent user input for the foreground-lock heuristic.
func (b *Win32Backend) NudgeInput() error {
	procKeybdEvent.Call(vkMenu, 0, 0, 0)
	procKeybdEvent.Call(vkMenu, 0, keyeventfKeyUp, 0)
	return nil
}

func (b *Win32Backend) query(id WindowID) (Window, error) {
	hwnd := uintptr(id)

	visible, _, _ := procIsWindowVisible.Call(hwnd)
	enabled, _, _ := procIsWindowEnabled.Call(hwnd)

	var titleBuf [maxTextLength]uint16
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&titleBuf[0])), maxTextLength)

	var classBuf [maxClassLength]uint16
	ret, _, err := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&classBuf[0])), maxClassLength)
	if ret == 0 {
		return Window{}, fmt.Errorf("GetClassName failed: %w", err)
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	var rect winRect
	if ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect))); ret == 0 {
		rect = winRect{}
	}

	return Window{
		ID:          id,
		Title:       windows.UTF16ToString(titleBuf[:]),
		Class:       windows.UTF16ToString(classBuf[:]),
		PID:         int(pid),
		ProcessName: processName(pid),
		Visible:     visible != 0,
		Enabled:     enabled != 0,
		Bounds: Rect{
			Left:   int(rect.Left),
			Top:    int(rect.Top),
			Right:  int(rect.Right),
			Bottom: int(rect.Bottom),
		},
	}, nil
}

// processName resolves a PID to its executable base name.
func processName(pid uint32) string {
	if pid == 0 {
		return "Unknown"
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "Unknown"
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "Unknown"
	}
	full := windows.UTF16ToString(buf[:size])
	if full == "" {
		return "Unknown"
	}
	return filepath.Base(full)
}
