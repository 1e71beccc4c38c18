package platform

import (
	"sync"
)

// Fake is an in-memory WindowSystem used by tests. Windows are held in Z
// order (front first). Foreground behavior is scriptable: DenyRaise controls how many RaiseWindow calls are
// ignored per window, and AttachUnlocks/NudgeUnlocks make the corresponding
// strategies lift the denial, mimicking the real platform's focus-stealing
// rules.
type Fake struct {
	mu sync.Mutex

	windows    []Window
	foreground WindowID

	// DenyRaise maps a window to the number of RaiseWindow calls that will
	// be silently denied before one succeeds. -1 denies forever.
	DenyRaise map[WindowID]int
	// AttachUnlocks, when true, makes RaiseWindow succeed while input is
	// attached, regardless of DenyRaise.
	AttachUnlocks bool
	// NudgeUnlocks, when true, clears all raise denials after NudgeInput.
	NudgeUnlocks bool
	// AttachSupported toggles AttachInput between working and
	// ErrUnsupported (X11 backends report the latter).
	AttachSupported bool

	attached  bool
	minimized map[WindowID]bool

	// Call counters for assertions.
	ListCalls   int
	RaiseCalls  map[WindowID]int
	NudgeCalls  int
	AttachCalls int
}

var _ WindowSystem = (*Fake)(nil)

// NewFake creates a fake window system seeded with the given windows,
// front-to-back. The first window, if any, starts as foreground.
func NewFake(windows ...Window) *Fake {
	f := &Fake{
		windows:         append([]Window(nil), windows...),
		DenyRaise:       make(map[WindowID]int),
		RaiseCalls:      make(map[WindowID]int),
		minimized:       make(map[WindowID]bool),
		AttachSupported: true,
	}
	if len(windows) > 0 {
		f.foreground = windows[0].ID
	}
	return f
}

// AddWindow appends a window at the back of the Z order.
func (f *Fake) AddWindow(w Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, w)
}

// RemoveWindow destroys a window, making its ID stale.
func (f *Fake) RemoveWindow(id WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.windows[:0]
	for _, w := range f.windows {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	f.windows = kept
	if f.foreground == id {
		f.foreground = 0
	}
}

// SetForeground forces the foreground window, as if the user clicked it.
func (f *Fake) SetForeground(id WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.foreground = id
}

// SetMinimized marks a window iconified.
func (f *Fake) SetMinimized(id WindowID, min bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minimized[id] = min
}

func (f *Fake) ListWindows() ([]Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	return append([]Window(nil), f.windows...), nil
}

func (f *Fake) QueryWindow(id WindowID) (Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.ID == id {
			return w, nil
		}
	}
	return Window{}, ErrWindowGone
}

func (f *Fake) WindowExists(id WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}

func (f *Fake) ForegroundWindow() (WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.foreground, nil
}

func (f *Fake) RaiseWindow(id WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists(id) {
		return ErrWindowGone
	}
	f.RaiseCalls[id]++
	if f.attached && f.AttachUnlocks {
		f.foreground = id
		return nil
	}
	if deny, ok := f.DenyRaise[id]; ok {
		if deny < 0 {
			return nil // denied forever, request silently ignored
		}
		if deny > 0 {
			f.DenyRaise[id] = deny - 1
			return nil
		}
	}
	f.foreground = id
	return nil
}

func (f *Fake) IsMinimized(id WindowID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists(id) {
		return false, ErrWindowGone
	}
	return f.minimized[id], nil
}

func (f *Fake) RestoreWindow(id WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists(id) {
		return ErrWindowGone
	}
	f.minimized[id] = false
	return nil
}

func (f *Fake) AttachInput(id WindowID) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.AttachSupported {
		return nil, ErrUnsupported
	}
	if !f.exists(id) {
		return nil, ErrWindowGone
	}
	f.AttachCalls++
	f.attached = true
	return func() {
		f.mu.Lock()
		f.attached = false
		f.mu.Unlock()
	}, nil
}

func (f *Fake) NudgeInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.NudgeCalls++
	if f.NudgeUnlocks {
		for id := range f.DenyRaise {
			delete(f.DenyRaise, id)
		}
	}
	return nil
}

func (f *Fake) exists(id WindowID) bool {
	for _, w := range f.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}
