package wm

import (
	"testing"

	"github.com/rs/zerolog"

	"taskswitch/internal/config"
	"taskswitch/internal/platform"
)

func testWindow(id platform.WindowID, title, class, proc string) platform.Window {
	return platform.Window{
		ID:          id,
		Title:       title,
		Class:       class,
		PID:         int(id) * 100,
		ProcessName: proc,
		Visible:     true,
		Enabled:     true,
		Bounds:      platform.Rect{Left: 0, Top: 0, Right: 800, Bottom: 600},
	}
}

func defaultFilter() Filter {
	cfg := config.DefaultConfig()
	return NewFilter(cfg.Filters.Classes, cfg.Filters.Titles)
}

func TestEnumerate_ExcludesShellWindows(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "", "Shell_TrayWnd", "explorer.exe"),
		testWindow(2, "main.go - editor", "EditorFrame", "editor.exe"),
	)
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())

	windows, err := enum.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected exactly the editor window, got %d windows", len(windows))
	}
	if windows[0].ID != 2 {
		t.Fatalf("expected window 2, got %d", windows[0].ID)
	}
}

func TestEnumerate_NoDescriptorMatchesExclusionSets(t *testing.T) {
	filter := NewFilter(
		[]string{"Progman", "WorkerW"},
		[]string{"", "Desktop"},
	)
	fake := platform.NewFake(
		testWindow(1, "Desktop", "Normal", "a.exe"),
		testWindow(2, "   ", "Normal", "b.exe"), // trims to excluded empty title
		testWindow(3, "shell", "WorkerW", "c.exe"),
		testWindow(4, "report", "Normal", "d.exe"),
	)
	enum := NewEnumerator(fake, filter, zerolog.Nop())

	windows, err := enum.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range windows {
		if !filter.Allows(w) {
			t.Fatalf("window %d (%q/%q) violates the exclusion sets", w.ID, w.Class, w.Title)
		}
	}
	if len(windows) != 1 || windows[0].ID != 4 {
		t.Fatalf("expected only window 4, got %v", windows)
	}
}

func TestEnumerate_SkipsInvisibleAndDisabled(t *testing.T) {
	hidden := testWindow(1, "hidden", "Normal", "a.exe")
	hidden.Visible = false
	disabled := testWindow(2, "disabled", "Normal", "b.exe")
	disabled.Enabled = false
	fake := platform.NewFake(hidden, disabled, testWindow(3, "ok", "Normal", "c.exe"))
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())

	windows, err := enum.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 || windows[0].ID != 3 {
		t.Fatalf("expected only window 3, got %v", windows)
	}
}

func TestEnumerate_PreservesZOrder(t *testing.T) {
	fake := platform.NewFake(
		testWindow(5, "front", "Normal", "a.exe"),
		testWindow(3, "middle", "Normal", "b.exe"),
		testWindow(9, "back", "Normal", "c.exe"),
	)
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())

	windows, err := enum.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []platform.WindowID{5, 3, 9}
	for i, id := range want {
		if windows[i].ID != id {
			t.Fatalf("expected Z order %v, got position %d = %d", want, i, windows[i].ID)
		}
	}
}

func TestWindowInfo_StaleHandle(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())

	if _, ok := enum.WindowInfo(1); !ok {
		t.Fatalf("expected live window to resolve")
	}
	fake.RemoveWindow(1)
	if _, ok := enum.WindowInfo(1); ok {
		t.Fatalf("expected stale window to report not-found")
	}
	if enum.IsValid(1) {
		t.Fatalf("expected stale window to be invalid")
	}
}
