package wm

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/config"
	"taskswitch/internal/platform"
)

func newTestManager(fake *platform.Fake) *Manager {
	m := NewManager(fake, config.DefaultConfig(), zerolog.Nop())
	m.activator.sleep = func(time.Duration) {}
	m.controller.sleep = func(time.Duration) {}
	return m
}

func TestManager_EnumerateAndInvalidate(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "", "Shell_TrayWnd", "explorer.exe"),
		testWindow(2, "main.go - editor", "EditorFrame", "editor.exe"),
	)
	m := newTestManager(fake)

	windows, err := m.EnumerateWindows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 || windows[0].ID != 2 {
		t.Fatalf("expected the taskbar to be filtered, got %v", windows)
	}

	if _, err := m.EnumerateWindows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.ListCalls != 1 {
		t.Fatalf("second call within TTL should hit the cache, got %d platform calls", fake.ListCalls)
	}

	m.InvalidateCache()
	if _, err := m.EnumerateWindows(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.ListCalls != 2 {
		t.Fatalf("invalidate should force re-enumeration, got %d platform calls", fake.ListCalls)
	}
}

func TestManager_ActivateAndValidity(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "front", "Normal", "a.exe"),
		testWindow(2, "back", "Normal", "b.exe"),
	)
	m := newTestManager(fake)

	if !m.IsWindowValid(2) {
		t.Fatalf("window 2 should be valid")
	}
	if !m.ActivateWindow(2) {
		t.Fatalf("activation should succeed")
	}
	if fg, ok := m.ForegroundWindow(); !ok || fg != 2 {
		t.Fatalf("expected window 2 foreground, got %d", fg)
	}

	fake.RemoveWindow(2)
	if m.IsWindowValid(2) {
		t.Fatalf("removed window should be invalid")
	}
	if m.ActivateWindow(2) {
		t.Fatalf("activating a stale window should fail")
	}
}

func TestManager_BatchUsesConfiguredDelayDefault(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "a", "Normal", "a.exe"),
		testWindow(2, "b", "Normal", "b.exe"),
	)
	m := newTestManager(fake)

	var slept []time.Duration
	m.controller.sleep = func(d time.Duration) { slept = append(slept, d) }

	outcomes, err := m.ActivateWindows([]platform.WindowID{1, 2}, -1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	want := config.DefaultConfig().SwitchDelay()
	if len(slept) != 1 || slept[0] != want {
		t.Fatalf("expected one inter-step delay of %v, got %v", want, slept)
	}
}

func TestManager_SummaryAndStats(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "a", "Normal", "editor.exe"),
		testWindow(2, "b", "Normal", "editor.exe"),
	)
	m := newTestManager(fake)

	s, err := m.Summary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Total != 2 || s.ByProcess["editor.exe"] != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if stats := m.CacheStats(); stats.Misses != 1 {
		t.Fatalf("expected one cache miss, got %+v", stats)
	}
}
