package wm

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

func newTestAnalyzer(fake *platform.Fake) *Analyzer {
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())
	cache := NewCache(enum, time.Hour)
	return NewAnalyzer(fake, cache, []string{"tooltips_class32", "#32768"}, 5*time.Minute)
}

func TestForeground_RecordsObservation(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "front", "Normal", "a.exe"))
	a := newTestAnalyzer(fake)

	fg, ok := a.Foreground()
	if !ok || fg != 1 {
		t.Fatalf("expected foreground window 1, got %d (ok=%v)", fg, ok)
	}
	if !a.IsRecentlyUsed(testWindow(1, "front", "Normal", "a.exe"), time.Minute) {
		t.Fatalf("observed foreground window should count as recently used")
	}
}

func TestActiveWindows_ForegroundFirstThenRecentThenZOrder(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "editor", "Normal", "editor.exe"),
		testWindow(2, "browser", "Normal", "browser.exe"),
		testWindow(3, "terminal", "Normal", "term.exe"),
		testWindow(4, "mail", "Normal", "mail.exe"),
	)
	fake.SetForeground(2)
	a := newTestAnalyzer(fake)

	now := time.Unix(5000, 0)
	a.now = func() time.Time { return now }
	// window 4 was foreground recently, window 1 long ago (outside the lookback)
	a.lastSeen[4] = now.Add(-time.Minute)
	a.lastSeen[1] = now.Add(-time.Hour)

	active, err := a.ActiveWindows(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []platform.WindowID{2, 4, 1, 3}
	if len(active) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(active))
	}
	for i, id := range want {
		if active[i].ID != id {
			got := make([]platform.WindowID, len(active))
			for j, w := range active {
				got[j] = w.ID
			}
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestActiveWindows_FiltersTransientSurfaces(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "editor", "Normal", "editor.exe"),
		testWindow(2, "", "tooltips_class32", "editor.exe"),
		testWindow(3, "menu", "#32768", "editor.exe"),
	)
	a := newTestAnalyzer(fake)

	active, err := a.ActiveWindows(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != 1 {
		t.Fatalf("expected only the editor window, got %v", active)
	}
}

func TestActiveWindows_HonorsLimit(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "a", "Normal", "a.exe"),
		testWindow(2, "b", "Normal", "b.exe"),
		testWindow(3, "c", "Normal", "c.exe"),
	)
	a := newTestAnalyzer(fake)

	active, err := a.ActiveWindows(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected limit of 2 windows, got %d", len(active))
	}
}

func TestLikelyActive_Predicate(t *testing.T) {
	w := testWindow(1, "doc", "Normal", "a.exe")
	if !LikelyActive(w, 0) {
		t.Fatalf("normal-sized visible window should be likely active")
	}

	tiny := w
	tiny.Bounds = platform.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	if LikelyActive(tiny, 0) {
		t.Fatalf("tooltip-sized window should not be likely active")
	}
	if !LikelyActive(tiny, tiny.ID) {
		t.Fatalf("the foreground window is always likely active")
	}

	hidden := w
	hidden.Visible = false
	if LikelyActive(hidden, 0) {
		t.Fatalf("invisible window should not be likely active")
	}
}

func TestRecentlyUsed_Predicate(t *testing.T) {
	now := time.Unix(5000, 0)
	if RecentlyUsed(time.Time{}, now, time.Minute) {
		t.Fatalf("never-seen window must not be recently used")
	}
	if !RecentlyUsed(now.Add(-30*time.Second), now, time.Minute) {
		t.Fatalf("window seen 30s ago should be recently used within 1m")
	}
	if RecentlyUsed(now.Add(-2*time.Minute), now, time.Minute) {
		t.Fatalf("window seen 2m ago should not be recently used within 1m")
	}
}
