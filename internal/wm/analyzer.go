package wm

import (
	"sort"
	"sync"
	"time"

	"taskswitch/internal/platform"
)

// minMeaningfulSize is the smallest bounds a window can have and still be
// considered a real task target; tooltip-like surfaces are smaller.
const minMeaningfulSize = 40

// LikelyActive reports whether a window looks like something the user works
// with, given the current foreground window. Pure; no platform calls.
func LikelyActive(w platform.Window, fg platform.WindowID) bool {
	if !w.Visible || !w.Enabled {
		return false
	}
	if w.ID == fg {
		return true
	}
	return w.Bounds.Width() >= minMeaningfulSize && w.Bounds.Height() >= minMeaningfulSize
}

// RecentlyUsed reports whether a window's last observed foreground time
// falls within the given lookback. Pure; deterministic for equal inputs.
func RecentlyUsed(lastSeen, now time.Time, within time.Duration) bool {
	if lastSeen.IsZero() {
		return false
	}
	return now.Sub(lastSeen) <= within
}

// Analyzer derives higher-level facts from enumeration output and live
// platform state: the current foreground window, and a ranking of windows
// the user is most likely working with.
type Analyzer struct {
	sys          platform.WindowSystem
	cache        *Cache
	transient    map[string]struct{}
	recentWindow time.Duration
	now          func() time.Time

	mu       sync.Mutex
	lastSeen map[platform.WindowID]time.Time
}

// NewAnalyzer creates an analyzer. transientClasses is a stricter filter
// than the enumeration exclusion set: these windows can be visible and
// enabled yet are popups or tooltips, not task targets.
func NewAnalyzer(sys platform.WindowSystem, cache *Cache, transientClasses []string, recentWindow time.Duration) *Analyzer {
	transient := make(map[string]struct{}, len(transientClasses))
	for _, c := range transientClasses {
		transient[c] = struct{}{}
	}
	return &Analyzer{
		sys:          sys,
		cache:        cache,
		transient:    transient,
		recentWindow: recentWindow,
		now:          time.Now,
		lastSeen:     make(map[platform.WindowID]time.Time),
	}
}

// Foreground queries the platform's current foreground window. Never
// cached: this fact is too volatile. Each observation feeds the recency
// state used by ActiveWindows.
func (a *Analyzer) Foreground() (platform.WindowID, bool) {
	fg, err := a.sys.ForegroundWindow()
	if err != nil || fg == 0 {
		return 0, false
	}
	a.mu.Lock()
	a.lastSeen[fg] = a.now()
	a.mu.Unlock()
	return fg, true
}

// ActiveWindows ranks enumerated windows by "likely what the user is
// working with": the foreground window first, then recently-foreground
// windows newest first, then the rest in Z order. Transient surfaces are
// dropped. At most limit windows are returned.
func (a *Analyzer) ActiveWindows(limit int) ([]platform.Window, error) {
	windows, err := a.cache.Windows()
	if err != nil {
		return nil, err
	}

	fg, _ := a.Foreground()
	now := a.now()

	a.mu.Lock()
	seen := make(map[platform.WindowID]time.Time, len(a.lastSeen))
	for id, t := range a.lastSeen {
		seen[id] = t
	}
	a.mu.Unlock()

	candidates := make([]platform.Window, 0, len(windows))
	for _, w := range windows {
		if a.IsTransient(w) {
			continue
		}
		if !LikelyActive(w, fg) {
			continue
		}
		candidates = append(candidates, w)
	}

	rank := func(w platform.Window) int {
		if w.ID == fg {
			return 0
		}
		if RecentlyUsed(seen[w.ID], now, a.recentWindow) {
			return 1
		}
		return 2
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := rank(candidates[i]), rank(candidates[j])
		if ri != rj {
			return ri < rj
		}
		if ri == 1 {
			return seen[candidates[i].ID].After(seen[candidates[j].ID])
		}
		return false // keep Z order
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// IsTransient reports whether the window's class marks it as a popup,
// tooltip or similar short-lived surface.
func (a *Analyzer) IsTransient(w platform.Window) bool {
	_, ok := a.transient[w.Class]
	return ok
}

// IsRecentlyUsed reports whether the window was observed as foreground
// within the given lookback.
func (a *Analyzer) IsRecentlyUsed(w platform.Window, within time.Duration) bool {
	a.mu.Lock()
	last := a.lastSeen[w.ID]
	a.mu.Unlock()
	return RecentlyUsed(last, a.now(), within)
}
