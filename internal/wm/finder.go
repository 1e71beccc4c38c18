package wm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"taskswitch/internal/platform"
)

// MatchMode selects how Finder compares window titles.
type MatchMode int

const (
	MatchSubstring MatchMode = iota
	MatchExact
	MatchRegexp
)

// ParseMatchMode converts a user-facing mode name to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "substring", "":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	case "regexp", "regex":
		return MatchRegexp, nil
	}
	return 0, fmt.Errorf("unknown match mode %q (want exact, substring or regexp)", s)
}

// Summary aggregates the current window inventory by owning process.
type Summary struct {
	Total     int
	ByProcess map[string]int
}

// Finder searches the enumerated window set. Every call operates on a
// single cache snapshot so its result set reflects one point in time.
type Finder struct {
	cache *Cache
}

// NewFinder creates a finder over the cache.
func NewFinder(cache *Cache) *Finder {
	return &Finder{cache: cache}
}

// FindByTitle returns windows whose title matches pattern under the given
// mode. Matching is case-insensitive. Results keep snapshot order.
func (f *Finder) FindByTitle(pattern string, mode MatchMode) ([]platform.Window, error) {
	windows, err := f.cache.Windows()
	if err != nil {
		return nil, err
	}

	var match func(title string) bool
	switch mode {
	case MatchExact:
		match = func(title string) bool { return strings.EqualFold(title, pattern) }
	case MatchSubstring:
		needle := strings.ToLower(pattern)
		match = func(title string) bool { return strings.Contains(strings.ToLower(title), needle) }
	case MatchRegexp:
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid title pattern: %w", err)
		}
		match = re.MatchString
	default:
		return nil, fmt.Errorf("unknown match mode %d", mode)
	}

	var found []platform.Window
	for _, w := range windows {
		if match(w.Title) {
			found = append(found, w)
		}
	}
	return found, nil
}

// FindByProcess returns windows owned by the given process. A numeric
// query matches the PID exactly; anything else matches the process name
// case-insensitively as a substring.
func (f *Finder) FindByProcess(nameOrPID string) ([]platform.Window, error) {
	windows, err := f.cache.Windows()
	if err != nil {
		return nil, err
	}

	var found []platform.Window
	if pid, err := strconv.Atoi(nameOrPID); err == nil {
		for _, w := range windows {
			if w.PID == pid {
				found = append(found, w)
			}
		}
		return found, nil
	}

	needle := strings.ToLower(nameOrPID)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.ProcessName), needle) {
			found = append(found, w)
		}
	}
	return found, nil
}

// Summarize counts the current inventory per owning process.
func (f *Finder) Summarize() (Summary, error) {
	windows, err := f.cache.Windows()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:     len(windows),
		ByProcess: make(map[string]int),
	}
	for _, w := range windows {
		s.ByProcess[w.ProcessName]++
	}
	return s, nil
}
