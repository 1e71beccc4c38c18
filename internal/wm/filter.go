package wm

import (
	"strings"

	"taskswitch/internal/platform"
)

// Filter holds the exclusion sets applied at the enumeration boundary.
// Shell and system surfaces (taskbar, desktop workers, UWP frames) are
// excluded here once; nothing downstream re-filters.
type Filter struct {
	classes map[string]struct{}
	titles  map[string]struct{}
}

// NewFilter builds a Filter from excluded class names and titles.
func NewFilter(classes, titles []string) Filter {
	f := Filter{
		classes: make(map[string]struct{}, len(classes)),
		titles:  make(map[string]struct{}, len(titles)),
	}
	for _, c := range classes {
		f.classes[c] = struct{}{}
	}
	for _, t := range titles {
		f.titles[t] = struct{}{}
	}
	return f
}

// Allows reports whether a window passes the exclusion sets. Titles are
// compared after trimming surrounding whitespace.
func (f Filter) Allows(w platform.Window) bool {
	if _, excluded := f.classes[w.Class]; excluded {
		return false
	}
	if _, excluded := f.titles[strings.TrimSpace(w.Title)]; excluded {
		return false
	}
	return true
}
