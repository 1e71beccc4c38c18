package wm

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

// Enumerator walks the host window system's top-level windows and applies
// the exclusion filter. Results keep the platform's front-to-back Z order.
type Enumerator struct {
	sys    platform.WindowSystem
	filter Filter
	log    zerolog.Logger
}

// NewEnumerator creates an enumerator over the given window system.
func NewEnumerator(sys platform.WindowSystem, filter Filter, log zerolog.Logger) *Enumerator {
	return &Enumerator{sys: sys, filter: filter, log: log}
}

// Enumerate returns the current visible, enabled, non-excluded top-level
// windows in Z order. Windows whose metadata could not be fetched have
// already been skipped by the backend.
func (e *Enumerator) Enumerate() ([]platform.Window, error) {
	all, err := e.sys.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	windows := make([]platform.Window, 0, len(all))
	for _, w := range all {
		if !w.Visible || !w.Enabled {
			continue
		}
		if !e.filter.Allows(w) {
			continue
		}
		windows = append(windows, w)
	}

	e.log.Debug().Int("total", len(all)).Int("kept", len(windows)).Msg("enumerated windows")
	return windows, nil
}

// WindowInfo re-queries a single window. The second return is false when
// the ID no longer refers to a live window.
func (e *Enumerator) WindowInfo(id platform.WindowID) (platform.Window, bool) {
	w, err := e.sys.QueryWindow(id)
	if err != nil {
		if !errors.Is(err, platform.ErrWindowGone) {
			e.log.Debug().Err(err).Uint64("window", uint64(id)).Msg("window query failed")
		}
		return platform.Window{}, false
	}
	return w, true
}

// IsValid is a fast liveness check used in hot paths before activation.
func (e *Enumerator) IsValid(id platform.WindowID) bool {
	return e.sys.WindowExists(id)
}
