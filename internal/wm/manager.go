package wm

import (
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/config"
	"taskswitch/internal/platform"
)

// Manager is the stable facade consumed by the task manager, the CLI and
// the MCP layer. It composes the enumeration, caching, activation,
// analysis, search and batch-switching components.
type Manager struct {
	cfg        *config.Config
	cache      *Cache
	enum       *Enumerator
	activator  *Activator
	analyzer   *Analyzer
	finder     *Finder
	controller *SwitchController
}

// NewManager wires the window engine over the given window system.
func NewManager(sys platform.WindowSystem, cfg *config.Config, log zerolog.Logger) *Manager {
	filter := NewFilter(cfg.Filters.Classes, cfg.Filters.Titles)
	enum := NewEnumerator(sys, filter, log)
	cache := NewCache(enum, cfg.CacheTTL())
	activator := NewActivator(sys, enum, cfg.SettleWait(), cfg.RestoreWait(), log)

	return &Manager{
		cfg:        cfg,
		cache:      cache,
		enum:       enum,
		activator:  activator,
		analyzer:   NewAnalyzer(sys, cache, cfg.Analyzer.TransientClasses, cfg.RecentWindow()),
		finder:     NewFinder(cache),
		controller: NewSwitchController(enum, activator, log),
	}
}

// EnumerateWindows returns the current filtered window inventory, served
// from the cache within its TTL.
func (m *Manager) EnumerateWindows() ([]platform.Window, error) {
	return m.cache.Windows()
}

// WindowInfo re-queries one window; false when the ID is stale.
func (m *Manager) WindowInfo(id platform.WindowID) (platform.Window, bool) {
	return m.enum.WindowInfo(id)
}

// IsWindowValid reports whether the ID still refers to a live window.
func (m *Manager) IsWindowValid(id platform.WindowID) bool {
	return m.enum.IsValid(id)
}

// ActivateWindow brings one window to the foreground. Returns false when
// every strategy was denied or the window is gone.
func (m *Manager) ActivateWindow(id platform.WindowID) bool {
	return m.activator.Activate(id).Activated
}

// ActivateWindows activates a batch in order. A delay below zero means the
// configured default. Returns ErrBusy when another batch is running.
func (m *Manager) ActivateWindows(ids []platform.WindowID, delay time.Duration, cancel *CancelFlag) ([]ActivationOutcome, error) {
	if delay < 0 {
		delay = m.cfg.SwitchDelay()
	}
	return m.controller.ActivateMany(ids, BatchOptions{Delay: delay, Cancel: cancel})
}

// CancelActiveSwitch aborts the in-flight batch, if any.
func (m *Manager) CancelActiveSwitch() bool {
	return m.controller.CancelActive()
}

// FindWindowsByTitle searches titles under the given match mode.
func (m *Manager) FindWindowsByTitle(pattern string, mode MatchMode) ([]platform.Window, error) {
	return m.finder.FindByTitle(pattern, mode)
}

// FindWindowsByProcess searches by process name or PID.
func (m *Manager) FindWindowsByProcess(nameOrPID string) ([]platform.Window, error) {
	return m.finder.FindByProcess(nameOrPID)
}

// ActiveWindows returns up to limit windows ranked by likely user activity.
// A limit of 0 uses the configured default.
func (m *Manager) ActiveWindows(limit int) ([]platform.Window, error) {
	if limit <= 0 {
		limit = m.cfg.Analyzer.MaxActive
	}
	return m.analyzer.ActiveWindows(limit)
}

// ForegroundWindow returns the window currently holding focus.
func (m *Manager) ForegroundWindow() (platform.WindowID, bool) {
	return m.analyzer.Foreground()
}

// InvalidateCache forces the next enumeration to hit the platform.
func (m *Manager) InvalidateCache() {
	m.cache.Invalidate()
}

// Summary aggregates the inventory per owning process.
func (m *Manager) Summary() (Summary, error) {
	return m.finder.Summarize()
}

// CacheStats exposes cache effectiveness counters.
func (m *Manager) CacheStats() CacheStats {
	return m.cache.Stats()
}
