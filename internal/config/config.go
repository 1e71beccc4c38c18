package config

import (
	"fmt"
	"time"
)

// FilterConfig lists window classes and titles excluded from enumeration.
// The exclusion is applied once, at the enumeration boundary; no other
// component re-filters.
type FilterConfig struct {
	Classes []string `yaml:"classes"`
	Titles  []string `yaml:"titles"`
}

// CacheConfig tunes the enumeration snapshot cache.
type CacheConfig struct {
	TTLMillis int `yaml:"ttl_ms"` // 0 = use default
}

// ActivationConfig tunes the activation strategy chain.
type ActivationConfig struct {
	SettleMillis      int `yaml:"settle_ms"`       // wait before verifying foreground
	RestoreWaitMillis int `yaml:"restore_wait_ms"` // wait after un-minimizing
}

// SwitchConfig tunes batch activation.
type SwitchConfig struct {
	DelayMillis int `yaml:"delay_ms"` // pause between windows in a batch
}

// AnalyzerConfig tunes the "likely active" / "recently used" heuristics.
// These are policy knobs, not contracts; tests assert ordering, not scores.
type AnalyzerConfig struct {
	RecentWindowSeconds int      `yaml:"recent_window_s"`
	MaxActive           int      `yaml:"max_active"`
	TransientClasses    []string `yaml:"transient_classes"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root configuration for taskswitch.
type Config struct {
	Filters    FilterConfig     `yaml:"filters"`
	Cache      CacheConfig      `yaml:"cache"`
	Activation ActivationConfig `yaml:"activation"`
	Switch     SwitchConfig     `yaml:"switch"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DefaultConfig returns the built-in configuration. The exclusion sets cover
// shell surfaces on both Windows (taskbar, UWP frames, desktop workers) and
// X11 (docks, desktop windows report similar classes through their WMs).
func DefaultConfig() *Config {
	return &Config{
		Filters: FilterConfig{
			Classes: []string{
				"Shell_TrayWnd",
				"DV2ControlHost",
				"Windows.UI.Core.CoreWindow",
				"ApplicationFrameWindow",
				"WorkerW",
				"Progman",
				"Button",
				"Edit",
				"",
			},
			Titles: []string{
				"",
				"Program Manager",
				"Desktop",
			},
		},
		Cache: CacheConfig{
			TTLMillis: 400,
		},
		Activation: ActivationConfig{
			SettleMillis:      50,
			RestoreWaitMillis: 100,
		},
		Switch: SwitchConfig{
			DelayMillis: 100,
		},
		Analyzer: AnalyzerConfig{
			RecentWindowSeconds: 300,
			MaxActive:           10,
			TransientClasses: []string{
				"tooltips_class32",
				"#32768",
				"Xaml_WindowedPopupClass",
				"Ghost",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CacheTTL returns the cache time-to-live as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMillis) * time.Millisecond
}

// SettleWait returns the per-strategy settle interval.
func (c *Config) SettleWait() time.Duration {
	return time.Duration(c.Activation.SettleMillis) * time.Millisecond
}

// RestoreWait returns the post-restore settle interval.
func (c *Config) RestoreWait() time.Duration {
	return time.Duration(c.Activation.RestoreWaitMillis) * time.Millisecond
}

// SwitchDelay returns the inter-window pause for batch activation.
func (c *Config) SwitchDelay() time.Duration {
	return time.Duration(c.Switch.DelayMillis) * time.Millisecond
}

// RecentWindow returns how far back a foreground observation still counts
// as "recently used".
func (c *Config) RecentWindow() time.Duration {
	return time.Duration(c.Analyzer.RecentWindowSeconds) * time.Second
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Cache.TTLMillis < 0 {
		return fmt.Errorf("cache.ttl_ms must not be negative, got %d", c.Cache.TTLMillis)
	}
	if c.Activation.SettleMillis < 0 {
		return fmt.Errorf("activation.settle_ms must not be negative, got %d", c.Activation.SettleMillis)
	}
	if c.Switch.DelayMillis < 0 {
		return fmt.Errorf("switch.delay_ms must not be negative, got %d", c.Switch.DelayMillis)
	}
	if c.Analyzer.MaxActive < 1 {
		return fmt.Errorf("analyzer.max_active must be at least 1, got %d", c.Analyzer.MaxActive)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("logging.level must be one of trace/debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
