package wm

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

// Outcome reasons for failed activations.
const (
	// ReasonStale marks a window that no longer exists.
	ReasonStale = "stale"
	// ReasonHidden marks a window that exists but is not visible.
	ReasonHidden = "hidden"
	// ReasonDenied marks a window the platform refused to bring forward
	// after every strategy was exhausted.
	ReasonDenied = "denied"
)

// StrategyForeground is reported when the window already held focus and no
// strategy had to run.
const StrategyForeground = "already-foreground"

// ActivationOutcome is the result of one activation attempt. Failure is
// data, not an error; the caller decides whether to retry, skip or surface
// it.
type ActivationOutcome struct {
	Window    platform.WindowID
	Activated bool
	Strategy  string // which strategy succeeded, if any
	Reason    string // why it failed, if it did
	Elapsed   time.Duration
}

// errNotApplicable tells the activator a strategy had nothing to do for
// this window (e.g. restore on a window that is not minimized).
var errNotApplicable = errors.New("strategy not applicable")

// strategy is one technique for bringing a window to the foreground. The
// activator verifies success itself after attempt returns.
type strategy interface {
	name() string
	attempt(a *Activator, id platform.WindowID) error
}

// Activator brings a single window to the foreground using an ordered chain
// of fallback strategies, cheapest and least invasive first. The order is
// fixed; later strategies inject synthetic input and run only after the
// earlier ones failed.
type Activator struct {
	sys        platform.WindowSystem
	enum       *Enumerator
	strategies []strategy
	settle     time.Duration
	restore    time.Duration
	sleep      func(time.Duration)
	log        zerolog.Logger
}

// NewActivator creates an activator with the standard strategy chain:
// direct raise, restore-then-raise, thread-input attach, synthetic-key
// nudge.
func NewActivator(sys platform.WindowSystem, enum *Enumerator, settle, restore time.Duration, log zerolog.Logger) *Activator {
	return &Activator{
		sys:  sys,
		enum: enum,
		strategies: []strategy{
			directRaise{},
			restoreRaise{},
			attachRaise{},
			nudgeRaise{},
		},
		settle:  settle,
		restore: restore,
		sleep:   time.Sleep,
		log:     log,
	}
}

// Activate tries each strategy in order until the window becomes the
// platform's reported foreground window or the chain is exhausted.
func (a *Activator) Activate(id platform.WindowID) ActivationOutcome {
	start := time.Now()
	out := ActivationOutcome{Window: id}

	if !a.enum.IsValid(id) {
		out.Reason = ReasonStale
		out.Elapsed = time.Since(start)
		return out
	}
	if w, ok := a.enum.WindowInfo(id); ok && !w.Visible {
		out.Reason = ReasonHidden
		out.Elapsed = time.Since(start)
		return out
	}
	if fg, err := a.sys.ForegroundWindow(); err == nil && fg == id {
		out.Activated = true
		out.Strategy = StrategyForeground
		out.Elapsed = time.Since(start)
		return out
	}

	for _, s := range a.strategies {
		if err := s.attempt(a, id); err != nil {
			switch {
			case errors.Is(err, errNotApplicable), errors.Is(err, platform.ErrUnsupported):
				a.log.Debug().Str("strategy", s.name()).Uint64("window", uint64(id)).Msg("strategy skipped")
			case errors.Is(err, platform.ErrWindowGone):
				out.Reason = ReasonStale
				out.Elapsed = time.Since(start)
				return out
			default:
				a.log.Debug().Err(err).Str("strategy", s.name()).Uint64("window", uint64(id)).Msg("strategy failed")
			}
			continue
		}

		// Give the window system a moment to settle before verifying.
		a.sleep(a.settle)
		if fg, err := a.sys.ForegroundWindow(); err == nil && fg == id {
			out.Activated = true
			out.Strategy = s.name()
			out.Elapsed = time.Since(start)
			a.log.Debug().Str("strategy", s.name()).Uint64("window", uint64(id)).Msg("window activated")
			return out
		}
	}

	out.Reason = ReasonDenied
	out.Elapsed = time.Since(start)
	a.log.Warn().Uint64("window", uint64(id)).Msg("all activation strategies failed")
	return out
}

// directRaise asks the platform for the foreground change outright. Often
// denied when the calling process does not hold input focus.
type directRaise struct{}

func (directRaise) name() string { return "direct" }

func (directRaise) attempt(a *Activator, id platform.WindowID) error {
	return a.sys.RaiseWindow(id)
}

// restoreRaise un-minimizes the window first, then retries the direct
// raise. Not applicable when the window is not minimized.
type restoreRaise struct{}

func (restoreRaise) name() string { return "restore" }

func (restoreRaise) attempt(a *Activator, id platform.WindowID) error {
	minimized, err := a.sys.IsMinimized(id)
	if err != nil {
		return err
	}
	if !minimized {
		return errNotApplicable
	}
	if err := a.sys.RestoreWindow(id); err != nil {
		return err
	}
	a.sleep(a.restore)
	return a.sys.RaiseWindow(id)
}

// attachRaise ties the calling thread's input state to the target window's
// thread, which lifts the platform's foreground-change restriction, then
// retries the direct raise. Detaches regardless of outcome.
type attachRaise struct{}

func (attachRaise) name() string { return "attach-input" }

func (attachRaise) attempt(a *Activator, id platform.WindowID) error {
	detach, err := a.sys.AttachInput(id)
	if err != nil {
		return err
	}
	defer detach()
	return a.sys.RaiseWindow(id)
}

// nudgeRaise taps a modifier key so the platform sees recent user input,
// then retries the direct raise. Most invasive, tried last.
type nudgeRaise struct{}

func (nudgeRaise) name() string { return "key-nudge" }

func (nudgeRaise) attempt(a *Activator, id platform.WindowID) error {
	if err := a.sys.NudgeInput(); err != nil {
		return err
	}
	a.sleep(a.settle)
	return a.sys.RaiseWindow(id)
}
