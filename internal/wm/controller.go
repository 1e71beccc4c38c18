package wm

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

var (
	// ErrBusy reports that another batch is already running. Nothing was
	// attempted; the caller may retry once the running batch finishes.
	ErrBusy = errors.New("another window switch is already running")
	// ErrNoWindows reports an empty batch, which is a contract violation.
	ErrNoWindows = errors.New("no windows to activate")
)

// CancelFlag is a cooperative cancellation handle for one batch. Cancel may
// be called from any goroutine at any time; the running batch polls it
// between steps.
type CancelFlag struct {
	set atomic.Bool
}

// NewCancelFlag creates an unset cancellation flag.
func NewCancelFlag() *CancelFlag {
	return &CancelFlag{}
}

// Cancel requests the batch stop after the current step.
func (c *CancelFlag) Cancel() {
	c.set.Store(true)
}

// Cancelled reports whether cancellation was requested. Nil flags never
// cancel.
func (c *CancelFlag) Cancelled() bool {
	if c == nil {
		return false
	}
	return c.set.Load()
}

// BatchOptions tunes one ActivateMany call.
type BatchOptions struct {
	// Delay is the pause between consecutive windows.
	Delay time.Duration
	// Cancel, when non-nil, lets a caller stop the batch between steps.
	Cancel *CancelFlag
}

// SwitchController activates an ordered list of windows for one logical
// task. Batches never run concurrently: the guard is try-acquire, so a
// caller losing the race fails fast with ErrBusy instead of blocking a
// hotkey thread behind a long batch.
type SwitchController struct {
	enum      *Enumerator
	activator *Activator
	guard     sync.Mutex
	sleep     func(time.Duration)
	log       zerolog.Logger

	mu      sync.Mutex
	current *CancelFlag
}

// NewSwitchController creates a controller over the enumerator and
// activator.
func NewSwitchController(enum *Enumerator, activator *Activator, log zerolog.Logger) *SwitchController {
	return &SwitchController{
		enum:      enum,
		activator: activator,
		sleep:     time.Sleep,
		log:       log,
	}
}

// ActivateMany activates the windows in caller order. Stale windows are
// recorded as failed outcomes and skipped; the batch continues. When the
// cancel flag is set the batch stops immediately and returns the outcomes
// accumulated so far. Outcomes are always in input order.
func (s *SwitchController) ActivateMany(ids []platform.WindowID, opts BatchOptions) ([]ActivationOutcome, error) {
	if len(ids) == 0 {
		return nil, ErrNoWindows
	}
	if !s.guard.TryLock() {
		return nil, ErrBusy
	}
	defer s.guard.Unlock()

	s.mu.Lock()
	s.current = opts.Cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
	}()

	session := uuid.New().String()[:8]
	log := s.log.With().Str("session", session).Int("windows", len(ids)).Logger()
	log.Info().Msg("starting window switch")

	outcomes := make([]ActivationOutcome, 0, len(ids))
	for i, id := range ids {
		if opts.Cancel.Cancelled() {
			log.Warn().Int("completed", i).Msg("switch cancelled")
			return outcomes, nil
		}

		if !s.enum.IsValid(id) {
			log.Debug().Uint64("window", uint64(id)).Msg("skipping stale window")
			outcomes = append(outcomes, ActivationOutcome{Window: id, Reason: ReasonStale})
		} else {
			out := s.activator.Activate(id)
			outcomes = append(outcomes, out)
			if out.Activated {
				log.Debug().Uint64("window", uint64(id)).Str("strategy", out.Strategy).
					Int("step", i+1).Msg("window activated")
			} else {
				title := "unknown"
				if w, ok := s.enum.WindowInfo(id); ok {
					title = w.Title
				}
				log.Warn().Uint64("window", uint64(id)).Str("title", title).
					Str("reason", out.Reason).Int("step", i+1).Msg("activation failed")
			}
		}

		// The pause keeps its cadence even when a step was skipped.
		if i < len(ids)-1 && opts.Delay > 0 {
			s.sleep(opts.Delay)
		}
	}

	activated := 0
	for _, out := range outcomes {
		if out.Activated {
			activated++
		}
	}
	log.Info().Int("activated", activated).Msg("window switch finished")
	return outcomes, nil
}

// CancelActive cancels the batch currently running, if any. Returns whether
// a batch was there to cancel. Used when a newer switch request supersedes
// an in-flight one.
func (s *SwitchController) CancelActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	s.current.Cancel()
	return true
}
