package wm

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"taskswitch/internal/platform"
)

func newTestActivator(fake *platform.Fake) *Activator {
	enum := NewEnumerator(fake, defaultFilter(), zerolog.Nop())
	a := NewActivator(fake, enum, 50*time.Millisecond, 100*time.Millisecond, zerolog.Nop())
	a.sleep = func(time.Duration) {}
	return a
}

func TestActivate_DirectStrategySucceeds(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "target", "Normal", "b.exe"),
	)
	a := newTestActivator(fake)

	out := a.Activate(2)
	if !out.Activated {
		t.Fatalf("expected activation to succeed, got reason %q", out.Reason)
	}
	if out.Strategy != "direct" {
		t.Fatalf("expected direct strategy, got %q", out.Strategy)
	}
	if fake.NudgeCalls != 0 || fake.AttachCalls != 0 {
		t.Fatalf("later strategies ran after an earlier success")
	}
}

func TestActivate_AlreadyForeground(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "front", "Normal", "a.exe"))
	a := newTestActivator(fake)

	out := a.Activate(1)
	if !out.Activated || out.Strategy != StrategyForeground {
		t.Fatalf("expected already-foreground short circuit, got %+v", out)
	}
	if fake.RaiseCalls[1] != 0 {
		t.Fatalf("no raise should be issued for the foreground window")
	}
}

func TestActivate_RestoreStrategyAfterDirectDenied(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "minimized", "Normal", "b.exe"),
	)
	fake.SetMinimized(2, true)
	fake.DenyRaise[2] = 1 // the direct attempt is denied, restore's retry succeeds
	a := newTestActivator(fake)

	out := a.Activate(2)
	if !out.Activated {
		t.Fatalf("expected activation to succeed, got reason %q", out.Reason)
	}
	if out.Strategy != "restore" {
		t.Fatalf("expected restore strategy, got %q", out.Strategy)
	}
	if min, _ := fake.IsMinimized(2); min {
		t.Fatalf("window should have been restored")
	}
	if fake.AttachCalls != 0 || fake.NudgeCalls != 0 {
		t.Fatalf("later strategies ran after restore succeeded")
	}
}

func TestActivate_AttachStrategyWhenRaiseDenied(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "locked", "Normal", "b.exe"),
	)
	fake.DenyRaise[2] = -1 // denied forever unless input is attached
	fake.AttachUnlocks = true
	a := newTestActivator(fake)

	out := a.Activate(2)
	if !out.Activated {
		t.Fatalf("expected activation via attach, got reason %q", out.Reason)
	}
	if out.Strategy != "attach-input" {
		t.Fatalf("expected attach-input strategy, got %q", out.Strategy)
	}
	if fake.NudgeCalls != 0 {
		t.Fatalf("key nudge ran although attach already succeeded")
	}
}

func TestActivate_RapidRepeatNeverReachesNudge(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "locked", "Normal", "b.exe"),
	)
	fake.DenyRaise[2] = -1
	fake.AttachUnlocks = true
	a := newTestActivator(fake)

	if out := a.Activate(2); !out.Activated {
		t.Fatalf("first activation failed: %+v", out)
	}
	if out := a.Activate(2); !out.Activated {
		t.Fatalf("second activation failed: %+v", out)
	}
	if fake.NudgeCalls != 0 {
		t.Fatalf("key nudge was invoked %d times, want 0", fake.NudgeCalls)
	}
}

func TestActivate_NudgeStrategyWhenAttachUnsupported(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "locked", "Normal", "b.exe"),
	)
	fake.DenyRaise[2] = 3 // direct, restore-skip leaves it, attach unsupported, nudge clears
	fake.AttachSupported = false
	fake.NudgeUnlocks = true
	a := newTestActivator(fake)

	out := a.Activate(2)
	if !out.Activated {
		t.Fatalf("expected activation via nudge, got reason %q", out.Reason)
	}
	if out.Strategy != "key-nudge" {
		t.Fatalf("expected key-nudge strategy, got %q", out.Strategy)
	}
	if fake.NudgeCalls != 1 {
		t.Fatalf("expected exactly one nudge, got %d", fake.NudgeCalls)
	}
}

func TestActivate_AllStrategiesDenied(t *testing.T) {
	fake := platform.NewFake(
		testWindow(1, "other", "Normal", "a.exe"),
		testWindow(2, "locked", "Normal", "b.exe"),
	)
	fake.DenyRaise[2] = -1
	a := newTestActivator(fake)

	out := a.Activate(2)
	if out.Activated {
		t.Fatalf("expected activation to fail")
	}
	if out.Reason != ReasonDenied {
		t.Fatalf("expected reason %q, got %q", ReasonDenied, out.Reason)
	}
	// direct, attach retry and nudge retry each issued a raise
	if fake.RaiseCalls[2] != 3 {
		t.Fatalf("expected 3 raise attempts, got %d", fake.RaiseCalls[2])
	}
}

func TestActivate_StaleWindow(t *testing.T) {
	fake := platform.NewFake(testWindow(1, "one", "Normal", "a.exe"))
	a := newTestActivator(fake)

	out := a.Activate(99)
	if out.Activated {
		t.Fatalf("expected stale activation to fail")
	}
	if out.Reason != ReasonStale {
		t.Fatalf("expected reason %q, got %q", ReasonStale, out.Reason)
	}
}

func TestActivate_HiddenWindow(t *testing.T) {
	hidden := testWindow(2, "hidden", "Normal", "b.exe")
	hidden.Visible = false
	fake := platform.NewFake(testWindow(1, "front", "Normal", "a.exe"), hidden)
	a := newTestActivator(fake)

	out := a.Activate(2)
	if out.Activated {
		t.Fatalf("expected hidden activation to fail")
	}
	if out.Reason != ReasonHidden {
		t.Fatalf("expected reason %q, got %q", ReasonHidden, out.Reason)
	}
}
