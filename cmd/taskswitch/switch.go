package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskswitch/internal/platform"
	"taskswitch/internal/wm"
)

func runActivate(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: taskswitch activate <handle>")
		return 2
	}
	id, err := parseHandle(args[0])
	if err != nil {
		return fail(err)
	}

	manager, _, log, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	if !manager.ActivateWindow(id) {
		log.Warn().Uint64("window", uint64(id)).Msg("activation failed")
		return 1
	}
	return 0
}

func runSwitch(args []string) int {
	fs := flag.NewFlagSet("switch", flag.ExitOnError)
	delayMS := fs.Int("delay", -1, "pause between windows in milliseconds (-1 = configured default)")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskswitch switch [--delay ms] <handle> [handle...]")
		return 2
	}

	ids := make([]platform.WindowID, 0, fs.NArg())
	for _, arg := range fs.Args() {
		id, err := parseHandle(arg)
		if err != nil {
			return fail(err)
		}
		ids = append(ids, id)
	}

	manager, _, log, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	delay := time.Duration(-1)
	if *delayMS >= 0 {
		delay = time.Duration(*delayMS) * time.Millisecond
	}

	// Ctrl-C cancels the batch between steps instead of killing it mid-way.
	cancel := wm.NewCancelFlag()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		cancel.Cancel()
	}()

	outcomes, err := manager.ActivateWindows(ids, delay, cancel)
	if err != nil {
		return fail(err)
	}

	failed := 0
	for _, out := range outcomes {
		if out.Activated {
			fmt.Printf("ok\t%d\t%s\n", out.Window, out.Strategy)
		} else {
			failed++
			fmt.Printf("fail\t%d\t%s\n", out.Window, out.Reason)
		}
	}
	if cancelled := len(outcomes) < len(ids); cancelled {
		log.Warn().Int("completed", len(outcomes)).Int("requested", len(ids)).Msg("switch cancelled")
	}
	if failed > 0 {
		return 1
	}
	return 0
}
