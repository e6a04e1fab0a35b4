package cmd

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestReloadOnHangupStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	reloads := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		reloadOnHangup(ctx, sig, func() { reloads <- struct{}{} })
		close(done)
	}()

	sig <- syscall.SIGHUP
	select {
	case <-reloads:
	case <-time.After(2 * time.Second):
		t.Fatalf("SIGHUP did not trigger a reload")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reload loop still running after cancel")
	}
}
