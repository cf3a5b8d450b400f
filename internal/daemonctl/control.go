// Package daemonctl controls a scriptparse server running in another process
// through its PID and lock files.
package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"scriptparse/internal/config"
	"scriptparse/internal/daemonrun"
)

// ErrNotRunning indicates no server holds the lock.
var ErrNotRunning = errors.New("server not running")

const pollInterval = 100 * time.Millisecond

// StopResult captures the outcome of Stop.
type StopResult struct {
	PID        int
	ForcedKill bool
}

// Running reports whether a server currently holds the lock file.
func Running(cfg *config.Config) (bool, error) {
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe server lock: %w", err)
	}
	if locked {
		_ = lock.Unlock()
		return false, nil
	}
	return true, nil
}

// Stop sends SIGTERM to the server recorded in the PID file and waits up to
// grace for it to release the lock, then falls back to SIGKILL. Stale PID
// files left by a crashed server are removed and reported as ErrNotRunning.
func Stop(ctx context.Context, cfg *config.Config, grace time.Duration) (StopResult, error) {
	running, err := Running(cfg)
	if err != nil {
		return StopResult{}, err
	}
	pid, pidErr := daemonrun.ReadPID(cfg)
	if !running {
		if pidErr == nil {
			removePIDFile(cfg)
		}
		return StopResult{}, ErrNotRunning
	}
	if pidErr != nil {
		return StopResult{}, fmt.Errorf("read server pid: %w", pidErr)
	}
	if pid <= 0 {
		return StopResult{}, fmt.Errorf("invalid server pid %d", pid)
	}
	if pid == os.Getpid() {
		return StopResult{}, fmt.Errorf("refusing to signal current process (pid %d)", pid)
	}

	result := StopResult{PID: pid}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		if errors.Is(err, unix.ESRCH) {
			removePIDFile(cfg)
			return result, ErrNotRunning
		}
		return result, fmt.Errorf("signal server %d: %w", pid, err)
	}
	if waitForRelease(ctx, cfg, grace) {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	if err := unix.Kill(pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return result, fmt.Errorf("kill server %d: %w", pid, err)
	}
	result.ForcedKill = true
	removePIDFile(cfg)
	return result, nil
}

func waitForRelease(ctx context.Context, cfg *config.Config, grace time.Duration) bool {
	deadline := time.NewTimer(grace)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if running, err := Running(cfg); err == nil && !running {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-ticker.C:
		}
	}
}

func removePIDFile(cfg *config.Config) {
	_ = os.Remove(cfg.PIDPath())
}
