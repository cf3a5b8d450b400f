package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"scriptparse/internal/archive"
	"scriptparse/internal/config"
	"scriptparse/internal/logging"
	"scriptparse/internal/metrics"
)

// Daemon serves the parse API and enforces single-instance execution.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *archive.Store
	metrics   *metrics.Metrics
	processor *Processor
	api       *apiServer

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
	cancel    context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Address      string
	StartedAt    time.Time
	LockFilePath string
	ArchivePath  string
	ArchivedRuns int
}

// New constructs a daemon. store may be nil when archiving is disabled; a nil
// m gets a fresh registry.
func New(cfg *config.Config, store *archive.Store, logger *slog.Logger, m *metrics.Metrics) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	processor, err := NewProcessor(cfg, store, m, logger)
	if err != nil {
		return nil, err
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		metrics:   m,
		processor: processor,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and begins serving.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another scriptparse server is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}

	d.cancel = cancel
	d.startedAt = time.Now()
	d.running.Store(true)
	d.logger.Info("scriptparse server started",
		logging.String("address", d.api.addr()),
		logging.String("lock", d.lockPath),
		logging.Bool("archive", d.store != nil),
	)
	return nil
}

// Stop stops serving and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop(d.cfg.ShutdownTimeoutDuration())
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("scriptparse server stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the listening address once started.
func (d *Daemon) Addr() string {
	return d.api.addr()
}

// Processor returns the parse pipeline shared by every route.
func (d *Daemon) Processor() *Processor {
	return d.processor
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Address:      d.api.addr(),
		LockFilePath: d.lockPath,
	}
	if status.Running {
		status.StartedAt = d.startedAt
	}
	if d.store != nil {
		status.ArchivePath = d.store.Path()
		if count, err := d.store.Count(ctx); err == nil {
			status.ArchivedRuns = count
		} else {
			d.logger.Warn("archive count failed", logging.Error(err))
		}
	}
	return status
}
