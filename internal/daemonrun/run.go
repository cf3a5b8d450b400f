// Package daemonrun assembles the scriptparse server process: file logging,
// the run archive, preflight checks, and the daemon lifecycle.
package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"scriptparse/internal/archive"
	"scriptparse/internal/config"
	"scriptparse/internal/daemon"
	"scriptparse/internal/logging"
	"scriptparse/internal/logs"
	"scriptparse/internal/metrics"
	"scriptparse/internal/preflight"
)

// Options configures server process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
	// Ready, when set, receives the listening address once the server is up.
	Ready func(addr string)
}

// Run starts the server and blocks until cmdCtx is cancelled or the process
// receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stamp := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("scriptparse-%s.log", stamp))
	sessionID := uuid.NewString()

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldSessionID, sessionID))

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update scriptparse.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "scriptparse-*.log", Exclude: []string{logPath}},
	)
	logConfigSnapshot(logger, cfg)
	logPreflight(signalCtx, logger, cfg)

	pidPath := cfg.PIDPath()
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	var store *archive.Store
	if cfg.Archive.Enabled {
		store, err = archive.Open(cfg)
		if err != nil {
			logger.Error("open archive", logging.Error(err))
			return err
		}
		if removed, err := store.ApplyRetention(signalCtx, cfg.Archive.RetentionDays); err != nil {
			logging.WarnWithContext(logger, "archive retention failed", "archive_retention_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "old runs remain in the archive"),
			)
		} else if removed > 0 {
			logger.Info("archive retention applied",
				logging.Int64("removed", removed),
				logging.Int("retention_days", cfg.Archive.RetentionDays),
			)
		}
	}

	d, err := daemon.New(cfg, store, logger, metrics.New())
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logger.Error("server start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "server_start_failed"),
			logging.String(logging.FieldErrorHint, "check the bind address and whether another server holds the lock"),
		)
		return err
	}
	if opts.Ready != nil {
		opts.Ready(d.Addr())
	}

	<-signalCtx.Done()
	logger.Info("scriptparse server shutting down")
	return nil
}

func logConfigSnapshot(logger *slog.Logger, cfg *config.Config) {
	logger.Info("configuration snapshot",
		logging.String(logging.FieldEventType, "config_snapshot"),
		logging.String("bind", cfg.Server.Bind),
		logging.Bool("api_token_set", cfg.Server.APIToken != ""),
		logging.Int64("max_body_bytes", cfg.Server.MaxBodyBytes),
		logging.Strings("excluded_quotes", cfg.Classifier.ExcludedQuotes),
		logging.String("latin_default", cfg.Detection.LatinDefault),
		logging.String("arabic_script_default", cfg.Detection.ArabicScriptDefault),
		logging.Bool("archive_enabled", cfg.Archive.Enabled),
		logging.String("fixture_path", cfg.Paths.FixturePath),
	)
}

func logPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Debug("preflight passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail),
			)
			continue
		}
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "dependent routes may fail"),
		)
	}
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := logs.CurrentPath(logDir)
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

// ReadPID returns the process ID recorded by a running server.
func ReadPID(cfg *config.Config) (int, error) {
	data, err := os.ReadFile(cfg.PIDPath())
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file: %w", err)
	}
	return pid, nil
}
