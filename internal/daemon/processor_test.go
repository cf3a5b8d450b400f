package daemon_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"scriptparse/internal/archive"
	"scriptparse/internal/daemon"
	"scriptparse/internal/logging"
	"scriptparse/internal/testsupport"
)

func TestProcessorArchivesRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArchive(t, cfg)
	p, err := daemon.NewProcessor(cfg, store, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	result, err := p.Process(context.Background(), archive.SourceCLI, []string{"SCENE 1", "Hello", "SCENE 2", "Bye"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Script.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(result.Script.Blocks))
	}
	if result.RunID == "" {
		t.Fatal("expected run to be archived")
	}
	run, err := store.Get(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(run.ResultJSON) != string(result.Body) {
		t.Fatalf("archived body differs from served body")
	}
}

func TestProcessorSurvivesArchiveFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := archive.Open(cfg)
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	p, err := daemon.NewProcessor(cfg, store, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	_ = store.Close()

	result, err := p.Process(context.Background(), archive.SourceSubmit, []string{"Hello"})
	if err != nil {
		t.Fatalf("Process must not fail on archive errors: %v", err)
	}
	if result.RunID != "" {
		t.Fatal("run id must be empty when archiving failed")
	}
	if len(result.Body) == 0 {
		t.Fatal("expected encoded body")
	}
}

func TestProcessorHonorsExcludedQuotes(t *testing.T) {
	line := "ABC “quoted” text"

	cfg := testsupport.NewConfig(t, testsupport.WithArchiveDisabled())
	p, err := daemon.NewProcessor(cfg, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	result, err := p.Process(context.Background(), archive.SourceCLI, []string{line})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Script.Blocks[0].Meta) != 0 {
		t.Fatalf("default quote exclusion should keep %q as content", line)
	}

	cfg = testsupport.NewConfig(t, testsupport.WithArchiveDisabled(), testsupport.WithExcludedQuotes())
	p, err = daemon.NewProcessor(cfg, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	result, err = p.Process(context.Background(), archive.SourceCLI, []string{line})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Script.Blocks[0].Meta) != 1 {
		t.Fatalf("with no exclusions %q should be metadata", line)
	}
}

func TestProcessorLogsRunID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenArchive(t, cfg)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p, err := daemon.NewProcessor(cfg, store, nil, logger)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), "req-7")
	result, err := p.Process(ctx, archive.SourceSubmit, []string{"TITLE", "Hello there"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if record[logging.FieldRunID] != result.RunID || record[logging.FieldRequestID] != "req-7" {
		t.Fatalf("expected run and request ids on the parse log, got %v", record)
	}
}
