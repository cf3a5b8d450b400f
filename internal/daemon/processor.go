package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scriptparse/internal/api"
	"scriptparse/internal/archive"
	"scriptparse/internal/config"
	"scriptparse/internal/language"
	"scriptparse/internal/logging"
	"scriptparse/internal/metrics"
	"scriptparse/internal/script"
)

// Result is one completed parse.
type Result struct {
	Script   script.Script
	Response api.ScriptResponse
	// Body is the encoded response, exactly as served and archived.
	Body []byte
	// RunID is empty when the run was not archived.
	RunID string
}

// Processor parses lines, encodes the response, and records the run.
// It is safe for concurrent use.
type Processor struct {
	parser  *script.Parser
	store   *archive.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewIdentifier builds the language identifier described by cfg.
func NewIdentifier(cfg *config.Config) (language.Identifier, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	id, err := language.NewScriptIdentifier(language.ScriptOptions{
		LatinDefault:        cfg.Detection.LatinDefault,
		ArabicScriptDefault: cfg.Detection.ArabicScriptDefault,
	})
	if err != nil {
		return nil, fmt.Errorf("build identifier: %w", err)
	}
	return id, nil
}

// NewProcessor wires the parser for cfg. store and m may be nil.
func NewProcessor(cfg *config.Config, store *archive.Store, m *metrics.Metrics, logger *slog.Logger) (*Processor, error) {
	id, err := NewIdentifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Processor{
		parser:  script.NewParser(id, script.Options{ExcludedQuotes: cfg.Classifier.ExcludedQuotes}),
		store:   store,
		metrics: m,
		logger:  logging.NewComponentLogger(logger, "processor"),
	}, nil
}

// Process parses lines received from source. Archive failures are logged and
// never fail the parse.
func (p *Processor) Process(ctx context.Context, source archive.Source, lines []string) (Result, error) {
	start := time.Now()
	parsed := p.parser.Parse(lines)
	resp, body, err := api.EncodeScript(parsed)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	p.metrics.ObserveParse(metrics.Parse{
		Source:         string(source),
		Lines:          len(lines),
		Blocks:         len(parsed.Blocks),
		Duration:       elapsed,
		BlockLanguages: resp.BlockLanguages(),
	})

	result := Result{Script: parsed, Response: resp, Body: body}
	logger := logging.WithContext(ctx, p.logger)
	if p.store != nil {
		run, err := p.store.Record(ctx, archive.NewRun{
			Source:     source,
			LineCount:  len(lines),
			BlockCount: len(parsed.Blocks),
			Languages:  resp.Languages,
			ResultJSON: body,
		})
		if err != nil {
			p.metrics.ArchiveFailure()
			logging.WarnWithContext(logger, "parse run not archived", "archive_write_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check archive database permissions and disk space"),
				logging.String(logging.FieldImpact, "run is missing from the archive"),
			)
		} else {
			result.RunID = run.ID
			logger = logging.WithContext(logging.WithRunID(ctx, run.ID), p.logger)
		}
	}

	logger.Debug("script parsed",
		logging.String("source", string(source)),
		logging.Int("lines", len(lines)),
		logging.Int("blocks", len(parsed.Blocks)),
		logging.Strings("languages", resp.Languages),
		logging.Duration("elapsed", elapsed),
	)
	return result, nil
}

// ContractError records an input rejected before parsing.
func (p *Processor) ContractError(ctx context.Context, source archive.Source, err error) {
	p.metrics.ContractError(string(source))
	logging.WithContext(ctx, p.logger).Info("input rejected",
		logging.String("source", string(source)),
		logging.Error(err),
	)
}
