package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

const runColumns = "id, created_at, source, line_count, block_count, languages_json, result_json"

// createdAtLayout is fixed width so created_at orders and compares correctly
// as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores a run and returns it with its assigned ID and timestamp.
func (s *Store) Record(ctx context.Context, in NewRun) (*Run, error) {
	if _, ok := ParseSource(string(in.Source)); !ok {
		return nil, fmt.Errorf("record run: unknown source %q", in.Source)
	}
	if len(in.ResultJSON) == 0 || !json.Valid(in.ResultJSON) {
		return nil, errors.New("record run: result is not valid JSON")
	}
	languages := in.Languages
	if languages == nil {
		languages = []string{}
	}
	languagesJSON, err := json.Marshal(languages)
	if err != nil {
		return nil, fmt.Errorf("marshal languages: %w", err)
	}

	run := &Run{
		ID:         uuid.NewString(),
		CreatedAt:  s.now().UTC(),
		Source:     in.Source,
		LineCount:  in.LineCount,
		BlockCount: in.BlockCount,
		Languages:  append([]string(nil), languages...),
		ResultJSON: append([]byte(nil), in.ResultJSON...),
	}
	_, err = s.execWithRetry(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(createdAtLayout),
		string(run.Source),
		run.LineCount,
		run.BlockCount,
		string(languagesJSON),
		string(run.ResultJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Get fetches a run by ID, returning ErrNotFound when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of archived runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// PurgeBefore deletes runs created before cutoff and reports how many were removed.
func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff.UTC().Format(createdAtLayout))
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	return res.RowsAffected()
}

// ApplyRetention purges runs older than retentionDays. Zero keeps everything.
func (s *Store) ApplyRetention(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	return s.PurgeBefore(ctx, s.now().AddDate(0, 0, -retentionDays))
}

// Clear removes every run.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

// CheckHealth returns diagnostic information about the archive database.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	health := Health{Path: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat archive database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("archive database path %q is a directory", s.path)
	}
	health.Exists = true

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping archive database: %w", err)
	}
	health.Readable = true

	if err := s.db.QueryRowContext(connCtx, "SELECT version FROM schema_version LIMIT 1").Scan(&health.SchemaVersion); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("read schema version: %w", err)
	}
	if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM runs").Scan(&health.TotalRuns); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count runs: %w", err)
	}

	var integrity string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrity, "ok")
	return health, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id            string
		createdRaw    string
		source        string
		lineCount     int
		blockCount    int
		languagesJSON string
		resultJSON    string
	)
	if err := scanner.Scan(&id, &createdRaw, &source, &lineCount, &blockCount, &languagesJSON, &resultJSON); err != nil {
		return nil, err
	}

	run := &Run{
		ID:         id,
		Source:     Source(source),
		LineCount:  lineCount,
		BlockCount: blockCount,
		ResultJSON: []byte(resultJSON),
		Languages:  []string{},
	}
	if created, err := time.Parse(createdAtLayout, createdRaw); err == nil {
		run.CreatedAt = created
	}
	if err := json.Unmarshal([]byte(languagesJSON), &run.Languages); err != nil {
		return nil, fmt.Errorf("decode languages for run %s: %w", id, err)
	}
	return run, nil
}
