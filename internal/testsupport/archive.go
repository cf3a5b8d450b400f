package testsupport

import (
	"context"
	"testing"

	"scriptparse/internal/archive"
	"scriptparse/internal/config"
)

// MustOpenArchive opens an archive.Store for tests and registers cleanup.
func MustOpenArchive(t testing.TB, cfg *config.Config) *archive.Store {
	t.Helper()

	store, err := archive.Open(cfg)
	if err != nil {
		t.Fatalf("archive.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordRun archives a run with the given source and result body.
func RecordRun(t testing.TB, store *archive.Store, source archive.Source, result string) *archive.Run {
	t.Helper()

	run, err := store.Record(context.Background(), archive.NewRun{
		Source:     source,
		LineCount:  1,
		BlockCount: 1,
		Languages:  []string{"english"},
		ResultJSON: []byte(result),
	})
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return run
}
