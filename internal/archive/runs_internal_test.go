package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordAt(t *testing.T, store *Store, at time.Time) *Run {
	t.Helper()
	store.now = func() time.Time { return at }
	run, err := store.Record(context.Background(), NewRun{Source: SourceCLI, ResultJSON: []byte(`{}`)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	return run
}

func TestListOrdersWithinOneSecond(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)

	whole := recordAt(t, store, base)
	later := recordAt(t, store, base.Add(500*time.Millisecond))
	latest := recordAt(t, store, base.Add(time.Second))

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{latest.ID, later.ID, whole.ID}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(runs))
	}
	for i, run := range runs {
		if run.ID != want[i] {
			t.Fatalf("runs[%d] = %s, want %s", i, run.ID, want[i])
		}
	}
	if !runs[2].CreatedAt.Equal(base) {
		t.Fatalf("created_at round trip: got %v, want %v", runs[2].CreatedAt, base)
	}
}

func TestPurgeBeforeWithinOneSecond(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)

	recordAt(t, store, base)
	kept := recordAt(t, store, base.Add(250*time.Millisecond))

	removed, err := store.PurgeBefore(context.Background(), base.Add(100*time.Millisecond))
	if err != nil {
		t.Fatalf("PurgeBefore: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected the whole-second run purged, removed %d", removed)
	}
	if _, err := store.Get(context.Background(), kept.ID); err != nil {
		t.Fatalf("later run should survive: %v", err)
	}
}
