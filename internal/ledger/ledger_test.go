package ledger

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/src", "/dest")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("empty run ID")
	}
	if run.Status != StatusRunning {
		t.Fatalf("status = %q", run.Status)
	}

	if err := store.RecordFile(ctx, run.ID, "/src/o1-f2-l3-p4-a5.png", "/dest/o1/f2/l3/p4/a5.png", 42); err != nil {
		t.Fatalf("RecordFile: %v", err)
	}
	if err := store.FinishRun(ctx, run.ID, StatusCompleted, 1); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Status != StatusCompleted || got.Files != 1 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.FinishedAt.IsZero() {
		t.Fatal("finished_at not set")
	}

	files, err := store.RunFiles(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].DestPath != "/dest/o1/f2/l3/p4/a5.png" || files[0].Bytes != 42 {
		t.Fatalf("unexpected file: %+v", files[0])
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var last string
	for i := 0; i < 3; i++ {
		run, err := store.BeginRun(ctx, "/src", "/dest")
		if err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
		last = run.ID
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != last {
		t.Fatalf("newest run first: got %s, want %s", runs[0].ID, last)
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Fatalf("Path() = %q", store.Path())
	}
}
