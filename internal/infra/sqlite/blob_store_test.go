package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"smart-note-service/internal/app"
	"smart-note-service/internal/domain"
)

func openTestStore(t *testing.T) *BlobStore {
	t.Helper()
	s, err := Open(context.Background(), "file::memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBlobStoreUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := s.PutAll(ctx, map[string][]byte{"k": []byte(`1`)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.PutAll(ctx, map[string][]byte{"k": []byte(`2`)}); err != nil {
		t.Fatalf("put again: %v", err)
	}

	data, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(data) != "2" {
		t.Fatalf("expected overwritten value, got %s", data)
	}

	var rows int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM blobs`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single row, got %d", rows)
	}
}

func TestStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes", "smart-note.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	blobs, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store, err := app.Open(ctx, blobs)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	attempt, err := store.CreateAttempt(ctx, "1")
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if _, err := store.SubmitAnswer(ctx, attempt.ID, "q1-1", domain.IndexAnswer(1)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	blobs, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	store, err = app.Open(ctx, blobs)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close(ctx)

	got, err := store.Attempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("attempt after restart: %v", err)
	}
	if !got.Answers["q1-1"].Equal(domain.IndexAnswer(1)) {
		t.Fatalf("answer lost across restart: %+v", got.Answers)
	}
}
