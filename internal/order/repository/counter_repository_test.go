package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"shopbot/internal/testutil"

	"go.uber.org/zap"
)

func counterPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "orderCounter.json")
}

func TestAllocate_StrictlyIncreasing(t *testing.T) {
	repo, err := NewFileCounterRepository(counterPath(t), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 5; i++ {
		id, err := repo.Allocate()
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if want := fmt.Sprintf("T%d", i); string(id) != want {
			t.Fatalf("id = %s, want %s", id, want)
		}
	}

	if repo.Last() != 5 {
		t.Fatalf("Last = %d, want 5", repo.Last())
	}
}

func TestAllocate_PersistsBeforeReturning(t *testing.T) {
	path := counterPath(t)
	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.Allocate(); err != nil {
		t.Fatalf("allocation failed: %v", err)
	}

	var state struct {
		LastOrderNumber int64 `json:"lastOrderNumber"`
	}
	testutil.ReadJSON(t, path, &state)
	if state.LastOrderNumber != 1 {
		t.Fatalf("persisted counter = %d, want 1", state.LastOrderNumber)
	}
}

func TestNewFileCounterRepository_ResumesFromFile(t *testing.T) {
	path := counterPath(t)
	testutil.WriteJSON(t, path, map[string]int64{"lastOrderNumber": 41})

	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := repo.Allocate()
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if string(id) != "T42" {
		t.Fatalf("id = %s, want T42", id)
	}
}

func TestNewFileCounterRepository_SurvivesReopen(t *testing.T) {
	path := counterPath(t)

	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := repo.Allocate(); err != nil {
			t.Fatalf("allocation failed: %v", err)
		}
	}

	reopened, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	id, err := reopened.Allocate()
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if string(id) != "T4" {
		t.Fatalf("id after reopen = %s, want T4", id)
	}
}

func TestNewFileCounterRepository_CorruptFileResets(t *testing.T) {
	path := counterPath(t)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := repo.Allocate()
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if string(id) != "T1" {
		t.Fatalf("id = %s, want T1 after reset", id)
	}
}

func TestNewFileCounterRepository_TornWriteLeavesCounterIntact(t *testing.T) {
	path := counterPath(t)
	testutil.WriteJSON(t, path, map[string]int64{"lastOrderNumber": 41})

	// A crash mid-persist leaves a half-written temp file behind; the real
	// counter file must win and numbering must continue, not reset.
	if err := os.WriteFile(path+".tmp", []byte(`{"lastOrderNum`), 0o644); err != nil {
		t.Fatalf("writing torn temp file: %v", err)
	}

	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := repo.Allocate()
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if string(id) != "T42" {
		t.Fatalf("id = %s, want T42: torn write must not reset the counter", id)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("persist must clean up its temp file")
	}
}

func TestAllocate_FailedPersistBurnsNothing(t *testing.T) {
	path := counterPath(t)
	repo, err := NewFileCounterRepository(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Replace the counter file with a directory so the write fails.
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing counter file: %v", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("creating blocking directory: %v", err)
	}

	if _, err := repo.Allocate(); err == nil {
		t.Fatal("expected storage error")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing blocking directory: %v", err)
	}

	id, err := repo.Allocate()
	if err != nil {
		t.Fatalf("allocation after recovery failed: %v", err)
	}
	if string(id) != "T1" {
		t.Fatalf("id = %s, want T1: a failed persist must not advance the counter", id)
	}
}
