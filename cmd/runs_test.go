package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/sweepfront/internal/solver"
	"github.com/cwbudde/sweepfront/internal/store"
)

func testRecord(t *testing.T, age time.Duration) *store.RunRecord {
	t.Helper()
	return &store.RunRecord{
		RunID:     uuid.New().String(),
		Timestamp: time.Now().Add(-age),
		Config:    store.RunConfig{Model: "sphere", Kind: solver.KindGA},
		Result: solver.SolutionSet{
			Solutions: []solver.Solution{{Inputs: map[string]float64{"x": 0}}},
			NSol:      1,
			NSim:      10,
			Converged: true,
		},
	}
}

func TestSelectRunsForDeletion_ByAge(t *testing.T) {
	now := time.Now()
	infos := []store.RunInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -10)},
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -5)},
		{RunID: "run3", Timestamp: now.AddDate(0, 0, -1)},
		{RunID: "run4", Timestamp: now.AddDate(0, 0, -30)},
	}

	// Delete runs older than 7 days
	toDelete := selectRunsForDeletion(infos, 0, 7)

	if len(toDelete) != 2 {
		t.Fatalf("Expected 2 runs to delete, got %d", len(toDelete))
	}

	found := map[string]bool{}
	for _, info := range toDelete {
		found[info.RunID] = true
	}
	if !found["run1"] || !found["run4"] {
		t.Error("Expected run1 and run4 to be selected for deletion")
	}
}

func TestSelectRunsForDeletion_ByCount(t *testing.T) {
	now := time.Now()
	infos := []store.RunInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -10)},
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -5)},
		{RunID: "run3", Timestamp: now.AddDate(0, 0, -1)},
		{RunID: "run4", Timestamp: now.AddDate(0, 0, -30)},
	}

	// Keep only the last 2 runs
	toDelete := selectRunsForDeletion(infos, 2, 0)

	if len(toDelete) != 2 {
		t.Fatalf("Expected 2 runs to delete, got %d", len(toDelete))
	}

	found := map[string]bool{}
	for _, info := range toDelete {
		found[info.RunID] = true
	}
	if !found["run1"] || !found["run4"] {
		t.Error("Expected the two oldest runs to be selected for deletion")
	}
}

func TestSelectRunsForDeletion_Combined(t *testing.T) {
	now := time.Now()
	infos := []store.RunInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -30)},
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -1)},
	}

	// Age criterion already marks run1; count criterion must not double-count
	toDelete := selectRunsForDeletion(infos, 1, 7)

	if len(toDelete) != 1 {
		t.Fatalf("Expected 1 run to delete, got %d", len(toDelete))
	}
	if toDelete[0].RunID != "run1" {
		t.Errorf("Expected run1, got %s", toDelete[0].RunID)
	}
}

func TestGetDirSize(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	content := []byte("Hello, World!")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	size, err := getDirSize(tmpDir)
	if err != nil {
		t.Fatalf("getDirSize failed: %v", err)
	}

	if size < int64(len(content)) {
		t.Errorf("Expected size >= %d, got %d", len(content), size)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		result := formatBytes(tt.bytes)
		if result != tt.expected {
			t.Errorf("formatBytes(%d) = %s, expected %s", tt.bytes, result, tt.expected)
		}
	}
}

func TestRunsListCommand_NoRuns(t *testing.T) {
	tmpDir := t.TempDir()

	originalDataDir := runsDataDir
	runsDataDir = tmpDir
	defer func() { runsDataDir = originalDataDir }()

	if err := runListRuns(nil, nil); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestRunsListCommand_WithRuns(t *testing.T) {
	tmpDir := t.TempDir()

	runStore, err := store.NewFSStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := runStore.SaveRun(testRecord(t, 0)); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	originalDataDir := runsDataDir
	runsDataDir = tmpDir
	defer func() { runsDataDir = originalDataDir }()

	if err := runListRuns(nil, nil); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestRunsCleanCommand_NoFlags(t *testing.T) {
	tmpDir := t.TempDir()

	originalDataDir := runsDataDir
	runsDataDir = tmpDir
	defer func() { runsDataDir = originalDataDir }()

	keepLast = 0
	olderThanDays = 0

	if err := runCleanRuns(nil, nil); err == nil {
		t.Error("Expected error when no flags specified")
	}
}

func TestRunsCleanCommand_WithForce(t *testing.T) {
	tmpDir := t.TempDir()

	runStore, err := store.NewFSStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	old := testRecord(t, 0)
	old.Timestamp = time.Now().AddDate(0, 0, -30)
	if err := runStore.SaveRun(old); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	originalDataDir := runsDataDir
	runsDataDir = tmpDir
	defer func() { runsDataDir = originalDataDir }()

	keepLast = 0
	olderThanDays = 7
	forceClean = true

	if err := runCleanRuns(nil, nil); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Verify the run record was deleted
	_, err = runStore.LoadRun(old.RunID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected run to be deleted, got %v", err)
	}
}
