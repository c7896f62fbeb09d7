package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gabrielhgobi/queenswarm/internal/store"
)

func TestSelectResultsForDeletion_ByAge(t *testing.T) {
	now := time.Now()
	infos := []store.ResultInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -10)}, // 10 days old
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -5)},  // 5 days old
		{RunID: "run3", Timestamp: now.AddDate(0, 0, -1)},  // 1 day old
		{RunID: "run4", Timestamp: now.AddDate(0, 0, -30)}, // 30 days old
	}

	// Delete results older than 7 days
	toDelete := selectResultsForDeletion(infos, 0, 7)

	if len(toDelete) != 2 {
		t.Errorf("Expected 2 results to delete, got %d", len(toDelete))
	}

	found10 := false
	found30 := false
	for _, info := range toDelete {
		if info.RunID == "run1" {
			found10 = true
		}
		if info.RunID == "run4" {
			found30 = true
		}
	}

	if !found10 || !found30 {
		t.Error("Expected run1 and run4 to be selected for deletion")
	}
}

func TestSelectResultsForDeletion_ByCount(t *testing.T) {
	now := time.Now()
	infos := []store.ResultInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -10)},
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -5)},
		{RunID: "run3", Timestamp: now.AddDate(0, 0, -1)},
		{RunID: "run4", Timestamp: now.AddDate(0, 0, -30)},
	}

	// Keep only the last 2 results
	toDelete := selectResultsForDeletion(infos, 2, 0)

	if len(toDelete) != 2 {
		t.Errorf("Expected 2 results to delete, got %d", len(toDelete))
	}

	// Should delete the oldest two (run4 and run1)
	found30 := false
	found10 := false
	for _, info := range toDelete {
		if info.RunID == "run4" {
			found30 = true
		}
		if info.RunID == "run1" {
			found10 = true
		}
	}

	if !found30 || !found10 {
		t.Error("Expected run4 and run1 to be selected for deletion (oldest)")
	}
}

func TestSelectResultsForDeletion_CombinedNoDuplicates(t *testing.T) {
	now := time.Now()
	infos := []store.ResultInfo{
		{RunID: "run1", Timestamp: now.AddDate(0, 0, -30)},
		{RunID: "run2", Timestamp: now.AddDate(0, 0, -1)},
	}

	// run1 matches both criteria but must appear once
	toDelete := selectResultsForDeletion(infos, 1, 7)

	if len(toDelete) != 1 {
		t.Fatalf("Expected 1 result to delete, got %d", len(toDelete))
	}
	if toDelete[0].RunID != "run1" {
		t.Errorf("Expected run1, got %s", toDelete[0].RunID)
	}
}

func TestSelectResultsForDeletion_NoCriteria(t *testing.T) {
	infos := []store.ResultInfo{
		{RunID: "run1", Timestamp: time.Now()},
	}

	if toDelete := selectResultsForDeletion(infos, 0, 0); len(toDelete) != 0 {
		t.Errorf("Expected nothing to delete without criteria, got %d", len(toDelete))
	}
}

func TestGetDirSize(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.json"), make([]byte, 100), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.json"), make([]byte, 50), 0644); err != nil {
		t.Fatal(err)
	}

	size, err := getDirSize(dir)
	if err != nil {
		t.Fatalf("getDirSize failed: %v", err)
	}
	if size != 150 {
		t.Errorf("Expected 150 bytes, got %d", size)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d): expected %s, got %s", tt.bytes, tt.want, got)
		}
	}
}
