package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabrielhgobi/queenswarm/internal/store"
)

// waitForState polls until the job reaches a terminal state or the deadline passes.
func waitForState(t *testing.T, jm *JobManager, jobID string, want JobState) Job {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, exists := jm.GetJob(jobID)
		if !exists {
			t.Fatalf("Job %s disappeared", jobID)
		}
		if job.State == want {
			return job
		}
		if job.State == StateFailed && want != StateFailed {
			t.Fatalf("Job failed: %s", job.Error)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for state %s", want)
	return Job{}
}

func TestRunJob_Completes(t *testing.T) {
	jm := NewJobManager()

	config := testJobConfig()
	job := jm.CreateJob(config)

	done := make(chan error, 1)
	go func() {
		done <- runJob(context.Background(), jm, nil, job.ID)
	}()

	completed := waitForState(t, jm, job.ID, StateCompleted)

	if completed.Evaluations != config.Evaluations {
		t.Errorf("Expected %d evaluations, got %d", config.Evaluations, completed.Evaluations)
	}
	if completed.Generations != config.Evaluations/config.NumParticles {
		t.Errorf("Expected %d generations, got %d", config.Evaluations/config.NumParticles, completed.Generations)
	}
	if len(completed.BestPosition) != config.N {
		t.Errorf("Expected best position of length %d, got %v", config.N, completed.BestPosition)
	}
	if completed.EndTime == nil {
		t.Error("Completed job should have an end time")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runJob returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runJob did not return")
	}
}

func TestRunJob_SavesResult(t *testing.T) {
	jm := NewJobManager()

	resultStore, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	job := jm.CreateJob(testJobConfig())

	if err := runJob(context.Background(), jm, resultStore, job.ID); err != nil {
		t.Fatalf("runJob failed: %v", err)
	}

	saved, err := resultStore.LoadResult(job.ID)
	if err != nil {
		t.Fatalf("Expected result to be saved: %v", err)
	}
	if saved.RunID != job.ID {
		t.Errorf("Expected run ID %s, got %s", job.ID, saved.RunID)
	}
	if saved.Config.N != 4 {
		t.Errorf("Expected config n=4, got %d", saved.Config.N)
	}
}

func TestRunJob_InvalidConfigFails(t *testing.T) {
	jm := NewJobManager()

	config := testJobConfig()
	config.NumParticles = 0 // applyConfigDefaults not used here, swarm must reject
	job := jm.CreateJob(config)

	if err := runJob(context.Background(), jm, nil, job.ID); err == nil {
		t.Fatal("Expected runJob to fail for invalid config")
	}

	failed, _ := jm.GetJob(job.ID)
	if failed.State != StateFailed {
		t.Errorf("Expected failed state, got %s", failed.State)
	}
	if failed.Error == "" {
		t.Error("Failed job should carry an error message")
	}
}

func TestRunJob_MissingJob(t *testing.T) {
	jm := NewJobManager()

	if err := runJob(context.Background(), jm, nil, "missing"); err == nil {
		t.Fatal("Expected error for missing job")
	}
}

func TestRunJob_CancelledContext(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(testJobConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runJob(ctx, jm, nil, job.ID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	cancelled, _ := jm.GetJob(job.ID)
	if cancelled.State != StateCancelled {
		t.Errorf("Expected cancelled state, got %s", cancelled.State)
	}
}
