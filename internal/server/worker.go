package server

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gabrielhgobi/queenswarm/internal/dpso"
	"github.com/gabrielhgobi/queenswarm/internal/queens"
	"github.com/gabrielhgobi/queenswarm/internal/solve"
	"github.com/gabrielhgobi/queenswarm/internal/store"
)

// runJob executes a solver job in the background.
// If resultStore is not nil the final result is persisted on completion.
func runJob(ctx context.Context, jm *JobManager, resultStore store.Store, jobID string) error {
	// Get the job
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	// Update state to running
	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID, "n", job.Config.N, "particles", job.Config.NumParticles)

	// Build the swarm from the job configuration
	rng := rand.New(rand.NewSource(job.Config.Seed))
	params := dpso.Params{
		NumParticles:       job.Config.NumParticles,
		InertiaWeight:      job.Config.InertiaWeight,
		CognitiveParameter: job.Config.CognitiveParameter,
		SocialParameter:    job.Config.SocialParameter,
	}
	sw, err := dpso.NewSwarm(params, job.Config.N, rng)
	if err != nil {
		markJobFailed(jm, jobID, fmt.Errorf("failed to build swarm: %w", err))
		return err
	}

	// Check for cancellation before starting the long-running loop
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	// Count evaluations as they happen so the progress monitor can report
	// live throughput rather than the value at the last improvement.
	var evalCount atomic.Int64
	cost := func(perm []int) float64 {
		evalCount.Add(1)
		return queens.Cost(perm)
	}

	progress := func(evaluations int, bestValue float64) {
		jm.UpdateJob(jobID, func(j *Job) {
			j.Evaluations = evaluations
			j.BestValue = bestValue
			j.BestPosition = sw.BestPosition()
			j.Generations = sw.Generation()
		})
	}

	// Start progress monitoring goroutine
	start := time.Now()
	progressDone := make(chan struct{})
	go monitorProgress(ctx, jm, jobID, start, &evalCount, progressDone)

	result, err := solve.Run(sw, cost, job.Config.Evaluations, progress)
	close(progressDone)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	elapsed := time.Since(start)

	// Check for cancellation after the run
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	// Update job with results
	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.BestPosition = result.BestPosition
		j.BestValue = finiteValue(result.BestValue)
		j.Evaluations = result.Evaluations
		j.Generations = result.Generations
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	eps := float64(result.Evaluations) / elapsed.Seconds()

	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"best_value", result.BestValue,
		"evaluations_per_second", eps,
	)

	// Persist the final result
	if resultStore != nil {
		saved := store.NewRunResult(
			jobID,
			result.BestPosition,
			finiteValue(result.BestValue),
			result.Evaluations,
			result.Generations,
			job.Config,
		)
		if err := resultStore.SaveResult(jobID, saved); err != nil {
			slog.Error("Failed to save job result", "job_id", jobID, "error", err)
			// The job itself completed; keep it completed.
		}
	}

	// Broadcast final completion event
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:       jobID,
		State:       StateCompleted,
		Evaluations: result.Evaluations,
		Generations: result.Generations,
		BestValue:   finiteValue(result.BestValue),
		EPS:         eps,
		Timestamp:   time.Now(),
	})

	return nil
}

// finiteValue maps the +Inf "never evaluated" sentinel to the largest finite
// float64 so the value survives JSON encoding.
func finiteValue(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

// monitorProgress periodically broadcasts progress events during a run
func monitorProgress(ctx context.Context, jm *JobManager, jobID string, startTime time.Time, evalCount *atomic.Int64, done chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond) // Throttle to 2 updates per second
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Get current job state
			job, exists := jm.GetJob(jobID)
			if !exists {
				return
			}

			evals := int(evalCount.Load())
			elapsed := time.Since(startTime).Seconds()

			var eps float64
			if elapsed > 0 {
				eps = float64(evals) / elapsed
			}

			// Broadcast progress event
			jm.broadcaster.Broadcast(ProgressEvent{
				JobID:       jobID,
				State:       job.State,
				Evaluations: evals,
				Generations: job.Generations,
				BestValue:   job.BestValue,
				EPS:         eps,
				Timestamp:   time.Now(),
			})
		}
	}
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
