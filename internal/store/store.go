package store

// Store defines the interface for run-result persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a result doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveResult atomically saves the result of a run. An existing result
	// for the same runID is overwritten. Implementations should use atomic
	// write strategies (temp file + rename) to prevent corruption.
	SaveResult(runID string, result *RunResult) error

	// LoadResult retrieves the result for the given run.
	// Returns ErrNotFound if no result exists for this runID.
	LoadResult(runID string) (*RunResult, error)

	// ListResults returns metadata for all saved results.
	// The returned slice may be empty if no results exist.
	ListResults() ([]ResultInfo, error)

	// DeleteResult removes the saved result for the given run.
	// Returns ErrNotFound if no result exists for this runID.
	DeleteResult(runID string) error
}

// ErrNotFound is returned when a requested result does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run result.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "result not found: " + e.RunID
	}
	return "result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports an invalid field in a run result.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid result: " + e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
