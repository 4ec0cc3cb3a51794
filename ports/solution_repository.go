package ports

import (
	"context"

	"sensemaker/domain/core"
	"sensemaker/domain/hypothesis"
)

// SolutionRepository defines the interface for solution persistence.
type SolutionRepository interface {
	// SaveSolutionBatch stores every solution produced by an evaluation run.
	SaveSolutionBatch(ctx context.Context, runID core.RunID, paramSetID int, solutions []hypothesis.Solution) error

	// ListByRun returns all solutions stored for a run, grouped by parameter set.
	ListByRun(ctx context.Context, runID core.RunID) (map[int][]hypothesis.Solution, error)
}
