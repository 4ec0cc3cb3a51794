package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"sensemaker/domain/core"
	"sensemaker/domain/hypothesis"
	"sensemaker/ports"
)

// SolutionRepositoryImpl implements SolutionRepository for PostgreSQL.
type SolutionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSolutionRepository creates a PostgreSQL solution repository.
func NewSolutionRepository(db *sqlx.DB) ports.SolutionRepository {
	return &SolutionRepositoryImpl{db: db}
}

// Connect opens a PostgreSQL connection and ensures the schema exists.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS solutions (
			run_id        UUID    NOT NULL,
			param_set_id  INT     NOT NULL,
			solution_id   INT     NOT NULL,
			energy        DOUBLE PRECISION NOT NULL,
			accepted_ids  JSONB   NOT NULL,
			parameters    JSONB   NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, param_set_id, solution_id)
		)`)
	if err != nil {
		return fmt.Errorf("creating solutions table: %w", err)
	}
	return nil
}

// SaveSolutionBatch stores every solution from an evaluation run in one
// transaction.
func (r *SolutionRepositoryImpl) SaveSolutionBatch(ctx context.Context, runID core.RunID, paramSetID int, solutions []hypothesis.Solution) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning solution batch: %w", err)
	}
	defer tx.Rollback()

	for _, sol := range solutions {
		acceptedJSON, err := json.Marshal(sol.AcceptedIDs())
		if err != nil {
			return fmt.Errorf("marshaling accepted ids: %w", err)
		}
		paramsJSON, err := json.Marshal(sol.Parameters)
		if err != nil {
			return fmt.Errorf("marshaling parameters: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO solutions (run_id, param_set_id, solution_id, energy, accepted_ids, parameters)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (run_id, param_set_id, solution_id) DO UPDATE SET
				energy = EXCLUDED.energy,
				accepted_ids = EXCLUDED.accepted_ids,
				parameters = EXCLUDED.parameters`,
			runID.String(), paramSetID, sol.ID, sol.Energy, acceptedJSON, paramsJSON)
		if err != nil {
			return fmt.Errorf("inserting solution %d: %w", sol.ID, err)
		}
	}
	return tx.Commit()
}

// ListByRun returns all solutions stored for a run, grouped by parameter
// set id and ordered by ascending energy within each set.
func (r *SolutionRepositoryImpl) ListByRun(ctx context.Context, runID core.RunID) (map[int][]hypothesis.Solution, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT param_set_id, solution_id, energy, accepted_ids, parameters
		FROM solutions
		WHERE run_id = $1
		ORDER BY param_set_id, energy, solution_id`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("querying solutions for run %s: %w", runID, err)
	}
	defer rows.Close()

	result := make(map[int][]hypothesis.Solution)
	for rows.Next() {
		var (
			paramSetID   int
			solutionID   int
			energy       float64
			acceptedJSON []byte
			paramsJSON   []byte
		)
		if err := rows.Scan(&paramSetID, &solutionID, &energy, &acceptedJSON, &paramsJSON); err != nil {
			return nil, fmt.Errorf("scanning solution row: %w", err)
		}

		var acceptedIDs []hypothesis.HypID
		if err := json.Unmarshal(acceptedJSON, &acceptedIDs); err != nil {
			return nil, fmt.Errorf("unmarshaling accepted ids: %w", err)
		}
		var params hypothesis.ParameterSet
		if err := json.Unmarshal(paramsJSON, &params); err != nil {
			return nil, fmt.Errorf("unmarshaling parameters: %w", err)
		}

		accepted := make(map[hypothesis.HypID]struct{}, len(acceptedIDs))
		for _, id := range acceptedIDs {
			accepted[id] = struct{}{}
		}
		result[paramSetID] = append(result[paramSetID], hypothesis.Solution{
			ID:         solutionID,
			Parameters: params,
			Accepted:   accepted,
			Energy:     energy,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating solution rows: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, runID)
	}
	return result, nil
}
