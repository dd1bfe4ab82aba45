package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"milk-collection-service/internal/domain"
	"milk-collection-service/internal/platform/obs"
)

// Postgres-backed implementation of the RunRepository port. Optimization
// documents are stored as JSONB so a manual override survives service
// restarts and feeds the schedule endpoint when the optimizer is down.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

func (r *PostgresRunRepository) Save(ctx context.Context, run domain.OptimizationRun) (err error) {
	defer obs.Time(ctx, "runs.Save")(&err)

	query := `
	INSERT INTO optimization_runs (id, trigger_type, document, created_at)
	VALUES ($1, $2, $3, $4);
	`
	if _, err = r.DB.ExecContext(ctx, query, run.ID, run.TriggerType, []byte(run.Document), run.CreatedAt); err != nil {
		return fmt.Errorf("save run id=%s: %w", run.ID, err)
	}
	return nil
}

func (r *PostgresRunRepository) Latest(ctx context.Context) (_ domain.OptimizationRun, _ bool, err error) {
	defer obs.Time(ctx, "runs.Latest")(&err)

	query := `
	SELECT id, trigger_type, document, created_at
	FROM optimization_runs
	ORDER BY created_at DESC
	LIMIT 1;
	`
	var run domain.OptimizationRun
	var doc []byte
	err = r.DB.QueryRowContext(ctx, query).Scan(&run.ID, &run.TriggerType, &doc, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return domain.OptimizationRun{}, false, nil
	}
	if err != nil {
		return domain.OptimizationRun{}, false, fmt.Errorf("latest run: %w", err)
	}

	run.Document = doc
	return run, true, nil
}
