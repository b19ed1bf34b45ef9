package batches

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO batch_runs (
	id, prefix, result_id, operation_location, source_container, result_container, submitted_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		run.ID,
		run.Prefix,
		nullIfEmpty(run.ResultID),
		nullIfEmpty(run.OperationLocation),
		run.SourceContainer,
		run.ResultContainer,
		run.SubmittedAt,
	)
	return err
}

// ListRecent returns up to limit runs, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	const query = `
SELECT id, prefix, result_id, operation_location, source_container, result_container, submitted_at
FROM batch_runs
ORDER BY submitted_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var resultID, location sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.Prefix,
			&resultID,
			&location,
			&run.SourceContainer,
			&run.ResultContainer,
			&run.SubmittedAt,
		); err != nil {
			return nil, err
		}
		run.ResultID = resultID.String
		run.OperationLocation = location.String
		out = append(out, run)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
