// Package postgres archives analysis runs in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lipidflow/domain/core"
	"lipidflow/domain/run"
	"lipidflow/ports"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	payload    JSONB NOT NULL
)`

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository and ensures its schema.
func NewRunRepository(db *sqlx.DB) (ports.RunRepository, error) {
	if _, err := db.Exec(runsSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure analysis_runs schema: %w", err)
	}
	return &runRepository{db: db}, nil
}

// Save inserts a completed run into the archive.
func (r *runRepository) Save(ctx context.Context, rec *run.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run payload: %w", err)
	}

	query := `INSERT INTO analysis_runs (id, created_at, payload) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, rec.ID.String(), rec.CreatedAt.Time(), payload); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetByID retrieves an archived run by its ID.
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*run.Record, error) {
	query := `SELECT payload FROM analysis_runs WHERE id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewRunNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var rec run.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run payload: %w", err)
	}
	return &rec, nil
}

// List returns archived runs, newest first.
func (r *runRepository) List(ctx context.Context, limit, offset int) ([]*run.Record, error) {
	query := `SELECT payload FROM analysis_runs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*run.Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan run payload: %w", err)
		}
		var rec run.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run payload: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
