package ports

import (
	"context"

	"lipidflow/domain/core"
	"lipidflow/domain/run"
)

// RunRepository archives completed analysis runs. The pipeline itself is
// stateless; the archive only serves listing and re-export.
type RunRepository interface {
	Save(ctx context.Context, rec *run.Record) error
	GetByID(ctx context.Context, id core.RunID) (*run.Record, error)
	List(ctx context.Context, limit, offset int) ([]*run.Record, error)
}
