// Package memory provides the in-process run archive used when no database
// is configured.
package memory

import (
	"context"
	"sync"

	"lipidflow/domain/core"
	"lipidflow/domain/run"
	"lipidflow/ports"
)

type runRepository struct {
	mu   sync.RWMutex
	byID map[core.RunID]*run.Record
	// order preserves insertion for stable listing, newest first on read.
	order []core.RunID
}

// NewRunRepository creates an empty in-memory run archive.
func NewRunRepository() ports.RunRepository {
	return &runRepository{byID: make(map[core.RunID]*run.Record)}
}

func (r *runRepository) Save(_ context.Context, rec *run.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[rec.ID]; !exists {
		r.order = append(r.order, rec.ID)
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *runRepository) GetByID(_ context.Context, id core.RunID) (*run.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, core.NewRunNotFoundError(id)
	}
	return rec, nil
}

func (r *runRepository) List(_ context.Context, limit, offset int) ([]*run.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*run.Record
	for i := len(r.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out, nil
}
