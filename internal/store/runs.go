package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/riverbed/internal/groundcover"
)

// Run is one entry of the carve journal.
type Run struct {
	ID         uuid.UUID
	Params     groundcover.Params
	Report     groundcover.Report
	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordRun appends r to the journal, assigning an ID if it has none.
func (s *Store) RecordRun(ctx context.Context, r Run) (uuid.UUID, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, layer, water_offset, apply_biome, delete_layer, workers,
			carved, water_raised, relabeled, cleared, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Params.Layer, r.Params.WaterOffset, r.Params.ApplyBiome, r.Params.DeleteLayer, r.Params.Workers,
		r.Report.Carved, r.Report.WaterRaised, r.Report.Relabeled, r.Report.Cleared,
		r.StartedAt.UnixNano(), r.FinishedAt.UnixNano(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	return r.ID, nil
}

// Runs returns the journal, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, layer, water_offset, apply_biome, delete_layer, workers,
			carved, water_raised, relabeled, cleared, started_at, finished_at
		FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r               Run
			id              string
			started, finish int64
		)
		if err := rows.Scan(&id, &r.Params.Layer, &r.Params.WaterOffset, &r.Params.ApplyBiome,
			&r.Params.DeleteLayer, &r.Params.Workers,
			&r.Report.Carved, &r.Report.WaterRaised, &r.Report.Relabeled, &r.Report.Cleared,
			&started, &finish); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		r.Report.Layer = r.Params.Layer
		r.StartedAt = time.Unix(0, started)
		r.FinishedAt = time.Unix(0, finish)
		out = append(out, r)
	}
	return out, rows.Err()
}
