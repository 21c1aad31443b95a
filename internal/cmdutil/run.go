package cmdutil

import (
	"context"

	"seqkernel/internal/dispatch"
	"seqkernel/internal/metrics"
	"seqkernel/internal/pipeline"
)

// RunStream runs the record pipeline, applies a visitor, and streams kept
// results via send. It returns the number of kept outputs and the first
// error encountered.
func RunStream[T, U any](
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	pool *dispatch.Pool,
	m *metrics.Metrics,
	work pipeline.Work[T],
	visit func(T) (bool, U, error),
	send func(U) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachRecord(ctx, cfg, seqFiles, pool, m, work, func(v T) error {
		keep, out, vErr := visit(v)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
