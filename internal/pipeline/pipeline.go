// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"seqkernel/core/fasta"
	"seqkernel/core/kernel"
	"seqkernel/internal/dispatch"
	"seqkernel/internal/metrics"
)

// Config controls the record pipeline.
type Config struct {
	Threads int    // concurrent in-flight records (>=1)
	Op      string // operation label for metrics and logs
	MinLen  int    // skip records shorter than this
}

// Item is one record together with the file it came from.
type Item struct {
	File   string
	Index  int // position of the record within its file
	Record fasta.Record
}

// Work computes a per-record result on a worker kernel.
type Work[T any] func(k *kernel.Kernel, it Item) (T, error)

// ForEachRecord reads every record of files, runs work for each on the pool
// and calls visit with the results. visit is never called concurrently;
// results arrive in completion order. It returns the first error
// encountered (including context cancellation). m may be nil.
func ForEachRecord[T any](
	ctx context.Context,
	cfg Config,
	files []string,
	pool *dispatch.Pool,
	m *metrics.Metrics,
	work Work[T],
	visit func(T) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Op == "" {
		cfg.Op = "record"
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan Item, cfg.Threads*2)
	results := make(chan T, cfg.Threads*2)

	var (
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	// Submitters: each keeps one job in flight on the pool.
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for it := range jobs {
				v, err := dispatch.Call(ctx, pool, cfg.Op, func(k *kernel.Kernel) (T, error) {
					return work(k, it)
				})
				if err != nil {
					fail(err)
					continue
				}
				select {
				case results <- v:
				case <-ctx.Done():
				}
			}
		}()
	}

	// Collector
	var cwg sync.WaitGroup
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for v := range results {
			if ctx.Err() != nil {
				continue
			}
			if err := visit(v); err != nil {
				fail(err)
			}
		}
	}()

	// Feed work
feed:
	for _, file := range files {
		idx := 0
		err := fasta.StreamPath(ctx, file, func(r fasta.Record) error {
			if m != nil {
				m.Records.Inc()
				m.Bases.Add(float64(len(r.Seq)))
			}
			i := idx
			idx++
			if len(r.Seq) < cfg.MinLen {
				return nil
			}
			select {
			case jobs <- Item{File: file, Index: i, Record: r}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			fail(err)
			break feed
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
