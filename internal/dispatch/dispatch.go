// Package dispatch hosts kernels on worker goroutines. Each worker owns one
// kernel.Kernel for its whole life and is the only goroutine that touches
// it; callers send jobs and wait for replies. Cancelling a caller's context
// abandons the reply: the worker still finishes the (uncancellable) kernel
// call and drops the result.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"seqkernel/core/kernel"
	"seqkernel/internal/metrics"
)

// ErrPanic marks a job whose kernel call panicked.
var ErrPanic = errors.New("kernel call panicked")

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("dispatcher closed")

// JobError ties a failed job's error to its id.
type JobError struct {
	ID  uuid.UUID
	Op  string
	Err error
}

func (e *JobError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *JobError) Unwrap() error { return e.Err }

// Func runs on a worker with exclusive use of its kernel. It must release
// every handle it creates before returning.
type Func func(k *kernel.Kernel) (any, error)

// Result is the reply to one job.
type Result struct {
	JobID   uuid.UUID
	Op      string
	Worker  int
	Value   any
	Err     error
	Elapsed time.Duration
}

type request struct {
	ctx   context.Context
	id    uuid.UUID
	op    string
	fn    Func
	reply chan Result // buffered; a worker never blocks on an abandoned reply
}

// Config sizes a Pool.
type Config struct {
	Threads int // workers (>=1)
	Queue   int // pending jobs before Do blocks
	Kernel  kernel.Options
}

type Pool struct {
	cfg  Config
	log  *slog.Logger
	m    *metrics.Metrics
	jobs chan request
	g    *errgroup.Group

	mu     sync.RWMutex // guards closed and the send side of jobs
	closed bool
	once   sync.Once
	err    error
}

// New starts cfg.Threads workers. m may be nil.
func New(cfg Config, m *metrics.Metrics, log *slog.Logger) *Pool {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Queue < 1 {
		cfg.Queue = cfg.Threads * 2
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p := &Pool{
		cfg:  cfg,
		log:  log,
		m:    m,
		jobs: make(chan request, cfg.Queue),
		g:    new(errgroup.Group),
	}
	for w := 0; w < cfg.Threads; w++ {
		p.g.Go(func() error { return p.worker(w) })
	}
	log.Debug("dispatcher started", "workers", cfg.Threads, "queue", cfg.Queue)
	return p
}

// Threads reports the number of workers.
func (p *Pool) Threads() int { return p.cfg.Threads }

func (p *Pool) worker(id int) error {
	k := kernel.New(p.cfg.Kernel)
	label := strconv.Itoa(id)
	for req := range p.jobs {
		if p.m != nil {
			p.m.QueueDepth.Set(float64(len(p.jobs)))
		}
		res := p.run(k, id, req)
		status := metrics.StatusOK
		switch {
		case req.ctx.Err() != nil:
			status = metrics.StatusAbandoned
		case errors.Is(res.Err, ErrPanic):
			status = metrics.StatusPanic
		case res.Err != nil:
			status = metrics.StatusError
		}
		live, _ := k.Live()
		if p.m != nil {
			held, _ := k.ArenaBytes()
			p.m.JobsTotal.WithLabelValues(req.op, status).Inc()
			p.m.JobDuration.WithLabelValues(req.op).Observe(res.Elapsed.Seconds())
			p.m.LiveHandles.WithLabelValues(label).Set(float64(live))
			p.m.ArenaBytes.WithLabelValues(label).Set(float64(held))
		}
		if live > 0 {
			p.log.Warn("job left handles outstanding", "job", req.id, "op", req.op, "worker", id, "live", live)
		}
		p.log.Debug("job done", "job", req.id, "op", req.op, "worker", id, "status", status, "elapsed", res.Elapsed)
		req.reply <- res
	}
	return nil
}

func (p *Pool) run(k *kernel.Kernel, worker int, req request) (res Result) {
	res = Result{JobID: req.id, Op: req.op, Worker: worker}
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			p.log.Error("kernel panic", "job", req.id, "op", req.op, "panic", r, "stack", string(debug.Stack()))
			res.Value = nil
			res.Err = fmt.Errorf("%s job %s: %v: %w", req.op, req.id, r, ErrPanic)
		}
	}()
	res.Value, res.Err = req.fn(k)
	return res
}

// Submit queues fn and returns the channel its Result will arrive on. The
// channel is buffered, so the caller may walk away from it.
func (p *Pool) Submit(ctx context.Context, op string, fn Func) (uuid.UUID, <-chan Result, error) {
	req := request{ctx: ctx, id: uuid.New(), op: op, fn: fn, reply: make(chan Result, 1)}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return uuid.Nil, nil, ErrClosed
	}
	select {
	case p.jobs <- req:
		if p.m != nil {
			p.m.QueueDepth.Set(float64(len(p.jobs)))
		}
		return req.id, req.reply, nil
	case <-ctx.Done():
		return uuid.Nil, nil, ctx.Err()
	}
}

// Do runs fn on a worker and waits for it. If ctx ends first Do returns
// ctx.Err() and the result is dropped when the worker finishes.
func (p *Pool) Do(ctx context.Context, op string, fn Func) (Result, error) {
	id, reply, err := p.Submit(ctx, op, fn)
	if err != nil {
		return Result{}, err
	}
	select {
	case res := <-reply:
		if res.Err != nil {
			return res, &JobError{ID: id, Op: op, Err: res.Err}
		}
		return res, nil
	case <-ctx.Done():
		p.log.Debug("job abandoned", "job", id, "op", op)
		return Result{JobID: id, Op: op}, ctx.Err()
	}
}

// Call is Do with a typed result.
func Call[T any](ctx context.Context, p *Pool, op string, fn func(*kernel.Kernel) (T, error)) (T, error) {
	res, err := p.Do(ctx, op, func(k *kernel.Kernel) (any, error) { return fn(k) })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.Value.(T), nil
}

// Map runs fn over inputs concurrently across the workers and returns the
// outputs in input order. The first error cancels the remaining jobs.
func Map[In, Out any](ctx context.Context, p *Pool, op string, inputs []In, fn func(*kernel.Kernel, In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Threads + p.cfg.Queue)
	for i, in := range inputs {
		g.Go(func() error {
			v, err := Call(gctx, p, op, func(k *kernel.Kernel) (Out, error) { return fn(k, in) })
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close stops accepting jobs, lets queued ones finish and waits for the
// workers. It is safe to call more than once.
func (p *Pool) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
		p.err = p.g.Wait()
		p.log.Debug("dispatcher stopped")
	})
	return p.err
}
