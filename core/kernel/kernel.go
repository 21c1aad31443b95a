// Package kernel is the ownership boundary between the compute packages and
// their host. Operations that produce buffers hand back a Handle; the host
// reads results through typed accessors and returns them with Release.
//
// A Kernel is single-threaded: it does not lock, and a call made while
// another is in flight fails with kerr.ErrBusy instead of racing.
package kernel

import (
	"fmt"
	"sync/atomic"

	"seqkernel/core/bonds"
	"seqkernel/core/grid"
	"seqkernel/core/handle"
	"seqkernel/core/kerr"
	"seqkernel/core/kmer"
	"seqkernel/core/stats"
)

// Handle names a result owned by a Kernel.
type Handle = handle.Handle

// Kind tags what a handle refers to.
type Kind uint8

const (
	KindKmerTable Kind = iota + 1
	KindBonds
	KindGrid
	KindComparison
	KindPCA
	KindHoeffding
)

func (k Kind) String() string {
	switch k {
	case KindKmerTable:
		return "kmer_table"
	case KindBonds:
		return "bonds"
	case KindGrid:
		return "grid"
	case KindComparison:
		return "comparison"
	case KindPCA:
		return "pca"
	case KindHoeffding:
		return "hoeffding"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Options carries the tunable constants. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	Bonds         bonds.Params
	Grid          grid.Options
	MinHashSeed   uint64
	PCAMaxIter    int
	PCATolerance  float64
	ArenaMaxBytes int // upper bound on recycled k-mer buffers kept around
}

// DefaultOptions returns the built-in constants.
func DefaultOptions() Options {
	return Options{
		Bonds:         bonds.DefaultParams(),
		MinHashSeed:   kmer.DefaultSeed,
		PCAMaxIter:    500,
		PCATolerance:  1e-9,
		ArenaMaxBytes: 16 << 20,
	}
}

type entry struct {
	kind    Kind
	table   *kmer.Table
	bonds   bonds.List
	grid    *grid.Grid
	builder *grid.Builder
	cmp     kmer.Comparison
	pca     *stats.PCA
	hd      stats.Hoeffding
}

// Kernel owns every result it has handed out until the host releases it.
type Kernel struct {
	opts    Options
	busy    atomic.Bool
	results handle.Table[entry]
	arena   arena
}

// New returns a Kernel configured with opts.
func New(opts Options) *Kernel {
	return &Kernel{opts: opts, arena: arena{maxBytes: opts.ArenaMaxBytes}}
}

// Options returns the configuration the kernel was built with.
func (k *Kernel) Options() Options { return k.opts }

func (k *Kernel) enter() error {
	if !k.busy.CompareAndSwap(false, true) {
		return kerr.ErrBusy
	}
	return nil
}

func (k *Kernel) leave() { k.busy.Store(false) }

func (k *Kernel) get(h Handle, want Kind) (entry, error) {
	e, err := k.results.Get(h)
	if err != nil {
		return entry{}, err
	}
	if e.kind != want {
		return entry{}, fmt.Errorf("%v is %v, not %v: %w", h, e.kind, want, kerr.ErrWrongKind)
	}
	return e, nil
}

// Release frees the result behind h. Views obtained from it must not be used
// afterwards; its buffers may back the next result. Releasing twice fails
// with kerr.ErrStaleHandle.
func (k *Kernel) Release(h Handle) error {
	if err := k.enter(); err != nil {
		return err
	}
	defer k.leave()
	e, err := k.results.Release(h)
	if err != nil {
		return err
	}
	switch e.kind {
	case KindKmerTable:
		k.arena.putCounts(e.table.Counts)
	case KindGrid:
		k.arena.putBuilder(e.builder)
	}
	return nil
}

// lookup is get for the public accessors.
func (k *Kernel) lookup(h Handle, want Kind) (entry, error) {
	if err := k.enter(); err != nil {
		return entry{}, err
	}
	defer k.leave()
	return k.get(h, want)
}

// Live reports how many handles are outstanding.
func (k *Kernel) Live() (int, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return k.results.Len(), nil
}

// LiveHandles lists the outstanding handles and their kinds.
func (k *Kernel) LiveHandles() (map[Handle]Kind, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	out := make(map[Handle]Kind, k.results.Len())
	for _, h := range k.results.Handles() {
		e, _ := k.results.Get(h)
		out[h] = e.kind
	}
	return out, nil
}

// ArenaBytes reports the bytes of released k-mer buffers held for reuse.
func (k *Kernel) ArenaBytes() (int, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return k.arena.heldBytes(), nil
}
