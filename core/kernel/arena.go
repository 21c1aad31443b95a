package kernel

import "seqkernel/core/grid"

// arena keeps buffers of released results for reuse.
type arena struct {
	maxBytes int
	held     int
	counts   [][]uint32
	builders []*grid.Builder
}

// takeCounts returns a released count buffer with room for size entries,
// or nil.
func (a *arena) takeCounts(size int) []uint32 {
	for i, c := range a.counts {
		if cap(c) >= size {
			last := len(a.counts) - 1
			a.counts[i] = a.counts[last]
			a.counts[last] = nil
			a.counts = a.counts[:last]
			a.held -= 4 * cap(c)
			return c
		}
	}
	return nil
}

func (a *arena) putCounts(c []uint32) {
	if c == nil || a.held+4*cap(c) > a.maxBytes {
		return
	}
	a.counts = append(a.counts, c)
	a.held += 4 * cap(c)
}

func (a *arena) takeBuilder(opts grid.Options) *grid.Builder {
	if n := len(a.builders); n > 0 {
		b := a.builders[n-1]
		a.builders[n-1] = nil
		a.builders = a.builders[:n-1]
		return b
	}
	return grid.NewBuilder(opts)
}

func (a *arena) putBuilder(b *grid.Builder) {
	if b != nil && len(a.builders) < 8 {
		a.builders = append(a.builders, b)
	}
}

// heldBytes reports the bytes of count buffers waiting for reuse.
func (a *arena) heldBytes() int { return a.held }
