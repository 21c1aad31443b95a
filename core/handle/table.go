// Package handle implements a generational slot table: values live in a
// dense vector, handles index a sparse slot array that records the current
// generation, and freed slots are reused through a free list.
package handle

import (
	"fmt"

	"seqkernel/core/kerr"
)

// Handle names one value in a Table. The zero Handle is never issued.
type Handle uint64

func makeHandle(slot, gen uint32) Handle { return Handle(uint64(gen)<<32 | uint64(slot)) }

func (h Handle) slot() uint32 { return uint32(h) }
func (h Handle) gen() uint32  { return uint32(h >> 32) }

func (h Handle) String() string { return fmt.Sprintf("h%d.%d", h.slot(), h.gen()) }

type slot struct {
	gen   uint32
	dense int32 // index into values, -1 when free
}

// Table is not safe for concurrent use.
type Table[T any] struct {
	slots  []slot
	free   []uint32
	values []T
	owner  []uint32 // slot of values[i]
}

// Insert stores v and returns its handle.
func (t *Table[T]) Insert(v T) Handle {
	var s uint32
	if n := len(t.free); n > 0 {
		s = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		s = uint32(len(t.slots))
		t.slots = append(t.slots, slot{dense: -1})
	}
	sl := &t.slots[s]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.dense = int32(len(t.values))
	t.values = append(t.values, v)
	t.owner = append(t.owner, s)
	return makeHandle(s, sl.gen)
}

func (t *Table[T]) lookup(h Handle) (int, error) {
	s := h.slot()
	if h == 0 || int(s) >= len(t.slots) {
		return 0, fmt.Errorf("%v: %w", h, kerr.ErrStaleHandle)
	}
	sl := t.slots[s]
	if sl.dense < 0 || sl.gen != h.gen() {
		return 0, fmt.Errorf("%v: %w", h, kerr.ErrStaleHandle)
	}
	return int(sl.dense), nil
}

// Get returns the value behind h.
func (t *Table[T]) Get(h Handle) (T, error) {
	i, err := t.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.values[i], nil
}

// Release removes h and returns the value it held so the caller can recycle
// its buffers. The last dense value is swapped into the hole.
func (t *Table[T]) Release(h Handle) (T, error) {
	i, err := t.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	v := t.values[i]
	last := len(t.values) - 1
	if i != last {
		t.values[i] = t.values[last]
		t.owner[i] = t.owner[last]
		t.slots[t.owner[i]].dense = int32(i)
	}
	var zero T
	t.values[last] = zero
	t.values = t.values[:last]
	t.owner = t.owner[:last]

	s := h.slot()
	t.slots[s].dense = -1
	t.free = append(t.free, s)
	return v, nil
}

// Len reports the number of live values.
func (t *Table[T]) Len() int { return len(t.values) }

// Handles lists the live handles in dense order.
func (t *Table[T]) Handles() []Handle {
	out := make([]Handle, len(t.owner))
	for i, s := range t.owner {
		out[i] = makeHandle(s, t.slots[s].gen)
	}
	return out
}
