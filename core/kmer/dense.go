// core/kmer/dense.go
package kmer

import (
	"fmt"

	"seqkernel/core/dna"
	"seqkernel/core/kerr"
)

// MaxK is the largest k a dense table supports (4^10 buckets).
const MaxK = 10

// Table is a dense k-mer frequency table. Counts has exactly 4^K entries,
// indexed by the 2-bit packed k-mer (first base in the highest bits).
type Table struct {
	K           int
	Canonical   bool
	Counts      []uint32
	TotalValid  uint64
	UniqueCount uint32
}

func validateK(seq []byte, k, max int) error {
	switch {
	case k <= 0:
		return fmt.Errorf("k=%d: %w", k, kerr.ErrKZero)
	case k > max:
		return fmt.Errorf("k=%d (max %d): %w", k, max, kerr.ErrKTooLarge)
	case len(seq) < k:
		return fmt.Errorf("len=%d k=%d: %w", len(seq), k, kerr.ErrSequenceTooShort)
	}
	return nil
}

// CountDense counts every k-mer of seq that contains no ambiguous base.
func CountDense(seq []byte, k int) (*Table, error) {
	t := &Table{}
	if err := CountDenseInto(t, seq, k, false); err != nil {
		return nil, err
	}
	return t, nil
}

// CountDenseCanonical folds each k-mer with its reverse complement and
// counts it under the smaller of the two indices.
func CountDenseCanonical(seq []byte, k int) (*Table, error) {
	t := &Table{}
	if err := CountDenseInto(t, seq, k, true); err != nil {
		return nil, err
	}
	return t, nil
}

// CountDenseInto fills dst, reusing dst.Counts when it is large enough.
// dst is left untouched when validation fails.
func CountDenseInto(dst *Table, seq []byte, k int, canonical bool) error {
	if err := validateK(seq, k, MaxK); err != nil {
		return err
	}
	size := 1 << (2 * uint(k))
	counts := dst.Counts
	if cap(counts) >= size {
		counts = counts[:size]
		clear(counts)
	} else {
		counts = make([]uint32, size)
	}

	mask := uint32(size - 1)
	shift := 2 * uint(k-1)
	var fwd, rc uint32
	var total uint64
	run := 0
	for _, b := range seq {
		c := dna.Code(b)
		if c == dna.Ambiguous {
			run = 0
			continue
		}
		fwd = (fwd<<2 | uint32(c)) & mask
		if canonical {
			rc = rc>>2 | uint32(c^3)<<shift
		}
		if run < k {
			run++
			if run < k {
				continue
			}
		}
		idx := fwd
		if canonical && rc < idx {
			idx = rc
		}
		counts[idx]++
		total++
	}

	var unique uint32
	for _, c := range counts {
		if c != 0 {
			unique++
		}
	}
	*dst = Table{K: k, Canonical: canonical, Counts: counts, TotalValid: total, UniqueCount: unique}
	return nil
}
