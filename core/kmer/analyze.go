package kmer

import (
	"math"

	"seqkernel/core/dna"
)

// MaxSparseK bounds k-mers that still fit a packed uint64.
const MaxSparseK = 32

// Comparison summarizes the exact k-mer sets of two sequences.
type Comparison struct {
	K                       int
	UniqueKmersA            int
	UniqueKmersB            int
	SharedKmers             int
	JaccardIndex            float64
	ContainmentAInB         float64
	ContainmentBInA         float64
	CosineSimilarity        float64
	BrayCurtisDissimilarity float64
}

// accumulator folds paired counts (ca, cb) of one k-mer into the metrics.
type accumulator struct {
	ua, ub, shared     int
	dot, na, nb        float64
	sumMin, sumA, sumB float64
}

func (a *accumulator) add(ca, cb uint32) {
	if ca > 0 {
		a.ua++
	}
	if cb > 0 {
		a.ub++
	}
	if ca > 0 && cb > 0 {
		a.shared++
	}
	x, y := float64(ca), float64(cb)
	a.dot += x * y
	a.na += x * x
	a.nb += y * y
	a.sumMin += math.Min(x, y)
	a.sumA += x
	a.sumB += y
}

func (a *accumulator) result(k int) Comparison {
	c := Comparison{K: k, UniqueKmersA: a.ua, UniqueKmersB: a.ub, SharedKmers: a.shared}
	if union := a.ua + a.ub - a.shared; union > 0 {
		c.JaccardIndex = float64(a.shared) / float64(union)
	}
	if a.ua > 0 {
		c.ContainmentAInB = float64(a.shared) / float64(a.ua)
	}
	if a.ub > 0 {
		c.ContainmentBInA = float64(a.shared) / float64(a.ub)
	}
	if a.na > 0 && a.nb > 0 {
		c.CosineSimilarity = a.dot / (math.Sqrt(a.na) * math.Sqrt(a.nb))
	}
	if s := a.sumA + a.sumB; s > 0 {
		c.BrayCurtisDissimilarity = 1 - 2*a.sumMin/s
	}
	return c
}

// Analyze compares the non-canonical k-mer sets of a and b exactly.
// k ranges over 1..MaxSparseK; sequences shorter than k contribute an empty
// set rather than an error, so degenerate pairs compare as all-zero.
func Analyze(a, b []byte, k int) (Comparison, error) {
	if k <= 0 || k > MaxSparseK {
		return Comparison{}, validateK(nil, k, MaxSparseK)
	}
	var acc accumulator
	if k <= MaxK {
		ta := denseOrEmpty(a, k)
		tb := denseOrEmpty(b, k)
		for i := range ta {
			if ta[i] != 0 || tb[i] != 0 {
				acc.add(ta[i], tb[i])
			}
		}
		return acc.result(k), nil
	}
	ma := countSparse(a, k)
	mb := countSparse(b, k)
	for key, ca := range ma {
		acc.add(ca, mb[key])
	}
	for key, cb := range mb {
		if _, seen := ma[key]; !seen {
			acc.add(0, cb)
		}
	}
	return acc.result(k), nil
}

func denseOrEmpty(seq []byte, k int) []uint32 {
	var t Table
	if err := CountDenseInto(&t, seq, k, false); err != nil {
		return make([]uint32, 1<<(2*uint(k)))
	}
	return t.Counts
}

// countSparse counts k-mers (k <= 32) into a map keyed by the packed value.
func countSparse(seq []byte, k int) map[uint64]uint32 {
	out := make(map[uint64]uint32)
	forEachPacked(seq, k, func(v uint64) { out[v]++ })
	return out
}

// forEachPacked calls fn with the 2-bit packed value of every valid k-mer.
func forEachPacked(seq []byte, k int, fn func(uint64)) {
	if k <= 0 || k > MaxSparseK || len(seq) < k {
		return
	}
	var mask uint64 = math.MaxUint64
	if k < 32 {
		mask = 1<<(2*uint(k)) - 1
	}
	var v uint64
	run := 0
	for _, b := range seq {
		c := dna.Code(b)
		if c == dna.Ambiguous {
			run = 0
			continue
		}
		v = (v<<2 | uint64(c)) & mask
		if run < k {
			run++
			if run < k {
				continue
			}
		}
		fn(v)
	}
}
