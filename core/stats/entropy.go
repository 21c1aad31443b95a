// core/stats/entropy.go
package stats

import (
	"fmt"
	"math"

	"seqkernel/core/kerr"
)

// Count is any numeric type a frequency table can be kept in.
type Count interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int | ~int32 | ~int64 | ~float32 | ~float64
}

// ShannonEntropy returns -sum(p*log2(p)) over the positive entries of probs.
// Empty input yields 0.
func ShannonEntropy(probs []float64) float64 {
	h := 0.0
	for _, p := range probs {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	if h <= 0 {
		return 0
	}
	return h
}

// ShannonEntropyFromCounts normalizes counts and returns their entropy.
// A table with no mass yields 0.
func ShannonEntropyFromCounts[T Count](counts []T) float64 {
	total := 0.0
	for _, c := range counts {
		if c > 0 {
			total += float64(c)
		}
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / total
			h -= p * math.Log2(p)
		}
	}
	if h <= 0 {
		return 0
	}
	return h
}

// JensenShannonDivergence returns 0.5*KL(P||M) + 0.5*KL(Q||M) with
// M = (P+Q)/2 in bits, clamped to [0,1]. p and q must be equally long;
// empty input yields 0.
func JensenShannonDivergence(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, fmt.Errorf("jsd: len(p)=%d len(q)=%d: %w", len(p), len(q), kerr.ErrLengthMismatch)
	}
	d := 0.0
	for i := range p {
		pi, qi := p[i], q[i]
		if pi < 0 {
			pi = 0
		}
		if qi < 0 {
			qi = 0
		}
		m := (pi + qi) / 2
		if pi > 0 {
			d += 0.5 * pi * math.Log2(pi/m)
		}
		if qi > 0 {
			d += 0.5 * qi * math.Log2(qi/m)
		}
	}
	return clamp01(d), nil
}

// JensenShannonDivergenceFromCounts normalizes both tables before comparing
// them. A table without mass makes the divergence 0.
func JensenShannonDivergenceFromCounts[T Count](a, b []T) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("jsd: len(a)=%d len(b)=%d: %w", len(a), len(b), kerr.ErrLengthMismatch)
	}
	p, okP := normalize(a)
	q, okQ := normalize(b)
	if !okP || !okQ {
		return 0, nil
	}
	return JensenShannonDivergence(p, q)
}

func normalize[T Count](c []T) ([]float64, bool) {
	total := 0.0
	for _, v := range c {
		if v > 0 {
			total += float64(v)
		}
	}
	out := make([]float64, len(c))
	if total == 0 {
		return out, false
	}
	for i, v := range c {
		if v > 0 {
			out[i] = float64(v) / total
		}
	}
	return out, true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
