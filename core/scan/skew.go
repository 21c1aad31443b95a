// core/scan/skew.go
package scan

import (
	"fmt"

	"seqkernel/core/kerr"
)

func validateWindow(window, step int) error {
	if window <= 0 || step <= 0 {
		return fmt.Errorf("window=%d step=%d: %w", window, step, kerr.ErrInvalidArgument)
	}
	return nil
}

// GCSkew returns (G-C)/(G+C) for each window [i, i+window) with
// i = 0, step, 2*step, ... while the window fits. Windows without G or C
// score 0. Sequences shorter than window yield an empty result.
func GCSkew(seq []byte, window, step int) ([]float64, error) {
	if err := validateWindow(window, step); err != nil {
		return nil, err
	}
	if len(seq) < window {
		return []float64{}, nil
	}
	out := make([]float64, 0, (len(seq)-window)/step+1)

	// prefix sums keep every window O(1) even when step < window
	g := make([]int32, len(seq)+1)
	c := make([]int32, len(seq)+1)
	for i, b := range seq {
		g[i+1], c[i+1] = g[i], c[i]
		switch b {
		case 'G', 'g':
			g[i+1]++
		case 'C', 'c':
			c[i+1]++
		}
	}
	for i := 0; i+window <= len(seq); i += step {
		gn := g[i+window] - g[i]
		cn := c[i+window] - c[i]
		if gn+cn == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, float64(gn-cn)/float64(gn+cn))
	}
	return out, nil
}

// CumulativeGCSkew is the running sum of GCSkew. Its minimum and maximum
// approximate the replication origin and terminus of circular genomes.
func CumulativeGCSkew(seq []byte, window, step int) ([]float64, error) {
	skew, err := GCSkew(seq, window, step)
	if err != nil {
		return nil, err
	}
	acc := 0.0
	for i, v := range skew {
		acc += v
		skew[i] = acc
	}
	return skew, nil
}

// Extremes returns the indices of the minimum and maximum of v (-1 when v
// is empty). The first occurrence wins on ties.
func Extremes(v []float64) (minIdx, maxIdx int) {
	if len(v) == 0 {
		return -1, -1
	}
	for i := range v {
		if v[i] < v[minIdx] {
			minIdx = i
		}
		if v[i] > v[maxIdx] {
			maxIdx = i
		}
	}
	return minIdx, maxIdx
}
