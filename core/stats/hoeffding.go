// core/stats/hoeffding.go
package stats

import (
	"fmt"
	"sort"

	"seqkernel/core/kerr"
)

// Hoeffding is the result of HoeffdingsD.
type Hoeffding struct {
	D float64 // scaled so that D lies in [-0.5, 1]
	N int
}

// HoeffdingsD measures general (not only monotone) dependence between x and
// y. It is O(n^2); callers thin inputs above a few thousand points (see
// Subsample). Fewer than 5 points, or a sample with no spread, yields D = 0.
func HoeffdingsD(x, y []float64) (Hoeffding, error) {
	if len(x) != len(y) {
		return Hoeffding{}, fmt.Errorf("hoeffding: len(x)=%d len(y)=%d: %w", len(x), len(y), kerr.ErrLengthMismatch)
	}
	n := len(x)
	if n < 5 || constant(x) || constant(y) {
		return Hoeffding{N: n}, nil
	}
	r := ranks(x)
	s := ranks(y)

	var d1, d2, d3 float64
	for i := 0; i < n; i++ {
		// Q is the bivariate rank: 1 + points strictly below-left, with
		// ties on one axis counted half and ties on both a quarter.
		q := 1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			xl, xe := x[j] < x[i], x[j] == x[i]
			yl, ye := y[j] < y[i], y[j] == y[i]
			switch {
			case xl && yl:
				q++
			case xe && ye:
				q += 0.25
			case xe && yl, xl && ye:
				q += 0.5
			}
		}
		ri, si := r[i], s[i]
		d1 += (q - 1) * (q - 2)
		d2 += (ri - 1) * (ri - 2) * (si - 1) * (si - 2)
		d3 += (ri - 2) * (si - 2) * (q - 1)
	}
	fn := float64(n)
	num := (fn-2)*(fn-3)*d1 + d2 - 2*(fn-2)*d3
	den := fn * (fn - 1) * (fn - 2) * (fn - 3) * (fn - 4)
	return Hoeffding{D: 30 * num / den, N: n}, nil
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

// ranks returns 1-based ranks with ties sharing their average rank.
func ranks(v []float64) []float64 {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })
	out := make([]float64, len(v))
	for i := 0; i < len(idx); {
		j := i + 1
		for j < len(idx) && v[idx[j]] == v[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of ranks i+1..j
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}

// Subsample keeps at most max evenly strided points of x and y. Inputs that
// already fit are returned unchanged.
func Subsample(x, y []float64, max int) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if max <= 0 || n <= max {
		return x[:n], y[:n]
	}
	xs := make([]float64, max)
	ys := make([]float64, max)
	for i := 0; i < max; i++ {
		k := int(int64(i) * int64(n) / int64(max))
		xs[i], ys[i] = x[k], y[k]
	}
	return xs, ys
}
