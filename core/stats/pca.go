// core/stats/pca.go
package stats

import (
	"fmt"
	"math"

	"seqkernel/core/kerr"
)

// PCA holds the leading principal components of a sample matrix.
type PCA struct {
	NFeatures   int
	Means       []float64 // per-feature column means removed before fitting
	Eigenvalues []float64 // component variances, descending
	// Eigenvectors is row-major: component c occupies
	// Eigenvectors[c*NFeatures : (c+1)*NFeatures] and has unit length.
	Eigenvectors []float64
	Iterations   []int
	Converged    []bool
}

// Component returns the loading vector of component c.
func (p *PCA) Component(c int) []float64 {
	return p.Eigenvectors[c*p.NFeatures : (c+1)*p.NFeatures]
}

// PCAPowerIteration extracts the top nComponents eigenvectors of the
// covariance of data (nSamples x nFeatures, row-major) by power iteration.
// Each step multiplies by X^T X as two matrix-vector passes, so the
// nFeatures^2 covariance matrix is never formed. Later components are kept
// orthogonal to earlier ones by deflation. A component stops when
// 1 - |v_new . v_old| < tol or after maxIter steps.
func PCAPowerIteration(data []float64, nSamples, nFeatures, nComponents, maxIter int, tol float64) (*PCA, error) {
	switch {
	case nSamples <= 0 || nFeatures <= 0:
		return nil, fmt.Errorf("pca: %dx%d: %w", nSamples, nFeatures, kerr.ErrEmptyInput)
	case len(data) != nSamples*nFeatures:
		return nil, fmt.Errorf("pca: len(data)=%d, want %d: %w", len(data), nSamples*nFeatures, kerr.ErrLengthMismatch)
	case nComponents <= 0 || nComponents > nFeatures:
		return nil, fmt.Errorf("pca: %d components of %d features: %w", nComponents, nFeatures, kerr.ErrInvalidArgument)
	case maxIter <= 0 || tol <= 0 || math.IsNaN(tol):
		return nil, fmt.Errorf("pca: maxIter=%d tol=%g: %w", maxIter, tol, kerr.ErrInvalidArgument)
	}

	x := make([]float64, len(data))
	copy(x, data)
	means := make([]float64, nFeatures)
	for i := 0; i < nSamples; i++ {
		row := x[i*nFeatures : (i+1)*nFeatures]
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(nSamples)
	}
	for i := 0; i < nSamples; i++ {
		row := x[i*nFeatures : (i+1)*nFeatures]
		for j := range row {
			row[j] -= means[j]
		}
	}
	denom := float64(nSamples - 1)
	if denom < 1 {
		denom = 1
	}

	res := &PCA{
		NFeatures:    nFeatures,
		Means:        means,
		Eigenvalues:  make([]float64, nComponents),
		Eigenvectors: make([]float64, nComponents*nFeatures),
		Iterations:   make([]int, nComponents),
		Converged:    make([]bool, nComponents),
	}
	xv := make([]float64, nSamples)
	w := make([]float64, nFeatures)
	rng := uint64(0x9E3779B97F4A7C15)

	for c := 0; c < nComponents; c++ {
		v := res.Eigenvectors[c*nFeatures : (c+1)*nFeatures]
		for j := range v {
			rng = splitmix(rng)
			v[j] = float64(rng>>11)/(1<<53) - 0.5
		}
		deflate(v, res.Eigenvectors[:c*nFeatures], nFeatures)
		if normalizeVec(v) == 0 {
			v[c] = 1
		}

		var lambda float64
		for it := 1; it <= maxIter; it++ {
			res.Iterations[c] = it
			covTimes(x, nSamples, nFeatures, v, xv, w)
			deflate(w, res.Eigenvectors[:c*nFeatures], nFeatures)
			lambda = dot(v, w) / denom
			if normalizeVec(w) == 0 {
				// no variance left in the deflated subspace
				lambda = 0
				res.Converged[c] = true
				break
			}
			delta := 1 - math.Abs(dot(v, w))
			copy(v, w)
			if delta < tol {
				res.Converged[c] = true
				break
			}
		}
		if lambda < 0 {
			lambda = 0
		}
		res.Eigenvalues[c] = lambda
		fixSign(v)
	}
	return res, nil
}

// Transform projects row-major samples (nSamples x NFeatures) onto the
// components, returning nSamples x len(Eigenvalues) scores.
func (p *PCA) Transform(data []float64, nSamples int) ([]float64, error) {
	if len(data) != nSamples*p.NFeatures {
		return nil, fmt.Errorf("pca transform: len(data)=%d, want %d: %w", len(data), nSamples*p.NFeatures, kerr.ErrLengthMismatch)
	}
	k := len(p.Eigenvalues)
	out := make([]float64, nSamples*k)
	for i := 0; i < nSamples; i++ {
		row := data[i*p.NFeatures : (i+1)*p.NFeatures]
		for c := 0; c < k; c++ {
			comp := p.Component(c)
			s := 0.0
			for j, v := range row {
				s += (v - p.Means[j]) * comp[j]
			}
			out[i*k+c] = s
		}
	}
	return out, nil
}

// covTimes sets w = X^T (X v) using xv as scratch.
func covTimes(x []float64, n, f int, v, xv, w []float64) {
	for i := 0; i < n; i++ {
		xv[i] = dot(x[i*f:(i+1)*f], v)
	}
	clear(w)
	for i := 0; i < n; i++ {
		s := xv[i]
		if s == 0 {
			continue
		}
		row := x[i*f : (i+1)*f]
		for j, r := range row {
			w[j] += s * r
		}
	}
}

// deflate removes from w its projection on every unit vector in prev.
func deflate(w, prev []float64, f int) {
	for off := 0; off+f <= len(prev); off += f {
		u := prev[off : off+f]
		d := dot(w, u)
		for j := range w {
			w[j] -= d * u[j]
		}
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// normalizeVec scales v to unit length and returns its former norm.
// Vectors with negligible norm are left as they are.
func normalizeVec(v []float64) float64 {
	n := math.Sqrt(dot(v, v))
	if n < 1e-300 {
		return 0
	}
	for i := range v {
		v[i] /= n
	}
	return n
}

// fixSign flips v so its largest-magnitude entry is positive.
func fixSign(v []float64) {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}

func splitmix(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
