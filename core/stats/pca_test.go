package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"seqkernel/core/kerr"
)

func TestPCADominantDirection(t *testing.T) {
	u := []float64{0.6, 0.8, 0}
	n := 120
	data := make([]float64, 0, n*3)
	ts := make([]float64, n)
	rng := rand.New(rand.NewSource(61))
	for i := 0; i < n; i++ {
		ts[i] = rng.NormFloat64() * 3
		for _, c := range u {
			data = append(data, 10+ts[i]*c) // offset is removed by centring
		}
	}
	const tol = 1e-12
	p, err := PCAPowerIteration(data, n, 3, 2, 500, tol)
	require.NoError(t, err)

	v := p.Component(0)
	assert.Less(t, 1-math.Abs(dot(v, u)), 1e-9)
	assert.Greater(t, v[1], 0.0, "largest loading is made positive")
	assert.True(t, p.Converged[0])
	assert.InDelta(t, 0.0, p.Eigenvalues[1], 1e-9)

	// sample variance of ts along u
	mean := 0.0
	for _, x := range ts {
		mean += x
	}
	mean /= float64(n)
	variance := 0.0
	for _, x := range ts {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(n - 1)
	assert.InEpsilon(t, variance, p.Eigenvalues[0], 1e-8)

	scores, err := p.Transform(data, n)
	require.NoError(t, err)
	sign := 1.0
	if dot(v, u) < 0 {
		sign = -1
	}
	for i := 0; i < n; i++ {
		assert.InDelta(t, sign*(ts[i]-mean), scores[i*2], 1e-9)
	}
}

func TestPCAAgreesWithEigenSolver(t *testing.T) {
	rng := rand.New(rand.NewSource(62))
	n, f := 80, 5
	scales := []float64{5, 4, 3, 2, 1}
	data := make([]float64, n*f)
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			data[i*f+j] = rng.NormFloat64() * scales[j]
		}
	}
	p, err := PCAPowerIteration(data, n, f, 3, 20000, 1e-15)
	require.NoError(t, err)

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, mat.NewDense(n, f, data), nil)
	var es mat.EigenSym
	require.True(t, es.Factorize(&cov, true))
	vals := es.Values(nil) // ascending
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	for c := 0; c < 3; c++ {
		col := f - 1 - c
		assert.InEpsilon(t, vals[col], p.Eigenvalues[c], 1e-6, "component %d", c)
		ref := mat.Col(nil, col, &vecs)
		assert.Greater(t, math.Abs(dot(ref, p.Component(c))), 1-1e-6, "component %d", c)
	}
	for c := 1; c < 3; c++ {
		assert.InDelta(t, 0.0, dot(p.Component(0), p.Component(c)), 1e-9)
	}
}

func TestPCAZeroVariance(t *testing.T) {
	data := []float64{1, 2, 1, 2, 1, 2}
	p, err := PCAPowerIteration(data, 3, 2, 2, 100, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, p.Eigenvalues)
	for c := 0; c < 2; c++ {
		assert.InDelta(t, 1.0, dot(p.Component(c), p.Component(c)), 1e-12)
	}
}

func TestPCAErrors(t *testing.T) {
	_, err := PCAPowerIteration([]float64{1, 2, 3}, 2, 2, 1, 10, 1e-6)
	assert.ErrorIs(t, err, kerr.ErrLengthMismatch)
	_, err = PCAPowerIteration([]float64{1, 2, 3, 4}, 2, 2, 3, 10, 1e-6)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = PCAPowerIteration(nil, 0, 2, 1, 10, 1e-6)
	assert.ErrorIs(t, err, kerr.ErrEmptyInput)
	_, err = PCAPowerIteration([]float64{1, 2, 3, 4}, 2, 2, 1, 0, 1e-6)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)

	p, err := PCAPowerIteration([]float64{1, 2, 3, 5}, 2, 2, 1, 10, 1e-6)
	require.NoError(t, err)
	_, err = p.Transform([]float64{1}, 1)
	assert.ErrorIs(t, err, kerr.ErrLengthMismatch)
}
