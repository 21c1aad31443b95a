package kmer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkernel/core/kerr"
)

func TestAnalyzeIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	seq := randomSeq(rng, 250, "ACGT")
	for _, k := range []int{1, 5, 10, 11, 21} {
		c, err := Analyze(seq, seq, k)
		require.NoError(t, err)
		assert.Equal(t, 1.0, c.JaccardIndex, "k=%d", k)
		assert.Equal(t, c.UniqueKmersA, c.SharedKmers)
		assert.Equal(t, c.UniqueKmersB, c.SharedKmers)
		assert.InDelta(t, 1.0, c.CosineSimilarity, 1e-12)
		assert.InDelta(t, 0.0, c.BrayCurtisDissimilarity, 1e-12)
		assert.Equal(t, 1.0, c.ContainmentAInB)
	}
}

func TestAnalyzeKnownSets(t *testing.T) {
	// A: {AC, CG}  B: {CG, GT}
	c, err := Analyze([]byte("ACG"), []byte("CGT"), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, c.UniqueKmersA)
	assert.Equal(t, 2, c.UniqueKmersB)
	assert.Equal(t, 1, c.SharedKmers)
	assert.InDelta(t, 1.0/3, c.JaccardIndex, 1e-12)
	assert.InDelta(t, 0.5, c.ContainmentAInB, 1e-12)
	assert.InDelta(t, 0.5, c.ContainmentBInA, 1e-12)
	assert.InDelta(t, 0.5, c.CosineSimilarity, 1e-12)
	assert.InDelta(t, 0.5, c.BrayCurtisDissimilarity, 1e-12)
}

func TestAnalyzeSparseMatchesDense(t *testing.T) {
	// the sparse path must agree with the dense path on the same k
	rng := rand.New(rand.NewSource(12))
	a := randomSeq(rng, 300, "ACGTN")
	b := randomSeq(rng, 300, "ACGT")
	var acc accumulator
	ma, mb := countSparse(a, 6), countSparse(b, 6)
	for key, ca := range ma {
		acc.add(ca, mb[key])
	}
	for key, cb := range mb {
		if _, ok := ma[key]; !ok {
			acc.add(0, cb)
		}
	}
	dense, err := Analyze(a, b, 6)
	require.NoError(t, err)
	assert.Equal(t, dense, acc.result(6))
}

func TestAnalyzeDegenerate(t *testing.T) {
	c, err := Analyze([]byte("AC"), []byte("NNNN"), 3)
	require.NoError(t, err)
	assert.Equal(t, Comparison{K: 3}, c)

	_, err = Analyze([]byte("ACGT"), []byte("ACGT"), 0)
	assert.ErrorIs(t, err, kerr.ErrKZero)
	_, err = Analyze([]byte("ACGT"), []byte("ACGT"), 33)
	assert.ErrorIs(t, err, kerr.ErrKTooLarge)
}

func TestMinHash(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	a := randomSeq(rng, 2000, "ACGT")

	j, err := MinHashJaccard(a, a, 12, 128)
	require.NoError(t, err)
	assert.Equal(t, 1.0, j)

	// disjoint alphabets share no k-mer
	j, err = MinHashJaccard([]byte("AAAAAAAAAAAA"), []byte("CCCCCCCCCCCC"), 4, 64)
	require.NoError(t, err)
	assert.Equal(t, 0.0, j)

	// half-overlapping sequences land near the exact index
	b := append(append([]byte(nil), a[:1000]...), randomSeq(rng, 1000, "ACGT")...)
	exact, err := Analyze(a, b, 12)
	require.NoError(t, err)
	est, err := MinHashJaccard(a, b, 12, 512)
	require.NoError(t, err)
	assert.InDelta(t, exact.JaccardIndex, est, 0.1)

	_, err = MinHashJaccard(a, a, 12, 0)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
}

func TestSketchMismatch(t *testing.T) {
	s1, err := Sketch([]byte("ACGTACGT"), 3, 8, DefaultSeed)
	require.NoError(t, err)
	s2, err := Sketch([]byte("ACGTACGT"), 4, 8, DefaultSeed)
	require.NoError(t, err)
	_, err = s1.Jaccard(s2)
	assert.ErrorIs(t, err, kerr.ErrLengthMismatch)

	empty, err := Sketch([]byte("NN"), 3, 8, DefaultSeed)
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	j, err := s1.Jaccard(empty)
	require.NoError(t, err)
	assert.Equal(t, 0.0, j)
}
