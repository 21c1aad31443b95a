package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkernel/core/grid"
	"seqkernel/core/kerr"
)

func live(t *testing.T, k *Kernel) int {
	t.Helper()
	n, err := k.Live()
	require.NoError(t, err)
	return n
}

func arenaBytes(t *testing.T, k *Kernel) int {
	t.Helper()
	n, err := k.ArenaBytes()
	require.NoError(t, err)
	return n
}

func TestCountKmersHandle(t *testing.T) {
	k := New(DefaultOptions())
	h, err := k.CountKmers([]byte("ACGTACGT"), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, live(t, k))

	tb, err := k.KmerTable(h)
	require.NoError(t, err)
	assert.EqualValues(t, 7, tb.TotalValid)
	assert.EqualValues(t, 2, tb.Counts[0b0001]) // AC

	require.NoError(t, k.Release(h))
	assert.Equal(t, 0, live(t, k))
	_, err = k.KmerTable(h)
	assert.ErrorIs(t, err, kerr.ErrStaleHandle)
	assert.ErrorIs(t, k.Release(h), kerr.ErrStaleHandle)
}

func TestCountKmersValidation(t *testing.T) {
	k := New(DefaultOptions())
	_, err := k.CountKmers([]byte("ACGT"), 0)
	assert.ErrorIs(t, err, kerr.ErrKZero)
	_, err = k.CountKmersCanonical([]byte("ACGT"), 11)
	assert.ErrorIs(t, err, kerr.ErrKTooLarge)
	_, err = k.CountKmers([]byte("AC"), 3)
	assert.ErrorIs(t, err, kerr.ErrSequenceTooShort)
	assert.Equal(t, 0, live(t, k))
}

func TestWrongKind(t *testing.T) {
	k := New(DefaultOptions())
	h, err := k.HoeffdingsD([]float64{1, 2, 3, 4, 5, 6}, []float64{2, 4, 6, 8, 10, 12})
	require.NoError(t, err)
	_, err = k.KmerTable(h)
	assert.ErrorIs(t, err, kerr.ErrWrongKind)
	_, err = k.Grid(h)
	assert.ErrorIs(t, err, kerr.ErrWrongKind)

	d, err := k.Hoeffding(h)
	require.NoError(t, err)
	assert.Equal(t, 6, d.N)
}

func TestArenaRecyclesCounts(t *testing.T) {
	k := New(DefaultOptions())
	h1, err := k.CountKmers([]byte("AAAAAAAA"), 4)
	require.NoError(t, err)
	t1, err := k.KmerTable(h1)
	require.NoError(t, err)
	buf := &t1.Counts[0]
	require.NoError(t, k.Release(h1))
	assert.Equal(t, 4*256, arenaBytes(t, k))

	h2, err := k.CountKmersCanonical([]byte("CCCCCCCC"), 3)
	require.NoError(t, err)
	t2, err := k.KmerTable(h2)
	require.NoError(t, err)
	assert.Same(t, buf, &t2.Counts[0])
	assert.Len(t, t2.Counts, 64)
	assert.EqualValues(t, 6, t2.TotalValid)
	assert.EqualValues(t, 1, t2.UniqueCount, "recycled buffer must be cleared")
	assert.Equal(t, 0, arenaBytes(t, k))
}

func TestArenaBound(t *testing.T) {
	opts := DefaultOptions()
	opts.ArenaMaxBytes = 100
	k := New(opts)
	h, err := k.CountKmers([]byte("ACGTACGT"), 4)
	require.NoError(t, err)
	require.NoError(t, k.Release(h))
	assert.Equal(t, 0, arenaBytes(t, k))
}

func TestGridHandlesOwnBuffers(t *testing.T) {
	k := New(DefaultOptions())
	seq := []byte("ATGAAATAGC")
	h1, err := k.BuildGrid(seq, 0, 5, 1, grid.ModeDNA, 0)
	require.NoError(t, err)
	h2, err := k.BuildGrid(seq, 5, 5, 1, grid.ModeDNA, 0)
	require.NoError(t, err)

	g1, err := k.Grid(h1)
	require.NoError(t, err)
	g2, err := k.Grid(h2)
	require.NoError(t, err)
	assert.Equal(t, "ATGAA", g1.Text(0))
	assert.Equal(t, "ATAGC", g2.Text(0))

	require.NoError(t, k.Release(h1))
	h3, err := k.BuildGrid(seq, 2, 3, 1, grid.ModeDNA, 0)
	require.NoError(t, err)
	g3, err := k.Grid(h3)
	require.NoError(t, err)
	assert.Equal(t, "GAA", g3.Text(0))
	assert.Equal(t, "ATAGC", g2.Text(0))
}

func TestBuildGridValidation(t *testing.T) {
	k := New(DefaultOptions())
	_, err := k.BuildGrid([]byte("ACGT"), 0, 0, 1, grid.ModeDNA, 0)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = k.BuildGrid([]byte("ACGT"), 0, 4, 1, grid.ModeDNA, 3)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	assert.Equal(t, 0, live(t, k))
}

func TestDetectBonds(t *testing.T) {
	k := New(DefaultOptions())
	// H2 at 0.74 A plus a distant H
	pos := []float32{0, 0, 0, 0.74, 0, 0, 10, 10, 10}
	h, err := k.DetectBonds(pos, []byte("HHH"))
	require.NoError(t, err)
	l, err := k.Bonds(h)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, l.Pairs)

	_, err = k.DetectBonds(pos, []byte("HH"))
	assert.ErrorIs(t, err, kerr.ErrLengthMismatch)
}

func TestAnalyzeAndPCA(t *testing.T) {
	k := New(DefaultOptions())
	h, err := k.AnalyzeKmers([]byte("ACGTACGT"), []byte("ACGTACGT"), 3)
	require.NoError(t, err)
	c, err := k.Comparison(h)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.JaccardIndex, 1e-12)

	data := []float64{1, 2, 2, 4, 3, 6, 4, 8}
	hp, err := k.PCA(data, 4, 2, 1, 0, 0)
	require.NoError(t, err)
	p, err := k.PCAResult(hp)
	require.NoError(t, err)
	assert.True(t, p.Converged[0])
	assert.Len(t, p.Eigenvalues, 1)

	hs, err := k.LiveHandles()
	require.NoError(t, err)
	assert.Len(t, hs, 2)
	assert.Equal(t, KindPCA, hs[hp])
}

func TestScalars(t *testing.T) {
	k := New(DefaultOptions())
	rc, err := k.ReverseComplement("AACG")
	require.NoError(t, err)
	assert.Equal(t, "CGTT", rc)

	d, err := k.Levenshtein("kitten", "sitting")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	j, err := k.MinHashJaccard([]byte("ACGTACGTAC"), []byte("ACGTACGTAC"), 4, 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, j, 1e-12)

	gc, err := k.GCContent([]byte("GGAA"))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, gc, 1e-12)
}

func TestKmerEntropyAndDivergence(t *testing.T) {
	k := New(DefaultOptions())
	a, err := k.CountKmers([]byte("ACGT"), 1)
	require.NoError(t, err)
	b, err := k.CountKmers([]byte("ACGT"), 1)
	require.NoError(t, err)

	h, err := k.KmerEntropy(a)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, h, 1e-12)

	js, err := k.KmerDivergence(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0, js, 1e-12)
}

func TestBusy(t *testing.T) {
	k := New(DefaultOptions())
	h, err := k.CountKmers([]byte("ACGT"), 2)
	require.NoError(t, err)

	k.busy.Store(true)
	_, err = k.CountKmers([]byte("ACGT"), 2)
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.Levenshtein("a", "b")
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.KmerTable(h)
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.KmerEntropy(h)
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.KmerDivergence(h, h)
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.Live()
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.LiveHandles()
	assert.ErrorIs(t, err, kerr.ErrBusy)
	_, err = k.ArenaBytes()
	assert.ErrorIs(t, err, kerr.ErrBusy)
	assert.ErrorIs(t, k.Release(h), kerr.ErrBusy)
	k.busy.Store(false)

	_, err = k.KmerTable(h)
	assert.NoError(t, err)
	require.NoError(t, k.Release(h))
}

func TestConcurrentMisuseIsRejected(t *testing.T) {
	k := New(DefaultOptions())
	h, err := k.CountKmers([]byte("ACGTACGT"), 2)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			if h2, err := k.CountKmers([]byte("ACGTACGT"), 2); err == nil {
				for k.Release(h2) != nil {
				}
			}
		}
	}()
	for i := 0; i < 2000; i++ {
		if _, err := k.KmerTable(h); err != nil {
			assert.ErrorIs(t, err, kerr.ErrBusy)
		}
		if _, err := k.Live(); err != nil {
			assert.ErrorIs(t, err, kerr.ErrBusy)
		}
	}
	<-done
	assert.Equal(t, 1, live(t, k))
}
