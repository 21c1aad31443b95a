package kmer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkernel/core/kerr"
)

func randomSeq(rng *rand.Rand, n int, alphabet string) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return b
}

func sum(counts []uint32) uint64 {
	var s uint64
	for _, c := range counts {
		s += uint64(c)
	}
	return s
}

func TestCountDenseErrors(t *testing.T) {
	_, err := CountDense([]byte("ACGT"), 0)
	assert.ErrorIs(t, err, kerr.ErrKZero)
	_, err = CountDense([]byte("ACGTACGTACGT"), 11)
	assert.ErrorIs(t, err, kerr.ErrKTooLarge)
	_, err = CountDense([]byte("ACG"), 4)
	assert.ErrorIs(t, err, kerr.ErrSequenceTooShort)
	_, err = CountDenseCanonical([]byte("ACG"), 0)
	assert.ErrorIs(t, err, kerr.ErrKZero)
}

func TestCountDenseSmall(t *testing.T) {
	tab, err := CountDense([]byte("ACGTA"), 2)
	require.NoError(t, err)
	require.Len(t, tab.Counts, 16)
	// AC=1 CG=6 GT=11 TA=12
	for _, idx := range []int{1, 6, 11, 12} {
		assert.Equal(t, uint32(1), tab.Counts[idx], "index %d", idx)
	}
	assert.Equal(t, uint64(4), tab.TotalValid)
	assert.Equal(t, uint32(4), tab.UniqueCount)
}

func TestCountDenseSkipsAmbiguousWindows(t *testing.T) {
	tab, err := CountDense([]byte("ACGNACG"), 3)
	require.NoError(t, err)
	// only ACG (twice); every window touching N is dropped
	assert.Equal(t, uint64(2), tab.TotalValid)
	assert.Equal(t, uint32(1), tab.UniqueCount)
	assert.Equal(t, uint32(2), tab.Counts[0<<4|1<<2|2])
}

func TestCountDenseTotals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for k := 1; k <= MaxK; k++ {
		seq := randomSeq(rng, 300, "ACGT")
		tab, err := CountDense(seq, k)
		require.NoError(t, err)
		require.Len(t, tab.Counts, 1<<(2*k))
		assert.Equal(t, uint64(len(seq)-k+1), tab.TotalValid, "k=%d", k)
		assert.Equal(t, tab.TotalValid, sum(tab.Counts), "k=%d", k)

		canon, err := CountDenseCanonical(seq, k)
		require.NoError(t, err)
		assert.Equal(t, tab.TotalValid, canon.TotalValid, "k=%d", k)
		assert.Equal(t, canon.TotalValid, sum(canon.Counts), "k=%d", k)
	}
}

func TestCountDenseTotalsWithAmbiguity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seq := randomSeq(rng, 500, "ACGTACGTACGTN")
	for k := 1; k <= MaxK; k++ {
		want := uint64(0)
		for i := 0; i+k <= len(seq); i++ {
			ok := true
			for _, b := range seq[i : i+k] {
				if b == 'N' {
					ok = false
					break
				}
			}
			if ok {
				want++
			}
		}
		tab, err := CountDense(seq, k)
		require.NoError(t, err)
		assert.Equal(t, want, tab.TotalValid, "k=%d", k)
		assert.Equal(t, want, sum(tab.Counts), "k=%d", k)
	}
}

func TestCanonicalFoldsReverseComplement(t *testing.T) {
	// AAC and its reverse complement GTT share a canonical bucket (AAC=1).
	tab, err := CountDenseCanonical([]byte("AACNGTT"), 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tab.Counts[1])
	assert.Equal(t, uint32(1), tab.UniqueCount)
	assert.True(t, tab.Canonical)
}

func TestCanonicalPalindromeSelfMaps(t *testing.T) {
	// ACGT is its own reverse complement
	tab, err := CountDenseCanonical([]byte("ACGT"), 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), tab.Counts[0<<6|1<<4|2<<2|3])
	assert.Equal(t, uint64(1), tab.TotalValid)
}

func TestCanonicalMatchesStrandSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seq := randomSeq(rng, 400, "ACGT")
	rc := make([]byte, len(seq))
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	for i, b := range seq {
		rc[len(seq)-1-i] = comp[b]
	}
	for _, k := range []int{3, 4, 7} {
		a, err := CountDenseCanonical(seq, k)
		require.NoError(t, err)
		b, err := CountDenseCanonical(rc, k)
		require.NoError(t, err)
		assert.Equal(t, a.Counts, b.Counts, "k=%d", k)
	}
}

func TestCountDenseIntoReusesBuffer(t *testing.T) {
	var tab Table
	require.NoError(t, CountDenseInto(&tab, []byte("ACGTACGT"), 4, false))
	buf := &tab.Counts[0]
	require.NoError(t, CountDenseInto(&tab, []byte("TTTTTT"), 3, false))
	assert.Same(t, buf, &tab.Counts[0])
	assert.Len(t, tab.Counts, 64)
	assert.Equal(t, uint32(4), tab.Counts[63])
	assert.Equal(t, uint32(1), tab.UniqueCount)
}

func TestTopAndDecode(t *testing.T) {
	tab, err := CountDense([]byte("AAAAC"), 2)
	require.NoError(t, err)
	top := tab.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "AA", top[0].Kmer)
	assert.Equal(t, uint32(3), top[0].Count)
	assert.Equal(t, "AC", top[1].Kmer)
	assert.Equal(t, "TGCA", Decode(3<<6|2<<4|1<<2|0, 4))

	freq := tab.Frequencies()
	assert.InDelta(t, 0.75, freq[0], 1e-12)
}
