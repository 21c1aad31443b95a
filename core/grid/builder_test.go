package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkernel/core/kerr"
)

var demo = []byte("ATGAAATAGC")

func TestDNAGridPadsOutOfRange(t *testing.T) {
	g, err := Build(demo, -2, 5, 3, ModeDNA, 0)
	require.NoError(t, err)
	require.Equal(t, 3, g.Rows)
	assert.Equal(t, "  ATG", g.Text(0))
	assert.Equal(t, "AAATA", g.Text(1))
	assert.Equal(t, "GC   ", g.Text(2))

	row := g.Row(0)
	assert.True(t, row[0].Empty)
	assert.Equal(t, -1, row[0].Pos)
	assert.Equal(t, Cell{Char: 'A', Phase: 0, Pos: 0, IsStart: true}, row[2])
	assert.Equal(t, int8(2), row[4].Phase)

	stop := g.Row(1)[4] // index 7, middle of TAG
	assert.True(t, stop.IsStop)
	assert.Equal(t, 7, stop.Pos)
	assert.Equal(t, int8(1), stop.Phase)

	tail := g.Row(2)[1] // index 9 has no complete codon
	assert.False(t, tail.IsStart || tail.IsStop)
}

func TestAAGrid(t *testing.T) {
	g, err := Build(demo, 0, 4, 1, ModeAA, 0)
	require.NoError(t, err)
	assert.Equal(t, "MK* ", g.Text(0))
	cells := g.Row(0)
	assert.True(t, cells[0].IsStart)
	assert.Equal(t, [3]byte{'A', 'T', 'G'}, cells[0].Codon)
	assert.True(t, cells[2].IsStop)
	assert.Equal(t, 6, cells[2].Pos)
	assert.True(t, cells[3].Empty)
}

func TestAAGridFrameShift(t *testing.T) {
	g, err := Build(demo, 0, 4, 1, ModeAA, 1)
	require.NoError(t, err)
	assert.Equal(t, " *NS", g.Text(0))
	assert.Equal(t, 1, g.Row(0)[1].Pos)
}

func TestDualGrid(t *testing.T) {
	g, err := Build(demo, 0, 6, 1, ModeDual, 0)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows)
	assert.Equal(t, "ATGAAA", g.Text(0))
	assert.Equal(t, "MMMKKK", g.Text(1))
	for c, want := range []int8{0, 1, 2, 0, 1, 2} {
		assert.Equal(t, want, g.Row(1)[c].Phase)
	}
	assert.True(t, g.Row(1)[1].IsStart)
}

func TestAmbiguousCodonTranslatesToX(t *testing.T) {
	g, err := Build([]byte("ANGTTT"), 0, 2, 1, ModeAA, 0)
	require.NoError(t, err)
	assert.Equal(t, "XF", g.Text(0))
	assert.False(t, g.Row(0)[0].IsStop)
}

func TestAlternativeStarts(t *testing.T) {
	b := NewBuilder(Options{AlternativeStarts: true})
	g, err := b.Build([]byte("GTGTTG"), 0, 2, 1, ModeAA, 0)
	require.NoError(t, err)
	assert.True(t, g.Row(0)[0].IsStart)
	assert.True(t, g.Row(0)[1].IsStart)

	plain, err := Build([]byte("GTGTTG"), 0, 2, 1, ModeAA, 0)
	require.NoError(t, err)
	assert.False(t, plain.Row(0)[0].IsStart)
}

func TestGridNeverReadsOutsideSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	b := NewBuilder(Options{})
	for trial := 0; trial < 300; trial++ {
		seq := make([]byte, rng.Intn(40))
		for i := range seq {
			seq[i] = "ACGTN"[rng.Intn(5)]
		}
		start := rng.Intn(100) - 50
		cols, rows := 1+rng.Intn(12), 1+rng.Intn(5)
		mode := Mode(rng.Intn(3))
		frame := rng.Intn(3)
		g, err := b.Build(seq, start, cols, rows, mode, frame)
		require.NoError(t, err)
		require.Len(t, g.Cells, g.Rows*g.Cols)
		for _, c := range g.Cells {
			if c.Empty {
				continue
			}
			require.GreaterOrEqual(t, c.Pos, 0)
			require.Less(t, c.Pos, len(seq))
			if c.Codon != [3]byte{} {
				require.Less(t, c.Pos+2, len(seq))
			}
		}
	}
}

func TestBuilderReuseDoesNotAllocate(t *testing.T) {
	seq := []byte("ATGAAATAGCATGCCCTAA")
	b := NewBuilder(Options{})
	_, err := b.Build(seq, 0, 8, 4, ModeDual, 0)
	require.NoError(t, err)
	allocs := testing.AllocsPerRun(50, func() {
		_, _ = b.Build(seq, 3, 8, 4, ModeDual, 1)
	})
	assert.Zero(t, allocs)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(demo, 0, 0, 1, ModeDNA, 0)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = Build(demo, 0, 4, 1, ModeDNA, 3)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = Build(demo, 0, 4, 1, Mode(9), 0)
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = ParseMode("rna")
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)

	m, err := ParseMode("DUAL")
	require.NoError(t, err)
	assert.Equal(t, ModeDual, m)
	assert.Equal(t, "aa", ModeAA.String())
}
