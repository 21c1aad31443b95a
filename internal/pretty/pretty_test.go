package pretty

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"seqkernel/core/grid"
	"seqkernel/core/kmer"
	"seqkernel/internal/output"
)

const demo = "ATGAAATAGCATG"

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
}

func TestRenderGridDNA(t *testing.T) {
	g, err := grid.Build([]byte(demo), 0, 10, 2, grid.ModeDNA, 0)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "grid_dna", []byte(RenderGrid("demo", g, DefaultOptions)))
}

func TestRenderGridDual(t *testing.T) {
	g, err := grid.Build([]byte(demo), 0, 10, 1, grid.ModeDual, 0)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "grid_dual", []byte(RenderGrid("demo", g, DefaultOptions)))
}

func TestRenderGridAA(t *testing.T) {
	g, err := grid.Build([]byte(demo), 1, 4, 1, grid.ModeAA, 0)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "grid_aa", []byte(RenderGrid("demo", g, DefaultOptions)))
}

func TestRenderGridNegativeStart(t *testing.T) {
	g, err := grid.Build([]byte("ACGT"), -3, 5, 1, grid.ModeDNA, 0)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "grid_negative", []byte(RenderGrid("short", g, Options{})))
}

func TestRenderKmers(t *testing.T) {
	tb, err := kmer.CountDense([]byte("ACGTACGT"), 2)
	require.NoError(t, err)
	v := output.ToAPIKmerTable("s", tb, 0)
	newGoldie(t).Assert(t, "kmers", []byte(RenderKmers(v, DefaultOptions)))
}
