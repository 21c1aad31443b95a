package structure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkernel/core/bonds"
	"seqkernel/core/kerr"
)

const water = `3
water
O  0.000  0.000  0.117
H  0.000  0.757 -0.467
H  0.000 -0.757 -0.467
`

// columns: record(1-6) serial(7-11) name(13-16) resName(18-20) chain(22)
// resSeq(23-26) x(31-38) y(39-46) z(47-54) occ tempFactor element(77-78)
const pdb = `HEADER    TEST PEPTIDE FRAGMENT
ATOM      1  N   GLY A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       1.458   0.000   0.000  1.00  0.00           C
ATOM      3  C   GLY A   1       2.009   1.420   0.000  1.00  0.00
HETATM    4 CL   CL  A   2      20.000  20.000  20.000  1.00  0.00          CL
ENDMDL
ATOM      5  N   GLY A   1       9.000   9.000   9.000  1.00  0.00           N
`

func TestReadXYZ(t *testing.T) {
	a, err := ReadXYZ(context.Background(), strings.NewReader(water))
	require.NoError(t, err)
	assert.Equal(t, "water", a.Title)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []byte("OHH"), a.Elements)
	assert.InDelta(t, 0.757, a.Positions[4], 1e-6)

	l, err := bonds.DetectDefault(a.Positions, a.Elements)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 0, 2}, l.Pairs)
}

func TestReadXYZErrors(t *testing.T) {
	_, err := ReadXYZ(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, kerr.ErrEmptyInput)
	_, err = ReadXYZ(context.Background(), strings.NewReader("two\n\n"))
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
	_, err = ReadXYZ(context.Background(), strings.NewReader("2\n\nC 0 0 0\n"))
	assert.ErrorIs(t, err, kerr.ErrLengthMismatch)
	_, err = ReadXYZ(context.Background(), strings.NewReader("1\n\nC 0 zero 0\n"))
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
}

func TestReadPDB(t *testing.T) {
	a, err := ReadPDB(context.Background(), strings.NewReader(pdb))
	require.NoError(t, err)
	assert.Equal(t, "TEST PEPTIDE FRAGMENT", a.Title)
	require.Equal(t, 4, a.Len(), "second model is ignored")
	assert.Equal(t, []byte{'N', 'C', 'C', Unknown}, a.Elements)
	assert.Equal(t, "CL", a.Symbols[3])
	assert.InDelta(t, 1.458, a.Positions[3], 1e-6)
	assert.InDelta(t, 1.420, a.Positions[7], 1e-6)

	l, err := bonds.DetectDefault(a.Positions, a.Elements)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 1, 2}, l.Pairs)
}

func TestReadPDBEmpty(t *testing.T) {
	_, err := ReadPDB(context.Background(), strings.NewReader("HEADER    NOTHING\nEND\n"))
	assert.ErrorIs(t, err, kerr.ErrEmptyInput)
}

func TestElementFromName(t *testing.T) {
	assert.Equal(t, "C", elementFromName(" CA "))
	assert.Equal(t, "H", elementFromName("1HB "))
	assert.Equal(t, "", elementFromName("    "))
}

func TestReadFileDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.xyz")
	require.NoError(t, os.WriteFile(path, []byte(water), 0o644))
	a, err := ReadFile(context.Background(), path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())

	path = filepath.Join(dir, "p.pdb")
	require.NoError(t, os.WriteFile(path, []byte(pdb), 0o644))
	a, err = ReadFile(context.Background(), path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XYZ")
	require.NoError(t, err)
	assert.Equal(t, FormatXYZ, f)
	_, err = ParseFormat("mol2")
	assert.ErrorIs(t, err, kerr.ErrInvalidArgument)
}
