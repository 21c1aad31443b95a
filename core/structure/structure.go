// Package structure reads atom coordinates from XYZ and PDB files into the
// flat layout the bond detector consumes.
package structure

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"seqkernel/core/fasta"
	"seqkernel/core/kerr"
)

// Unknown is the element byte for symbols with more than one letter. The
// bond detector gives it the default radius.
const Unknown byte = '?'

// Atoms holds 3 coordinates per atom in Positions and one element byte per
// atom in Elements. Symbols keeps the element as written (upper-cased).
type Atoms struct {
	Title     string
	Positions []float32
	Elements  []byte
	Symbols   []string
}

// Len is the number of atoms.
func (a *Atoms) Len() int { return len(a.Elements) }

func (a *Atoms) add(sym string, x, y, z float32) {
	sym = strings.ToUpper(strings.TrimSpace(sym))
	el := Unknown
	if len(sym) == 1 {
		el = sym[0]
	}
	a.Positions = append(a.Positions, x, y, z)
	a.Elements = append(a.Elements, el)
	a.Symbols = append(a.Symbols, sym)
}

// Format selects a parser.
type Format int

const (
	FormatAuto Format = iota
	FormatXYZ
	FormatPDB
)

// ParseFormat accepts "", "auto", "xyz" and "pdb".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "xyz":
		return FormatXYZ, nil
	case "pdb", "ent":
		return FormatPDB, nil
	}
	return FormatAuto, fmt.Errorf("structure format %q: %w", s, kerr.ErrInvalidArgument)
}

// Read parses r in the given format. FormatAuto is not accepted here.
func Read(ctx context.Context, r io.Reader, f Format) (*Atoms, error) {
	switch f {
	case FormatXYZ:
		return ReadXYZ(ctx, r)
	case FormatPDB:
		return ReadPDB(ctx, r)
	}
	return nil, fmt.Errorf("structure: format must be explicit: %w", kerr.ErrInvalidArgument)
}

// ReadFile opens path (gzip and "-" handled as for FASTA) and parses it. With
// FormatAuto the extension decides, defaulting to PDB.
func ReadFile(ctx context.Context, path string, f Format) (*Atoms, error) {
	if f == FormatAuto {
		f = detect(path)
	}
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(ctx, rc, f)
}

func detect(path string) Format {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz")))
	if ext == ".xyz" {
		return FormatXYZ
	}
	return FormatPDB
}
