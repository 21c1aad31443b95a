// Package grid builds the viewport grid a sequence viewer draws on every
// scroll. The builder streams bases straight from the caller's buffer into
// a preallocated cell slice; it never slices or copies the sequence.
package grid

import (
	"fmt"
	"strings"

	"seqkernel/core/kerr"
)

// Mode selects what a grid cell shows.
type Mode uint8

const (
	ModeDNA  Mode = iota // one base per cell, with codon phase
	ModeAA               // one translated codon per cell
	ModeDual             // a base row followed by its amino-acid track
)

func (m Mode) String() string {
	switch m {
	case ModeDNA:
		return "dna"
	case ModeAA:
		return "aa"
	case ModeDual:
		return "dual"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts "dna", "aa" or "dual" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "dna":
		return ModeDNA, nil
	case "aa", "protein":
		return ModeAA, nil
	case "dual":
		return ModeDual, nil
	}
	return 0, fmt.Errorf("mode %q: %w", s, kerr.ErrInvalidArgument)
}

// Cell is one rendered grid position.
//
// For DNA cells Char is the raw base, Pos its sequence index and Phase its
// offset inside the in-frame codon. For amino-acid cells Char is the residue,
// Codon the three raw bases and Pos the index of the codon's first base.
// IsStart/IsStop mark start and stop codons (on every base of the codon in
// DNA rows). Empty cells lie outside the sequence and carry nothing else.
type Cell struct {
	Char    byte
	Codon   [3]byte
	Phase   int8
	Pos     int
	IsStart bool
	IsStop  bool
	Empty   bool
}

var emptyCell = Cell{Phase: -1, Pos: -1, Empty: true}

// Grid is a rows x cols block of cells in row-major order. In dual mode
// Rows counts physical rows, two per requested row.
type Grid struct {
	Rows  int
	Cols  int
	Start int
	Mode  Mode
	Frame int
	Cells []Cell
}

// Row returns row r as a view into Cells.
func (g *Grid) Row(r int) []Cell { return g.Cells[r*g.Cols : (r+1)*g.Cols] }

// Text returns row r as a string, with blank for empty cells.
func (g *Grid) Text(r int) string {
	row := g.Row(r)
	b := make([]byte, len(row))
	for i, c := range row {
		if c.Empty || c.Char == 0 {
			b[i] = ' '
		} else {
			b[i] = c.Char
		}
	}
	return string(b)
}
