// core/grid/builder.go
package grid

import (
	"fmt"

	"seqkernel/core/dna"
	"seqkernel/core/kerr"
)

// Options tweak translation.
type Options struct {
	AlternativeStarts bool // GTG and TTG also mark starts
}

// Builder keeps its cell buffer between calls so scrolling re-renders
// without allocating. The Grid returned by Build aliases that buffer and is
// only valid until the next Build on the same Builder.
type Builder struct {
	opts  Options
	cells []Cell
	grid  Grid
}

// NewBuilder returns a Builder with the given options.
func NewBuilder(opts Options) *Builder { return &Builder{opts: opts} }

// Build renders a fresh grid that does not alias any Builder.
func Build(seq []byte, start, cols, rows int, mode Mode, frame int) (*Grid, error) {
	var b Builder
	return b.Build(seq, start, cols, rows, mode, frame)
}

// Build renders rows x cols cells of seq beginning at nucleotide index start.
// start may be negative or past the end; such cells come back Empty.
func (b *Builder) Build(seq []byte, start, cols, rows int, mode Mode, frame int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", rows, cols, kerr.ErrInvalidArgument)
	}
	if frame < 0 || frame > 2 {
		return nil, fmt.Errorf("frame %d: %w", frame, kerr.ErrInvalidArgument)
	}
	physRows := rows
	switch mode {
	case ModeDNA, ModeAA:
	case ModeDual:
		physRows = 2 * rows
	default:
		return nil, fmt.Errorf("mode %d: %w", mode, kerr.ErrInvalidArgument)
	}

	n := physRows * cols
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	}
	cells := b.cells[:n]

	switch mode {
	case ModeDNA:
		for i := range cells {
			b.baseCell(&cells[i], seq, start+i, frame)
		}
	case ModeAA:
		first := alignDown(start, frame)
		for i := range cells {
			b.codonCell(&cells[i], seq, first+3*i)
		}
	case ModeDual:
		for r := 0; r < rows; r++ {
			bases := cells[2*r*cols : (2*r+1)*cols]
			track := cells[(2*r+1)*cols : (2*r+2)*cols]
			for c := 0; c < cols; c++ {
				idx := start + r*cols + c
				b.baseCell(&bases[c], seq, idx, frame)
				b.trackCell(&track[c], seq, idx, frame)
			}
		}
	}

	b.grid = Grid{Rows: physRows, Cols: cols, Start: start, Mode: mode, Frame: frame, Cells: cells}
	return &b.grid, nil
}

// phase is the offset of idx inside its in-frame codon (0..2).
func phase(idx, frame int) int {
	p := (idx - frame) % 3
	if p < 0 {
		p += 3
	}
	return p
}

// alignDown returns the first base of the in-frame codon holding idx.
func alignDown(idx, frame int) int { return idx - phase(idx, frame) }

// codonAt translates the codon starting at s; ok is false when any of its
// bases lies outside seq.
func (b *Builder) codonAt(seq []byte, s int) (idx int, aa byte, ok, known bool) {
	if s < 0 || s+2 >= len(seq) {
		return 0, 0, false, false
	}
	idx, known = dna.CodonIndex(dna.Code(seq[s]), dna.Code(seq[s+1]), dna.Code(seq[s+2]))
	if !known {
		return 0, 'X', true, false
	}
	return idx, dna.AminoAcid(idx), true, true
}

func (b *Builder) baseCell(c *Cell, seq []byte, idx, frame int) {
	if idx < 0 || idx >= len(seq) {
		*c = emptyCell
		return
	}
	p := phase(idx, frame)
	*c = Cell{Char: seq[idx], Phase: int8(p), Pos: idx}
	if cidx, _, ok, known := b.codonAt(seq, idx-p); ok && known {
		c.IsStart = dna.IsStart(cidx, b.opts.AlternativeStarts)
		c.IsStop = dna.IsStop(cidx)
	}
}

func (b *Builder) codonCell(c *Cell, seq []byte, s int) {
	cidx, aa, ok, known := b.codonAt(seq, s)
	if !ok {
		*c = emptyCell
		return
	}
	*c = Cell{Char: aa, Codon: [3]byte{seq[s], seq[s+1], seq[s+2]}, Phase: 0, Pos: s}
	if known {
		c.IsStart = dna.IsStart(cidx, b.opts.AlternativeStarts)
		c.IsStop = dna.IsStop(cidx)
	}
}

// trackCell fills the amino-acid track under base idx: every base of a
// codon carries the residue and its phase, so a renderer can print the
// letter once (phase 1) and shade the rest.
func (b *Builder) trackCell(c *Cell, seq []byte, idx, frame int) {
	if idx < 0 || idx >= len(seq) {
		*c = emptyCell
		return
	}
	p := phase(idx, frame)
	b.codonCell(c, seq, idx-p)
	if !c.Empty {
		c.Phase = int8(p)
	}
}
