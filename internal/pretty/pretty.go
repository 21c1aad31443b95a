// Package pretty renders grids and k-mer tables as plain text blocks for
// terminal output. Every line is prefixed so the block stays readable when
// interleaved with TSV.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"seqkernel/core/grid"
	"seqkernel/pkg/api"
)

// Options control the ASCII rendering.
type Options struct {
	// Marks adds a line under each DNA row flagging in-frame start and stop
	// codons.
	Marks bool

	// BarWidth is the length of the longest k-mer bar. If <=0, use default (20).
	BarWidth int

	// Glyphs
	StartGlyph byte // default '>'
	StopGlyph  byte // default '*'
	BarGlyph   byte // default '#'
}

// DefaultOptions is the look used by the CLI.
var DefaultOptions = Options{
	Marks:      true,
	BarWidth:   20,
	StartGlyph: '>',
	StopGlyph:  '*',
	BarGlyph:   '#',
}

const linePrefix = "# "

func (o Options) withDefaults() Options {
	if o.BarWidth <= 0 {
		o.BarWidth = 20
	}
	if o.StartGlyph == 0 {
		o.StartGlyph = '>'
	}
	if o.StopGlyph == 0 {
		o.StopGlyph = '*'
	}
	if o.BarGlyph == 0 {
		o.BarGlyph = '#'
	}
	return o
}

func phase(idx, frame int) int {
	p := (idx - frame) % 3
	if p < 0 {
		p += 3
	}
	return p
}

// rowLabels returns the 1-based sequence position of the first cell of each
// logical row.
func rowLabels(g *grid.Grid) []int {
	logical := g.Rows
	if g.Mode == grid.ModeDual {
		logical /= 2
	}
	labels := make([]int, logical)
	for r := range labels {
		switch g.Mode {
		case grid.ModeAA:
			first := g.Start - phase(g.Start, g.Frame)
			labels[r] = first + 3*r*g.Cols + 1
		default:
			labels[r] = g.Start + r*g.Cols + 1
		}
	}
	return labels
}

func labelWidth(labels []int) int {
	w := 1
	for _, l := range labels {
		if n := len(strconv.Itoa(l)); n > w {
			w = n
		}
	}
	return w
}

// RenderGrid draws g with one labelled line per row. In dual mode the
// amino-acid track sits under its bases with each residue printed over the
// middle base of its codon.
func RenderGrid(id string, g *grid.Grid, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s frame=%d start=%d\n", linePrefix, id, g.Mode, g.Frame, g.Start+1)

	labels := rowLabels(g)
	w := labelWidth(labels)
	pad := strings.Repeat(" ", w+1)

	for r, label := range labels {
		phys := r
		if g.Mode == grid.ModeDual {
			phys = 2 * r
		}
		fmt.Fprintf(&b, "%*d %s\n", w, label, strings.TrimRight(g.Text(phys), " "))

		switch g.Mode {
		case grid.ModeDual:
			if line := trackLine(g.Row(phys + 1)); line != "" {
				b.WriteString(pad + line + "\n")
			}
		case grid.ModeDNA:
			if !opts.Marks {
				continue
			}
			if line := markLine(g.Row(phys), opts); line != "" {
				b.WriteString(pad + line + "\n")
			}
		}
	}
	return b.String()
}

func trackLine(cells []grid.Cell) string {
	out := make([]byte, len(cells))
	for i, c := range cells {
		out[i] = ' '
		if !c.Empty && c.Phase == 1 {
			out[i] = c.Char
		}
	}
	return strings.TrimRight(string(out), " ")
}

func markLine(cells []grid.Cell, opts Options) string {
	out := make([]byte, len(cells))
	for i, c := range cells {
		switch {
		case c.Empty:
			out[i] = ' '
		case c.IsStart:
			out[i] = opts.StartGlyph
		case c.IsStop:
			out[i] = opts.StopGlyph
		default:
			out[i] = ' '
		}
	}
	return strings.TrimRight(string(out), " ")
}

// RenderKmers draws the ranked k-mers of t as horizontal bars scaled to the
// most frequent one.
func RenderKmers(t api.KmerTableV1, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s k=%d total=%d unique=%d entropy=%.3f\n",
		linePrefix, t.SequenceID, t.K, t.TotalValid, t.UniqueCount, t.Entropy)
	if len(t.Top) == 0 {
		return b.String()
	}
	maxCount := t.Top[0].Count
	for _, e := range t.Top {
		maxCount = max(maxCount, e.Count)
	}
	cw := len(strconv.FormatUint(uint64(maxCount), 10))
	for _, e := range t.Top {
		n := int(uint64(e.Count) * uint64(opts.BarWidth) / uint64(maxCount))
		fmt.Fprintf(&b, "%-*s %*d %s\n", t.K, e.Kmer, cw, e.Count, strings.Repeat(string(opts.BarGlyph), n))
	}
	return b.String()
}

// RenderComparison prints the metrics of one pairwise comparison.
func RenderComparison(c api.ComparisonV1) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s vs %s k=%d\n", linePrefix, c.SequenceA, c.SequenceB, c.K)
	fmt.Fprintf(&b, "unique_a=%d unique_b=%d shared=%d\n", c.UniqueKmersA, c.UniqueKmersB, c.SharedKmers)
	fmt.Fprintf(&b, "jaccard=%.4f cosine=%.4f bray_curtis=%.4f\n", c.JaccardIndex, c.CosineSimilarity, c.BrayCurtisDissimilarity)
	fmt.Fprintf(&b, "containment a_in_b=%.4f b_in_a=%.4f\n", c.ContainmentAInB, c.ContainmentBInA)
	if c.JensenShannon != nil {
		fmt.Fprintf(&b, "jensen_shannon=%.4f\n", *c.JensenShannon)
	}
	if c.MinHashJaccard != nil {
		fmt.Fprintf(&b, "minhash_jaccard=%.4f (%d hashes)\n", *c.MinHashJaccard, c.MinHashes)
	}
	return b.String()
}
