// internal/output/convert.go
package output

import (
	"seqkernel/core/bonds"
	"seqkernel/core/grid"
	"seqkernel/core/kerr"
	"seqkernel/core/kmer"
	"seqkernel/core/scan"
	"seqkernel/core/stats"
	"seqkernel/pkg/api"
)

// ToAPIKmerTable converts a count table. top limits the ranked list (0
// lists every observed k-mer). The table may alias kernel memory; the
// result does not.
func ToAPIKmerTable(id string, t *kmer.Table, top int) api.KmerTableV1 {
	v := api.KmerTableV1{
		SequenceID:  id,
		K:           t.K,
		Canonical:   t.Canonical,
		TotalValid:  t.TotalValid,
		UniqueCount: t.UniqueCount,
		Entropy:     stats.ShannonEntropyFromCounts(t.Counts),
	}
	for _, e := range t.Top(top) {
		v.Top = append(v.Top, api.KmerCountV1{Kmer: e.Kmer, Count: e.Count})
	}
	return v
}

// ToAPIComparison converts an exact k-mer comparison.
func ToAPIComparison(a, b string, c kmer.Comparison) api.ComparisonV1 {
	return api.ComparisonV1{
		SequenceA:               a,
		SequenceB:               b,
		K:                       c.K,
		UniqueKmersA:            c.UniqueKmersA,
		UniqueKmersB:            c.UniqueKmersB,
		SharedKmers:             c.SharedKmers,
		JaccardIndex:            c.JaccardIndex,
		ContainmentAInB:         c.ContainmentAInB,
		ContainmentBInA:         c.ContainmentBInA,
		CosineSimilarity:        c.CosineSimilarity,
		BrayCurtisDissimilarity: c.BrayCurtisDissimilarity,
	}
}

// ToAPIBonds converts a bond list into index pairs.
func ToAPIBonds(title string, atoms int, l bonds.List) api.BondListV1 {
	v := api.BondListV1{
		Title:     title,
		AtomCount: atoms,
		BondCount: l.Count(),
		Bonds:     make([][2]uint32, 0, l.Count()),
	}
	for n := 0; n < l.Count(); n++ {
		i, j := l.Bond(n)
		v.Bonds = append(v.Bonds, [2]uint32{i, j})
	}
	return v
}

// ToAPIGrid converts a grid; cells are included only when withCells is set.
func ToAPIGrid(id string, g *grid.Grid, withCells bool) api.GridV1 {
	v := api.GridV1{
		SequenceID: id,
		Mode:       g.Mode.String(),
		Frame:      g.Frame,
		Start:      g.Start,
		Rows:       g.Rows,
		Cols:       g.Cols,
		Lines:      make([]string, g.Rows),
	}
	for r := 0; r < g.Rows; r++ {
		v.Lines[r] = g.Text(r)
	}
	if !withCells {
		return v
	}
	v.Cells = make([]api.GridCellV1, len(g.Cells))
	for i, c := range g.Cells {
		if c.Empty {
			v.Cells[i] = api.GridCellV1{Pos: -1, Phase: -1, Empty: true}
			continue
		}
		cell := api.GridCellV1{
			Char:  string(c.Char),
			Pos:   c.Pos,
			Phase: int(c.Phase),
			Start: c.IsStart,
			Stop:  c.IsStop,
		}
		if c.Codon != [3]byte{} {
			cell.Codon = string(c.Codon[:])
		}
		v.Cells[i] = cell
	}
	return v
}

// ToAPIPCA converts a fit. scores is row-major nSamples x components and
// may be nil.
func ToAPIPCA(labels []string, k int, p *stats.PCA, scores []float64) api.PCAV1 {
	nc := len(p.Eigenvalues)
	v := api.PCAV1{
		K:           k,
		Samples:     labels,
		NFeatures:   p.NFeatures,
		Eigenvalues: append([]float64(nil), p.Eigenvalues...),
		Components:  make([][]float64, nc),
		Iterations:  append([]int(nil), p.Iterations...),
		Converged:   append([]bool(nil), p.Converged...),
	}
	for c := 0; c < nc; c++ {
		v.Components[c] = append([]float64(nil), p.Component(c)...)
	}
	if scores != nil && nc > 0 {
		n := len(scores) / nc
		v.Scores = make([][]float64, n)
		for i := 0; i < n; i++ {
			v.Scores[i] = scores[i*nc : (i+1)*nc]
		}
	}
	return v
}

// ToAPIHoeffding converts a Hoeffding result; inputCount is the size before
// any thinning.
func ToAPIHoeffding(h stats.Hoeffding, inputCount int) api.HoeffdingV1 {
	v := api.HoeffdingV1{D: h.D, N: h.N}
	if inputCount != h.N {
		v.InputCount = inputCount
	}
	return v
}

// ToAPIPalindrome converts one inverted repeat; seq is the record it was
// found in.
func ToAPIPalindrome(id string, seq []byte, p scan.Palindrome) api.PalindromeV1 {
	return api.PalindromeV1{
		SequenceID: id,
		Start:      p.Start,
		End:        p.End,
		ArmLength:  p.ArmLength,
		Gap:        p.Gap,
		Seq:        string(seq[p.Start:p.End]),
	}
}

func ToAPITandemRepeat(id string, r scan.TandemRepeat) api.TandemRepeatV1 {
	return api.TandemRepeatV1{
		SequenceID: id,
		Start:      r.Start,
		End:        r.End,
		Unit:       r.Unit,
		Copies:     r.Copies,
	}
}

// ToAPIError converts a failure for json output.
func ToAPIError(err error, jobID string) api.ErrorV1 {
	return api.ErrorV1{Kind: kerr.KindOf(err).String(), Message: err.Error(), JobID: jobID}
}
