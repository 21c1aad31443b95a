package kernel

import (
	"seqkernel/core/bonds"
	"seqkernel/core/grid"
	"seqkernel/core/kmer"
	"seqkernel/core/stats"
)

/* ---------------- handle-returning operations ---------------- */

func (k *Kernel) countKmers(seq []byte, K int, canonical bool) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()

	t := &kmer.Table{}
	if K >= 1 && K <= kmer.MaxK {
		t.Counts = k.arena.takeCounts(1 << (2 * uint(K)))
	}
	if err := kmer.CountDenseInto(t, seq, K, canonical); err != nil {
		k.arena.putCounts(t.Counts)
		return 0, err
	}
	return k.results.Insert(entry{kind: KindKmerTable, table: t}), nil
}

// CountKmers counts the k-mers of seq into a dense table (k <= kmer.MaxK).
func (k *Kernel) CountKmers(seq []byte, K int) (Handle, error) {
	return k.countKmers(seq, K, false)
}

// CountKmersCanonical is CountKmers with each k-mer folded onto the smaller
// of itself and its reverse complement.
func (k *Kernel) CountKmersCanonical(seq []byte, K int) (Handle, error) {
	return k.countKmers(seq, K, true)
}

// DetectBonds finds covalent bonds among atoms using the kernel's bond
// parameters.
func (k *Kernel) DetectBonds(positions []float32, elements []byte) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	l, err := bonds.Detect(positions, elements, k.opts.Bonds)
	if err != nil {
		return 0, err
	}
	return k.results.Insert(entry{kind: KindBonds, bonds: l}), nil
}

// BuildGrid renders a viewport. Each live grid handle owns its cell buffer;
// releasing it lets the next BuildGrid reuse that buffer.
func (k *Kernel) BuildGrid(seq []byte, start, cols, rows int, mode grid.Mode, frame int) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	b := k.arena.takeBuilder(k.opts.Grid)
	g, err := b.Build(seq, start, cols, rows, mode, frame)
	if err != nil {
		k.arena.putBuilder(b)
		return 0, err
	}
	return k.results.Insert(entry{kind: KindGrid, grid: g, builder: b}), nil
}

// AnalyzeKmers compares the exact k-mer sets of a and b.
func (k *Kernel) AnalyzeKmers(a, b []byte, K int) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	c, err := kmer.Analyze(a, b, K)
	if err != nil {
		return 0, err
	}
	return k.results.Insert(entry{kind: KindComparison, cmp: c}), nil
}

// PCA runs power-iteration PCA over a row-major nSamples x nFeatures matrix.
// maxIter <= 0 and tol <= 0 select the kernel defaults.
func (k *Kernel) PCA(data []float64, nSamples, nFeatures, nComponents, maxIter int, tol float64) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	if maxIter <= 0 {
		maxIter = k.opts.PCAMaxIter
	}
	if tol <= 0 {
		tol = k.opts.PCATolerance
	}
	p, err := stats.PCAPowerIteration(data, nSamples, nFeatures, nComponents, maxIter, tol)
	if err != nil {
		return 0, err
	}
	return k.results.Insert(entry{kind: KindPCA, pca: p}), nil
}

// HoeffdingsD measures the dependence between x and y.
func (k *Kernel) HoeffdingsD(x, y []float64) (Handle, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	d, err := stats.HoeffdingsD(x, y)
	if err != nil {
		return 0, err
	}
	return k.results.Insert(entry{kind: KindHoeffding, hd: d}), nil
}

/* ---------------- accessors ---------------- */

// KmerTable returns the table behind h. The table aliases kernel memory and
// is valid until h is released.
func (k *Kernel) KmerTable(h Handle) (*kmer.Table, error) {
	e, err := k.lookup(h, KindKmerTable)
	return e.table, err
}

// Bonds returns the bond list behind h.
func (k *Kernel) Bonds(h Handle) (bonds.List, error) {
	e, err := k.lookup(h, KindBonds)
	return e.bonds, err
}

// Grid returns the grid behind h, valid until h is released.
func (k *Kernel) Grid(h Handle) (*grid.Grid, error) {
	e, err := k.lookup(h, KindGrid)
	return e.grid, err
}

func (k *Kernel) Comparison(h Handle) (kmer.Comparison, error) {
	e, err := k.lookup(h, KindComparison)
	return e.cmp, err
}

func (k *Kernel) PCAResult(h Handle) (*stats.PCA, error) {
	e, err := k.lookup(h, KindPCA)
	return e.pca, err
}

func (k *Kernel) Hoeffding(h Handle) (stats.Hoeffding, error) {
	e, err := k.lookup(h, KindHoeffding)
	return e.hd, err
}
