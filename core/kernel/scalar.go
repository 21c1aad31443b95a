package kernel

import (
	"seqkernel/core/dna"
	"seqkernel/core/kmer"
	"seqkernel/core/scan"
	"seqkernel/core/stats"
)

// Scalar operations return plain values and leave no handle behind.

func (k *Kernel) Encode(seq []byte) ([]byte, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	return dna.Encode(seq), nil
}

func (k *Kernel) ReverseComplement(seq string) (string, error) {
	if err := k.enter(); err != nil {
		return "", err
	}
	defer k.leave()
	return dna.ReverseComplement(seq), nil
}

func (k *Kernel) GCContent(seq []byte) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return dna.GCContent(seq), nil
}

func (k *Kernel) ShannonEntropy(probs []float64) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return stats.ShannonEntropy(probs), nil
}

// KmerEntropy is the Shannon entropy (bits) of the k-mer distribution behind
// a table handle.
func (k *Kernel) KmerEntropy(h Handle) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	e, err := k.get(h, KindKmerTable)
	if err != nil {
		return 0, err
	}
	return stats.ShannonEntropyFromCounts(e.table.Counts), nil
}

func (k *Kernel) JensenShannonDivergence(p, q []float64) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return stats.JensenShannonDivergence(p, q)
}

// KmerDivergence is the Jensen-Shannon divergence between two table handles.
func (k *Kernel) KmerDivergence(a, b Handle) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	ea, err := k.get(a, KindKmerTable)
	if err != nil {
		return 0, err
	}
	eb, err := k.get(b, KindKmerTable)
	if err != nil {
		return 0, err
	}
	return stats.JensenShannonDivergenceFromCounts(ea.table.Counts, eb.table.Counts)
}

// MinHashJaccard estimates k-mer Jaccard similarity with the kernel's seed.
func (k *Kernel) MinHashJaccard(a, b []byte, K, numHashes int) (float64, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return kmer.MinHashJaccardSeeded(a, b, K, numHashes, k.opts.MinHashSeed)
}

func (k *Kernel) Levenshtein(s1, s2 string) (int, error) {
	if err := k.enter(); err != nil {
		return 0, err
	}
	defer k.leave()
	return stats.Levenshtein(s1, s2), nil
}

func (k *Kernel) GCSkew(seq []byte, window, step int) ([]float64, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	return scan.GCSkew(seq, window, step)
}

func (k *Kernel) CumulativeGCSkew(seq []byte, window, step int) ([]float64, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	return scan.CumulativeGCSkew(seq, window, step)
}

func (k *Kernel) Palindromes(seq []byte, minArm, maxGap int) ([]scan.Palindrome, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	return scan.Palindromes(seq, minArm, maxGap)
}

func (k *Kernel) TandemRepeats(seq []byte, minUnit, maxUnit, minCopies int) ([]scan.TandemRepeat, error) {
	if err := k.enter(); err != nil {
		return nil, err
	}
	defer k.leave()
	return scan.TandemRepeats(seq, minUnit, maxUnit, minCopies)
}
