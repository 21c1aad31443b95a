package kmer

import "sort"

// Entry is one ranked k-mer.
type Entry struct {
	Index uint32
	Kmer  string
	Count uint32
}

// Decode renders a packed k-mer index as bases.
func Decode(index uint32, k int) string {
	b := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		b[i] = "ACGT"[index&3]
		index >>= 2
	}
	return string(b)
}

// Top returns the n most frequent k-mers, ties broken by index.
// n <= 0 returns every observed k-mer.
func (t *Table) Top(n int) []Entry {
	out := make([]Entry, 0, t.UniqueCount)
	for i, c := range t.Counts {
		if c != 0 {
			out = append(out, Entry{Index: uint32(i), Count: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Index < out[j].Index
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Kmer = Decode(out[i].Index, t.K)
	}
	return out
}

// Frequencies returns Counts normalized to sum to 1 (all zero when the
// table is empty).
func (t *Table) Frequencies() []float64 {
	out := make([]float64, len(t.Counts))
	if t.TotalValid == 0 {
		return out
	}
	inv := 1 / float64(t.TotalValid)
	for i, c := range t.Counts {
		out[i] = float64(c) * inv
	}
	return out
}
