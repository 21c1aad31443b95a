// internal/output/rows.go
package output

import (
	"strconv"

	"seqkernel/pkg/api"
)

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}

// KmerRows expands a table into one row per ranked k-mer.
func KmerRows(t api.KmerTableV1) [][]string {
	rows := make([][]string, len(t.Top))
	for i, e := range t.Top {
		rows[i] = []string{t.SequenceID, e.Kmer, strconv.FormatUint(uint64(e.Count), 10)}
	}
	return rows
}

func ComparisonRow(c api.ComparisonV1) []string {
	return []string{
		c.SequenceA, c.SequenceB, strconv.Itoa(c.K),
		strconv.Itoa(c.UniqueKmersA), strconv.Itoa(c.UniqueKmersB), strconv.Itoa(c.SharedKmers),
		ftoa(c.JaccardIndex), ftoa(c.ContainmentAInB), ftoa(c.ContainmentBInA),
		ftoa(c.CosineSimilarity), ftoa(c.BrayCurtisDissimilarity),
		optFloat(c.JensenShannon), optFloat(c.MinHashJaccard),
	}
}

func ProfileRow(p api.ProfileV1) []string {
	return []string{
		p.SourceFile, p.SequenceID, strconv.Itoa(p.Length), ftoa(p.GCPercent),
		strconv.Itoa(p.K), strconv.FormatUint(uint64(p.UniqueKmers), 10), ftoa(p.KmerEntropy),
		strconv.Itoa(p.SkewMinIndex), strconv.Itoa(p.SkewMaxIndex),
	}
}

func BondRows(b api.BondListV1) [][]string {
	rows := make([][]string, len(b.Bonds))
	for n, pr := range b.Bonds {
		rows[n] = []string{strconv.FormatUint(uint64(pr[0]), 10), strconv.FormatUint(uint64(pr[1]), 10)}
	}
	return rows
}

func PalindromeRow(p api.PalindromeV1) []string {
	return []string{p.SequenceID, strconv.Itoa(p.Start), strconv.Itoa(p.End), strconv.Itoa(p.ArmLength), strconv.Itoa(p.Gap), p.Seq}
}

func RepeatRow(r api.TandemRepeatV1) []string {
	return []string{r.SequenceID, strconv.Itoa(r.Start), strconv.Itoa(r.End), r.Unit, strconv.Itoa(r.Copies)}
}

// SkewRows lists each window by its start coordinate.
func SkewRows(s api.SkewV1) [][]string {
	rows := make([][]string, len(s.Values))
	for i, v := range s.Values {
		rows[i] = []string{s.SequenceID, strconv.Itoa(i * s.Step), ftoa(v)}
	}
	return rows
}

func PCARows(p api.PCAV1) [][]string {
	var rows [][]string
	for i, sc := range p.Scores {
		label := strconv.Itoa(i)
		if i < len(p.Samples) {
			label = p.Samples[i]
		}
		for c, v := range sc {
			rows = append(rows, []string{label, "PC" + strconv.Itoa(c+1), ftoa(v)})
		}
	}
	return rows
}

func ScalarRow(s api.ScalarV1) []string {
	return []string{s.Name, s.SequenceID, ftoa(s.Value)}
}

func SequenceRow(s api.SequenceV1) []string {
	if s.Seq == "" && len(s.Codes) > 0 {
		b := make([]byte, len(s.Codes))
		for i, c := range s.Codes {
			b[i] = byte('0' + c)
		}
		return []string{s.SequenceID, string(b)}
	}
	return []string{s.SequenceID, s.Seq}
}

// GridRows lists each physical row of the viewport.
func GridRows(g api.GridV1) [][]string {
	rows := make([][]string, len(g.Lines))
	for r, line := range g.Lines {
		rows[r] = []string{g.SequenceID, strconv.Itoa(r), line}
	}
	return rows
}

func HoeffdingRow(h api.HoeffdingV1) []string {
	in := h.InputCount
	if in == 0 {
		in = h.N
	}
	return []string{ftoa(h.D), strconv.Itoa(h.N), strconv.Itoa(in)}
}
