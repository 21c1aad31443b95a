package dna

// GCContent returns the percentage of G and C among the unambiguous
// A/C/G/T bases of seq. Sequences with no unambiguous base yield 0.
func GCContent(seq []byte) float64 {
	var gc, total int
	for _, b := range seq {
		switch code[b] {
		case 1, 2:
			gc++
			total++
		case 0, 3:
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(gc) / float64(total)
}
