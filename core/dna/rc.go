// core/dna/rc.go
package dna

var complement [256]byte

func init() {
	pairs := [...][2]byte{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, // A/G <-> C/T
		{'S', 'S'}, {'W', 'W'},
		{'K', 'M'},
		{'B', 'V'},
		{'D', 'H'},
		{'N', 'N'},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		complement[a], complement[b] = b, a
		complement[a|0x20], complement[b|0x20] = b|0x20, a|0x20
	}
	// RNA input comes back as DNA: U pairs with A, and A always yields T.
	complement['U'], complement['u'] = 'A', 'a'
}

// Complement returns the IUPAC complement of b, preserving case.
// Bytes outside the IUPAC alphabet complement to 'N'. U complements to A,
// so reverse-complementing RNA twice yields the DNA sequence.
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return 'N'
}

// RevComp returns the reverse complement of seq in a fresh slice.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// ReverseComplement is RevComp for strings.
func ReverseComplement(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
