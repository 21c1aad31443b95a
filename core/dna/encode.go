// core/dna/encode.go
package dna

// Ambiguous is the code assigned to every byte that is not A, C, G, T or U.
const Ambiguous byte = 4

/* ------------------------- 2-bit encoding table ------------------------- */

var code [256]byte // A=0 C=1 G=2 T/U=3, everything else=4

func init() {
	for i := range code {
		code[i] = Ambiguous
	}
	set := func(c byte, v byte) {
		code[c] = v
		code[c|0x20] = v // lowercase mirrors uppercase
	}
	set('A', 0)
	set('C', 1)
	set('G', 2)
	set('T', 3)
	set('U', 3)
}

// Code returns the numeric code of a single base.
func Code(b byte) byte { return code[b] }

// Encode maps every byte of seq onto its numeric code. The result has the
// same length as seq and is the only allocation made.
func Encode(seq []byte) []byte {
	out := make([]byte, len(seq))
	EncodeInto(out, seq)
	return out
}

// EncodeInto writes the codes of seq into dst and returns the number of
// bytes written (min(len(dst), len(seq))).
func EncodeInto(dst, seq []byte) int {
	n := len(seq)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = code[seq[i]]
	}
	return n
}

// Letter is the inverse of Code for the four unambiguous codes; anything
// else decodes to 'N'.
func Letter(c byte) byte {
	if c < 4 {
		return "ACGT"[c]
	}
	return 'N'
}
