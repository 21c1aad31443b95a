// core/dna/codon.go
package dna

// standardCode is the standard genetic code indexed by 16*b0 + 4*b1 + b2
// over the A=0 C=1 G=2 T=3 encoding. Stops are '*'.
const standardCode = "KNKNTTTTRSRSIIMI" + // A..
	"QHQHPPPPRRRRLLLL" + // C..
	"EDEDAAAAGGGGVVVV" + // G..
	"*Y*YSSSS*CWCLFLF" //   T..

const (
	codonATG = 0*16 + 3*4 + 2
	codonGTG = 2*16 + 3*4 + 2
	codonTTG = 3*16 + 3*4 + 2
)

// CodonIndex packs three encoded bases into a codon index (0..63).
// ok is false when any base is ambiguous.
func CodonIndex(c0, c1, c2 byte) (idx int, ok bool) {
	if c0 > 3 || c1 > 3 || c2 > 3 {
		return 0, false
	}
	return int(c0)<<4 | int(c1)<<2 | int(c2), true
}

// Translate returns the amino acid for three raw bases; codons touching an
// ambiguous base translate to 'X'.
func Translate(b0, b1, b2 byte) byte {
	idx, ok := CodonIndex(code[b0], code[b1], code[b2])
	if !ok {
		return 'X'
	}
	return standardCode[idx]
}

// AminoAcid returns the amino acid of a codon index.
func AminoAcid(idx int) byte { return standardCode[idx&63] }

// IsStop reports whether the codon index is a stop codon.
func IsStop(idx int) bool { return standardCode[idx&63] == '*' }

// IsStart reports whether idx is ATG, or GTG/TTG when alt is set
// (common bacterial and phage alternative starts).
func IsStart(idx int, alt bool) bool {
	switch idx {
	case codonATG:
		return true
	case codonGTG, codonTTG:
		return alt
	}
	return false
}
