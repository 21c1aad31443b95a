// core/scan/palindrome.go
package scan

import (
	"fmt"
	"sort"

	"seqkernel/core/dna"
	"seqkernel/core/kerr"
)

// Palindrome is an inverted repeat: an arm, a spacer of Gap bases and the
// reverse complement of the arm. End is exclusive.
type Palindrome struct {
	Start     int
	End       int
	ArmLength int
	Gap       int
}

// pairs reports whether a and b are Watson-Crick complements; ambiguous
// bases never pair.
func pairs(a, b byte) bool {
	ca, cb := dna.Code(a), dna.Code(b)
	return ca < 4 && cb < 4 && ca^3 == cb
}

// Palindromes finds every maximal inverted repeat with arm >= minArm and a
// spacer of at most maxGap bases. A repeat whose spacer could shrink by
// pairing its innermost bases is reported only in that shorter-spacer form,
// so each stem appears once. Results are ordered by Start, then Gap.
func Palindromes(seq []byte, minArm, maxGap int) ([]Palindrome, error) {
	if minArm <= 0 || maxGap < 0 {
		return nil, fmt.Errorf("minArm=%d maxGap=%d: %w", minArm, maxGap, kerr.ErrInvalidArgument)
	}
	var out []Palindrome
	n := len(seq)
	// p is the end (exclusive) of the left arm, r the start of the right arm.
	for p := 1; p < n; p++ {
		for gap := 0; gap <= maxGap; gap++ {
			r := p + gap
			if r >= n {
				break
			}
			if gap >= 2 && pairs(seq[p], seq[r-1]) {
				continue
			}
			arm := 0
			for p-1-arm >= 0 && r+arm < n && pairs(seq[p-1-arm], seq[r+arm]) {
				arm++
			}
			if arm < minArm {
				continue
			}
			out = append(out, Palindrome{Start: p - arm, End: r + arm, ArmLength: arm, Gap: gap})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Gap < out[j].Gap
	})
	return out, nil
}
