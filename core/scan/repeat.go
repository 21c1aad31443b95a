// core/scan/repeat.go
package scan

import (
	"fmt"
	"sort"

	"seqkernel/core/kerr"
)

// TandemRepeat is a maximal run of adjacent exact copies of Unit starting at
// Start. End is exclusive and covers only complete copies.
type TandemRepeat struct {
	Start  int
	End    int
	Unit   string
	Copies int
}

// TandemRepeats scans for exact tandem repeats with unit length in
// [minUnit, maxUnit]. Units that are themselves repeats of a shorter unit
// (e.g. "ATAT") are skipped, since the shorter unit already reports the run.
// Units containing ambiguous bases are ignored. Results are ordered by
// Start, then unit length.
func TandemRepeats(seq []byte, minUnit, maxUnit, minCopies int) ([]TandemRepeat, error) {
	if minUnit <= 0 || maxUnit < minUnit || minCopies < 2 {
		return nil, fmt.Errorf("minUnit=%d maxUnit=%d minCopies=%d: %w",
			minUnit, maxUnit, minCopies, kerr.ErrInvalidArgument)
	}
	var out []TandemRepeat
	n := len(seq)
	for u := minUnit; u <= maxUnit && 2*u <= n; u++ {
		i := 0
		for i+u <= n {
			// run = number of positions j >= i with seq[j]==seq[j-u]
			j := i + u
			for j < n && upper(seq[j]) == upper(seq[j-u]) {
				j++
			}
			copies := (j - i) / u
			if copies >= minCopies && unitOK(seq[i:i+u]) {
				out = append(out, TandemRepeat{
					Start:  i,
					End:    i + copies*u,
					Unit:   string(toUpper(seq[i : i+u])),
					Copies: copies,
				})
			}
			// every later start inside [i, j) is a rotation of the same run
			i = max(i+1, j-u+1)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Start < out[b].Start })
	return out, nil
}

// unitOK rejects ambiguous and non-primitive units.
func unitOK(unit []byte) bool {
	for _, b := range unit {
		switch upper(b) {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return primitive(unit)
}

// primitive reports whether unit is not a whole power of a shorter string.
func primitive(unit []byte) bool {
	n := len(unit)
outer:
	for d := 1; d <= n/2; d++ {
		if n%d != 0 {
			continue
		}
		for i := d; i < n; i++ {
			if upper(unit[i]) != upper(unit[i-d]) {
				continue outer
			}
		}
		return false
	}
	return true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

func toUpper(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = upper(c)
	}
	return out
}
