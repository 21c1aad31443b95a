package stats

import (
	"math/rand"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1}, // runes, not bytes
		{"T4 phage", "T7 phage", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q,%q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinMetric(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	word := func() string {
		b := make([]byte, rng.Intn(12))
		for i := range b {
			b[i] = "ACGT"[rng.Intn(4)]
		}
		return string(b)
	}
	for i := 0; i < 300; i++ {
		a, b, c := word(), word(), word()
		if Levenshtein(a, a) != 0 {
			t.Fatalf("d(%q,%q) != 0", a, a)
		}
		ab, ba := Levenshtein(a, b), Levenshtein(b, a)
		if ab != ba {
			t.Fatalf("asymmetric: d(%q,%q)=%d d(%q,%q)=%d", a, b, ab, b, a, ba)
		}
		if ac, cb := Levenshtein(a, c), Levenshtein(c, b); ab > ac+cb {
			t.Fatalf("triangle violated for %q %q %q: %d > %d + %d", a, b, c, ab, ac, cb)
		}
	}
}
