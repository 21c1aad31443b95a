// core/kmer/minhash.go
package kmer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"seqkernel/core/kerr"
)

// DefaultSeed seeds the MinHash permutation family when none is given.
const DefaultSeed uint64 = 0x5EC0DE5EED

// Signature is a MinHash sketch: the minimum of each of len(Mins) hash
// functions over the k-mer set of one sequence.
type Signature struct {
	K     int
	Seed  uint64
	Mins  []uint64
	Empty bool // no valid k-mer was observed
}

// splitmix64 is the finalizer used both to derive per-function seeds and
// to mix the base hash with them.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func seeds(seed uint64, n int) []uint64 {
	out := make([]uint64, n)
	s := seed
	for i := range out {
		s = splitmix64(s)
		out[i] = s
	}
	return out
}

// Sketch computes the MinHash signature of seq. Each valid k-mer is packed
// (2 bits per base), hashed once with xxhash, then remixed per function.
func Sketch(seq []byte, k, numHashes int, seed uint64) (Signature, error) {
	if k <= 0 || k > MaxSparseK {
		return Signature{}, validateK(nil, k, MaxSparseK)
	}
	if numHashes <= 0 {
		return Signature{}, fmt.Errorf("numHashes=%d: %w", numHashes, kerr.ErrInvalidArgument)
	}
	sig := Signature{K: k, Seed: seed, Mins: make([]uint64, numHashes), Empty: true}
	for i := range sig.Mins {
		sig.Mins[i] = math.MaxUint64
	}
	salts := seeds(seed, numHashes)
	var buf [8]byte
	forEachPacked(seq, k, func(v uint64) {
		sig.Empty = false
		binary.LittleEndian.PutUint64(buf[:], v)
		base := xxhash.Sum64(buf[:])
		for i, s := range salts {
			if h := splitmix64(base ^ s); h < sig.Mins[i] {
				sig.Mins[i] = h
			}
		}
	})
	return sig, nil
}

// Jaccard estimates the Jaccard index of the two underlying k-mer sets as
// the fraction of hash functions whose minima agree.
func (s Signature) Jaccard(o Signature) (float64, error) {
	if s.K != o.K || s.Seed != o.Seed || len(s.Mins) != len(o.Mins) {
		return 0, fmt.Errorf("sketch k=%d/%d seed=%x/%x hashes=%d/%d: %w",
			s.K, o.K, s.Seed, o.Seed, len(s.Mins), len(o.Mins), kerr.ErrLengthMismatch)
	}
	if s.Empty || o.Empty || len(s.Mins) == 0 {
		return 0, nil
	}
	same := 0
	for i := range s.Mins {
		if s.Mins[i] == o.Mins[i] {
			same++
		}
	}
	return float64(same) / float64(len(s.Mins)), nil
}

// MinHashJaccard sketches both sequences with the default seed and compares
// the signatures.
func MinHashJaccard(a, b []byte, k, numHashes int) (float64, error) {
	return MinHashJaccardSeeded(a, b, k, numHashes, DefaultSeed)
}

// MinHashJaccardSeeded is MinHashJaccard with an explicit seed.
func MinHashJaccardSeeded(a, b []byte, k, numHashes int, seed uint64) (float64, error) {
	sa, err := Sketch(a, k, numHashes, seed)
	if err != nil {
		return 0, err
	}
	sb, err := Sketch(b, k, numHashes, seed)
	if err != nil {
		return 0, err
	}
	return sa.Jaccard(sb)
}
