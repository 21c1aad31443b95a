// core/bonds/detect.go
package bonds

import (
	"fmt"
	"math"
	"slices"

	"seqkernel/core/kerr"
)

// List is a flat bond list: Pairs[2n], Pairs[2n+1] are the atom indices
// (i < j) of bond n, ordered by i then j.
type List struct {
	Pairs []uint32
}

// Count returns the number of bonds.
func (l List) Count() int { return len(l.Pairs) / 2 }

// Bond returns bond n.
func (l List) Bond(n int) (i, j uint32) { return l.Pairs[2*n], l.Pairs[2*n+1] }

type cell struct{ x, y, z int32 }

// DetectDefault runs Detect with DefaultParams.
func DetectDefault(positions []float32, elements []byte) (List, error) {
	return Detect(positions, elements, DefaultParams())
}

// Detect finds covalent bonds with a spatial hash. Atoms are bucketed by
// floor(coord / cellSize); each atom is only tested against atoms in its
// own and the 26 neighbouring cells, which bounds the work to O(N*k) for k
// atoms per neighbourhood. Two atoms bond when their distance is at most
// (r[a] + r[b]) * Tolerance.
func Detect(positions []float32, elements []byte, p Params) (List, error) {
	n := len(elements)
	if len(positions) != 3*n {
		return List{}, fmt.Errorf("positions=%d elements=%d: %w", len(positions), n, kerr.ErrLengthMismatch)
	}
	if p.Tolerance <= 0 || p.CellSize <= 0 {
		return List{}, fmt.Errorf("cell size %g tolerance %g: %w", p.CellSize, p.Tolerance, kerr.ErrInvalidArgument)
	}
	if n < 2 {
		return List{}, nil
	}
	radius := p.radiusTable()

	// The neighbourhood search is only exact while no threshold exceeds a
	// cell edge, so grow the cell to the largest pair present.
	var maxR float32
	for _, e := range elements {
		if r := radius[e]; r > maxR {
			maxR = r
		}
	}
	size := p.CellSize
	if need := 2 * maxR * p.Tolerance; need > size {
		size = need
	}
	inv := 1 / float64(size)

	keys := make([]cell, n)
	valid := make([]bool, n)
	grid := make(map[cell][]uint32, n/4+1)
	for i := 0; i < n; i++ {
		x, y, z := positions[3*i], positions[3*i+1], positions[3*i+2]
		if !finite(x) || !finite(y) || !finite(z) {
			continue
		}
		c := cell{
			int32(math.Floor(float64(x) * inv)),
			int32(math.Floor(float64(y) * inv)),
			int32(math.Floor(float64(z) * inv)),
		}
		keys[i], valid[i] = c, true
		grid[c] = append(grid[c], uint32(i)) // ascending by construction
	}

	out := make([]uint32, 0, 4*n)
	var near []uint32
	for i := 0; i < n; i++ {
		if !valid[i] {
			continue
		}
		xi, yi, zi := positions[3*i], positions[3*i+1], positions[3*i+2]
		ri := radius[elements[i]]
		c := keys[i]
		near = near[:0]
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dz := int32(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c.x + dx, c.y + dy, c.z + dz}] {
						if j <= uint32(i) {
							continue
						}
						t := (ri + radius[elements[j]]) * p.Tolerance
						ddx := positions[3*j] - xi
						ddy := positions[3*j+1] - yi
						ddz := positions[3*j+2] - zi
						if ddx*ddx+ddy*ddy+ddz*ddz <= t*t {
							near = append(near, j)
						}
					}
				}
			}
		}
		slices.Sort(near)
		for _, j := range near {
			out = append(out, uint32(i), j)
		}
	}
	return List{Pairs: out}, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
