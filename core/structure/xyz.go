package structure

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seqkernel/core/kerr"
)

// ReadXYZ parses the first frame of an XYZ file: an atom count, a comment
// line, then "symbol x y z" per atom.
func ReadXYZ(ctx context.Context, r io.Reader) (*Atoms, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	head, ok := next()
	if !ok {
		return nil, fmt.Errorf("xyz: %w", kerr.ErrEmptyInput)
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("xyz line 1: bad atom count %q: %w", head, kerr.ErrInvalidArgument)
	}
	title, _ := next()
	a := &Atoms{
		Title:     strings.TrimSpace(title),
		Positions: make([]float32, 0, 3*n),
		Elements:  make([]byte, 0, n),
		Symbols:   make([]string, 0, n),
	}
	for a.Len() < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, ok := next()
		if !ok {
			break
		}
		f := strings.Fields(text)
		if len(f) == 0 {
			continue
		}
		if len(f) < 4 {
			return nil, fmt.Errorf("xyz line %d: want symbol x y z: %w", line, kerr.ErrInvalidArgument)
		}
		var xyz [3]float32
		for i := range xyz {
			v, err := strconv.ParseFloat(f[i+1], 32)
			if err != nil {
				return nil, fmt.Errorf("xyz line %d: %v: %w", line, err, kerr.ErrInvalidArgument)
			}
			xyz[i] = float32(v)
		}
		a.add(f[0], xyz[0], xyz[1], xyz[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("xyz scan: %w", err)
	}
	if a.Len() != n {
		return nil, fmt.Errorf("xyz: header says %d atoms, found %d: %w", n, a.Len(), kerr.ErrLengthMismatch)
	}
	return a, nil
}
