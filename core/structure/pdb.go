package structure

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"seqkernel/core/kerr"
)

// ReadPDB reads ATOM and HETATM records of the first model using the fixed
// PDB columns. When the element column (77-78) is blank the element is
// taken from the atom name.
func ReadPDB(ctx context.Context, r io.Reader) (*Atoms, error) {
	sc := bufio.NewScanner(r)
	a := &Atoms{}
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := sc.Text()
		switch {
		case strings.HasPrefix(text, "HEADER") && a.Title == "":
			a.Title = strings.TrimSpace(field(text, 10, 50))
		case strings.HasPrefix(text, "ENDMDL"):
			return finishPDB(a, sc.Err())
		case strings.HasPrefix(text, "ATOM  "), strings.HasPrefix(text, "HETATM"):
			if len(text) < 54 {
				return nil, fmt.Errorf("pdb line %d: short coordinate record: %w", line, kerr.ErrInvalidArgument)
			}
			var xyz [3]float32
			for i := range xyz {
				s := strings.TrimSpace(field(text, 30+8*i, 38+8*i))
				v, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return nil, fmt.Errorf("pdb line %d: %v: %w", line, err, kerr.ErrInvalidArgument)
				}
				xyz[i] = float32(v)
			}
			sym := strings.TrimSpace(field(text, 76, 78))
			if sym == "" {
				sym = elementFromName(field(text, 12, 16))
			}
			a.add(sym, xyz[0], xyz[1], xyz[2])
		}
	}
	return finishPDB(a, sc.Err())
}

func finishPDB(a *Atoms, err error) (*Atoms, error) {
	if err != nil {
		return nil, fmt.Errorf("pdb scan: %w", err)
	}
	if a.Len() == 0 {
		return nil, fmt.Errorf("pdb: no atoms: %w", kerr.ErrEmptyInput)
	}
	return a, nil
}

// field returns text[from:to] clipped to the line.
func field(text string, from, to int) string {
	if from >= len(text) {
		return ""
	}
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

// elementFromName guesses the element from a PDB atom name: the first
// letter after any leading digits (" CA " is carbon, "1HB " hydrogen).
func elementFromName(name string) string {
	for _, r := range name {
		if unicode.IsLetter(r) {
			return string(r)
		}
	}
	return ""
}
