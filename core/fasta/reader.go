// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one FASTA entry. Seq has line breaks and surrounding blanks
// removed but is otherwise verbatim (case and IUPAC codes preserved).
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Scan parses FASTA from r and calls emit once per record, in file order.
// Sequence lines before the first header form a record with an empty ID.
// ctx is checked between lines so a cancelled scan returns promptly.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		rec    Record
		seq    = make([]byte, 0, 1<<16)
		opened bool
	)
	flush := func() error {
		if !opened && len(seq) == 0 {
			return nil
		}
		rec.Seq = append([]byte(nil), seq...)
		seq = seq[:0]
		return emit(rec)
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>':
			if err := flush(); err != nil {
				return err
			}
			rec = Record{}
			rec.ID, rec.Desc = parseHeader(line[1:])
			opened = true
		case ';':
			// legacy comment line
		default:
			seq = append(seq, bytes.TrimSpace(line)...)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// StreamPath opens path (see Open) and scans it.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return Scan(ctx, rc, emit)
}

// Records streams path on a goroutine. The record channel closes when the
// scan ends; the error channel then yields the scan error (nil on success)
// and closes. Open errors for regular files are returned immediately.
func Records(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		defer rc.Close()
		errc <- Scan(ctx, rc, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}

// ReadAll loads every record of path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := StreamPath(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	return recs, err
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
