package writers

import (
	"bufio"
	"io"
	"strings"
)

func init() {
	Register("text", writeText)
	Register("tsv", writeTSV)
}

// writeText prints pretty blocks when Spec.Pretty is set and the caller
// asked for them, and TSV otherwise.
func writeText(w io.Writer, spec Spec, opts Options, in <-chan any) error {
	if !opts.Pretty || spec.Pretty == nil {
		return writeTSV(w, spec, opts, in)
	}
	bw := bufio.NewWriter(w)
	for v := range in {
		if _, err := io.WriteString(bw, spec.Pretty(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTSV(w io.Writer, spec Spec, opts Options, in <-chan any) error {
	bw := bufio.NewWriter(w)
	if opts.Header && spec.Header != "" {
		if _, err := bw.WriteString(spec.Header + "\n"); err != nil {
			return err
		}
	}
	for v := range in {
		if spec.Rows == nil {
			continue
		}
		for _, row := range spec.Rows(v) {
			if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
