// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Spec describes how one kind of value is written. Rows yields zero or more
// TSV rows per value; Pretty, when set, replaces TSV in text mode.
type Spec struct {
	Header string
	Rows   func(v any) [][]string
	Pretty func(v any) string
}

// FormatWriter drains in and writes it to w.
type FormatWriter func(w io.Writer, spec Spec, opts Options, in <-chan any) error

// Options tweak a writer.
type Options struct {
	Header bool // print the TSV header line
	Pretty bool // prefer Spec.Pretty in text mode
}

// Formats maps an output format name to its writer. Register more in init().
var Formats = map[string]FormatWriter{}

// Register adds or replaces a format (last wins).
func Register(format string, fn FormatWriter) { Formats[format] = fn }

// Names lists the registered formats.
func Names() []string {
	out := make([]string, 0, len(Formats))
	for name := range Formats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the registered writer for format.
func Write(format string, w io.Writer, spec Spec, opts Options, in <-chan any) error {
	fn, ok := Formats[format]
	if !ok {
		// drain so producers never block on an unknown format
		for range in {
		}
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, spec, opts, in)
}

// Start spins up a writer goroutine for values of type T. Close the returned
// channel when done and read the error channel once.
func Start[T any](out io.Writer, format string, spec Spec, opts Options, bufSize int) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	anyc := make(chan any, bufSize)
	errCh := make(chan error, 1)
	go func() {
		defer close(anyc)
		for v := range in {
			anyc <- v
		}
	}()
	go func() {
		err := Write(format, out, spec, opts, anyc)
		// keep draining so the forwarder can finish after an early error
		for range anyc {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}

// WriteAll writes a fixed list of values.
func WriteAll[T any](out io.Writer, format string, spec Spec, opts Options, list []T) error {
	in, done := Start[T](out, format, spec, opts, len(list))
	for _, v := range list {
		in <- v
	}
	close(in)
	return <-done
}
