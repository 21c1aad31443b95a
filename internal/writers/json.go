// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"seqkernel/internal/jsonlutil"
	"seqkernel/internal/jsonutil"
)

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
}

// writeJSON buffers everything and writes one indented array (v1 types).
func writeJSON(w io.Writer, _ Spec, _ Options, in <-chan any) error {
	list := make([]any, 0, 16)
	for v := range in {
		list = append(list, v)
	}
	return jsonutil.EncodePretty(w, list)
}

// writeJSONL streams one JSON object per line.
func writeJSONL(w io.Writer, _ Spec, _ Options, in <-chan any) error {
	enc, done := jsonlutil.Start[any](w, cap(in),
		func(e *json.Encoder, v any) error { return e.Encode(v) },
		IsBrokenPipe,
	)
	for v := range in {
		enc <- v
	}
	close(enc)
	return <-done
}
