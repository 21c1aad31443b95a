package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type row struct {
	ID string `json:"id"`
	N  int    `json:"n"`
}

func TestStartWritesLines(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[row](&buf, 0, func(e *json.Encoder, r row) error { return e.Encode(r) }, nil)
	in <- row{"a", 1}
	in <- row{"b", 2}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("done: %v", err)
	}
	want := "{\"id\":\"a\",\"n\":1}\n{\"id\":\"b\",\"n\":2}\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestStartDrainsAfterError(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	in, done := Start[int](&buf, 1, func(*json.Encoder, int) error { return boom }, nil)
	for i := 0; i < 100; i++ {
		in <- i // must not block after the first failure
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}
