// Package writers turns wire values into serialized outputs.
//
// Writers own all presentation knowledge (TSV rows, pretty blocks, JSON and
// JSONL). The kernel stays domain-only and the pipeline orchestration-only.
// JSON and JSONL always go through pkg/api (v1) for a stable wire format.
package writers
