// Package pipeline streams FASTA records from one or more files through the
// dispatcher's worker kernels and hands each per-record result to a visit
// callback on a single collector goroutine.
//
// The only contract to implement is Work; it runs on a worker with
// exclusive use of that worker's kernel.
package pipeline
