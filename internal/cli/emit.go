package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"seqkernel/core/fasta"
	"seqkernel/core/kernel"
	"seqkernel/internal/cmdutil"
	"seqkernel/internal/output"
	"seqkernel/internal/pipeline"
	"seqkernel/internal/pretty"
	"seqkernel/internal/writers"
	"seqkernel/pkg/api"
)

// row adapts a single-row formatter to writers.Spec.Rows.
func row[T any](f func(T) []string) func(any) [][]string {
	return func(v any) [][]string { return [][]string{f(v.(T))} }
}

func rows[T any](f func(T) [][]string) func(any) [][]string {
	return func(v any) [][]string { return f(v.(T)) }
}

var (
	kmerSpec = writers.Spec{
		Header: output.KmerHeader,
		Rows:   rows(output.KmerRows),
		Pretty: func(v any) string { return pretty.RenderKmers(v.(api.KmerTableV1), pretty.DefaultOptions) },
	}
	comparisonSpec = writers.Spec{
		Header: output.ComparisonHeader,
		Rows:   row(output.ComparisonRow),
		Pretty: func(v any) string { return pretty.RenderComparison(v.(api.ComparisonV1)) },
	}
	profileSpec    = writers.Spec{Header: output.ProfileHeader, Rows: row(output.ProfileRow)}
	bondSpec       = writers.Spec{Header: output.BondHeader, Rows: rows(output.BondRows)}
	palindromeSpec = writers.Spec{Header: output.PalindromeHeader, Rows: row(output.PalindromeRow)}
	repeatSpec     = writers.Spec{Header: output.RepeatHeader, Rows: row(output.RepeatRow)}
	skewSpec       = writers.Spec{Header: output.SkewHeader, Rows: rows(output.SkewRows)}
	pcaSpec        = writers.Spec{Header: output.PCAHeader, Rows: rows(output.PCARows)}
	scalarSpec     = writers.Spec{Header: output.ScalarHeader, Rows: row(output.ScalarRow)}
	sequenceSpec   = writers.Spec{Header: output.SequenceHeader, Rows: row(output.SequenceRow)}
	hoeffdingSpec  = writers.Spec{Header: output.HoeffdingHeader, Rows: row(output.HoeffdingRow)}
	gridSpec       = writers.Spec{
		Header: output.GridHeader,
		Rows:   func(v any) [][]string { return output.GridRows(v.(gridResult).GridV1) },
		Pretty: func(v any) string { return v.(gridResult).rendered },
	}
)

// inputs defaults to stdin when no file is named.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// single lifts a one-result Work into the slice form streamRecords takes.
func single[T any](w pipeline.Work[T]) pipeline.Work[[]T] {
	return func(k *kernel.Kernel, it pipeline.Item) ([]T, error) {
		v, err := w(k, it)
		if err != nil {
			return nil, err
		}
		return []T{v}, nil
	}
}

// streamRecords runs work over every record of files on the pool and
// writes each result value as it arrives. It returns how many values were
// written.
func streamRecords[T any](cmd *cobra.Command, o *RootOptions, op string, files []string, spec writers.Spec, work pipeline.Work[[]T]) (int, error) {
	in, done := writers.Start[T](cmd.OutOrStdout(), o.Format, spec, o.writerOptions(), 0)
	n := 0
	_, err := cmdutil.RunStream(
		cmd.Context(),
		pipeline.Config{Threads: o.pool.Threads(), Op: op},
		files, o.pool, o.m, work,
		func(v []T) (bool, []T, error) { return len(v) > 0, v, nil },
		func(v []T) error {
			for _, x := range v {
				in <- x
			}
			n += len(v)
			return nil
		},
	)
	close(in)
	if wErr := <-done; err == nil {
		err = wErr
	}
	return n, err
}

// emit writes a fixed list of values.
func emit[T any](cmd *cobra.Command, o *RootOptions, spec writers.Spec, list []T) error {
	return writers.WriteAll(cmd.OutOrStdout(), o.Format, spec, o.writerOptions(), list)
}

// readRecords loads every record of files into memory, in file order.
func readRecords(ctx context.Context, o *RootOptions, files []string) ([]fasta.Record, error) {
	var all []fasta.Record
	for _, f := range files {
		recs, err := fasta.ReadAll(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			o.m.Records.Inc()
			o.m.Bases.Add(float64(len(r.Seq)))
		}
		all = append(all, recs...)
	}
	o.log.Debug("records loaded", "files", len(files), "records", len(all))
	return all, nil
}

// pick returns the record named id, or the first one when id is empty.
func pick(recs []fasta.Record, id string) (fasta.Record, error) {
	if len(recs) == 0 {
		return fasta.Record{}, NewExitError(ExitUsage, "no sequence records in input")
	}
	if id == "" {
		return recs[0], nil
	}
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
	}
	return fasta.Record{}, NewExitError(ExitUsage, fmt.Sprintf("record %q not found", id))
}

// release frees h, keeping the first error seen.
func release(k *kernel.Kernel, h kernel.Handle, err *error) {
	if rErr := k.Release(h); *err == nil {
		*err = rErr
	}
}

// usageArgs turns argument-count errors into usage exits.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return WrapExitError(ExitUsage, "invalid arguments", err)
		}
		return nil
	}
}
