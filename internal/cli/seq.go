package cli

import (
	"github.com/spf13/cobra"

	"seqkernel/core/kerr"
	"seqkernel/core/kernel"
	"seqkernel/core/scan"
	"seqkernel/internal/output"
	"seqkernel/internal/pipeline"
	"seqkernel/pkg/api"
)

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [FASTA...]",
		Short: "Print 2-bit base codes (A=0 C=1 G=2 T=3, other=4)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := streamRecords(cmd, opts, "encode", inputs(args), sequenceSpec,
				single(func(k *kernel.Kernel, it pipeline.Item) (api.SequenceV1, error) {
					codes, err := k.Encode(it.Record.Seq)
					if err != nil {
						return api.SequenceV1{}, err
					}
					v := api.SequenceV1{SequenceID: it.Record.ID, Codes: make([]int, len(codes))}
					for i, c := range codes {
						v.Codes[i] = int(c)
					}
					return v, nil
				}))
			return err
		},
	}
}

// NewRevcompCommand creates the revcomp command.
func NewRevcompCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "revcomp [FASTA...]",
		Short: "Reverse-complement every record",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := streamRecords(cmd, opts, "revcomp", inputs(args), sequenceSpec,
				single(func(k *kernel.Kernel, it pipeline.Item) (api.SequenceV1, error) {
					rc, err := k.ReverseComplement(string(it.Record.Seq))
					return api.SequenceV1{SequenceID: it.Record.ID, Seq: rc}, err
				}))
			return err
		},
	}
}

// NewEntropyCommand creates the entropy command.
func NewEntropyCommand(opts *RootOptions) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "entropy [FASTA...]",
		Short: "Shannon entropy (bits) of each record's k-mer distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") {
				k = min(opts.cfg.Kmer.DefaultK, 10)
			}
			_, err := streamRecords(cmd, opts, "entropy", inputs(args), scalarSpec,
				single(func(kn *kernel.Kernel, it pipeline.Item) (v api.ScalarV1, err error) {
					v = api.ScalarV1{Name: "kmer_entropy", SequenceID: it.Record.ID}
					h, err := kn.CountKmers(it.Record.Seq, k)
					if kerr.KindOf(err) == kerr.KindSequenceTooShort {
						return v, nil
					}
					if err != nil {
						return v, err
					}
					defer release(kn, h, &err)
					v.Value, err = kn.KmerEntropy(h)
					return v, err
				}))
			return err
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "k-mer size, 1..10 (default from config) [4]")
	return cmd
}

// NewKmersCommand creates the kmers command.
func NewKmersCommand(opts *RootOptions) *cobra.Command {
	var (
		k         int
		canonical bool
		top       int
	)
	cmd := &cobra.Command{
		Use:   "kmers [FASTA...]",
		Short: "Count k-mers per record and list the most frequent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("k") {
				k = min(opts.cfg.Kmer.DefaultK, 10)
			}
			if !cmd.Flags().Changed("top") {
				top = opts.cfg.Kmer.Top
			}
			if top < 0 {
				return NewExitError(ExitUsage, "--top must be ≥ 0")
			}
			_, err := streamRecords(cmd, opts, "kmers", inputs(args), kmerSpec,
				single(func(kn *kernel.Kernel, it pipeline.Item) (v api.KmerTableV1, err error) {
					count := kn.CountKmers
					if canonical {
						count = kn.CountKmersCanonical
					}
					h, err := count(it.Record.Seq, k)
					if err != nil {
						return v, err
					}
					defer release(kn, h, &err)
					t, err := kn.KmerTable(h)
					if err != nil {
						return v, err
					}
					return output.ToAPIKmerTable(it.Record.ID, t, top), nil
				}))
			return err
		},
	}
	cmd.Flags().IntVar(&k, "k", 4, "k-mer size, 1..10 (default from config) [4]")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "fold each k-mer onto min(kmer, revcomp) [false]")
	cmd.Flags().IntVar(&top, "top", 20, "number of k-mers to list (0 = all observed) [20]")
	return cmd
}

// NewSkewCommand creates the skew command.
func NewSkewCommand(opts *RootOptions) *cobra.Command {
	var (
		window, step int
		cumulative   bool
	)
	cmd := &cobra.Command{
		Use:   "skew [FASTA...]",
		Short: "Windowed GC skew (G-C)/(G+C) per record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("window") {
				window = opts.cfg.Scan.Window
			}
			if !cmd.Flags().Changed("step") {
				step = opts.cfg.Scan.Step
			}
			_, err := streamRecords(cmd, opts, "skew", inputs(args), skewSpec,
				single(func(kn *kernel.Kernel, it pipeline.Item) (api.SkewV1, error) {
					f := kn.GCSkew
					if cumulative {
						f = kn.CumulativeGCSkew
					}
					vals, err := f(it.Record.Seq, window, step)
					if err != nil {
						return api.SkewV1{}, err
					}
					lo, hi := scan.Extremes(vals)
					return api.SkewV1{
						SequenceID: it.Record.ID,
						Window:     window,
						Step:       step,
						Cumulative: cumulative,
						Values:     vals,
						MinIndex:   lo,
						MaxIndex:   hi,
					}, nil
				}))
			return err
		},
	}
	cmd.Flags().IntVar(&window, "window", 1000, "window length in bases (default from config) [1000]")
	cmd.Flags().IntVar(&step, "step", 500, "distance between window starts (default from config) [500]")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "report the running sum of window skews [false]")
	return cmd
}
